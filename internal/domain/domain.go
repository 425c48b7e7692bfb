package domain

import (
	"github.com/yungbote/strengthscope-backend/internal/domain/assessment"
	"github.com/yungbote/strengthscope-backend/internal/domain/progression"
	"github.com/yungbote/strengthscope-backend/internal/domain/user"
)

type User = user.User
type UserToken = user.UserToken

type StrengthDomain = assessment.StrengthDomain
type Strength = assessment.Strength
type Question = assessment.Question
type QuestionType = assessment.QuestionType
type Answer = assessment.Answer
type AnswerValue = assessment.AnswerValue
type AnswerValueKind = assessment.AnswerValueKind
type Session = assessment.Session
type SessionStatus = assessment.SessionStatus
type ScoreMap = assessment.ScoreMap
type QuestionPlan = assessment.QuestionPlan
type Result = assessment.Result
type CompiledResults = assessment.CompiledResults
type RankedStrength = assessment.RankedStrength
type RewardFlag = assessment.RewardFlag
type Milestone = assessment.Milestone
type StrengthProfile = assessment.StrengthProfile

type UserProgress = progression.UserProgress
type XPLog = progression.XPLog
type UserBadge = progression.UserBadge

const (
	QuestionScale   = assessment.QuestionScale
	QuestionChoice  = assessment.QuestionChoice
	QuestionRanking = assessment.QuestionRanking

	AnswerNumber  = assessment.AnswerNumber
	AnswerText    = assessment.AnswerText
	AnswerRanking = assessment.AnswerRanking

	SessionInProgress = assessment.SessionInProgress
	SessionCompleted  = assessment.SessionCompleted
	SessionAbandoned  = assessment.SessionAbandoned

	MilestonePhase1     = assessment.MilestonePhase1
	MilestonePhase2     = assessment.MilestonePhase2
	MilestoneCompletion = assessment.MilestoneCompletion

	AnswerValueSchemaVersion     = assessment.AnswerValueSchemaVersion
	ScoreMapSchemaVersion        = assessment.ScoreMapSchemaVersion
	QuestionPlanSchemaVersion    = assessment.QuestionPlanSchemaVersion
	CompiledResultsSchemaVersion = assessment.CompiledResultsSchemaVersion

	TrackingPhase1      = assessment.TrackingPhase1
	TrackingPhase2      = assessment.TrackingPhase2
	TrackingCompletion  = assessment.TrackingCompletion
	TrackingRetakeBonus = assessment.TrackingRetakeBonus
)

var (
	NumberValue  = assessment.NumberValue
	TextValue    = assessment.TextValue
	RankingValue = assessment.RankingValue
	EncodeJSON   = assessment.EncodeJSON
)
