package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	engine "github.com/yungbote/strengthscope-backend/internal/assessment"
	"github.com/yungbote/strengthscope-backend/internal/data/repos"
	types "github.com/yungbote/strengthscope-backend/internal/domain"
	"github.com/yungbote/strengthscope-backend/internal/pkg/ctxutil"
	pkgerrors "github.com/yungbote/strengthscope-backend/internal/pkg/errors"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

// staleAfter is how long an IN_PROGRESS session may sit idle before
// checkStale surfaces it. Staleness is reported, never auto-applied.
const staleAfter = 7 * 24 * time.Hour

type SubmitAnswerInput struct {
	QuestionID uuid.UUID
	Value      types.AnswerValue
	Confidence *int
}

type NextQuestion struct {
	Question    *types.Question `json:"question,omitempty"`
	Done        bool            `json:"done"`
	CurrentStep int             `json:"current_step"`
	TotalSteps  int             `json:"total_steps"`
}

type SessionService interface {
	CreateSession(ctx context.Context) (*types.Session, error)
	RetakeSession(ctx context.Context, oldSessionID uuid.UUID) (*types.Session, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*types.Session, error)

	SubmitAnswer(ctx context.Context, sessionID uuid.UUID, in SubmitAnswerInput) error
	AutoSaveAnswer(ctx context.Context, sessionID uuid.UUID, in SubmitAnswerInput)
	GetNextQuestion(ctx context.Context, sessionID uuid.UUID) (*NextQuestion, error)

	CompletePhase(ctx context.Context, sessionID uuid.UUID, phase int) (*types.Session, error)
	AbandonSession(ctx context.Context, sessionID uuid.UUID) error
	CheckStaleSessions(ctx context.Context) ([]*types.Session, error)

	// SweepStale logs idle sessions across all users; run from the app loop.
	SweepStale(ctx context.Context) error
}

type sessionService struct {
	db           *gorm.DB
	log          *logger.Logger
	sessionRepo  repos.SessionRepo
	answerRepo   repos.AnswerRepo
	questionRepo repos.QuestionRepo
	engineCfg    engine.Config
}

func NewSessionService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.SessionRepo,
	answerRepo repos.AnswerRepo,
	questionRepo repos.QuestionRepo,
	engineCfg engine.Config,
) SessionService {
	serviceLog := log.With("service", "SessionService")
	return &sessionService{
		db:           db,
		log:          serviceLog,
		sessionRepo:  sessionRepo,
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		engineCfg:    engineCfg,
	}
}

func requestUserID(ctx context.Context) (uuid.UUID, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("request data not set in context: %w", pkgerrors.ErrUnauthorized)
	}
	return rd.UserID, nil
}

// loadOwnedSession resolves the session and enforces ownership. A session
// owned by someone else reads exactly like a missing one.
func (ss *sessionService) loadOwnedSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.Session, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}
	session, err := ss.sessionRepo.GetByID(ctx, tx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return nil, fmt.Errorf("Session not found: %w", pkgerrors.ErrNotFound)
	}
	return session, nil
}

func (ss *sessionService) CreateSession(ctx context.Context) (*types.Session, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}

	phase1, err := ss.questionRepo.ListByPhase(ctx, nil, 1)
	if err != nil {
		return nil, fmt.Errorf("error loading phase 1 questions: %w", err)
	}
	if len(phase1) == 0 {
		return nil, fmt.Errorf("no phase 1 questions seeded: %w", pkgerrors.ErrInvalidState)
	}

	var created *types.Session
	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Stray in-flight sessions are cleared, not resumed.
		if n, err := ss.sessionRepo.AbandonInProgressForUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("error abandoning stray sessions: %w", err)
		} else if n > 0 {
			ss.log.Info("Abandoned stray in-progress sessions", "user_id", userID, "count", n)
		}

		now := time.Now().UTC()
		session := &types.Session{
			ID:             uuid.New(),
			UserID:         userID,
			Status:         types.SessionInProgress,
			Phase:          1,
			CurrentStep:    0,
			TotalSteps:     len(phase1),
			StartedAt:      now,
			LastActivityAt: now,
		}
		row, err := ss.sessionRepo.Create(ctx, tx, session)
		if err != nil {
			return fmt.Errorf("error creating session: %w", err)
		}
		created = row
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

func (ss *sessionService) RetakeSession(ctx context.Context, oldSessionID uuid.UUID) (*types.Session, error) {
	old, err := ss.loadOwnedSession(ctx, nil, oldSessionID)
	if err != nil {
		return nil, err
	}
	// Deliberate archive of the previous run, COMPLETED included. This is the
	// one path that abandons a finished session.
	if old.Status != types.SessionAbandoned {
		if err := ss.sessionRepo.UpdateFields(ctx, nil, old.ID, map[string]interface{}{
			"status": types.SessionAbandoned,
		}); err != nil {
			return nil, fmt.Errorf("error archiving old session: %w", err)
		}
	}
	return ss.CreateSession(ctx)
}

func (ss *sessionService) GetSession(ctx context.Context, sessionID uuid.UUID) (*types.Session, error) {
	return ss.loadOwnedSession(ctx, nil, sessionID)
}

func (ss *sessionService) SubmitAnswer(ctx context.Context, sessionID uuid.UUID, in SubmitAnswerInput) error {
	session, err := ss.loadOwnedSession(ctx, nil, sessionID)
	if err != nil {
		return err
	}
	if session.Status != types.SessionInProgress {
		return fmt.Errorf("session is %s, answers are closed: %w", session.Status, pkgerrors.ErrInvalidState)
	}

	question, err := ss.questionRepo.GetByID(ctx, nil, in.QuestionID)
	if err != nil {
		return fmt.Errorf("error fetching question: %w", err)
	}
	if question == nil {
		return fmt.Errorf("question not found: %w", pkgerrors.ErrNotFound)
	}

	planIDs, err := ss.phaseQuestionIDs(ctx, nil, session)
	if err != nil {
		return err
	}
	inPlan := false
	for _, id := range planIDs {
		if id == question.ID {
			inPlan = true
			break
		}
	}
	if !inPlan {
		return fmt.Errorf("question is not part of the current phase: %w", pkgerrors.ErrInvalidArgument)
	}

	if in.Confidence != nil && (*in.Confidence < 1 || *in.Confidence > 5) {
		return fmt.Errorf("confidence must be in [1,5]: %w", pkgerrors.ErrInvalidArgument)
	}

	// Normalization doubles as value validation: wrong kind, out-of-range
	// scale values and broken ranking permutations all fail here.
	if _, err := engine.Normalize(question, in.Value); err != nil {
		return err
	}

	userID, _ := requestUserID(ctx)
	answer := &types.Answer{
		ID:         uuid.New(),
		SessionID:  session.ID,
		UserID:     userID,
		QuestionID: question.ID,
		Confidence: in.Confidence,
		AnsweredAt: time.Now().UTC(),
	}
	if err := answer.EncodeValue(in.Value); err != nil {
		return fmt.Errorf("error encoding answer value: %w", err)
	}

	return ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ss.answerRepo.Upsert(ctx, tx, answer); err != nil {
			return fmt.Errorf("error saving answer: %w", err)
		}
		answered, err := ss.answerRepo.CountBySessionQuestions(ctx, tx, session.ID, planIDs)
		if err != nil {
			return fmt.Errorf("error counting answers: %w", err)
		}
		return ss.sessionRepo.UpdateFields(ctx, tx, session.ID, map[string]interface{}{
			"current_step":     answered,
			"last_activity_at": time.Now().UTC(),
		})
	})
}

// AutoSaveAnswer is the fire-and-forget variant of SubmitAnswer: the explicit
// submit path is authoritative, so failures here are logged and swallowed.
func (ss *sessionService) AutoSaveAnswer(ctx context.Context, sessionID uuid.UUID, in SubmitAnswerInput) {
	if err := ss.SubmitAnswer(ctx, sessionID, in); err != nil {
		ss.log.Warn("Auto-save answer failed",
			"session_id", sessionID,
			"question_id", in.QuestionID,
			"error", err,
		)
	}
}

func (ss *sessionService) GetNextQuestion(ctx context.Context, sessionID uuid.UUID) (*NextQuestion, error) {
	session, err := ss.loadOwnedSession(ctx, nil, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != types.SessionInProgress {
		return nil, fmt.Errorf("session is %s: %w", session.Status, pkgerrors.ErrInvalidState)
	}

	planIDs, err := ss.phaseQuestionIDs(ctx, nil, session)
	if err != nil {
		return nil, err
	}
	answers, err := ss.answerRepo.ListBySession(ctx, nil, session.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading answers: %w", err)
	}
	answered := make(map[uuid.UUID]bool, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = true
	}

	doneCount := 0
	var nextID uuid.UUID
	for _, id := range planIDs {
		if answered[id] {
			doneCount++
			continue
		}
		if nextID == uuid.Nil {
			nextID = id
		}
	}

	out := &NextQuestion{
		Done:        nextID == uuid.Nil,
		CurrentStep: doneCount,
		TotalSteps:  len(planIDs),
	}
	if nextID != uuid.Nil {
		q, err := ss.questionRepo.GetByID(ctx, nil, nextID)
		if err != nil {
			return nil, fmt.Errorf("error fetching next question: %w", err)
		}
		out.Question = q
	}
	return out, nil
}

func (ss *sessionService) CompletePhase(ctx context.Context, sessionID uuid.UUID, phase int) (*types.Session, error) {
	session, err := ss.loadOwnedSession(ctx, nil, sessionID)
	if err != nil {
		return nil, err
	}
	if phase < 1 || phase > 3 {
		return nil, fmt.Errorf("phase must be 1, 2 or 3: %w", pkgerrors.ErrInvalidArgument)
	}

	// Re-invocation after a successful transition is a safe no-op.
	if session.Phase > phase || session.Status == types.SessionCompleted {
		return session, nil
	}
	if session.Status != types.SessionInProgress {
		return nil, fmt.Errorf("session is %s: %w", session.Status, pkgerrors.ErrInvalidState)
	}
	if session.Phase < phase {
		return nil, fmt.Errorf("session is in phase %d, cannot complete phase %d: %w", session.Phase, phase, pkgerrors.ErrInvalidState)
	}

	planIDs, err := ss.phaseQuestionIDs(ctx, nil, session)
	if err != nil {
		return nil, err
	}
	answers, err := ss.answerRepo.ListBySession(ctx, nil, session.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading answers: %w", err)
	}
	answeredSet := make(map[uuid.UUID]bool, len(answers))
	for _, a := range answers {
		answeredSet[a.QuestionID] = true
	}
	unanswered := 0
	for _, id := range planIDs {
		if !answeredSet[id] {
			unanswered++
		}
	}
	if unanswered > 0 {
		return nil, fmt.Errorf("%d questions unanswered in phase %d: %w", unanswered, phase, pkgerrors.ErrInvalidArgument)
	}

	updates, err := ss.phaseTransition(ctx, session, phase, answers)
	if err != nil {
		return nil, err
	}

	n, err := ss.sessionRepo.AdvancePhaseIfCurrent(ctx, nil, session.ID, phase, updates)
	if err != nil {
		return nil, fmt.Errorf("error advancing phase: %w", err)
	}
	if n == 0 {
		ss.log.Info("Phase advance lost the race, treating as no-op",
			"session_id", session.ID, "phase", phase)
	}
	return ss.sessionRepo.GetByID(ctx, nil, session.ID)
}

// phaseTransition computes the session updates for completing the given
// phase: scores, the next adaptive question set and reset step counters.
func (ss *sessionService) phaseTransition(ctx context.Context, session *types.Session, phase int, answers []*types.Answer) (map[string]interface{}, error) {
	now := time.Now().UTC()

	switch phase {
	case 1:
		questions, err := ss.questionRepo.ListByPhase(ctx, nil, 1)
		if err != nil {
			return nil, fmt.Errorf("error loading phase 1 questions: %w", err)
		}
		domainScores, err := engine.ScoreByTarget(questions, answers, engine.TargetDomain)
		if err != nil {
			return nil, err
		}

		allQuestions, err := ss.questionRepo.ListAll(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("error loading question bank: %w", err)
		}
		strengths, err := ss.questionRepo.ListStrengths(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("error loading strengths: %w", err)
		}

		phase2 := engine.SelectPhase2Questions(domainScores, allQuestions, strengths, ss.engineCfg.TopDomains)
		if len(phase2) == 0 {
			return nil, fmt.Errorf("no phase 2 questions for top domains: %w", pkgerrors.ErrInvalidState)
		}

		plan, err := session.DecodePlan()
		if err != nil {
			return nil, fmt.Errorf("error decoding plan: %w", err)
		}
		plan.V = types.QuestionPlanSchemaVersion
		plan.Phase2 = questionIDStrings(phase2)

		scoresJSON, err := types.EncodeJSON(engine.ToScoreMap(domainScores))
		if err != nil {
			return nil, fmt.Errorf("error encoding domain scores: %w", err)
		}
		planJSON, err := types.EncodeJSON(plan)
		if err != nil {
			return nil, fmt.Errorf("error encoding plan: %w", err)
		}
		return map[string]interface{}{
			"phase":            2,
			"domain_scores":    scoresJSON,
			"plan":             planJSON,
			"current_step":     0,
			"total_steps":      len(phase2),
			"last_activity_at": now,
		}, nil

	case 2:
		plan, err := session.DecodePlan()
		if err != nil {
			return nil, fmt.Errorf("error decoding plan: %w", err)
		}
		phase2Questions, err := ss.questionRepo.GetByIDs(ctx, nil, parseIDs(plan.Phase2))
		if err != nil {
			return nil, fmt.Errorf("error loading phase 2 questions: %w", err)
		}
		strengthScores, err := engine.ScoreByTarget(phase2Questions, answers, engine.TargetStrength)
		if err != nil {
			return nil, err
		}

		strengths, err := ss.questionRepo.ListStrengths(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("error loading strengths: %w", err)
		}
		candidates := engine.SelectPhase3Candidates(strengthScores, strengths, ss.engineCfg.Shortlist)

		allQuestions, err := ss.questionRepo.ListAll(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("error loading question bank: %w", err)
		}
		phase3 := engine.SelectPhase3Questions(candidates, allQuestions)

		plan.V = types.QuestionPlanSchemaVersion
		plan.Phase3 = questionIDStrings(phase3)

		scoresJSON, err := types.EncodeJSON(engine.ToScoreMap(strengthScores))
		if err != nil {
			return nil, fmt.Errorf("error encoding strength scores: %w", err)
		}
		planJSON, err := types.EncodeJSON(plan)
		if err != nil {
			return nil, fmt.Errorf("error encoding plan: %w", err)
		}
		return map[string]interface{}{
			"phase":            3,
			"strength_scores":  scoresJSON,
			"plan":             planJSON,
			"current_step":     0,
			"total_steps":      len(phase3),
			"last_activity_at": now,
		}, nil

	default:
		// Phase 3 has no further question set; completing it just marks the
		// session ready for results compilation.
		return map[string]interface{}{
			"last_activity_at": now,
		}, nil
	}
}

func (ss *sessionService) AbandonSession(ctx context.Context, sessionID uuid.UUID) error {
	session, err := ss.loadOwnedSession(ctx, nil, sessionID)
	if err != nil {
		return err
	}
	n, err := ss.sessionRepo.MarkAbandonedIfInProgress(ctx, nil, session.ID)
	if err != nil {
		return fmt.Errorf("error abandoning session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session is %s, only in-progress sessions can be abandoned: %w", session.Status, pkgerrors.ErrInvalidState)
	}
	return nil
}

func (ss *sessionService) CheckStaleSessions(ctx context.Context) ([]*types.Session, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().UTC().Add(-staleAfter)
	all, err := ss.sessionRepo.ListStale(ctx, nil, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error listing stale sessions: %w", err)
	}
	var mine []*types.Session
	for _, s := range all {
		if s.UserID == userID {
			mine = append(mine, s)
		}
	}
	return mine, nil
}

func (ss *sessionService) SweepStale(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-staleAfter)
	stale, err := ss.sessionRepo.ListStale(ctx, nil, cutoff)
	if err != nil {
		return err
	}
	for _, s := range stale {
		ss.log.Info("Stale in-progress session",
			"session_id", s.ID,
			"user_id", s.UserID,
			"idle_since", s.LastActivityAt,
		)
	}
	return nil
}

// phaseQuestionIDs resolves the ordered question set of the session's current
// phase: the full authored bank for phase 1, the persisted adaptive plan for
// phases 2 and 3.
func (ss *sessionService) phaseQuestionIDs(ctx context.Context, tx *gorm.DB, session *types.Session) ([]uuid.UUID, error) {
	if session.Phase == 1 {
		questions, err := ss.questionRepo.ListByPhase(ctx, tx, 1)
		if err != nil {
			return nil, fmt.Errorf("error loading phase 1 questions: %w", err)
		}
		ids := make([]uuid.UUID, 0, len(questions))
		for _, q := range questions {
			ids = append(ids, q.ID)
		}
		return ids, nil
	}

	plan, err := session.DecodePlan()
	if err != nil {
		return nil, fmt.Errorf("error decoding plan: %w", err)
	}
	var raw []string
	switch session.Phase {
	case 2:
		raw = plan.Phase2
	case 3:
		raw = plan.Phase3
	default:
		return nil, fmt.Errorf("session phase %d out of range: %w", session.Phase, pkgerrors.ErrInvalidState)
	}
	ids := parseIDs(raw)
	if len(ids) == 0 {
		return nil, fmt.Errorf("no question plan recorded for phase %d: %w", session.Phase, pkgerrors.ErrInvalidState)
	}
	return ids, nil
}

func questionIDStrings(questions []*types.Question) []string {
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.ID.String())
	}
	return out
}

func parseIDs(raw []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out
}
