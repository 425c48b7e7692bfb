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
	pkgerrors "github.com/yungbote/strengthscope-backend/internal/pkg/errors"
	"github.com/yungbote/strengthscope-backend/internal/pkg/logger"
)

type ResultsService interface {
	// CalculateResults compiles the ranked strengths once, marks the session
	// COMPLETED and returns the stored record on every later call.
	CalculateResults(ctx context.Context, sessionID uuid.UUID) (*types.CompiledResults, error)
	GetResults(ctx context.Context, sessionID uuid.UUID) (*types.CompiledResults, error)
	SaveResultsToProfile(ctx context.Context, sessionID uuid.UUID) ([]*types.StrengthProfile, error)
}

type resultsService struct {
	db           *gorm.DB
	log          *logger.Logger
	sessionRepo  repos.SessionRepo
	answerRepo   repos.AnswerRepo
	questionRepo repos.QuestionRepo
	resultRepo   repos.ResultRepo
	profileRepo  repos.StrengthProfileRepo
	engineCfg    engine.Config
}

func NewResultsService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.SessionRepo,
	answerRepo repos.AnswerRepo,
	questionRepo repos.QuestionRepo,
	resultRepo repos.ResultRepo,
	profileRepo repos.StrengthProfileRepo,
	engineCfg engine.Config,
) ResultsService {
	serviceLog := log.With("service", "ResultsService")
	return &resultsService{
		db:           db,
		log:          serviceLog,
		sessionRepo:  sessionRepo,
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		profileRepo:  profileRepo,
		engineCfg:    engineCfg,
	}
}

func (rs *resultsService) loadOwnedSession(ctx context.Context, sessionID uuid.UUID) (*types.Session, error) {
	userID, err := requestUserID(ctx)
	if err != nil {
		return nil, err
	}
	session, err := rs.sessionRepo.GetByID(ctx, nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error fetching session: %w", err)
	}
	if session == nil || session.UserID != userID {
		return nil, fmt.Errorf("Session not found: %w", pkgerrors.ErrNotFound)
	}
	return session, nil
}

func (rs *resultsService) CalculateResults(ctx context.Context, sessionID uuid.UUID) (*types.CompiledResults, error) {
	session, err := rs.loadOwnedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Results are compiled exactly once; every later call returns the record.
	if existing, err := rs.resultRepo.GetBySession(ctx, nil, session.ID); err != nil {
		return nil, fmt.Errorf("error fetching existing results: %w", err)
	} else if existing != nil {
		compiled, err := existing.Decode()
		if err != nil {
			return nil, fmt.Errorf("error decoding stored results: %w", err)
		}
		return &compiled, nil
	}

	if session.Phase < 3 {
		return nil, fmt.Errorf("session is in phase %d, results need phase 3: %w", session.Phase, pkgerrors.ErrInvalidState)
	}
	if session.Status != types.SessionInProgress {
		return nil, fmt.Errorf("session is %s: %w", session.Status, pkgerrors.ErrInvalidState)
	}

	plan, err := session.DecodePlan()
	if err != nil {
		return nil, fmt.Errorf("error decoding plan: %w", err)
	}
	shortlist, err := rs.shortlistFromPlan(ctx, plan)
	if err != nil {
		return nil, err
	}

	questionIDs := append(parseIDs(plan.Phase2), parseIDs(plan.Phase3)...)
	questions, err := rs.questionRepo.GetByIDs(ctx, nil, questionIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading plan questions: %w", err)
	}
	answers, err := rs.answerRepo.ListBySession(ctx, nil, session.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading answers: %w", err)
	}
	strengths, err := rs.questionRepo.ListStrengths(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error loading strengths: %w", err)
	}

	completedAt := time.Now().UTC()
	compiled, err := engine.Compile(engine.CompileInput{
		Shortlist:   shortlist,
		Questions:   questions,
		Answers:     answers,
		Strengths:   strengths,
		CompletedAt: completedAt,
	}, rs.engineCfg)
	if err != nil {
		return nil, err
	}

	raw, err := types.EncodeJSON(compiled)
	if err != nil {
		return nil, fmt.Errorf("error encoding results: %w", err)
	}

	var stored *types.Result
	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := &types.Result{
			ID:        uuid.New(),
			SessionID: session.ID,
			UserID:    session.UserID,
			Results:   raw,
		}
		// A concurrent caller may have compiled first, in which case its
		// record is the one that sticks.
		winner, err := rs.resultRepo.CreateIfAbsent(ctx, tx, row)
		if err != nil {
			return fmt.Errorf("error storing results: %w", err)
		}
		stored = winner

		return rs.sessionRepo.UpdateFields(ctx, tx, session.ID, map[string]interface{}{
			"status":           types.SessionCompleted,
			"completed_at":     completedAt,
			"last_activity_at": completedAt,
		})
	}); err != nil {
		return nil, err
	}

	final, err := stored.Decode()
	if err != nil {
		return nil, fmt.Errorf("error decoding stored results: %w", err)
	}
	return &final, nil
}

func (rs *resultsService) GetResults(ctx context.Context, sessionID uuid.UUID) (*types.CompiledResults, error) {
	session, err := rs.loadOwnedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	row, err := rs.resultRepo.GetBySession(ctx, nil, session.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching results: %w", err)
	}
	if row == nil {
		return nil, fmt.Errorf("results not calculated yet: %w", pkgerrors.ErrNotFound)
	}
	compiled, err := row.Decode()
	if err != nil {
		return nil, fmt.Errorf("error decoding results: %w", err)
	}
	return &compiled, nil
}

func (rs *resultsService) SaveResultsToProfile(ctx context.Context, sessionID uuid.UUID) ([]*types.StrengthProfile, error) {
	session, err := rs.loadOwnedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	compiled, err := rs.GetResults(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(compiled.RankedStrengths) < rs.engineCfg.Ranked {
		return nil, fmt.Errorf("Insufficient strength data for profile: %w", pkgerrors.ErrInvalidArgument)
	}

	rows := make([]*types.StrengthProfile, 0, len(compiled.RankedStrengths))
	for _, rsStrength := range compiled.RankedStrengths {
		rows = append(rows, &types.StrengthProfile{
			ID:              uuid.New(),
			UserID:          session.UserID,
			StrengthID:      rsStrength.StrengthID,
			Rank:            rsStrength.Rank,
			Score:           rsStrength.Score,
			ConfidenceScore: rsStrength.ConfidenceScore,
			SessionID:       session.ID,
		})
	}
	if err := rs.profileRepo.ReplaceForUser(ctx, nil, session.UserID, rows); err != nil {
		return nil, fmt.Errorf("error saving profile: %w", err)
	}
	return rows, nil
}

// shortlistFromPlan recovers the phase-3 candidate set from the persisted
// plan: the strengths the phase-3 questions were selected for.
func (rs *resultsService) shortlistFromPlan(ctx context.Context, plan types.QuestionPlan) ([]uuid.UUID, error) {
	phase3, err := rs.questionRepo.GetByIDs(ctx, nil, parseIDs(plan.Phase3))
	if err != nil {
		return nil, fmt.Errorf("error loading phase 3 questions: %w", err)
	}
	seen := map[uuid.UUID]bool{}
	var shortlist []uuid.UUID
	for _, q := range phase3 {
		if q.StrengthID == nil || seen[*q.StrengthID] {
			continue
		}
		seen[*q.StrengthID] = true
		shortlist = append(shortlist, *q.StrengthID)
	}
	if len(shortlist) == 0 {
		return nil, fmt.Errorf("no phase 3 shortlist recorded: %w", pkgerrors.ErrInvalidState)
	}
	return shortlist, nil
}
