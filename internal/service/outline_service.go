package service

import (
	"context"
	"fmt"

	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/maheshrc27/marketing-planner/internal/repository"
	"go.uber.org/zap"
)

// WeekRequest advances a single week of an outline the client is holding.
type WeekRequest struct {
	Aesthetic string
	Themes    []models.Theme
	States    []planner.WeekState
	Week      int
	Feedback  string
}

type OutlineService interface {
	Themes(ctx context.Context, caller planner.Caller, strategyID, aesthetic string, count int) ([]models.Theme, error)
	Generate(ctx context.Context, caller planner.Caller, strategyID, aesthetic string, themes []models.Theme) ([]planner.WeekState, error)
	Week(ctx context.Context, caller planner.Caller, strategyID string, req WeekRequest) ([]planner.WeekState, error)
	Save(ctx context.Context, userID, strategyID string, weeks []models.Week) (*models.ContentOutline, error)
	Current(ctx context.Context, userID, strategyID string) (*models.ContentOutline, error)
	Remove(ctx context.Context, userID, id string) error
}

type outlineService struct {
	p  *planner.Planner
	sr repository.StrategyRepository
	or repository.ContentOutlineRepository
	al repository.AuditLogRepository
}

func NewOutlineService(
	p *planner.Planner,
	sr repository.StrategyRepository,
	or repository.ContentOutlineRepository,
	al repository.AuditLogRepository) OutlineService {
	return &outlineService{
		p:  p,
		sr: sr,
		or: or,
		al: al,
	}
}

func (s *outlineService) Themes(ctx context.Context, caller planner.Caller, strategyID, aesthetic string, count int) ([]models.Theme, error) {
	st, err := ownedStrategy(ctx, s.sr, caller.UserID, strategyID)
	if err != nil {
		return nil, err
	}
	caller.ProjectID = st.ID

	return s.p.GenerateThemes(ctx, caller, planner.ThemeInput{
		Strategy:  planner.MatrixOf(st),
		Aesthetic: aesthetic,
		Count:     count,
	})
}

// Generate runs every week of the outline in order. Nothing is stored; the
// client saves the outline explicitly once it is happy with it.
func (s *outlineService) Generate(ctx context.Context, caller planner.Caller, strategyID, aesthetic string, themes []models.Theme) ([]planner.WeekState, error) {
	st, err := ownedStrategy(ctx, s.sr, caller.UserID, strategyID)
	if err != nil {
		return nil, err
	}
	if len(themes) == 0 {
		return nil, fmt.Errorf("%w: themes are required", ErrInvalidInput)
	}
	caller.ProjectID = st.ID

	run := s.p.NewOutlineRun(caller, planner.OutlineInput{
		Strategy:  planner.MatrixOf(st),
		Aesthetic: aesthetic,
		Themes:    themes,
	}, planner.OnProgress(func(ws planner.WeekState) {
		zap.L().Debug("outline week progress",
			zap.String("strategy_id", strategyID),
			zap.Int("week", ws.Theme.Week),
			zap.String("status", string(ws.Status)))
	}))

	if err := run.Run(ctx); err != nil {
		return run.States(), err
	}
	return run.States(), nil
}

func (s *outlineService) Week(ctx context.Context, caller planner.Caller, strategyID string, req WeekRequest) ([]planner.WeekState, error) {
	st, err := ownedStrategy(ctx, s.sr, caller.UserID, strategyID)
	if err != nil {
		return nil, err
	}
	caller.ProjectID = st.ID

	in := planner.OutlineInput{
		Strategy:  planner.MatrixOf(st),
		Aesthetic: req.Aesthetic,
		Themes:    req.Themes,
	}

	states := req.States
	if len(states) == 0 {
		states = s.p.NewOutlineRun(caller, in).States()
	}

	run, err := s.p.RestoreOutlineRun(caller, in, states)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := run.Advance(ctx, req.Week, req.Feedback); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return run.States(), nil
}

func (s *outlineService) Save(ctx context.Context, userID, strategyID string, weeks []models.Week) (*models.ContentOutline, error) {
	if _, err := ownedStrategy(ctx, s.sr, userID, strategyID); err != nil {
		return nil, err
	}
	if len(weeks) == 0 {
		return nil, fmt.Errorf("%w: outline has no weeks", ErrInvalidInput)
	}
	if err := models.ValidateWeeks(weeks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	id, err := s.or.Create(ctx, &models.ContentOutline{
		UserID:     userID,
		StrategyID: strategyID,
		Outline:    weeks,
	})
	if err != nil {
		return nil, fmt.Errorf("error saving outline: %w", err)
	}
	return s.or.GetByID(ctx, id)
}

// Current is the most recently created outline of the strategy.
func (s *outlineService) Current(ctx context.Context, userID, strategyID string) (*models.ContentOutline, error) {
	if _, err := ownedStrategy(ctx, s.sr, userID, strategyID); err != nil {
		return nil, err
	}
	o, err := s.or.GetLatestByStrategyID(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("outline for strategy %s: %w", strategyID, ErrNotFound)
	}
	return o, nil
}

func (s *outlineService) Remove(ctx context.Context, userID, id string) error {
	o, err := s.or.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return fmt.Errorf("outline %s: %w", id, ErrNotFound)
	}
	if o.UserID != userID {
		return ErrForbidden
	}

	if err := s.or.Remove(ctx, id); err != nil {
		return fmt.Errorf("error removing outline: %w", err)
	}

	recordAudit(ctx, s.al, userID, models.AuditDeleteOutline, map[string]any{
		"outline_id":  id,
		"strategy_id": o.StrategyID,
	})
	return nil
}
