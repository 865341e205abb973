package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/maheshrc27/marketing-planner/internal/planner"
	"github.com/maheshrc27/marketing-planner/internal/repository"
	"go.uber.org/zap"
)

type StrategyService interface {
	Generate(ctx context.Context, caller planner.Caller, in planner.StrategyInput) (*planner.StrategyResult, error)
	Suggest(ctx context.Context, caller planner.Caller, description string) planner.FocusSuggestions
	Refine(ctx context.Context, caller planner.Caller, in planner.RefineInput) (*planner.RefineReply, error)
	Create(ctx context.Context, userID string, s *models.Strategy) (*models.Strategy, error)
	List(ctx context.Context, userID string) ([]*models.Strategy, error)
	Get(ctx context.Context, userID, id string) (*models.Strategy, error)
	Update(ctx context.Context, userID string, s *models.Strategy) (*models.Strategy, error)
	Remove(ctx context.Context, userID, id string) error
}

type strategyService struct {
	p  *planner.Planner
	sr repository.StrategyRepository
	or repository.ContentOutlineRepository
	cr repository.CalendarRepository
	pr repository.CalendarPostRepository
	al repository.AuditLogRepository
}

func NewStrategyService(
	p *planner.Planner,
	sr repository.StrategyRepository,
	or repository.ContentOutlineRepository,
	cr repository.CalendarRepository,
	pr repository.CalendarPostRepository,
	al repository.AuditLogRepository) StrategyService {
	return &strategyService{
		p:  p,
		sr: sr,
		or: or,
		cr: cr,
		pr: pr,
		al: al,
	}
}

func (s *strategyService) Generate(ctx context.Context, caller planner.Caller, in planner.StrategyInput) (*planner.StrategyResult, error) {
	return s.p.GenerateStrategy(ctx, caller, in)
}

func (s *strategyService) Suggest(ctx context.Context, caller planner.Caller, description string) planner.FocusSuggestions {
	return s.p.SuggestFocusAreas(ctx, caller, description)
}

func (s *strategyService) Refine(ctx context.Context, caller planner.Caller, in planner.RefineInput) (*planner.RefineReply, error) {
	return s.p.RefineMatrix(ctx, caller, in)
}

func (s *strategyService) Create(ctx context.Context, userID string, st *models.Strategy) (*models.Strategy, error) {
	if err := validateStrategy(st); err != nil {
		return nil, err
	}

	st.ID = ""
	st.UserID = userID
	id, err := s.sr.Create(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("error creating strategy: %w", err)
	}
	return s.sr.GetByID(ctx, id)
}

func (s *strategyService) List(ctx context.Context, userID string) ([]*models.Strategy, error) {
	return s.sr.ListByUserID(ctx, userID)
}

func (s *strategyService) Get(ctx context.Context, userID, id string) (*models.Strategy, error) {
	return ownedStrategy(ctx, s.sr, userID, id)
}

// Update replaces every field of the strategy. There is no partial update.
func (s *strategyService) Update(ctx context.Context, userID string, st *models.Strategy) (*models.Strategy, error) {
	current, err := ownedStrategy(ctx, s.sr, userID, st.ID)
	if err != nil {
		return nil, err
	}
	if err := validateStrategy(st); err != nil {
		return nil, err
	}

	st.UserID = current.UserID
	if err := s.sr.Update(ctx, st); err != nil {
		return nil, fmt.Errorf("error updating strategy: %w", err)
	}
	return s.sr.GetByID(ctx, st.ID)
}

// Remove deletes the strategy's calendars (posts first), then its outlines,
// then the strategy row. The deletes are independent statements: a failing
// step is reported but the remaining steps still run, and nothing already
// deleted is restored.
func (s *strategyService) Remove(ctx context.Context, userID, id string) error {
	if _, err := ownedStrategy(ctx, s.sr, userID, id); err != nil {
		return err
	}

	var errs []error
	fail := func(step string, err error) {
		zap.L().Error("strategy cascade step failed",
			zap.String("strategy_id", id),
			zap.String("step", step),
			zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", step, err))
	}

	calendars, err := s.cr.ListByStrategyID(ctx, id)
	if err != nil {
		fail("list calendars", err)
	}
	for _, c := range calendars {
		if err := s.pr.RemoveByCalendarID(ctx, c.ID); err != nil {
			fail("delete posts of calendar "+c.ID, err)
			continue
		}
		if err := s.cr.Remove(ctx, c.ID); err != nil {
			fail("delete calendar "+c.ID, err)
		}
	}

	outlines, err := s.or.ListByStrategyID(ctx, id)
	if err != nil {
		fail("list outlines", err)
	}
	for _, o := range outlines {
		if err := s.or.Remove(ctx, o.ID); err != nil {
			fail("delete outline "+o.ID, err)
		}
	}

	if err := s.sr.Remove(ctx, id); err != nil {
		fail("delete strategy", err)
	}

	recordAudit(ctx, s.al, userID, models.AuditDeleteStrategy, map[string]any{
		"strategy_id": id,
		"calendars":   len(calendars),
		"outlines":    len(outlines),
		"complete":    len(errs) == 0,
	})

	return errors.Join(errs...)
}

func ownedStrategy(ctx context.Context, sr repository.StrategyRepository, userID, id string) (*models.Strategy, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: strategy id is required", ErrInvalidInput)
	}
	st, err := sr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("strategy %s: %w", id, ErrNotFound)
	}
	if st.UserID != userID {
		return nil, ErrForbidden
	}
	return st, nil
}

func validateStrategy(st *models.Strategy) error {
	if st == nil {
		return fmt.Errorf("%w: strategy is required", ErrInvalidInput)
	}
	if strings.TrimSpace(st.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := planner.ValidateMatrix(planner.MatrixOf(st)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
