package planner

import (
	"context"
	"fmt"
	"sync"

	"github.com/maheshrc27/marketing-planner/internal/models"
)

type WeekStatus string

const (
	WeekPending WeekStatus = "pending"
	WeekLoading WeekStatus = "loading"
	WeekReady   WeekStatus = "ready"
	WeekErrored WeekStatus = "errored"
)

var weekTransitions = map[WeekStatus][]WeekStatus{
	WeekPending: {WeekLoading},
	WeekLoading: {WeekReady, WeekErrored},
	WeekErrored: {WeekLoading},
	WeekReady:   {WeekLoading},
}

func canTransition(from, to WeekStatus) bool {
	for _, s := range weekTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// WeekState is what a client sees for one week of an outline run.
type WeekState struct {
	Theme  models.Theme `json:"theme"`
	Status WeekStatus   `json:"status"`
	Week   models.Week  `json:"week"`
	Error  string       `json:"error,omitempty"`
}

type OutlineInput struct {
	Strategy  Matrix         `json:"strategy"`
	Aesthetic string         `json:"aesthetic,omitempty"`
	Themes    []models.Theme `json:"themes"`
}

// OutlineRun generates the weeks of one outline strictly in theme order.
// A failed week never stops the run and can be retried on its own.
type OutlineRun struct {
	planner    *Planner
	caller     Caller
	in         OutlineInput
	onProgress func(WeekState)

	mu     sync.Mutex
	states []WeekState
}

type RunOption func(*OutlineRun)

// OnProgress is called after every state change.
func OnProgress(fn func(WeekState)) RunOption {
	return func(r *OutlineRun) { r.onProgress = fn }
}

func (p *Planner) NewOutlineRun(caller Caller, in OutlineInput, opts ...RunOption) *OutlineRun {
	r := &OutlineRun{planner: p, caller: caller, in: in}
	for _, t := range in.Themes {
		r.states = append(r.states, WeekState{Theme: t, Status: WeekPending, Week: emptyWeek(t)})
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RestoreOutlineRun rebuilds a run from states a client kept, so a single
// week can be retried or regenerated without replaying the others.
func (p *Planner) RestoreOutlineRun(caller Caller, in OutlineInput, states []WeekState, opts ...RunOption) (*OutlineRun, error) {
	if len(states) != len(in.Themes) {
		return nil, fmt.Errorf("got %d week states for %d themes", len(states), len(in.Themes))
	}
	r := &OutlineRun{planner: p, caller: caller, in: in}
	for i, s := range states {
		if s.Status == WeekLoading {
			// a week cannot still be loading once its request has ended
			s.Status = WeekErrored
			if s.Error == "" {
				s.Error = "generation interrupted"
			}
		}
		s.Theme = in.Themes[i]
		r.states = append(r.states, s)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run generates every pending week in order.
func (r *OutlineRun) Run(ctx context.Context) error {
	for i := range r.in.Themes {
		if r.State(i).Status != WeekPending {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		r.generate(ctx, i, "")
	}
	return nil
}

// RetryWeek regenerates a week that errored.
func (r *OutlineRun) RetryWeek(ctx context.Context, week int) error {
	i, err := r.index(week)
	if err != nil {
		return err
	}
	if s := r.State(i).Status; s != WeekErrored {
		return fmt.Errorf("week %d is %s, only errored weeks can be retried", week, s)
	}
	r.generate(ctx, i, "")
	return nil
}

// RegenerateWeek rewrites a ready week using the user's feedback.
func (r *OutlineRun) RegenerateWeek(ctx context.Context, week int, feedback string) error {
	i, err := r.index(week)
	if err != nil {
		return err
	}
	if s := r.State(i).Status; s != WeekReady {
		return fmt.Errorf("week %d is %s, only ready weeks can be regenerated", week, s)
	}
	r.generate(ctx, i, feedback)
	return nil
}

// Advance moves one week forward from whatever state it is in: pending weeks
// are generated, errored weeks retried and ready weeks regenerated with
// feedback.
func (r *OutlineRun) Advance(ctx context.Context, week int, feedback string) error {
	i, err := r.index(week)
	if err != nil {
		return err
	}
	switch r.State(i).Status {
	case WeekPending:
		r.generate(ctx, i, "")
		return nil
	case WeekErrored:
		return r.RetryWeek(ctx, week)
	default:
		return r.RegenerateWeek(ctx, week, feedback)
	}
}

func (r *OutlineRun) generate(ctx context.Context, i int, feedback string) {
	theme := r.in.Themes[i]
	r.set(i, func(s *WeekState) bool {
		if !canTransition(s.Status, WeekLoading) {
			return false
		}
		s.Status = WeekLoading
		return true
	})

	week, err := r.planner.GenerateWeek(ctx, r.caller, WeekInput{
		Strategy:  r.in.Strategy,
		Theme:     theme,
		AllThemes: r.in.Themes,
		Feedback:  feedback,
		Aesthetic: r.in.Aesthetic,
	})

	r.set(i, func(s *WeekState) bool {
		if err != nil {
			s.Status = WeekErrored
			s.Week = emptyWeek(theme)
			s.Error = err.Error()
			return true
		}
		s.Status = WeekReady
		s.Week = *week
		s.Error = ""
		return true
	})
}

func (r *OutlineRun) set(i int, mutate func(*WeekState) bool) {
	r.mu.Lock()
	changed := mutate(&r.states[i])
	snapshot := r.states[i]
	r.mu.Unlock()

	if changed && r.onProgress != nil {
		r.onProgress(snapshot)
	}
}

func (r *OutlineRun) index(week int) (int, error) {
	for i, t := range r.in.Themes {
		if t.Week == week {
			return i, nil
		}
	}
	return -1, fmt.Errorf("week %d is not part of this outline", week)
}

func (r *OutlineRun) State(i int) WeekState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[i]
}

func (r *OutlineRun) States() []WeekState {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]WeekState, len(r.states))
	copy(out, r.states)
	return out
}

// Outline returns the weeks that are ready, in theme order.
func (r *OutlineRun) Outline() []models.Week {
	var weeks []models.Week
	for _, s := range r.States() {
		if s.Status == WeekReady {
			weeks = append(weeks, s.Week)
		}
	}
	return weeks
}

// Done reports whether every week is ready.
func (r *OutlineRun) Done() bool {
	for _, s := range r.States() {
		if s.Status != WeekReady {
			return false
		}
	}
	return true
}

func emptyWeek(t models.Theme) models.Week {
	return models.Week{
		Week:          t.Week,
		Theme:         t.Theme,
		Objective:     t.Objective,
		TargetSegment: t.TargetSegment,
		Phase:         t.Phase,
		Posts:         []models.PostPlan{},
	}
}
