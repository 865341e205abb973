package planner

import (
	"fmt"
	"strings"
)

// GenerationError is a step that failed with no safe fallback.
type GenerationError struct {
	Step string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Step, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// StrategyFailure carries the error of every strategy attempt, in order.
type StrategyFailure struct {
	Attempts []string
}

func (e *StrategyFailure) Error() string {
	return fmt.Sprintf("strategy generation failed after %d attempts: %s",
		len(e.Attempts), strings.Join(e.Attempts, "; "))
}

// StepError is a retried step that exhausted its attempts.
type StepError struct {
	Step     string
	Attempts int
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Step, e.Attempts, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
