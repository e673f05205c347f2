package scaffold

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// State is the furthest point a pipeline run reached.
type State int

// Pipeline states, in order.
const (
	StateInit State = iota
	StatePathChecked
	StateCloned
	StateSanitized
	StateDependenciesInstalled
	StateSetupComplete
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StatePathChecked:
		return "path-checked"
	case StateCloned:
		return "cloned"
	case StateSanitized:
		return "sanitized"
	case StateDependenciesInstalled:
		return "dependencies-installed"
	case StateSetupComplete:
		return "setup-complete"
	default:
		return "unknown"
	}
}

// Step names.
const (
	StepEnsureEmpty = "ensure-empty"
	StepClone       = "clone"
	StepSanitize    = "sanitize"
	StepInstall     = "install"
	StepSetup       = "setup"
)

// Step is one unit of the pipeline. Title is for display only.
type Step struct {
	Name  string
	Title string
	Kind  Kind  // failure kind reported when Run fails
	Done  State // state reached when Run succeeds
	Run   func(ctx context.Context) error
}

// Reporter renders progress. It has no influence on control flow.
type Reporter interface {
	StepStarted(step Step)
	StepSucceeded(step Step)
	StepFailed(step Step, err error)
}

type nopReporter struct{}

func (nopReporter) StepStarted(Step)       {}
func (nopReporter) StepSucceeded(Step)     {}
func (nopReporter) StepFailed(Step, error) {}

// runSteps executes steps in order and stops at the first failure. The
// returned error is always an *Error tagged with the failing step.
func runSteps(ctx context.Context, steps []Step, reporter Reporter, logger *zap.Logger) (*Result, error) {
	result := &Result{State: StateInit}

	for _, step := range steps {
		reporter.StepStarted(step)
		logger.Debug("step started", zap.String("step", step.Name))
		start := time.Now()

		if err := step.Run(ctx); err != nil {
			err = tagError(err, step)
			result.FailedStep = step.Name
			logger.Error("step failed",
				zap.String("step", step.Name),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
			reporter.StepFailed(step, err)
			return result, err
		}

		result.State = step.Done
		result.Completed = append(result.Completed, step.Name)
		logger.Info("step finished",
			zap.String("step", step.Name),
			zap.Duration("duration", time.Since(start)),
		)
		reporter.StepSucceeded(step)
	}

	return result, nil
}

// tagError ensures err is an *Error carrying the step's name and kind.
func tagError(err error, step Step) error {
	var se *Error
	if errors.As(err, &se) {
		if se.Step == "" {
			se.Step = step.Name
		}
		if se.Kind == "" {
			se.Kind = step.Kind
		}
		return se
	}
	return &Error{Kind: step.Kind, Step: step.Name, Err: err}
}
