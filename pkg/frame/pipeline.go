package frame

import (
	"context"
	"log/slog"
)

// Transform is one step of table preparation. Implementations return a new
// frame and leave their input untouched.
type Transform interface {
	Name() string
	Apply(ctx context.Context, f *Frame) (*Frame, error)
}

// TransformFunc adapts a plain function to the Transform interface.
type TransformFunc struct {
	Label string
	Fn    func(ctx context.Context, f *Frame) (*Frame, error)
}

func (t TransformFunc) Name() string { return t.Label }
func (t TransformFunc) Apply(ctx context.Context, f *Frame) (*Frame, error) {
	return t.Fn(ctx, f)
}

// StepError identifies the transform that failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string { return e.Step + ": " + e.Err.Error() }
func (e *StepError) Unwrap() error { return e.Err }

// Pipeline composes a sequence of Transforms.
type Pipeline struct {
	steps  []Transform
	logger *slog.Logger
}

func NewPipeline() *Pipeline { return &Pipeline{logger: slog.Default()} }

// WithLogger sets the logger used to trace each step.
func (p *Pipeline) WithLogger(l *slog.Logger) *Pipeline {
	if l != nil {
		p.logger = l
	}
	return p
}

func (p *Pipeline) Add(t Transform) *Pipeline {
	p.steps = append(p.steps, t)
	return p
}

// Steps returns the step names in execution order.
func (p *Pipeline) Steps() []string {
	out := make([]string, len(p.steps))
	for i, t := range p.steps {
		out[i] = t.Name()
	}
	return out
}

func (p *Pipeline) Run(ctx context.Context, f *Frame) (*Frame, error) {
	cur := f
	for _, t := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := t.Apply(ctx, cur)
		if err != nil {
			return nil, &StepError{Step: t.Name(), Err: err}
		}
		p.logger.DebugContext(ctx, "step done", "step", t.Name(), "rows_in", cur.Rows(), "rows", next.Rows(), "cols", next.Cols())
		cur = next
	}
	return cur, nil
}
