// Package binding re-evaluates outputs when the inputs they depend on change.
//
// Outputs are registered once, each with the named inputs it reads and a
// callback that computes it from the current input values. Dispatch reruns
// every output affected by a change, fully and independently: callbacks share
// no state, so they run concurrently and one failing never affects another.
package binding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"
)

// Values maps input names to their current values.
type Values map[string]any

// Callback computes an output from the current input values.
type Callback func(ctx context.Context, in Values) (any, error)

// FallbackFunc produces the value shown for an output whose callback failed.
type FallbackFunc func(output string, err error) any

// Update is the result of recomputing one output.
type Update struct {
	Output string
	Value  any
	// Err is a *RenderError when the callback failed; Value then holds the
	// fallback, if one is configured.
	Err error
}

type registration struct {
	output   string
	inputs   []string
	callback Callback
}

// Dispatcher routes input changes to the outputs that depend on them.
// Register everything before the first Dispatch; registrations are not
// guarded against concurrent use.
type Dispatcher struct {
	registrations []registration
	fallback      FallbackFunc
	logger        *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used to report failed callbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithFallback sets the value substituted for failed outputs.
func WithFallback(fn FallbackFunc) Option {
	return func(d *Dispatcher) {
		d.fallback = fn
	}
}

// New creates an empty Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register binds output to a callback that reads inputs.
func (d *Dispatcher) Register(output string, inputs []string, cb Callback) error {
	switch {
	case output == "":
		return errors.New("binding: output name is required")
	case len(inputs) == 0:
		return fmt.Errorf("binding: output %q has no inputs", output)
	case cb == nil:
		return fmt.Errorf("binding: output %q has no callback", output)
	}
	for _, r := range d.registrations {
		if r.output == output {
			return fmt.Errorf("binding: output %q is already registered", output)
		}
	}

	d.registrations = append(d.registrations, registration{
		output:   output,
		inputs:   slices.Clone(inputs),
		callback: cb,
	})
	return nil
}

// Outputs lists the registered outputs in registration order.
func (d *Dispatcher) Outputs() []string {
	out := make([]string, 0, len(d.registrations))
	for _, r := range d.registrations {
		out = append(out, r.output)
	}
	return out
}

// Inputs lists every input name some output depends on, without duplicates.
func (d *Dispatcher) Inputs() []string {
	var out []string
	for _, r := range d.registrations {
		for _, in := range r.inputs {
			if !slices.Contains(out, in) {
				out = append(out, in)
			}
		}
	}
	return out
}

// Affected lists the outputs depending on any of changed, in registration
// order. With no changed inputs every output is affected.
func (d *Dispatcher) Affected(changed ...string) []string {
	var out []string
	for _, r := range d.selected(changed) {
		out = append(out, r.output)
	}
	return out
}

// Dispatch recomputes every output affected by changed from the values in
// in and returns one Update per output, in registration order. With no
// changed inputs every output is recomputed.
func (d *Dispatcher) Dispatch(ctx context.Context, in Values, changed ...string) []Update {
	selected := d.selected(changed)
	updates := make([]Update, len(selected))

	var g errgroup.Group
	for i, r := range selected {
		g.Go(func() error {
			updates[i] = d.run(ctx, r, in)
			return nil
		})
	}
	_ = g.Wait()

	return updates
}

func (d *Dispatcher) selected(changed []string) []registration {
	if len(changed) == 0 {
		return d.registrations
	}

	var out []registration
	for _, r := range d.registrations {
		for _, c := range changed {
			if slices.Contains(r.inputs, c) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// run invokes one callback, turning errors and panics into a RenderError.
func (d *Dispatcher) run(ctx context.Context, r registration, in Values) (u Update) {
	u.Output = r.output

	defer func() {
		if rec := recover(); rec != nil {
			u = d.fail(r.output, &RenderError{Output: r.output, Err: fmt.Errorf("panic: %v", rec), Panicked: true})
		}
	}()

	value, err := r.callback(ctx, in)
	if err != nil {
		return d.fail(r.output, &RenderError{Output: r.output, Err: err})
	}
	u.Value = value
	return u
}

func (d *Dispatcher) fail(output string, err *RenderError) Update {
	d.logger.Error("output callback failed",
		"output", output,
		"panicked", err.Panicked,
		"error", err.Err,
	)

	u := Update{Output: output, Err: err}
	if d.fallback != nil {
		u.Value = d.fallback(output, err)
	}
	return u
}
