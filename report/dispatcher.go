// Package report fans a ResultModel out to file, notification and console
// sinks, isolating failures per sink.
package report

import (
	"fmt"
	"log/slog"

	"github.com/testpilot-dev/testpilot/types"
)

// Sink is any destination that consumes a ResultModel. Sinks treat the
// model as read-only.
type Sink interface {
	Name() string
	Deliver(model *types.ResultModel) error
}

// FuncSink adapts a function to the Sink interface. Notification
// transports are wired in through it.
type FuncSink struct {
	SinkName string
	Fn       func(model *types.ResultModel) error
}

func (s FuncSink) Name() string { return s.SinkName }

func (s FuncSink) Deliver(model *types.ResultModel) error { return s.Fn(model) }

// Dispatcher invokes sinks sequentially in the order they were added.
// A failing sink is recorded and never prevents later sinks from running.
type Dispatcher struct {
	log   *slog.Logger
	sinks []Sink
}

// NewDispatcher creates a dispatcher with no sinks.
func NewDispatcher(log *slog.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// Add appends a sink. Nil sinks are ignored so callers can add
// conditionally constructed sinks without guarding.
func (d *Dispatcher) Add(sinks ...Sink) {
	for _, s := range sinks {
		if s != nil {
			d.sinks = append(d.sinks, s)
		}
	}
}

// Dispatch delivers the model to every sink and collects one outcome per
// sink. Errors and panics are contained to the sink that raised them.
func (d *Dispatcher) Dispatch(model *types.ResultModel) []types.SinkOutcome {
	outcomes := make([]types.SinkOutcome, 0, len(d.sinks))
	for _, sink := range d.sinks {
		err := d.deliver(sink, model)
		if err != nil {
			d.log.Error("sink delivery failed", "sink", sink.Name(), "error", err)
		} else {
			d.log.Debug("sink delivered", "sink", sink.Name())
		}
		outcomes = append(outcomes, types.SinkOutcome{
			Sink: sink.Name(),
			OK:   err == nil,
			Err:  err,
		})
	}
	return outcomes
}

func (d *Dispatcher) deliver(sink Sink, model *types.ResultModel) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	return sink.Deliver(model)
}
