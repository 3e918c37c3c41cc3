package infrastructure

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/globehunters/flight-bff/pkg/application"
	"github.com/globehunters/flight-bff/pkg/domain"
)

type noopLogger struct{}

func (noopLogger) Info(ctx context.Context, msg string, fields map[string]interface{})  {}
func (noopLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {}
func (noopLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {}
func (noopLogger) Trace(ctx context.Context, msg string, fields map[string]interface{}) {}

type testCommand struct {
	name    string
	payload string
}

func (c testCommand) CommandName() string { return c.name }
func (c testCommand) Payload() string     { return c.payload }

type testQuery struct {
	name    string
	payload string
}

func (q testQuery) QueryName() string { return q.name }
func (q testQuery) Payload() string   { return q.payload }

type testEvent struct {
	name    string
	payload string
}

func (e testEvent) EventName() string { return e.name }
func (e testEvent) Payload() string   { return e.payload }

type recordingCommandHandler struct {
	got string
	err error
}

func (h *recordingCommandHandler) Handle(ctx context.Context, command domain.Command[string]) error {
	h.got = command.Payload()
	return h.err
}

type echoQueryHandler struct{}

func (echoQueryHandler) Handle(ctx context.Context, query domain.Query[string]) (string, error) {
	return "echo:" + query.Payload(), nil
}

type countingEventHandler struct {
	calls atomic.Int64
	err   error
}

func (h *countingEventHandler) Handle(ctx context.Context, event domain.Event[string]) error {
	h.calls.Add(1)
	return h.err
}

func TestSimpleCommandBusDispatch(t *testing.T) {
	bus := NewSimpleCommandBus[domain.Command[string], string]()
	handler := &recordingCommandHandler{}
	bus.RegisterHandler("DoThing", handler)

	if err := bus.Dispatch(context.Background(), testCommand{name: "DoThing", payload: "payload"}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if handler.got != "payload" {
		t.Errorf("handler received %q, want payload", handler.got)
	}

	if err := bus.Dispatch(context.Background(), testCommand{name: "Unknown"}); err == nil {
		t.Error("Dispatch() of unregistered command did not fail")
	}
}

func TestSimpleCommandBusPropagatesHandlerError(t *testing.T) {
	bus := NewSimpleCommandBus[domain.Command[string], string]()
	want := errors.New("handler failed")
	bus.RegisterHandler("DoThing", &recordingCommandHandler{err: want})

	if err := bus.Dispatch(context.Background(), testCommand{name: "DoThing"}); !errors.Is(err, want) {
		t.Errorf("Dispatch() error = %v, want %v", err, want)
	}
}

func TestSimpleQueryBusDispatch(t *testing.T) {
	bus := NewSimpleQueryBus[domain.Query[string], string, string]()
	bus.RegisterHandler("Ask", echoQueryHandler{})

	result, err := bus.Dispatch(context.Background(), testQuery{name: "Ask", payload: "ping"})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if result != "echo:ping" {
		t.Errorf("Dispatch() = %q, want echo:ping", result)
	}

	if _, err := bus.Dispatch(context.Background(), testQuery{name: "Unknown"}); err == nil {
		t.Error("Dispatch() of unregistered query did not fail")
	}
}

func TestSimpleQueryBusHonorsContext(t *testing.T) {
	bus := NewSimpleQueryBus[domain.Query[string], string, string]()
	bus.RegisterHandler("Slow", slowQueryHandler{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := bus.Dispatch(ctx, testQuery{name: "Slow"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Dispatch() error = %v, want context.DeadlineExceeded", err)
	}
}

type slowQueryHandler struct{}

func (slowQueryHandler) Handle(ctx context.Context, query domain.Query[string]) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(time.Second):
		return "late", nil
	}
}

func TestSimpleEventBusFansOut(t *testing.T) {
	bus := NewSimpleEventBus[domain.Event[string], string](noopLogger{})
	first := &countingEventHandler{}
	second := &countingEventHandler{}
	bus.RegisterHandler("Happened", first)
	bus.RegisterHandler("Happened", second)

	if err := bus.Publish(context.Background(), testEvent{name: "Happened", payload: "x"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if first.calls.Load() != 1 || second.calls.Load() != 1 {
		t.Errorf("handler calls = %d, %d, want 1, 1", first.calls.Load(), second.calls.Load())
	}
}

func TestSimpleEventBusWithoutHandlersIsSilent(t *testing.T) {
	bus := NewSimpleEventBus[domain.Event[string], string](noopLogger{})

	if err := bus.Publish(context.Background(), testEvent{name: "Ignored"}); err != nil {
		t.Errorf("Publish() error = %v, want nil", err)
	}
}

func TestSimpleEventBusAggregatesHandlerErrors(t *testing.T) {
	bus := NewSimpleEventBus[domain.Event[string], string](noopLogger{})
	bus.RegisterHandler("Happened", &countingEventHandler{})
	bus.RegisterHandler("Happened", &countingEventHandler{err: errors.New("boom")})

	if err := bus.Publish(context.Background(), testEvent{name: "Happened"}); err == nil {
		t.Error("Publish() error = nil, want aggregated handler error")
	}
}

var _ application.AppLogger = noopLogger{}
