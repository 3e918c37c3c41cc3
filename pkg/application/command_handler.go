package application

import (
	"context"

	"github.com/globehunters/flight-bff/pkg/domain"
)

// CommandHandler defines the interface for command handlers.
type CommandHandler[C domain.Command[T], T any] interface {
	Handle(ctx context.Context, command C) error
}

// CommandBus defines the interface for the command bus.
type CommandBus[C domain.Command[T], T any] interface {
	RegisterHandler(commandName string, handler CommandHandler[C, T])
	Dispatch(ctx context.Context, command C) error
}
