package domain

// Command represents an intention to change system state.
type Command[T any] interface {
	CommandName() string
	Payload() T
}
