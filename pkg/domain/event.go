package domain

// Event represents a fact that already happened in the system.
type Event[T any] interface {
	EventName() string
	Payload() T
}
