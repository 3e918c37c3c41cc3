package domain

// IDGenerator produces identifiers for newly created domain objects.
type IDGenerator[T any] func() T
