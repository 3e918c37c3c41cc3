package application

import (
	"github.com/globehunters/flight-bff/pkg/domain"
)

// airportDirectoryRefreshedEvent signals that the directory snapshot was
// re-read from its source.
type airportDirectoryRefreshedEvent struct {
	data string
}

func (e airportDirectoryRefreshedEvent) EventName() string {
	return "AirportDirectoryRefreshed"
}

func (e airportDirectoryRefreshedEvent) Payload() string {
	return e.data
}

// NewAirportDirectoryRefreshedEvent creates a new directory refresh event.
func NewAirportDirectoryRefreshedEvent(data string) domain.Event[string] {
	return airportDirectoryRefreshedEvent{data: data}
}
