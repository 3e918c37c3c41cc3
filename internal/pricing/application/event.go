package application

import (
	"github.com/globehunters/flight-bff/pkg/domain"
)

// protectionPlanQuotedEvent signals that a plan quote was produced for an
// offer shown to the customer.
type protectionPlanQuotedEvent struct {
	data string
}

func (e protectionPlanQuotedEvent) EventName() string {
	return "ProtectionPlanQuoted"
}

func (e protectionPlanQuotedEvent) Payload() string {
	return e.data
}

// NewProtectionPlanQuotedEvent creates a new plan quoted event.
func NewProtectionPlanQuotedEvent(data string) domain.Event[string] {
	return protectionPlanQuotedEvent{data: data}
}
