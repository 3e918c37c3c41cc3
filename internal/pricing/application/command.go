package application

import (
	pricingDomain "github.com/globehunters/flight-bff/internal/pricing/domain"
	"github.com/globehunters/flight-bff/pkg/domain"
)

// QuoteProtectionPlanData carries the request to record a protection-plan
// quote while an add-on offer is assembled. QuoteID is assigned at the
// boundary so the caller holds a reference to the quote it created.
type QuoteProtectionPlanData struct {
	QuoteID  string                 `json:"quoteId"`
	BaseFare float64                `json:"baseFare"`
	Region   pricingDomain.Region   `json:"region"`
	Tier     pricingDomain.PlanTier `json:"tier"`
}

type quoteProtectionPlanCommand struct {
	data QuoteProtectionPlanData
}

func (c quoteProtectionPlanCommand) CommandName() string {
	return "QuoteProtectionPlan"
}

func (c quoteProtectionPlanCommand) Payload() QuoteProtectionPlanData {
	return c.data
}

// NewQuoteProtectionPlanCommand creates a new quote command.
func NewQuoteProtectionPlanCommand(data QuoteProtectionPlanData) domain.Command[QuoteProtectionPlanData] {
	return quoteProtectionPlanCommand{data: data}
}
