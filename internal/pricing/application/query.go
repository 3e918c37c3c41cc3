package application

import (
	pricingDomain "github.com/globehunters/flight-bff/internal/pricing/domain"
	"github.com/globehunters/flight-bff/pkg/domain"
)

// ComputePlanPriceData carries one protection-plan price computation.
type ComputePlanPriceData struct {
	BaseFare float64                `json:"baseFare"`
	Region   pricingDomain.Region   `json:"region"`
	Tier     pricingDomain.PlanTier `json:"tier"`
}

type computePlanPriceQuery struct {
	data ComputePlanPriceData
}

func (q computePlanPriceQuery) QueryName() string {
	return "ComputePlanPrice"
}

func (q computePlanPriceQuery) Payload() ComputePlanPriceData {
	return q.data
}

// NewComputePlanPriceQuery creates a new plan price query.
func NewComputePlanPriceQuery(data ComputePlanPriceData) domain.Query[ComputePlanPriceData] {
	return computePlanPriceQuery{data: data}
}
