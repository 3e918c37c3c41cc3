package domain

import (
	"fmt"
	"math"

	pkgDomain "github.com/globehunters/flight-bff/pkg/domain"
)

// Region selects which rate table applies to a protection plan.
type Region string

const (
	RegionGlobal Region = "global"
	RegionUK     Region = "uk"
)

// PlanTier is the protection plan level offered alongside a fare.
type PlanTier string

const (
	TierBasic   PlanTier = "basic"
	TierPremium PlanTier = "premium"
	TierAll     PlanTier = "all"
)

// RateSet holds the percentage rate per tier.
type RateSet struct {
	Basic   float64 `json:"basic"`
	Premium float64 `json:"premium"`
	All     float64 `json:"all"`
}

func (r RateSet) ForTier(tier PlanTier) (float64, error) {
	switch tier {
	case TierBasic:
		return r.Basic, nil
	case TierPremium:
		return r.Premium, nil
	case TierAll:
		return r.All, nil
	default:
		return 0, fmt.Errorf("%w: unknown plan tier %q", pkgDomain.ErrInvalidArgument, tier)
	}
}

// Slab is one band of the UK rate table. The slab applies to base fares up to
// and including Max.
type Slab struct {
	Max   float64 `json:"max"`
	Rates RateSet `json:"rates"`
}

// RateTable is the full pricing configuration. It is immutable once built and
// injected into the engine, so regions can gain tables without touching the
// engine's control flow.
type RateTable struct {
	Global  RateSet `json:"global"`
	UKSlabs []Slab  `json:"ukSlabs"`
}

// DefaultRateTable returns the production protection-plan rates.
func DefaultRateTable() RateTable {
	return RateTable{
		Global: RateSet{Basic: 0.08, Premium: 0.10, All: 0.12},
		UKSlabs: []Slab{
			{Max: 650, Rates: RateSet{Basic: 0.07, Premium: 0.12, All: 0.22}},
			{Max: 999, Rates: RateSet{Basic: 0.06, Premium: 0.11, All: 0.21}},
			{Max: 1499, Rates: RateSet{Basic: 0.05, Premium: 0.09, All: 0.20}},
			{Max: math.Inf(1), Rates: RateSet{Basic: 0.04, Premium: 0.08, All: 0.18}},
		},
	}
}

// PlanPrice is the computed add-on price. Amount is the exact product;
// currency rounding is the caller's display concern.
type PlanPrice struct {
	BaseFare float64  `json:"baseFare"`
	Region   Region   `json:"region"`
	Tier     PlanTier `json:"tier"`
	Amount   float64  `json:"amount"`
}

// Engine computes protection-plan prices from an injected rate table. It has
// no mutable state; calls are independent and side-effect-free.
type Engine struct {
	table RateTable
}

// NewEngine validates the table up front: UK slabs must strictly ascend and
// the last slab must cover everything above the previous bound.
func NewEngine(table RateTable) (*Engine, error) {
	if len(table.UKSlabs) == 0 {
		return nil, fmt.Errorf("%w: rate table has no uk slabs", pkgDomain.ErrDataUnavailable)
	}

	prev := math.Inf(-1)
	for i, slab := range table.UKSlabs {
		if slab.Max <= prev {
			return nil, fmt.Errorf("%w: uk slabs must ascend, slab %d has max %v", pkgDomain.ErrDataUnavailable, i, slab.Max)
		}
		prev = slab.Max
	}
	if !math.IsInf(table.UKSlabs[len(table.UKSlabs)-1].Max, 1) {
		return nil, fmt.Errorf("%w: last uk slab must be unbounded", pkgDomain.ErrDataUnavailable)
	}

	return &Engine{table: table}, nil
}

// ComputePlanPrice returns baseFare multiplied by the applicable rate. A zero
// fare prices to zero for any region and tier.
func (e *Engine) ComputePlanPrice(baseFare float64, region Region, tier PlanTier) (float64, error) {
	if baseFare < 0 {
		return 0, fmt.Errorf("%w: negative base fare %v", pkgDomain.ErrInvalidArgument, baseFare)
	}

	rates, err := e.ratesFor(baseFare, region)
	if err != nil {
		return 0, err
	}

	rate, err := rates.ForTier(tier)
	if err != nil {
		return 0, err
	}

	return baseFare * rate, nil
}

func (e *Engine) ratesFor(baseFare float64, region Region) (RateSet, error) {
	switch region {
	case RegionGlobal:
		return e.table.Global, nil
	case RegionUK:
		for _, slab := range e.table.UKSlabs {
			if baseFare <= slab.Max {
				return slab.Rates, nil
			}
		}
		// Unreachable: the last slab is validated to be unbounded.
		return RateSet{}, fmt.Errorf("%w: no slab covers base fare %v", pkgDomain.ErrDataUnavailable, baseFare)
	default:
		return RateSet{}, fmt.Errorf("%w: unknown region %q", pkgDomain.ErrInvalidArgument, region)
	}
}
