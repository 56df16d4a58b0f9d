// Package pricing computes the trade-in credit and final door price.
// Pure arithmetic: no I/O, no side effects. Callers are responsible for
// clamping counts to non-negative integers before calling in.
package pricing

import "tradein_backend/platform/config"

// Material is the visitor's current-door material. Only wood changes the
// credit rates; the other values exist to keep the enum closed.
type Material string

const (
	MaterialSteel      Material = "steel"
	MaterialWood       Material = "wood"
	MaterialAluminum   Material = "aluminum"
	MaterialFiberglass Material = "fiberglass_composite"
)

// Valid reports whether m is one of the enumerated materials.
func (m Material) Valid() bool {
	switch m {
	case MaterialSteel, MaterialWood, MaterialAluminum, MaterialFiberglass:
		return true
	}
	return false
}

// Policy selects how the trade-in credit is computed. Two generations of
// the funnel priced differently; which one is authoritative is a business
// configuration choice, not a code branch per page.
type Policy string

const (
	// PolicyFlat credits a single per-door rate times the total door count.
	PolicyFlat Policy = "flat"
	// PolicySplit credits single-width and double-width doors at separate rates.
	PolicySplit Policy = "split"
)

// DoorCounts carries the visitor's door counts. Under PolicyFlat only Doors
// is read; under PolicySplit only SingleDoors/DoubleDoors are read.
type DoorCounts struct {
	Doors       int
	SingleDoors int
	DoubleDoors int
}

// Engine computes credits under a fixed policy and rate table.
type Engine struct {
	policy Policy
	rates  config.TradeInRates
}

// DefaultRates returns the rate table the marketing site shipped with.
func DefaultRates() config.TradeInRates {
	return config.TradeInRates{
		FlatStandard:   100,
		FlatWood:       50,
		SingleStandard: 120,
		SingleWood:     75,
		DoubleStandard: 200,
		DoubleWood:     130,
	}
}

// NewEngine creates a pricing engine. An unknown policy falls back to split,
// the newer of the two observed policies.
func NewEngine(policy Policy, rates config.TradeInRates) *Engine {
	if policy != PolicyFlat && policy != PolicySplit {
		policy = PolicySplit
	}
	return &Engine{policy: policy, rates: rates}
}

// Policy returns the active pricing policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// TradeInCredit returns the credit in whole dollars for the given counts and
// material. Wood doors credit lower than every other material. The result is
// never negative.
func (e *Engine) TradeInCredit(counts DoorCounts, material Material) int {
	var credit int
	switch e.policy {
	case PolicyFlat:
		rate := e.rates.FlatStandard
		if material == MaterialWood {
			rate = e.rates.FlatWood
		}
		credit = rate * counts.Doors
	default:
		singleRate := e.rates.SingleStandard
		doubleRate := e.rates.DoubleStandard
		if material == MaterialWood {
			singleRate = e.rates.SingleWood
			doubleRate = e.rates.DoubleWood
		}
		credit = counts.SingleDoors*singleRate + counts.DoubleDoors*doubleRate
	}

	if credit < 0 {
		return 0
	}
	return credit
}

// FinalPrice applies a credit to a door's full price, flooring at zero.
// A credit larger than the price is not an error.
func FinalPrice(basePrice, installPrice, credit int) int {
	price := basePrice + installPrice - credit
	if price < 0 {
		return 0
	}
	return price
}
