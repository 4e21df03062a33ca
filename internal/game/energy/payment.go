package energy

import (
	"fmt"
)

// PaymentPlan records how a cost would be paid from a pool.
type PaymentPlan struct {
	Specific  map[Type]int // units consumed by exact-type requirements
	Wildcards map[Type]int // units consumed by Colorless slots, by source type
}

// PaymentResult is the outcome of a payment attempt.
type PaymentResult struct {
	Success bool
	Plan    *PaymentPlan
	Reason  string
}

// CanPay decides whether pool covers cost. Two passes: exact-type
// requirements are consumed first (failing immediately if any specific
// type is short), then the remaining total must cover the Colorless
// wildcard slots.
func CanPay(cost Cost, pool Pool) bool {
	return CalculatePayment(cost, pool).Success
}

// CalculatePayment computes a payment plan for a cost, or a failure reason.
func CalculatePayment(cost Cost, pool Pool) *PaymentResult {
	plan := &PaymentPlan{
		Specific:  make(map[Type]int),
		Wildcards: make(map[Type]int),
	}

	if len(cost) == 0 {
		return &PaymentResult{Success: true, Plan: plan}
	}

	specific, wildcards := cost.Counts()
	available := pool.Copy()

	// Pass 1: exact-type requirements.
	for t, need := range specific {
		if available[t] < need {
			return &PaymentResult{
				Success: false,
				Reason:  fmt.Sprintf("insufficient %s energy (need %d, have %d)", t, need, available[t]),
			}
		}
		available[t] -= need
		plan.Specific[t] = need
	}

	// Pass 2: wildcards from whatever remains.
	if available.Total() < wildcards {
		return &PaymentResult{
			Success: false,
			Reason:  fmt.Sprintf("insufficient energy for Colorless cost (need %d, have %d)", wildcards, available.Total()),
		}
	}

	remaining := wildcards
	// Spend Colorless units on wildcards first, then any other type.
	if n := available[Colorless]; n > 0 && remaining > 0 {
		spend := min(n, remaining)
		plan.Wildcards[Colorless] = spend
		available[Colorless] -= spend
		remaining -= spend
	}
	for t, n := range available {
		if remaining <= 0 {
			break
		}
		if n <= 0 || t == Colorless {
			continue
		}
		spend := min(n, remaining)
		plan.Wildcards[t] += spend
		available[t] -= spend
		remaining -= spend
	}

	return &PaymentResult{Success: true, Plan: plan}
}
