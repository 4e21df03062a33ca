package energy

import (
	"testing"
)

func TestCanPayExactCost(t *testing.T) {
	pool := Pool{Fire: 2, Colorless: 1}
	cost := Cost{Fire, Fire, Colorless}

	if !CanPay(cost, pool) {
		t.Errorf("expected %v to pay %v", pool, cost)
	}
}

func TestCanPayWildcardFromAnyType(t *testing.T) {
	// Colorless slots accept any type, including leftover specifics.
	pool := Pool{Water: 3}
	cost := Cost{Water, Colorless, Colorless}

	if !CanPay(cost, pool) {
		t.Errorf("expected %v to pay %v", pool, cost)
	}
}

func TestCannotPayWrongType(t *testing.T) {
	pool := Pool{Water: 2}
	cost := Cost{Fire, Colorless}

	if CanPay(cost, pool) {
		t.Errorf("expected %v to fail paying %v", pool, cost)
	}
}

func TestCannotPayShortTotal(t *testing.T) {
	pool := Pool{Fire: 1}
	cost := Cost{Fire, Colorless}

	if CanPay(cost, pool) {
		t.Errorf("expected %v to fail paying %v", pool, cost)
	}
}

func TestEmptyCostAlwaysPayable(t *testing.T) {
	if !CanPay(Cost{}, Pool{}) {
		t.Error("empty cost should be payable with empty pool")
	}
	if !CanPay(nil, Pool{Fire: 1}) {
		t.Error("nil cost should be payable")
	}
}

func TestCalculatePaymentPlan(t *testing.T) {
	pool := Pool{Fire: 2, Water: 1}
	cost := Cost{Fire, Fire, Colorless}

	result := CalculatePayment(cost, pool)
	if !result.Success {
		t.Fatalf("payment failed: %s", result.Reason)
	}
	if result.Plan.Specific[Fire] != 2 {
		t.Errorf("expected 2 Fire consumed by specific slots, got %d", result.Plan.Specific[Fire])
	}
	if result.Plan.Wildcards[Water] != 1 {
		t.Errorf("expected Water to cover the Colorless slot, got %v", result.Plan.Wildcards)
	}
}

func TestCalculatePaymentFailureReason(t *testing.T) {
	result := CalculatePayment(Cost{Fire}, Pool{Water: 4})
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Reason == "" {
		t.Error("expected a failure reason")
	}
}

func TestDualEnergyProvidesTwoUnits(t *testing.T) {
	// A compound energy card supplies multiple units via provider values.
	pool := PoolFromValues([]Type{Fire, Fire})
	cost := Cost{Fire, Colorless}

	if !CanPay(cost, pool) {
		t.Errorf("expected dual energy pool %v to pay %v", pool, cost)
	}
}

func TestPoolFromValues(t *testing.T) {
	pool := PoolFromValues([]Type{Fire}, []Type{Water}, []Type{Fire, Fire})
	if pool[Fire] != 3 || pool[Water] != 1 {
		t.Errorf("unexpected pool: %v", pool)
	}
	if pool.Total() != 4 {
		t.Errorf("expected total 4, got %d", pool.Total())
	}
}

func TestReduceCost(t *testing.T) {
	cost := Cost{Fire, Fire, Colorless}

	reduced := cost.Reduce(1, nil)
	if reduced.Total() != 2 {
		t.Errorf("expected generic reduction to drop the Colorless slot, got %v", reduced)
	}

	reduced = cost.Reduce(0, []Type{Fire})
	if reduced.Total() != 2 {
		t.Errorf("expected typed reduction to drop one Fire, got %v", reduced)
	}

	// Reduction past zero clamps.
	reduced = cost.Reduce(10, nil)
	if reduced.Total() != 0 {
		t.Errorf("expected fully reduced cost, got %v", reduced)
	}
}
