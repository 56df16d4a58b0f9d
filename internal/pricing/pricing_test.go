package pricing

import "testing"

func TestFlatPolicyWoodRate(t *testing.T) {
	engine := NewEngine(PolicyFlat, DefaultRates())

	// 2 wood doors at the flat wood rate of 50.
	credit := engine.TradeInCredit(DoorCounts{Doors: 2}, MaterialWood)
	if credit != 100 {
		t.Fatalf("expected credit 100, got %d", credit)
	}
}

func TestSplitPolicyMixedCounts(t *testing.T) {
	engine := NewEngine(PolicySplit, DefaultRates())

	// 2 singles at 120 plus 1 double at 200.
	credit := engine.TradeInCredit(DoorCounts{SingleDoors: 2, DoubleDoors: 1}, MaterialSteel)
	if credit != 440 {
		t.Fatalf("expected credit 440, got %d", credit)
	}
}

func TestWoodAlwaysCreditsLessThanOtherMaterials(t *testing.T) {
	for _, policy := range []Policy{PolicyFlat, PolicySplit} {
		engine := NewEngine(policy, DefaultRates())
		counts := DoorCounts{Doors: 3, SingleDoors: 2, DoubleDoors: 1}

		wood := engine.TradeInCredit(counts, MaterialWood)
		for _, material := range []Material{MaterialSteel, MaterialAluminum, MaterialFiberglass} {
			other := engine.TradeInCredit(counts, material)
			if wood >= other {
				t.Fatalf("policy %s: wood credit %d should be below %s credit %d", policy, wood, material, other)
			}
		}
	}
}

func TestCreditNeverNegative(t *testing.T) {
	for _, policy := range []Policy{PolicyFlat, PolicySplit} {
		engine := NewEngine(policy, DefaultRates())
		for doors := 0; doors <= 5; doors++ {
			counts := DoorCounts{Doors: doors, SingleDoors: doors, DoubleDoors: doors}
			for _, material := range []Material{MaterialSteel, MaterialWood, MaterialAluminum, MaterialFiberglass} {
				if credit := engine.TradeInCredit(counts, material); credit < 0 {
					t.Fatalf("policy %s: negative credit %d for %d doors of %s", policy, credit, doors, material)
				}
			}
		}
	}
}

func TestFinalPriceFloorsAtZero(t *testing.T) {
	// Credit exceeding the door price floors at zero rather than going negative.
	if price := FinalPrice(1250, 400, 2000); price != 0 {
		t.Fatalf("expected floored price 0, got %d", price)
	}

	if price := FinalPrice(1250, 400, 440); price != 1210 {
		t.Fatalf("expected price 1210, got %d", price)
	}

	if price := FinalPrice(1250, 400, 0); price != 1650 {
		t.Fatalf("expected price 1650, got %d", price)
	}
}

func TestUnknownPolicyFallsBackToSplit(t *testing.T) {
	engine := NewEngine(Policy("bogus"), DefaultRates())
	if engine.Policy() != PolicySplit {
		t.Fatalf("expected fallback to split, got %s", engine.Policy())
	}
}

func TestMaterialValid(t *testing.T) {
	for _, material := range []Material{MaterialSteel, MaterialWood, MaterialAluminum, MaterialFiberglass} {
		if !material.Valid() {
			t.Fatalf("expected %s to be valid", material)
		}
	}
	if Material("vinyl").Valid() {
		t.Fatal("expected vinyl to be invalid")
	}
}
