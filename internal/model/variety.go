// Package model defines the core domain models used throughout the application.
package model

import "sort"

// Variety identifies one cookie SKU for the current program year.
type Variety string

// The closed variety set. Feeds referencing anything else produce an
// unknown-variety warning and the count is excluded.
const (
	Adventurefuls Variety = "ADVENTUREFULS"
	LemonUps      Variety = "LEMON_UPS"
	Trefoils      Variety = "TREFOILS"
	DoSiDos       Variety = "DO_SI_DOS"
	Samoas        Variety = "SAMOAS"
	Tagalongs     Variety = "TAGALONGS"
	ThinMints     Variety = "THIN_MINTS"
	Smores        Variety = "SMORES"
	ToffeeTastic  Variety = "TOFFEE_TASTIC"
)

// AllVarieties lists every known variety in display order.
var AllVarieties = []Variety{
	Adventurefuls,
	LemonUps,
	Trefoils,
	DoSiDos,
	Samoas,
	Tagalongs,
	ThinMints,
	Smores,
	ToffeeTastic,
}

// PricePerPackage returns the unit price for a variety in dollars.
// Toffee-tastic is the one specialty variety priced above the rest.
func PricePerPackage(v Variety) float64 {
	if v == ToffeeTastic {
		return 6.0
	}
	return 5.0
}

// KnownVariety reports whether v is part of the closed variety set.
func KnownVariety(v Variety) bool {
	for _, known := range AllVarieties {
		if v == known {
			return true
		}
	}
	return false
}

// Varieties maps each variety to an integer package count.
type Varieties map[Variety]int

// Add accumulates counts from other into v, scaled by sign (+1 or -1).
func (v Varieties) Add(other Varieties, sign int) {
	for variety, count := range other {
		v[variety] += count * sign
	}
}

// Total returns the sum of all package counts, including negatives.
func (v Varieties) Total() int {
	total := 0
	for _, count := range v {
		total += count
	}
	return total
}

// Value returns the dollar value of the counts at per-package prices.
func (v Varieties) Value() float64 {
	value := 0.0
	for variety, count := range v {
		value += PricePerPackage(variety) * float64(count)
	}
	return value
}

// Clone returns an independent copy.
func (v Varieties) Clone() Varieties {
	out := make(Varieties, len(v))
	for variety, count := range v {
		out[variety] = count
	}
	return out
}

// Floored returns a copy with negative counts floored to zero. The signed
// original must stay available alongside it; a negative count is meaningful
// (oversold or missing pickup) and is surfaced by the health view.
func (v Varieties) Floored() Varieties {
	out := make(Varieties, len(v))
	for variety, count := range v {
		if count < 0 {
			count = 0
		}
		out[variety] = count
	}
	return out
}

// Negatives returns the varieties with a negative count, sorted by name.
func (v Varieties) Negatives() []Variety {
	var negative []Variety
	for variety, count := range v {
		if count < 0 {
			negative = append(negative, variety)
		}
	}
	sort.Slice(negative, func(i, j int) bool { return negative[i] < negative[j] })
	return negative
}

// Equal reports whether two count maps describe the same quantities,
// treating absent keys as zero.
func (v Varieties) Equal(other Varieties) bool {
	for variety, count := range v {
		if other[variety] != count {
			return false
		}
	}
	for variety, count := range other {
		if v[variety] != count {
			return false
		}
	}
	return true
}
