package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricePerPackage(t *testing.T) {
	for _, v := range AllVarieties {
		want := 5.0
		if v == ToffeeTastic {
			want = 6.0
		}
		assert.Equal(t, want, PricePerPackage(v), "price for %s", v)
	}
}

func TestVarietiesAddSigned(t *testing.T) {
	counts := Varieties{ThinMints: 12, Samoas: 3}
	counts.Add(Varieties{ThinMints: 5, Trefoils: 2}, -1)

	assert.Equal(t, 7, counts[ThinMints])
	assert.Equal(t, 3, counts[Samoas])
	assert.Equal(t, -2, counts[Trefoils], "negative counts must be retained")
	assert.Equal(t, 8, counts.Total())
}

func TestVarietiesFlooredPreservesOriginal(t *testing.T) {
	counts := Varieties{ThinMints: -3, Samoas: 4}

	floored := counts.Floored()

	assert.Equal(t, 0, floored[ThinMints])
	assert.Equal(t, 4, floored[Samoas])
	// The signed original survives alongside the floored copy.
	assert.Equal(t, -3, counts[ThinMints])
	assert.Equal(t, []Variety{ThinMints}, counts.Negatives())
}

func TestVarietiesValue(t *testing.T) {
	counts := Varieties{ThinMints: 2, ToffeeTastic: 1}
	assert.Equal(t, 16.0, counts.Value())
}

func TestVarietiesEqualTreatsAbsentAsZero(t *testing.T) {
	tests := []struct {
		name string
		a    Varieties
		b    Varieties
		want bool
	}{
		{"identical", Varieties{ThinMints: 2}, Varieties{ThinMints: 2}, true},
		{"absent key equals zero", Varieties{ThinMints: 2, Samoas: 0}, Varieties{ThinMints: 2}, true},
		{"differing count", Varieties{ThinMints: 2}, Varieties{ThinMints: 3}, false},
		{"extra nonzero key", Varieties{ThinMints: 2}, Varieties{ThinMints: 2, Samoas: 1}, false},
		{"both empty", Varieties{}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestVarietiesCloneIsIndependent(t *testing.T) {
	counts := Varieties{ThinMints: 2}
	clone := counts.Clone()
	clone[ThinMints] = 99

	assert.Equal(t, 2, counts[ThinMints])
}
