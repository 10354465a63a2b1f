package results

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pollroom/internal/domain"
)

func TestPercentageZeroSum(t *testing.T) {
	tally := domain.VoteTally{"o1": 0, "o2": 0}

	assert.Equal(t, 0, Percentage("o1", tally))
	assert.Equal(t, 0, Percentage("o2", tally))
	assert.Equal(t, 0, Percentage("missing", tally))
	assert.Equal(t, 0, Percentage("o1", nil))
}

func TestPercentageRounding(t *testing.T) {
	tally := domain.VoteTally{"o1": 1, "o2": 2}

	assert.Equal(t, 33, Percentage("o1", tally))
	assert.Equal(t, 67, Percentage("o2", tally))
}

func TestPercentagesSumNearHundred(t *testing.T) {
	tallies := []domain.VoteTally{
		{"o1": 4, "o2": 2},
		{"o1": 1, "o2": 1, "o3": 1},
		{"o1": 7, "o2": 3, "o3": 5, "o4": 1},
		{"o1": 100},
	}

	for _, tally := range tallies {
		sum := 0
		for _, share := range Percentages(tally) {
			sum += share
		}
		assert.InDelta(t, 100, sum, 1, "tally %v", tally)
	}
}

func TestPercentagesRecomputedFromSnapshot(t *testing.T) {
	tally := domain.VoteTally{"o1": 1, "o2": 1}
	assert.Equal(t, 50, Percentage("o1", tally))

	// A replacement snapshot changes the derivation immediately;
	// nothing is cached.
	tally = domain.VoteTally{"o1": 3, "o2": 1}
	assert.Equal(t, 75, Percentage("o1", tally))
}
