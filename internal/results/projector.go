// Package results derives renderable percentages from raw vote counts.
// Pure functions, recomputed on every render so a tally snapshot update
// can never leave a stale cached percentage behind.
package results

import (
	"math"

	"pollroom/internal/domain"
)

// Percentage returns the rounded share of votes for one option, 0 when
// the tally is empty.
func Percentage(optionID string, tally domain.VoteTally) int {
	total := tally.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(tally[optionID]) / float64(total)))
}

// Percentages returns the rounded share for every option in the tally
func Percentages(tally domain.VoteTally) map[string]int {
	shares := make(map[string]int, len(tally))
	for optionID := range tally {
		shares[optionID] = Percentage(optionID, tally)
	}
	return shares
}
