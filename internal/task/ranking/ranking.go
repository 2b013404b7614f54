// Package ranking orders catalog locations by inspection urgency. The score
// combines the location's zone risk with how stale its last inspection is,
// so high-risk sites surface first but no site stays buried forever.
package ranking

import (
	"sort"
	"time"

	"evsops/internal/catalog"
	"evsops/pkg/domain"
)

// Base urgency per zone risk category.
const (
	baseHigh   = 100
	baseMedium = 70
	baseLow    = 40
)

// Staleness bonus: one point per day since the last inspection, capped so
// risk still dominates, and a fixed middling bonus when no inspection has
// ever happened.
const (
	staleCapDays        = 60
	neverInspectedBonus = 50
)

// RankedLocation is one entry of the prioritized worklist.
type RankedLocation struct {
	Location      catalog.Location    `json:"location"`
	RiskCategory  domain.RiskCategory `json:"riskCategory"`
	Score         int                 `json:"score"`
	LastInspected time.Time           `json:"lastInspected,omitzero"`
	NeverDone     bool                `json:"neverInspected"`
}

func baseScore(risk domain.RiskCategory) int {
	switch risk {
	case domain.RiskHigh:
		return baseHigh
	case domain.RiskMedium:
		return baseMedium
	default:
		return baseLow
	}
}

// Rank scores every catalog location against the given last-inspection
// dates and returns them most urgent first. Ties keep catalog order, so the
// output is stable across runs with identical inputs.
func Rank(cat *catalog.Catalog, lastInspected map[domain.LocationID]time.Time, now time.Time) []RankedLocation {
	locations := cat.Locations()
	out := make([]RankedLocation, 0, len(locations))
	for _, loc := range locations {
		risk := domain.RiskLow
		if zone, ok := cat.ZoneByID(loc.ZoneID); ok {
			risk = zone.RiskCategory
		}
		ranked := RankedLocation{Location: loc, RiskCategory: risk, Score: baseScore(risk)}
		if last, ok := lastInspected[loc.ID]; ok {
			ranked.LastInspected = last
			days := int(now.Sub(last).Hours() / 24)
			if days < 0 {
				days = 0
			}
			if days > staleCapDays {
				days = staleCapDays
			}
			ranked.Score += days
		} else {
			ranked.NeverDone = true
			ranked.Score += neverInspectedBonus
		}
		out = append(out, ranked)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
