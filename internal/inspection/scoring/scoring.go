// Package scoring computes compliance percentages from checklist submissions.
// Everything here is pure; presentation layers decide rounding.
package scoring

import (
	"evsops/internal/catalog"
	"evsops/internal/inspection/models"
	"evsops/pkg/domain"
)

// Compute returns the compliance percentage of a report's items against the
// form's maxima, in [0,100].
//
// Items whose id does not resolve in the form are excluded from both numerator
// and denominator; a form with no weight yields 0, not a division error.
func Compute(items []models.ResultItem, form catalog.InspectionForm) float64 {
	scores := make(map[domain.ItemID]int, len(items))
	for _, item := range items {
		scores[item.ItemID] = item.Score
	}

	numerator, denominator := 0, 0
	for _, formItem := range form.Items {
		denominator += formItem.MaxScore
		if score, ok := scores[formItem.ID]; ok {
			numerator += score
		}
	}
	if denominator == 0 {
		return 0
	}
	return 100 * float64(numerator) / float64(denominator)
}

// Mean returns the arithmetic mean of per-report percentages over a filtered
// report set. Reports whose location has no assigned form are skipped. An
// empty set yields 0.
func Mean(reports []models.Report, cat *catalog.Catalog) float64 {
	sum, n := 0.0, 0
	for _, r := range reports {
		form, ok := cat.FormForLocation(r.LocationID)
		if !ok {
			continue
		}
		sum += Compute(r.Items, form)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
