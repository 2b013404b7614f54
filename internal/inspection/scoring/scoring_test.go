package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evsops/internal/catalog"
	"evsops/internal/inspection/models"
	"evsops/pkg/domain"
)

func testForm(maxScores ...int) catalog.InspectionForm {
	items := make([]catalog.EvaluationItem, len(maxScores))
	for i, max := range maxScores {
		items[i] = catalog.EvaluationItem{
			ID:       domain.ItemID(rune('a' + i)),
			MaxScore: max,
		}
	}
	return catalog.InspectionForm{ID: "form_test", Items: items}
}

func TestCompute(t *testing.T) {
	t.Run("full marks score 100", func(t *testing.T) {
		form := testForm(6, 4, 10)
		items := []models.ResultItem{
			{ItemID: "a", Score: 6},
			{ItemID: "b", Score: 4},
			{ItemID: "c", Score: 10},
		}
		assert.Equal(t, 100.0, Compute(items, form))
	})

	t.Run("partial marks are proportional", func(t *testing.T) {
		form := testForm(5, 5)
		items := []models.ResultItem{
			{ItemID: "a", Score: 5},
			{ItemID: "b", Score: 0},
		}
		assert.Equal(t, 50.0, Compute(items, form))
	})

	t.Run("zero-weight form scores 0 for any report", func(t *testing.T) {
		form := catalog.InspectionForm{ID: "empty"}
		items := []models.ResultItem{{ItemID: "a", Score: 3}}
		assert.Equal(t, 0.0, Compute(items, form))
	})

	t.Run("unresolved item ids are excluded from both sides", func(t *testing.T) {
		form := testForm(10)
		items := []models.ResultItem{
			{ItemID: "a", Score: 5},
			{ItemID: "ghost", Score: 100},
		}
		assert.Equal(t, 50.0, Compute(items, form))
	})

	t.Run("missing items count against the denominator", func(t *testing.T) {
		form := testForm(10, 10)
		items := []models.ResultItem{{ItemID: "a", Score: 10}}
		assert.Equal(t, 50.0, Compute(items, form))
	})

	t.Run("no rounding is applied", func(t *testing.T) {
		form := testForm(3)
		items := []models.ResultItem{{ItemID: "a", Score: 1}}
		assert.InDelta(t, 100.0/3.0, Compute(items, form), 1e-12)
	})
}

func TestMean(t *testing.T) {
	cat := catalog.Default()
	form, ok := cat.FormForLocation("loc_h_1")
	require.True(t, ok)

	full := make([]models.ResultItem, len(form.Items))
	empty := make([]models.ResultItem, len(form.Items))
	for i, item := range form.Items {
		full[i] = models.ResultItem{ItemID: item.ID, Score: item.MaxScore}
		empty[i] = models.ResultItem{ItemID: item.ID, Score: 0}
	}

	t.Run("mean of per-report percentages", func(t *testing.T) {
		reports := []models.Report{
			{LocationID: "loc_h_1", Items: full},
			{LocationID: "loc_h_1", Items: empty},
		}
		assert.Equal(t, 50.0, Mean(reports, cat))
	})

	t.Run("empty set yields 0", func(t *testing.T) {
		assert.Equal(t, 0.0, Mean(nil, cat))
	})

	t.Run("reports on unknown locations are skipped", func(t *testing.T) {
		reports := []models.Report{
			{LocationID: "loc_h_1", Items: full},
			{LocationID: "loc_gone", Items: full},
		}
		assert.Equal(t, 100.0, Mean(reports, cat))
	})
}
