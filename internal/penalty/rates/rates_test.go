package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("long-form clauses price by article tier", func(t *testing.T) {
		assert.Equal(t, 1000, Resolve("Delay in submitting required correspondence, reports, and documents."))
		assert.Equal(t, 1500, Resolve("Employee taking leave without prior approval."))
		assert.Equal(t, 2000, Resolve("Hiring workers without approval."))
		assert.Equal(t, 2500, Resolve("Failure to wear proper PPE in required areas."))
	})

	t.Run("checkbox phrases carry their contract amounts", func(t *testing.T) {
		assert.Equal(t, 1500, Resolve("Shortage of staff"))
		assert.Equal(t, 1500, Resolve("Expired items"))
		assert.Equal(t, 2000, Resolve("Untrained staff / Not aware of chemical dilution"))
		assert.Equal(t, 1000, Resolve("Equipment not clean"))
	})

	t.Run("unknown labels resolve to the default, not zero", func(t *testing.T) {
		assert.Equal(t, DefaultAmount, Resolve("Left equipment running"))
		assert.Equal(t, DefaultAmount, Resolve(""))
	})
}

func TestCodeMappingIsBijective(t *testing.T) {
	seenCodes := make(map[string]bool)
	seenDescriptions := make(map[string]bool)

	for _, v := range Violations() {
		assert.False(t, seenCodes[v.Code], "duplicate code %s", v.Code)
		assert.False(t, seenDescriptions[v.Description], "duplicate description %q", v.Description)
		seenCodes[v.Code] = true
		seenDescriptions[v.Description] = true

		code, ok := CodeFor(v.Description)
		require.True(t, ok)
		assert.Equal(t, v.Code, code)

		desc, ok := DescriptionFor(v.Code)
		require.True(t, ok)
		assert.Equal(t, v.Description, desc)
	}

	assert.Len(t, Violations(), 35, "9+8+9+9 clauses across articles A-D")
}

func TestArticleAmounts(t *testing.T) {
	assert.Equal(t, 1000, ArticleA.Amount())
	assert.Equal(t, 1500, ArticleB.Amount())
	assert.Equal(t, 2000, ArticleC.Amount())
	assert.Equal(t, 2500, ArticleD.Amount())
	assert.Equal(t, 0, Article("X").Amount())
}
