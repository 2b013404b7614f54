package refnum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	march := time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "INSP-2025-03-007", Format("INSP", march, 7))
}

func TestNext(t *testing.T) {
	sept := time.Date(2025, time.September, 1, 9, 0, 0, 0, time.UTC)

	t.Run("first of the year", func(t *testing.T) {
		assert.Equal(t, "CDR-2025-09-001", Next("CDR", sept, nil))
	})

	t.Run("counts only this prefix and year", func(t *testing.T) {
		existing := []string{
			"CDR-2025-01-001",
			"CDR-2025-02-002",
			"CDR-2024-12-040",
			"INSP-2025-02-001",
		}
		assert.Equal(t, "CDR-2025-09-003", Next("CDR", sept, existing))
	})
}
