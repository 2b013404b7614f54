// Package refnum builds the human-readable reference numbers used across
// reports, CDRs, invoices, and statements: PREFIX-YYYY-MM-NNN, where NNN is a
// yearly sequence.
package refnum

import (
	"fmt"
	"strings"
	"time"
)

// Format renders one reference number.
func Format(prefix string, t time.Time, seq int) string {
	return fmt.Sprintf("%s-%04d-%02d-%03d", prefix, t.Year(), int(t.Month()), seq)
}

// Next derives the next reference number from the references already issued:
// one more than the count sharing this prefix and year. Re-running with the
// same inputs yields the same number, which keeps retried writes idempotent.
func Next(prefix string, t time.Time, existing []string) string {
	yearPrefix := fmt.Sprintf("%s-%04d-", prefix, t.Year())
	seq := 1
	for _, ref := range existing {
		if strings.HasPrefix(ref, yearPrefix) {
			seq++
		}
	}
	return Format(prefix, t, seq)
}
