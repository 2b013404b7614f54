package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "evsops/pkg/domain-errors"
)

func draftCDR() CDR {
	return CDR{
		ID:                    "cdr-1",
		ReferenceNumber:       "CDR-2025-09-001",
		EmployeeID:            "user1",
		LocationID:            "loc_h_1",
		OccurredAt:            time.Date(2025, time.September, 1, 10, 0, 0, 0, time.UTC),
		IncidentType:          IncidentFirst,
		ServiceTypes:          []ServiceType{ServiceHousekeeping},
		ManpowerDiscrepancies: []string{"Shortage of staff"},
		Status:                StatusDraft,
	}
}

func TestSubmitTransition(t *testing.T) {
	t.Run("draft with a discrepancy submits", func(t *testing.T) {
		c := draftCDR()
		require.NoError(t, c.CanSubmit())
		c.ApplySubmit("Mohammed Ali")
		assert.Equal(t, StatusSubmitted, c.Status)
		assert.Equal(t, "Mohammed Ali", c.EmployeeSignature)
	})

	t.Run("empty cdr is rejected", func(t *testing.T) {
		c := draftCDR()
		c.ManpowerDiscrepancies = nil
		c.StaffComment = ""
		err := c.CanSubmit()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("a comment alone is enough substance", func(t *testing.T) {
		c := draftCDR()
		c.ManpowerDiscrepancies = nil
		c.StaffComment = "Crew left the ward before sign-off."
		assert.NoError(t, c.CanSubmit())
	})

	t.Run("missing employee or location fails validation", func(t *testing.T) {
		c := draftCDR()
		c.EmployeeID = ""
		assert.True(t, dErrors.HasCode(c.CanSubmit(), dErrors.CodeInvalidInput))

		c = draftCDR()
		c.LocationID = ""
		assert.True(t, dErrors.HasCode(c.CanSubmit(), dErrors.CodeInvalidInput))
	})

	t.Run("submitted cdr cannot submit again", func(t *testing.T) {
		c := draftCDR()
		c.Status = StatusSubmitted
		assert.True(t, dErrors.HasCode(c.CanSubmit(), dErrors.CodeInvariantViolation))
	})
}

func TestFinalizeTransition(t *testing.T) {
	now := time.Date(2025, time.September, 2, 9, 0, 0, 0, time.UTC)

	submitted := func() CDR {
		c := draftCDR()
		c.Status = StatusSubmitted
		return c
	}

	t.Run("penalty decision approves", func(t *testing.T) {
		c := submitted()
		require.NoError(t, c.CanFinalize(DecisionPenalty, "Approved.", "Manager Ahmed"))
		c.ApplyFinalize(DecisionPenalty, "Approved.", "Manager Ahmed", now)
		assert.Equal(t, StatusApproved, c.Status)
		assert.Equal(t, DecisionPenalty, c.ManagerDecision)
		assert.Equal(t, now, c.FinalizedDate)
		assert.True(t, c.IsFinalized())
	})

	t.Run("no valid case rejects terminally", func(t *testing.T) {
		c := submitted()
		require.NoError(t, c.CanFinalize(DecisionNoValidCase, "Not substantiated.", "Manager Ahmed"))
		c.ApplyFinalize(DecisionNoValidCase, "Not substantiated.", "Manager Ahmed", now)
		assert.Equal(t, StatusRejected, c.Status)
		assert.True(t, c.IsFinalized())
	})

	t.Run("draft cannot skip straight to finalized", func(t *testing.T) {
		c := draftCDR()
		err := c.CanFinalize(DecisionWarning, "c", "s")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("missing comment or signature fails validation", func(t *testing.T) {
		c := submitted()
		assert.True(t, dErrors.HasCode(c.CanFinalize(DecisionPenalty, "", "sig"), dErrors.CodeInvalidInput))
		assert.True(t, dErrors.HasCode(c.CanFinalize(DecisionPenalty, "comment", ""), dErrors.CodeInvalidInput))
	})

	t.Run("unknown decision fails validation", func(t *testing.T) {
		c := submitted()
		err := c.CanFinalize(Decision("MAYBE"), "comment", "sig")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("finalized cdr refuses further transitions unchanged", func(t *testing.T) {
		c := submitted()
		c.ApplyFinalize(DecisionPenalty, "Approved.", "Manager Ahmed", now)
		before := c

		err := c.CanFinalize(DecisionWarning, "Changed my mind.", "Manager Ahmed")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
		assert.True(t, dErrors.HasCode(c.CanSubmit(), dErrors.CodeConflict),
			"approved cdr must not return to draft or submitted")
		assert.Equal(t, before, c)
	})
}

func TestValidateVocabulary(t *testing.T) {
	t.Run("known phrases pass", func(t *testing.T) {
		c := draftCDR()
		c.MaterialDiscrepancies = []string{"Expired items"}
		c.EquipmentDiscrepancies = []string{"Equipment not clean"}
		c.OnSpotActions = []string{"Informing supervisor"}
		c.ActionPlan = []string{"Root cause analysis"}
		assert.NoError(t, c.ValidateVocabulary())
	})

	t.Run("free text in a checkbox list is rejected", func(t *testing.T) {
		c := draftCDR()
		c.EquipmentDiscrepancies = []string{"Left equipment running"}
		err := c.ValidateVocabulary()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestDiscrepanciesOrder(t *testing.T) {
	c := draftCDR()
	c.MaterialDiscrepancies = []string{"Expired items"}
	c.EquipmentDiscrepancies = []string{"No scheduled maintenance"}
	assert.Equal(t,
		[]string{"Shortage of staff", "Expired items", "No scheduled maintenance"},
		c.Discrepancies())
}
