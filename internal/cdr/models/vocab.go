package models

import (
	"fmt"

	dErrors "evsops/pkg/domain-errors"
)

// Fixed discrepancy and action vocabularies from the contract's CDR form.
// The penalty rate table keys off the same phrases, so these lists and the
// rate table must stay aligned.

var ManpowerDiscrepancyOptions = []string{
	"Not aware of EVS mission",
	"Poor communicator / non-English-speaking staff",
	"Uncooperative staff",
	"Unauthorized staff / No ID badge",
	"Personal hygiene",
	"Not approved uniform / No uniform",
	"Untrained staff / Not aware of chemical dilution",
	"Shortage of staff",
}

var MaterialDiscrepancyOptions = []string{
	"Using unauthorized supplies",
	"Expired items",
	"Shortage of supplies",
	"No MSDS on site",
	"Not maintaining minimum/maximum stock",
}

var EquipmentDiscrepancyOptions = []string{
	"Equipment not clean",
	"Unauthorized / untagged equipment",
	"Improper equipment handling",
	"Default of equipment",
	"No scheduled maintenance",
}

var OnSpotActionOptions = []string{
	"Informing supervisor",
	"Stopped procedure",
	"Highlighted policy",
}

var ActionPlanOptions = []string{
	"Root cause analysis",
	"Process review",
	"Implement",
	"Involve all stakeholders",
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// ValidateVocabulary rejects discrepancy entries outside their fixed lists.
// Free text belongs in StaffComment, not in the checkbox lists.
func (c *CDR) ValidateVocabulary() error {
	checks := []struct {
		field   string
		values  []string
		options []string
	}{
		{"manpower", c.ManpowerDiscrepancies, ManpowerDiscrepancyOptions},
		{"material", c.MaterialDiscrepancies, MaterialDiscrepancyOptions},
		{"equipment", c.EquipmentDiscrepancies, EquipmentDiscrepancyOptions},
		{"on-spot action", c.OnSpotActions, OnSpotActionOptions},
		{"action plan", c.ActionPlan, ActionPlanOptions},
	}
	for _, check := range checks {
		for _, v := range check.values {
			if !contains(check.options, v) {
				return dErrors.New(dErrors.CodeInvalidInput,
					fmt.Sprintf("%q is not a recognized %s entry", v, check.field))
			}
		}
	}
	return nil
}
