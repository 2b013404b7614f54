package domain

import (
	"strings"

	dErrors "evsops/pkg/domain-errors"
)

// Role is the coarse access level of a campus user. The core never
// authenticates; it receives an already-resolved actor and gates mutating
// operations on the role.
type Role string

const (
	RoleInspector  Role = "INSPECTOR"
	RoleSupervisor Role = "SUPERVISOR"
	RoleExecutive  Role = "EXECUTIVE"
)

func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleInspector:
		return RoleInspector, nil
	case RoleSupervisor:
		return RoleSupervisor, nil
	case RoleExecutive:
		return RoleExecutive, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role")
}

// Actor is the acting user as resolved by the transport layer.
type Actor struct {
	ID   UserID `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

func (a Actor) IsZero() bool { return a.ID == "" }

// BilingualName carries the English and Arabic display names of catalog
// entities. The core stores both and renders neither.
type BilingualName struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

// RiskCategory classifies a zone and drives both checklist selection and
// inspection priority.
type RiskCategory string

const (
	RiskHigh   RiskCategory = "HIGH"
	RiskMedium RiskCategory = "MEDIUM"
	RiskLow    RiskCategory = "LOW"
)

func ParseRiskCategory(raw string) (RiskCategory, error) {
	switch RiskCategory(strings.ToUpper(strings.TrimSpace(raw))) {
	case RiskHigh:
		return RiskHigh, nil
	case RiskMedium:
		return RiskMedium, nil
	case RiskLow:
		return RiskLow, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown risk category")
}
