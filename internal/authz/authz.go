// Package authz is the single capability check for mutating operations.
//
// Services call Require at the top of every mutating operation instead of
// scattering role comparisons. Authentication itself is out of scope; the
// actor arrives already resolved.
package authz

import (
	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
)

// Action names a capability-gated operation.
type Action string

const (
	ActionSubmitReport      Action = "report.submit"
	ActionReviewReport      Action = "report.review"
	ActionSubmitCDR         Action = "cdr.submit"
	ActionFinalizeCDR       Action = "cdr.finalize"
	ActionIssueInvoice      Action = "invoice.issue"
	ActionGenerateStatement Action = "statement.generate"
	ActionCreateTask        Action = "task.create"
	ActionProgressTask      Action = "task.progress"
)

// allowed maps each action to the roles that may perform it. Supervisors and
// executives share the adjudication capabilities; inspectors perform the
// field-side ones.
var allowed = map[Action]map[domain.Role]bool{
	ActionSubmitReport:      {domain.RoleInspector: true, domain.RoleSupervisor: true},
	ActionReviewReport:      {domain.RoleSupervisor: true, domain.RoleExecutive: true},
	ActionSubmitCDR:         {domain.RoleInspector: true, domain.RoleSupervisor: true},
	ActionFinalizeCDR:       {domain.RoleSupervisor: true, domain.RoleExecutive: true},
	ActionIssueInvoice:      {domain.RoleSupervisor: true, domain.RoleExecutive: true},
	ActionGenerateStatement: {domain.RoleSupervisor: true, domain.RoleExecutive: true},
	ActionCreateTask:        {domain.RoleSupervisor: true, domain.RoleExecutive: true},
	ActionProgressTask:      {domain.RoleInspector: true, domain.RoleSupervisor: true, domain.RoleExecutive: true},
}

// Require returns nil when the actor may perform the action, an unauthorized
// error when there is no actor, and a forbidden error otherwise. No state is
// changed on denial.
func Require(actor domain.Actor, action Action) error {
	if actor.IsZero() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	if !allowed[action][actor.Role] {
		return dErrors.New(dErrors.CodeForbidden, string(actor.Role)+" may not perform "+string(action))
	}
	return nil
}
