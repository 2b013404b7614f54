package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "evsops/pkg/domain-errors"
	"evsops/pkg/domain"
)

func TestRequire(t *testing.T) {
	inspector := domain.Actor{ID: "user1", Role: domain.RoleInspector}
	supervisor := domain.Actor{ID: "user3", Role: domain.RoleSupervisor}
	executive := domain.Actor{ID: "user6", Role: domain.RoleExecutive}

	t.Run("missing actor is unauthorized", func(t *testing.T) {
		err := Require(domain.Actor{}, ActionCreateTask)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("inspector may not create tasks", func(t *testing.T) {
		err := Require(inspector, ActionCreateTask)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("supervisor and executive may create tasks", func(t *testing.T) {
		assert.NoError(t, Require(supervisor, ActionCreateTask))
		assert.NoError(t, Require(executive, ActionCreateTask))
	})

	t.Run("inspector may not finalize CDRs", func(t *testing.T) {
		err := Require(inspector, ActionFinalizeCDR)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	t.Run("inspector submits reports and CDRs", func(t *testing.T) {
		assert.NoError(t, Require(inspector, ActionSubmitReport))
		assert.NoError(t, Require(inspector, ActionSubmitCDR))
	})
}
