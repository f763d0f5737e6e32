// Package policy is the pure authorization function consulted before every
// service mutation and every ownership-scoped read. It touches no state, so
// it can be tested without a store.
package policy

import (
	"vintagecoffee/internal/apperr"
	"vintagecoffee/internal/model"
)

// Authorize decides whether actor may proceed. A nil actor fails whenever
// any check is requested. requiredRole, when non-empty, must match the
// actor's role exactly. ownerID, when non-empty, must match the actor's id
// unless the actor is staff, who pass all ownership checks.
func Authorize(actor *model.Actor, requiredRole model.Role, ownerID string) error {
	if actor == nil {
		return apperr.New(apperr.Unauthenticated, "authentication required")
	}
	if requiredRole != "" && actor.Role != requiredRole {
		return apperr.New(apperr.Forbidden, "requires %s role", requiredRole)
	}
	if ownerID != "" && actor.Role != model.RoleStaff && actor.ID != ownerID {
		return apperr.New(apperr.Forbidden, "not the owner of this resource")
	}
	return nil
}
