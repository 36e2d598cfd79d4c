package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/grantkit/pkg/permission"
)

// Enforcer authorizes named operations against a policy table.
// Resolution errors propagate to the caller, so a failing store denies
// rather than allows.
type Enforcer struct {
	table   *Table
	checker permission.Checker
}

// NewEnforcer creates an enforcer.
// Panics if table or checker is nil to fail fast during initialization.
func NewEnforcer(table *Table, checker permission.Checker) *Enforcer {
	if table == nil {
		panic("policy: Table is required")
	}
	if checker == nil {
		panic("policy: permission Checker is required")
	}
	return &Enforcer{table: table, checker: checker}
}

// Authorize returns nil when the user may perform the operation.
// Unknown operations fail with ErrUnknownOperation; unmet permission
// requirements fail with ErrForbidden.
func (e *Enforcer) Authorize(ctx context.Context, userID uuid.UUID, operation string) error {
	rule, ok := e.table.Rule(operation)
	if !ok {
		return errors.Join(ErrUnknownOperation, fmt.Errorf("operation %q", operation))
	}

	for _, name := range rule.Permissions {
		granted, err := e.checker.IsGranted(ctx, userID, name)
		if err != nil {
			return err
		}
		if granted && !rule.RequireAll {
			return nil
		}
		if !granted && rule.RequireAll {
			return errors.Join(ErrForbidden,
				fmt.Errorf("operation %q requires permission %q", operation, name))
		}
	}

	if rule.RequireAll {
		return nil
	}
	return errors.Join(ErrForbidden, fmt.Errorf("operation %q", operation))
}

// AuthorizeFromContext authorizes the user ID stored in the context.
// A missing user ID is treated as an unauthenticated caller and denied.
func (e *Enforcer) AuthorizeFromContext(ctx context.Context, operation string) error {
	userID, ok := permission.GetUserIDFromContext(ctx)
	if !ok {
		return errors.Join(ErrForbidden, permission.ErrUserNotInContext)
	}
	return e.Authorize(ctx, userID, operation)
}
