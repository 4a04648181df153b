package middleware

import (
	"context"

	"github.com/vecindario/backend/internal/domain"
	"github.com/vecindario/backend/pkg/ctxutil"
)

// RequirePublisher returns domain.ErrForbidden unless the context role
// may publish content (staff or admin). Use inside REST handlers, not
// as HTTP middleware.
func RequirePublisher(ctx context.Context) error {
	switch domain.UserRole(ctxutil.RoleFromCtx(ctx)) {
	case domain.UserRoleStaff, domain.UserRoleAdmin:
		return nil
	}
	return domain.ErrForbidden
}

// RequireAdmin returns domain.ErrForbidden unless the context role is
// admin. Webhook management is admin-only.
func RequireAdmin(ctx context.Context) error {
	if domain.UserRole(ctxutil.RoleFromCtx(ctx)) != domain.UserRoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}
