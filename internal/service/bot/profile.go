package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/vecindario/backend/internal/domain"
)

// handleProfile renders the linked account's profile. An unlinked chat
// gets the linking hint, not an error.
func (s *Service) handleProfile(ctx context.Context, chatID string, _ Command) error {
	user, err := s.linkedUser(ctx, chatID)
	if err != nil {
		if errors.Is(err, domain.ErrNotLinked) {
			return s.reply(ctx, chatID, msgNotLinked, nil)
		}
		return err
	}

	var b strings.Builder
	b.WriteString("<b>Tu perfil</b>\n\n")
	fmt.Fprintf(&b, "Nombre: %s\n", html.EscapeString(user.Name))
	fmt.Fprintf(&b, "Email: %s\n", html.EscapeString(user.Email))
	fmt.Fprintf(&b, "Rol: %s\n", roleLabel(user.Role))
	fmt.Fprintf(&b, "Notificaciones: %s", user.Preference.Label())

	return s.reply(ctx, chatID, b.String(), nil)
}

func roleLabel(r domain.UserRole) string {
	switch r {
	case domain.UserRoleResident:
		return "Residente"
	case domain.UserRoleStaff:
		return "Personal"
	case domain.UserRoleAdmin:
		return "Administración"
	}
	return string(r)
}
