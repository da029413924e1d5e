package user

import (
	"net/http"
	"time"

	"github.com/dangarahotel/frontdesk-backend/internal/permission"
	"github.com/dangarahotel/frontdesk-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrUsernameTaken      = apperror.New(http.StatusBadRequest, "username already exists")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid username or password")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "unknown role")
	ErrNoData             = apperror.New(http.StatusBadRequest, "no data to update")
	ErrSelfDelete         = apperror.New(http.StatusBadRequest, "cannot delete your own account")
	ErrLastAdmin          = apperror.New(http.StatusBadRequest, "cannot remove the last admin")
)

// User is a staff account. Permissions holds raw stored page keys; use
// EffectivePermissions for the normalized set. PasswordHash never crosses the
// HTTP boundary.
type User struct {
	ID           string
	Username     string
	FullName     string
	Role         permission.Role
	Permissions  []string
	PasswordHash string
	CreatedAt    time.Time
}

// EffectivePermissions returns the normalized permission set for the user.
func (u *User) EffectivePermissions() []permission.Key {
	return permission.Normalize(u.Permissions, u.Role)
}

// Can reports whether the user may open the given page.
func (u *User) Can(page permission.Key) bool {
	return permission.HasPermission(u.Role, u.Permissions, page)
}
