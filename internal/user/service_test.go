package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dangarahotel/frontdesk-backend/internal/auth"
	"github.com/dangarahotel/frontdesk-backend/internal/permission"
)

type fakeRepo struct {
	users map[string]*User
	seq   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*User{}}
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return ErrUsernameTaken
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("u%d", r.seq)
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(ctx context.Context) ([]*User, error) {
	var out []*User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeRepo) CountAdmins(ctx context.Context) (int, error) {
	count := 0
	for _, u := range r.users {
		if u.Role == permission.RoleAdmin {
			count++
		}
	}
	return count, nil
}

func newTestService(t *testing.T) (Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	hasher := auth.NewBcryptPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewJWTManager("test-secret", time.Hour)
	return NewService(repo, hasher, tokens, zap.NewNop()), repo
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, err := svc.Create(ctx, CreateRequest{
		Username: "dilshod",
		FullName: "Dilshod K",
		Password: "hunter2",
		Role:     permission.RoleReceptionist,
	})
	require.NoError(t, err)

	t.Run("valid credentials issue a token with claims", func(t *testing.T) {
		res, err := svc.Login(ctx, "dilshod", "hunter2")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "/", res.LandingPath)
		assert.Contains(t, res.Permissions, permission.KeyBookings)
		assert.NotContains(t, res.Permissions, permission.KeyUsers)

		claims, err := auth.NewJWTManager("test-secret", time.Hour).ParseAndValidate(res.Token)
		require.NoError(t, err)
		assert.Equal(t, "dilshod", claims.Username)
		assert.Equal(t, "receptionist", claims.Role)
	})

	t.Run("wrong password and unknown user look identical", func(t *testing.T) {
		_, errPass := svc.Login(ctx, "dilshod", "wrong")
		_, errUser := svc.Login(ctx, "nobody", "hunter2")
		assert.ErrorIs(t, errPass, ErrInvalidCredentials)
		assert.ErrorIs(t, errUser, ErrInvalidCredentials)
	})

	t.Run("accountant lands on reports when dashboard is revoked", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{
			Username:    "hisobchi",
			Password:    "secret",
			Role:        permission.RoleAccountant,
			Permissions: []string{"reports"},
		})
		require.NoError(t, err)

		res, err := svc.Login(ctx, "hisobchi", "secret")
		require.NoError(t, err)
		// dashboard is always re-added by normalization, so the landing
		// path stays "/"
		assert.Equal(t, "/", res.LandingPath)
		assert.Contains(t, res.Permissions, permission.KeyDashboard)
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	t.Run("stores normalized permissions and hashed password", func(t *testing.T) {
		u, err := svc.Create(ctx, CreateRequest{
			Username:    "aziza",
			Password:    "pw",
			Role:        permission.RoleReceptionist,
			Permissions: []string{" Rooms ", "rooms", "bogus"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"dashboard", "rooms"}, u.Permissions)
		assert.NotEqual(t, "pw", repo.users[u.ID].PasswordHash)
	})

	t.Run("empty permissions fall back to role defaults", func(t *testing.T) {
		u, err := svc.Create(ctx, CreateRequest{
			Username: "bek",
			Password: "pw",
			Role:     permission.RoleAccountant,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"dashboard", "reports"}, u.Permissions)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{
			Username: "aziza", Password: "pw", Role: permission.RoleAccountant,
		})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("invalid role", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateRequest{
			Username: "eve", Password: "pw", Role: "manager",
		})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})
}

func TestDeleteGuards(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	admin, err := svc.Create(ctx, CreateRequest{
		Username: "admin", Password: "pw", Role: permission.RoleAdmin,
	})
	require.NoError(t, err)
	staff, err := svc.Create(ctx, CreateRequest{
		Username: "staff", Password: "pw", Role: permission.RoleReceptionist,
	})
	require.NoError(t, err)

	t.Run("cannot delete yourself", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, admin.ID, admin.ID), ErrSelfDelete)
	})

	t.Run("cannot delete the last admin", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, admin.ID, staff.ID), ErrLastAdmin)
	})

	t.Run("cannot demote the last admin", func(t *testing.T) {
		role := permission.RoleAccountant
		_, err := svc.Update(ctx, admin.ID, UpdateRequest{Role: &role})
		assert.ErrorIs(t, err, ErrLastAdmin)
	})

	t.Run("second admin unblocks both", func(t *testing.T) {
		admin2, err := svc.Create(ctx, CreateRequest{
			Username: "admin2", Password: "pw", Role: permission.RoleAdmin,
		})
		require.NoError(t, err)
		assert.NoError(t, svc.Delete(ctx, admin2.ID, admin.ID))
	})
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the bootstrap account once", func(t *testing.T) {
		svc, repo := newTestService(t)
		require.NoError(t, svc.EnsureAdmin(ctx, "admin", "changeme"))
		count, _ := repo.CountAdmins(ctx)
		assert.Equal(t, 1, count)

		require.NoError(t, svc.EnsureAdmin(ctx, "admin", "changeme"))
		count, _ = repo.CountAdmins(ctx)
		assert.Equal(t, 1, count)
	})

	t.Run("skips silently without a password", func(t *testing.T) {
		svc, repo := newTestService(t)
		require.NoError(t, svc.EnsureAdmin(ctx, "admin", ""))
		count, _ := repo.CountAdmins(ctx)
		assert.Equal(t, 0, count)
	})
}
