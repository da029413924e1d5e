package user

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/dangarahotel/frontdesk-backend/internal/auth"
	"github.com/dangarahotel/frontdesk-backend/internal/permission"
)

type CreateRequest struct {
	Username    string
	FullName    string
	Password    string
	Role        permission.Role
	Permissions []string
}

type UpdateRequest struct {
	Username    *string
	FullName    *string
	Password    *string
	Role        *permission.Role
	Permissions []string
}

// LoginResult is what a successful login returns: the token plus everything
// the client needs to render its sidebar and land on the right page.
type LoginResult struct {
	Token       string
	User        *User
	Permissions []permission.Key
	LandingPath string
}

type Service interface {
	// Login verifies credentials and issues an access token. Wrong username
	// and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, req CreateRequest) (*User, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*User, error)
	// Delete removes a user. actorID guards against self-deletion and the
	// last-admin case.
	Delete(ctx context.Context, id, actorID string) error

	// EnsureAdmin creates the bootstrap admin account on first start so a
	// fresh deployment is never locked out.
	EnsureAdmin(ctx context.Context, username, password string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	tokens *auth.JWTManager
	log    *zap.Logger
}

func NewService(repo Repository, hasher auth.PasswordHasher, tokens *auth.JWTManager, log *zap.Logger) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		log:    log,
	}
}

func (s *service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(u.ID, u.Username, string(u.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:       token,
		User:        u,
		Permissions: u.EffectivePermissions(),
		LandingPath: permission.FirstAllowedPath(u.Role, u.Permissions),
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*User, error) {
	return s.repo.List(ctx)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	if !req.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:     req.Username,
		FullName:     req.FullName,
		Role:         req.Role,
		Permissions:  keysToStrings(permission.Normalize(req.Permissions, req.Role)),
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Username != nil {
		u.Username = *req.Username
		updated = true
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
		updated = true
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, ErrInvalidRole
		}
		if u.Role == permission.RoleAdmin && *req.Role != permission.RoleAdmin {
			if err := s.guardLastAdmin(ctx); err != nil {
				return nil, err
			}
		}
		u.Role = *req.Role
		updated = true
	}
	if req.Permissions != nil {
		u.Permissions = keysToStrings(permission.Normalize(req.Permissions, u.Role))
		updated = true
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
		updated = true
	}
	if !updated {
		return nil, ErrNoData
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return ErrSelfDelete
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == permission.RoleAdmin {
		if err := s.guardLastAdmin(ctx); err != nil {
			return err
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) EnsureAdmin(ctx context.Context, username, password string) error {
	count, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		s.log.Warn("no admin account exists and no bootstrap password configured")
		return nil
	}

	_, err = s.Create(ctx, CreateRequest{
		Username: username,
		FullName: "Administrator",
		Password: password,
		Role:     permission.RoleAdmin,
	})
	if err != nil {
		return err
	}
	s.log.Info("bootstrap admin account created", zap.String("username", username))
	return nil
}

// guardLastAdmin fails when demoting or deleting would leave zero admins.
func (s *service) guardLastAdmin(ctx context.Context) error {
	count, err := s.repo.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastAdmin
	}
	return nil
}

func keysToStrings(keys []permission.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
