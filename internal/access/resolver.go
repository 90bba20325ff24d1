// Package access resolves who is calling: the session's single role and
// optional profile. Lookup failures degrade to notices rather than errors.
package access

import (
	"context"
	"errors"
	"fmt"

	"klinik-sentosa-server/internal/models"
	"klinik-sentosa-server/internal/notify"
	"klinik-sentosa-server/internal/repository"
	"klinik-sentosa-server/internal/session"

	"go.uber.org/zap"
)

// AuthRoute is where the client sends callers without a session.
const AuthRoute = "/auth"

var (
	ErrNoRole        = errors.New("no role assigned")
	ErrAmbiguousRole = errors.New("more than one role assigned")
)

// RoleStore looks up role rows of an identity.
type RoleStore interface {
	RolesForUser(ctx context.Context, userID string, limit int) ([]models.UserRole, error)
}

// ProfileStore looks up a profile; it returns repository.ErrNotFound when absent.
type ProfileStore interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
}

// Resolution is the outcome of resolving one request.
type Resolution struct {
	Session  *session.Session
	Role     models.Role
	Profile  *models.Profile
	Notices  []notify.Notice
	Redirect string
}

// HasRole reports whether a single valid role was found.
func (r *Resolution) HasRole() bool {
	return r.Role != ""
}

// Resolver runs session -> role -> profile, once per request.
type Resolver struct {
	roles    RoleStore
	profiles ProfileStore
	logger   *zap.Logger
}

func NewResolver(roles RoleStore, profiles ProfileStore, logger *zap.Logger) *Resolver {
	return &Resolver{roles: roles, profiles: profiles, logger: logger}
}

// LookupRole returns the identity's single role. Zero rows yield ErrNoRole,
// more than one yields ErrAmbiguousRole.
func (r *Resolver) LookupRole(ctx context.Context, userID string) (models.Role, error) {
	rows, err := r.roles.RolesForUser(ctx, userID, 2)
	if err != nil {
		return "", err
	}
	switch len(rows) {
	case 0:
		return "", ErrNoRole
	case 1:
	default:
		return "", ErrAmbiguousRole
	}

	role, err := models.ParseRole(string(rows[0].Role))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoRole, err)
	}
	return role, nil
}

// Resolve never fails. A nil session yields a redirect to AuthRoute.
func (r *Resolver) Resolve(ctx context.Context, s *session.Session) *Resolution {
	res := &Resolution{Session: s}
	if s == nil {
		res.Redirect = AuthRoute
		return res
	}

	role, err := r.LookupRole(ctx, s.UserID)
	if err != nil {
		r.logger.Warn("role lookup failed", zap.String("user_id", s.UserID), zap.Error(err))
		res.Notices = append(res.Notices, notify.NoRole())
		return res
	}
	res.Role = role

	profile, err := r.profiles.FindByID(ctx, s.UserID)
	switch {
	case err == nil:
		res.Profile = profile
	case errors.Is(err, repository.ErrNotFound):
	default:
		r.logger.Error("profile lookup failed", zap.String("user_id", s.UserID), zap.Error(err))
		res.Notices = append(res.Notices, notify.Error(err.Error()))
	}
	return res
}
