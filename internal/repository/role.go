package repository

import (
	"context"
	"errors"
	"fmt"

	"klinik-sentosa-server/internal/models"

	"gorm.io/gorm"
)

// RoleRepository reads and writes user_roles.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// RolesForUser returns at most limit role rows of an identity. Callers ask
// for two rows so that duplicates left by older data are detectable.
func (r *RoleRepository) RolesForUser(ctx context.Context, userID string, limit int) ([]models.UserRole, error) {
	var roles []models.UserRole
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(limit).
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("lookup roles for %s: %w", userID, err)
	}
	return roles, nil
}

// AssignRole gives an identity its single role.
func (r *RoleRepository) AssignRole(ctx context.Context, userID string, role models.Role) (*models.UserRole, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("assign role: unknown role %q", role)
	}

	existing, err := r.RolesForUser(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrRoleAlreadyAssigned
	}

	userRole := &models.UserRole{UserID: userID, Role: role}
	if err := r.db.WithContext(ctx).Create(userRole).Error; err != nil {
		// Lost a race against a concurrent assignment.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoleAlreadyAssigned
		}
		return nil, fmt.Errorf("assign role: %w", err)
	}
	return userRole, nil
}
