package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"rentapp_backend/internal/model"
	"rentapp_backend/internal/service"
)

// SeedAdmin makes sure an admin with the given e-mail exists. An existing
// account with that e-mail is left untouched, whatever its role.
func SeedAdmin(ctx context.Context, db *gorm.DB, log *slog.Logger, username, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("admin email and password are required")
	}

	email = service.NormalizeEmail(email)

	var existing model.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.Role != model.RoleAdmin {
			log.Warn("seed admin email belongs to a non-admin account", slog.Uint64("user_id", uint64(existing.ID)))
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("look up admin: %w", err)
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	admin := &model.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     model.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	log.Info("admin user seeded", slog.Uint64("user_id", uint64(admin.ID)))
	return admin, nil
}
