package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cortejtech/agency-admin/internal/db/models"
)

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

func byUsername(username string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: "username"}, Value: username}
}

// Authenticate checks username and password and returns the active user.
func (p *LocalProvider) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	var user models.User

	err := p.db.WithContext(ctx).Where(byUsername(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if !user.Active {
		return nil, ErrUserAccountDisabled
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return &user, nil
}

// Login reports whether the credentials belong to an active user.
func (p *LocalProvider) Login(ctx context.Context, username, password string) bool {
	_, err := p.Authenticate(ctx, username, password)
	if err != nil {
		log.Debug().Err(err).Str("username", username).Msg("login refused")
		return false
	}

	return true
}

// CreateUser creates a new active local user.
func (p *LocalProvider) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	tx := p.db.WithContext(ctx)

	var count int64

	q := tx.Model(&models.User{}).Where(byUsername(username))
	if email != "" {
		q = q.Or(clause.Eq{Column: clause.Column{Name: "email"}, Value: email})
	}

	if err := q.Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if count > 0 {
		return nil, ErrUserNameOrEmailExists
	}

	user := models.User{
		Active:   true,
		Username: username,
		Email:    email,
		Password: models.HashPassword(password),
	}

	if err := tx.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// ResetPassword sets a new password for username.
func (p *LocalProvider) ResetPassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return ErrEmptyCredentials
	}

	res := p.db.WithContext(ctx).Model(&models.User{}).
		Where(byUsername(username)).
		Update("password", models.HashPassword(newPassword))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// CountUsers returns the number of accounts.
func (p *LocalProvider) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error

	return count, err
}

// GetUserByID retrieves a user by ID.
func (p *LocalProvider) GetUserByID(ctx context.Context, userID uint64) (*models.User, error) {
	var user models.User
	if err := p.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return &user, nil
}
