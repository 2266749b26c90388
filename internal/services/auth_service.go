// internal/services/auth_service.go
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/meridianmade/storefront/internal/config"
	"github.com/meridianmade/storefront/internal/models"
	"github.com/meridianmade/storefront/internal/utils"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string            `json:"token"`
	Admin *models.AdminUser `json:"admin"`
}

type AuthService struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:     db,
		config: cfg,
	}
}

// Login authenticates an admin and issues a bearer token for the dashboard.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError("email and password are required")
	}

	var admin models.AdminUser
	err := s.db.WithContext(ctx).First(&admin, "email = ?", req.Email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("invalid credentials")
		}
		return nil, err
	}

	if !admin.CheckPassword(req.Password) {
		return nil, NewValidationError("invalid credentials")
	}

	token, err := utils.GenerateJWT(admin.ID, admin.Email, s.config.JWT.AccessTokenTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token: token,
		Admin: &admin,
	}, nil
}
