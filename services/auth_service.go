package services

import (
	"context"
	"errors"
	"strings"

	"free-gift-coupon/models"
	"free-gift-coupon/repositories"
	"free-gift-coupon/utils"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthService struct {
	users  UserStore
	tokens *utils.TokenIssuer
}

func NewAuthService(users UserStore, tokens *utils.TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register always creates customers; admins are provisioned in the database.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: hashedPassword,
		Role:     models.RoleCustomer,
		FullName: req.FullName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.loginResponse(user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, ErrInvalidCredentials
	}

	return s.loginResponse(user)
}

func (s *AuthService) loginResponse(user *models.User) (*models.LoginResponse, error) {
	token, err := s.tokens.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: *user}, nil
}
