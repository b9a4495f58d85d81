package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"invare-backend/internal/apperr"
	"invare-backend/internal/domain"
	"invare-backend/internal/repository"
	"invare-backend/internal/security"
)

const staffPasswordCost = 12

type authService struct {
	userRepo      repository.UserRepository
	tokenManager  security.TokenManager
	adminSetupKey string
}

func NewAuthService(userRepo repository.UserRepository, tokenManager security.TokenManager, adminSetupKey string) AuthService {
	return &authService{
		userRepo:      userRepo,
		tokenManager:  tokenManager,
		adminSetupKey: adminSetupKey,
	}
}

func (s *authService) RegisterAdmin(ctx context.Context, setupKey string, in RegisterAdminInput) (*domain.User, string, error) {
	if s.adminSetupKey == "" || setupKey != s.adminSetupKey {
		return nil, "", apperr.Forbidden("invalid setup key")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	exists, err := s.userRepo.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, "", apperr.Conflict("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), staffPasswordCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        email,
		Phone:        in.Phone,
		CompanyName:  in.CompanyName,
		Role:         domain.UserRoleAdmin,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create admin: %w", err)
	}

	token, err := s.tokenManager.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", apperr.Unauthorized("invalid email or password")
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}

	// Clients have no password; they sign in with a code.
	if !user.Role.IsStaff() || user.PasswordHash == "" {
		return nil, "", apperr.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.Unauthorized("invalid email or password")
	}

	token, err := s.tokenManager.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

func (s *authService) LoginWithCode(ctx context.Context, code string) (*domain.User, string, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, "", apperr.BadRequest("login code is required")
	}

	user, err := s.userRepo.GetByRawLoginCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", apperr.Unauthorized("invalid login code")
		}
		return nil, "", fmt.Errorf("get user: %w", err)
	}
	if !user.HasLoginCode() {
		return nil, "", apperr.Unauthorized("invalid login code")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.LoginCodeHash), []byte(code)); err != nil {
		return nil, "", apperr.Unauthorized("invalid login code")
	}

	token, err := s.tokenManager.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

func (s *authService) GetProfile(ctx context.Context, actor Actor) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, actor Actor, in UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			exists, err := s.userRepo.EmailExists(ctx, email, user.ID)
			if err != nil {
				return nil, fmt.Errorf("check email: %w", err)
			}
			if exists {
				return nil, apperr.Conflict("email is already registered")
			}
			user.Email = email
		}
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone != user.Phone {
			exists, err := s.userRepo.PhoneExists(ctx, phone, user.ID)
			if err != nil {
				return nil, fmt.Errorf("check phone: %w", err)
			}
			if exists {
				return nil, apperr.Conflict("phone is already registered")
			}
			user.Phone = phone
		}
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.CompanyName != nil {
		user.CompanyName = *in.CompanyName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, actor Actor, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("user not found")
		}
		return fmt.Errorf("get user: %w", err)
	}
	if user.PasswordHash == "" {
		return apperr.BadRequest("account has no password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperr.Unauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), staffPasswordCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
