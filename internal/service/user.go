package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"invare-backend/internal/apperr"
	"invare-backend/internal/domain"
	"invare-backend/internal/repository"
)

const (
	loginCodePrefix   = "awa"
	loginCodeDigits   = 6
	loginCodeCost     = 10
	loginCodeAttempts = 100
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, actor Actor, in CreateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("only admins can create users")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.Phone)

	exists, err := s.userRepo.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("email is already registered")
	}
	exists, err = s.userRepo.PhoneExists(ctx, phone, 0)
	if err != nil {
		return nil, fmt.Errorf("check phone: %w", err)
	}
	if exists {
		return nil, apperr.Conflict("phone is already registered")
	}

	role := in.Role
	if role == "" {
		role = domain.UserRoleClient
	}

	user := &domain.User{
		Name:        in.Name,
		Email:       email,
		Phone:       phone,
		CompanyName: in.CompanyName,
		Role:        role,
	}

	switch {
	case role.IsStaff():
		if in.Password == "" {
			return nil, apperr.BadRequest("password is required for staff accounts")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), staffPasswordCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	default:
		if err := s.issueLoginCode(ctx, user); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, actor Actor, search string, role domain.UserRole, page, limit int32) ([]domain.User, int32, error) {
	if !actor.IsStaff() {
		return nil, 0, apperr.Forbidden("only staff can list users")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.userRepo.List(ctx, search, role, page, limit)
}

func (s *userService) GetUser(ctx context.Context, actor Actor, id int32) (*domain.User, error) {
	if !actor.IsStaff() && actor.ID != id {
		return nil, apperr.Forbidden("you do not have access to this user")
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor Actor, id int32, in UpdateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("only admins can update users")
	}
	user, err := s.userRepo.GetByID(ctx, id)
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
	if in.Role != nil {
		user.Role = *in.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor Actor, id int32) error {
	if !actor.IsAdmin() {
		return apperr.Forbidden("only admins can delete users")
	}
	if actor.ID == id {
		return apperr.BadRequest("you cannot delete your own account")
	}
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("user not found")
		}
		return fmt.Errorf("get user: %w", err)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *userService) RegenerateLoginCode(ctx context.Context, actor Actor, id int32) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, apperr.Forbidden("only admins can regenerate login codes")
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.Role != domain.UserRoleClient {
		return nil, apperr.BadRequest("login codes are only issued to clients")
	}

	if err := s.issueLoginCode(ctx, user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// issueLoginCode sets a fresh unique login code on the user. The raw code is
// stored alongside the hash so an admin can read it back to the client.
func (s *userService) issueLoginCode(ctx context.Context, user *domain.User) error {
	for attempt := 0; attempt < loginCodeAttempts; attempt++ {
		code, err := generateLoginCode()
		if err != nil {
			return fmt.Errorf("generate login code: %w", err)
		}
		exists, err := s.userRepo.RawLoginCodeExists(ctx, code)
		if err != nil {
			return fmt.Errorf("check login code: %w", err)
		}
		if exists {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(code), loginCodeCost)
		if err != nil {
			return fmt.Errorf("hash login code: %w", err)
		}
		user.LoginCodeHash = string(hash)
		user.RawLoginCode = code
		return nil
	}
	return fmt.Errorf("could not find a unique login code after %d attempts", loginCodeAttempts)
}

func generateLoginCode() (string, error) {
	var b strings.Builder
	b.WriteString(loginCodePrefix)
	for i := 0; i < loginCodeDigits; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
