package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"invare-backend/internal/domain"
	"invare-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, phone, company_name, role, COALESCE(password_hash, ''), COALESCE(login_code_hash, ''), COALESCE(raw_login_code, ''), created_on, updated_on`

func scanUser(row interface{ Scan(...interface{}) error }) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.CompanyName, &u.Role,
		&u.PasswordHash, &u.LoginCodeHash, &u.RawLoginCode, &u.CreatedOn, &u.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, email, phone, company_name, role, password_hash, login_code_hash, raw_login_code, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.Phone, u.CompanyName, u.Role,
		u.PasswordHash, u.LoginCodeHash, u.RawLoginCode, time.Now()).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) GetByRawLoginCode(ctx context.Context, code string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE raw_login_code = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, code))
}

func (r *userRepository) EmailExists(ctx context.Context, email string, excludeID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1) AND id <> $2)`
	err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&exists)
	return exists, err
}

func (r *userRepository) PhoneExists(ctx context.Context, phone string, excludeID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE phone = $1 AND id <> $2)`
	err := r.db.QueryRowContext(ctx, query, phone, excludeID).Scan(&exists)
	return exists, err
}

func (r *userRepository) RawLoginCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE raw_login_code = $1)`
	err := r.db.QueryRowContext(ctx, query, code).Scan(&exists)
	return exists, err
}

func (r *userRepository) List(ctx context.Context, search string, role domain.UserRole, page, limit int32) ([]domain.User, int32, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+search+"%")
		argIdx++
	}
	if role != "" {
		where += fmt.Sprintf(" AND role = $%d", argIdx)
		args = append(args, role)
		argIdx++
	}

	var count int32
	countQuery := `SELECT count(*) FROM users` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users` + where +
		fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, count, rows.Err()
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET name=$1, email=$2, phone=$3, company_name=$4, role=$5,
	          password_hash=NULLIF($6, ''), login_code_hash=NULLIF($7, ''), raw_login_code=NULLIF($8, ''), updated_on=$9
	          WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.Phone, u.CompanyName, u.Role,
		u.PasswordHash, u.LoginCodeHash, u.RawLoginCode, time.Now(), u.ID)
	return err
}

func (r *userRepository) Delete(ctx context.Context, id int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}
