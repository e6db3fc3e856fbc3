package repositories

import (
	"database/sql"
	"strings"
	"time"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

type UserRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) Create(u models.User, passwordHash string) (models.User, error) {
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	res, err := r.db().ExecContext(ctx, `
		INSERT INTO users (email, password_hash, full_name, phone, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`, strings.ToLower(strings.TrimSpace(u.Email)), passwordHash, u.FullName, u.Phone, u.Role)
	if err != nil {
		return models.User{}, classify("user insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return r.GetByID(id)
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	var u models.User
	err := r.db().QueryRowContext(ctx, `
		SELECT id, email, full_name, phone, role, created_at, updated_at
		FROM users WHERE id=? LIMIT 1
	`, id).Scan(&u.ID, &u.Email, &u.FullName, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return models.User{}, classify("user select", err)
	}
	return u, nil
}

// GetByEmail returns the profile together with the stored password hash for
// credential verification.
func (r UserRepository) GetByEmail(email string) (models.User, string, error) {
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	var (
		u    models.User
		hash string
	)
	err := r.db().QueryRowContext(ctx, `
		SELECT id, email, password_hash, full_name, phone, role, created_at, updated_at
		FROM users WHERE email=? LIMIT 1
	`, strings.ToLower(strings.TrimSpace(email))).Scan(
		&u.ID, &u.Email, &hash, &u.FullName, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return models.User{}, "", domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return models.User{}, "", classify("user select", err)
	}
	return u, hash, nil
}

func (r UserRepository) SetRole(id int64, role string) error {
	ctx, cancel := opContext(r.Timeout)
	defer cancel()

	res, err := r.db().ExecContext(ctx,
		`UPDATE users SET role=?, updated_at=NOW() WHERE id=?`, role, id)
	if err != nil {
		return classify("user role update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
	}
	return nil
}
