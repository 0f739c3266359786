package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/hotel-front-desk/internal/model"
	"github.com/iliyamo/hotel-front-desk/internal/utils"
)

// AdminRepo stores front desk accounts.
type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// Create hashes the password and inserts the account, returning its ID.
// A taken username yields ErrDuplicate.
func (r *AdminRepo) Create(ctx context.Context, username, password, fullName, role string, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admins (username, password_hash, full_name, role) VALUES (?,?,?,?)",
		username, hash, nullString(strings.TrimSpace(fullName)), role)
	if err != nil {
		return 0, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const adminColumns = "admin_id,username,password_hash,full_name,role,created_at"

func scanAdmin(s rowScanner) (model.Admin, error) {
	var (
		a        model.Admin
		fullName sql.NullString
	)
	err := s.Scan(&a.ID, &a.Username, &a.PasswordHash, &fullName, &a.Role, &a.CreatedAt)
	a.FullName = fullName.String
	return a, translate(err)
}

// GetByUsername fetches an account by normalized username.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (model.Admin, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	return scanAdmin(r.DB.QueryRowContext(ctx,
		"SELECT "+adminColumns+" FROM admins WHERE username=? LIMIT 1", username))
}

// GetByID fetches an account by id.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.Admin, error) {
	return scanAdmin(r.DB.QueryRowContext(ctx,
		"SELECT "+adminColumns+" FROM admins WHERE admin_id=? LIMIT 1", id))
}

// Count returns the number of accounts.  Used to decide whether to create
// the bootstrap admin at startup.
func (r *AdminRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins").Scan(&n)
	return n, err
}
