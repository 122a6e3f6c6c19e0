// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
)

type Repository interface {
	Upsert(ctx context.Context, user *User) (bool, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateRole(ctx context.Context, id string, role Role) (*User, error)
	SetPremium(ctx context.Context, email string, premium bool) error
	List(ctx context.Context, params ListUsersParams) ([]UserWithLessonCount, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `id, email, name, photo_url, role, is_premium, created_at, last_login_at`

// Upsert inserts a first-time principal or refreshes last_login_at for a
// returning one. Role and entitlement are never taken from the caller on
// the update path. Reports whether a row was created.
func (r *repository) Upsert(ctx context.Context, user *User) (bool, error) {
	query := `
		INSERT INTO users (id, email, name, photo_url, role, is_premium)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		ON CONFLICT (email) DO UPDATE
		SET last_login_at = NOW(),
		    name = COALESCE(NULLIF(EXCLUDED.name, ''), users.name),
		    photo_url = COALESCE(NULLIF(EXCLUDED.photo_url, ''), users.photo_url)
		RETURNING ` + userColumns + `, (xmax = 0) AS inserted`

	var row struct {
		User
		Inserted bool `db:"inserted"`
	}
	err := r.db.GetContext(ctx, &row, query,
		user.ID,
		user.Email,
		user.Name,
		user.PhotoURL,
		user.Role,
	)
	if err != nil {
		return false, fmt.Errorf("upsert user: %w", err)
	}

	*user = row.User
	return row.Inserted, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) UpdateRole(
	ctx context.Context,
	id string,
	role Role,
) (*User, error) {
	query := `
		UPDATE users SET role = $2
		WHERE id = $1
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query, id, role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update role: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	return &user, nil
}

func (r *repository) SetPremium(
	ctx context.Context,
	email string,
	premium bool,
) error {
	query := `UPDATE users SET is_premium = $2 WHERE email = $1`

	result, err := r.db.ExecContext(ctx, query, email, premium)
	if err != nil {
		return fmt.Errorf("set premium: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set premium: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set premium: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]UserWithLessonCount, int, error) {
	params.Normalize()

	where := "TRUE"
	var args []any
	argIdx := 1

	if params.Search != "" {
		where = fmt.Sprintf("(u.email ILIKE $%d OR u.name ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+core.EscapeLike(params.Search)+"%")
		argIdx++
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM users u WHERE " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT u.id, u.email, u.name, u.photo_url, u.role, u.is_premium,
		       u.created_at, u.last_login_at,
		       COUNT(l.id) AS lesson_count
		FROM users u
		LEFT JOIN lessons l ON l.creator_email = u.email
		WHERE %s
		GROUP BY u.id
		ORDER BY u.created_at DESC
		LIMIT $%d OFFSET $%d`,
		where, argIdx, argIdx+1)

	args = append(args, params.PageSize, params.Offset())

	var users []UserWithLessonCount
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}
