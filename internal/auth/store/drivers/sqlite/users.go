package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lumichat/lumichat/internal/auth/domain"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, email, password_hash, first_name, last_name, image, color, profile_setup, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, first_name, last_name, image, color, profile_setup, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash,
		u.FirstName, u.LastName, mapOptionalString(u.Image), u.Color,
		u.ProfileSetup, now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, userID, firstName, lastName, color string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET first_name = ?, last_name = ?, color = ?, profile_setup = 1, updated_at = ?
		WHERE id = ?`,
		firstName, lastName, color, time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) UpdateImage(ctx context.Context, userID string, image *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET image = ?, updated_at = ? WHERE id = ?`,
		mapOptionalString(image), time.Now().UTC(), userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow turns an update that matched nothing into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u     domain.User
		image sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &image, &u.Color,
		&u.ProfileSetup, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Image = mapNullString(image)
	return u, nil
}
