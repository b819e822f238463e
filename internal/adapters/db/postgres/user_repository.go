package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"notehive/internal/domain/auth"

	"github.com/lib/pq"
)

// UserRepository is a Postgres implementation of auth.Repository
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository constructs a UserRepository
func NewUserRepository(db *sql.DB) *UserRepository { return &UserRepository{db: db} }

// scanner is implemented by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

const userColumns = `id,google_id,email,name,description,image_path,fcm_token,personal_workspace_id,created_at,updated_at`

// scanUser scans a user row into an auth.User
func scanUser(row scanner) (*auth.User, error) {
	var u auth.User
	err := row.Scan(&u.ID, &u.GoogleID, &u.Email, &u.Profile.Name, &u.Profile.Description,
		&u.Profile.ImagePath, &u.FCMToken, &u.PersonalWorkspaceID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetUser(id string) (*auth.User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetUserByGoogleID(googleID string) (*auth.User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE google_id=$1`, googleID)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by google id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetUserByEmail(email string) (*auth.User, error) {
	row := r.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) CreateUser(user *auth.User) error {
	_, err := r.db.Exec(`INSERT INTO users (`+userColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		user.ID, user.GoogleID, user.Email, user.Profile.Name, user.Profile.Description,
		user.Profile.ImagePath, user.FCMToken, user.PersonalWorkspaceID, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return auth.ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateUser(user *auth.User) error {
	res, err := r.db.Exec(`UPDATE users SET google_id=$2,email=$3,name=$4,description=$5,image_path=$6,fcm_token=$7,personal_workspace_id=$8,updated_at=$9 WHERE id=$1`,
		user.ID, user.GoogleID, user.Email, user.Profile.Name, user.Profile.Description,
		user.Profile.ImagePath, user.FCMToken, user.PersonalWorkspaceID, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(id string) error {
	res, err := r.db.Exec(`DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ListUsersByIDs(ids []string) ([]*auth.User, error) {
	rows, err := r.db.Query(`SELECT `+userColumns+` FROM users WHERE id = ANY($1) ORDER BY created_at ASC`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]*auth.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
