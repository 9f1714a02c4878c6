package repositories

import (
	"context"
	"database/sql"

	"ratehubBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, user.Email).Scan(&count); err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, models.ErrDuplicateEmail
	}

	result, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (username, email, password, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())
	`, user.Username, user.Email, user.Password)
	if err != nil {
		return models.User{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	user.ID = int(id)
	user.Password = ""
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	query := `
		SELECT id, username, email, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	query := `
		SELECT id, username, email, password, created_at, updated_at
		FROM users
		WHERE email = ?
	`
	var u models.User
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) UserExists(ctx context.Context, id int) (bool, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE id = ?`, id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int, hash string) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users SET password = ?, updated_at = NOW() WHERE id = ?
	`, hash, userID)
	return err
}

func (r *UserRepository) CreateSession(ctx context.Context, session models.Session) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (user_id, refresh_token, expires_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)
	`, session.UserID, session.RefreshToken, session.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	query := `
		SELECT user_id, refresh_token, expires_at
		FROM sessions
		WHERE refresh_token = ?
	`
	var s models.Session
	err := r.DB.QueryRowContext(ctx, query, refreshToken).Scan(&s.UserID, &s.RefreshToken, &s.ExpiresAt)
	if err != nil {
		return models.Session{}, err
	}
	return s, nil
}
