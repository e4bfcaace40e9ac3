package repos

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"housingbuddy/internal/domain"

	"github.com/jmoiron/sqlx"
)

var ErrDuplicate = errors.New("duplicate")

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id,email,name,password_hash,verified`

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts an unverified user; a taken email yields ErrDuplicate.
func (r *UserRepo) Create(u *domain.User) error {
	_, err := r.DB.Exec(`INSERT INTO users(id,email,name,password_hash,verified,updated_at)
	                     VALUES(?,?,?,?,?,?)`,
		u.ID, u.Email, u.Name, u.Hash, u.Verified, time.Now().UTC().Format(time.RFC3339))
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return ErrDuplicate
	}
	return err
}

// ---------- email verification ----------

func (r *UserRepo) PutVerificationToken(userID, token string, expires time.Time) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Only the latest token stays valid.
	if _, err := tx.Exec(`DELETE FROM verification_tokens WHERE user_id=?`, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO verification_tokens(token,user_id,expires_at) VALUES(?,?,?)`,
		token, userID, expires.UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return tx.Commit()
}

// ConsumeVerificationToken marks the token's user verified and deletes the
// token. Unknown or expired tokens yield sql.ErrNoRows.
func (r *UserRepo) ConsumeVerificationToken(token string, now time.Time) (string, error) {
	tx, err := r.DB.Beginx()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var row struct {
		UserID    string `db:"user_id"`
		ExpiresAt string `db:"expires_at"`
	}
	if err := tx.Get(&row, `SELECT user_id, expires_at FROM verification_tokens WHERE token=?`, token); err != nil {
		return "", err
	}
	if _, err := tx.Exec(`DELETE FROM verification_tokens WHERE token=?`, token); err != nil {
		return "", err
	}
	exp, err := time.Parse(time.RFC3339, row.ExpiresAt)
	if err != nil || now.After(exp) {
		_ = tx.Commit()
		return "", sql.ErrNoRows
	}
	if _, err := tx.Exec(`UPDATE users SET verified=1, updated_at=? WHERE id=?`,
		now.UTC().Format(time.RFC3339), row.UserID); err != nil {
		return "", err
	}
	return row.UserID, tx.Commit()
}

// ---------- sessions ----------

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.email,u.name,u.password_hash,u.verified
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
