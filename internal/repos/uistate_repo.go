package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// UIStateRepo keeps per-session UI state in SQLite. It satisfies uistate.Store.
type UIStateRepo struct{ db *sqlx.DB }

func NewUIStateRepo(db *sqlx.DB) *UIStateRepo { return &UIStateRepo{db: db} }

func (r *UIStateRepo) Get(ctx context.Context, sid, key string) (string, bool, error) {
	var v string
	err := r.db.GetContext(ctx, &v, `SELECT value FROM ui_state WHERE session_id=? AND key=?`, sid, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *UIStateRepo) Set(ctx context.Context, sid string, kv map[string]string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for k, v := range kv {
		if _, err := tx.ExecContext(ctx, `
		  INSERT INTO ui_state(session_id, key, value, updated_at)
		  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
		  ON CONFLICT(session_id, key) DO UPDATE SET value=excluded.value, updated_at=CURRENT_TIMESTAMP
		`, sid, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *UIStateRepo) Delete(ctx context.Context, sid string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM ui_state WHERE session_id=? AND key IN (?)`, sid, keys)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
