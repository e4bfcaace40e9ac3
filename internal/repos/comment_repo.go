package repos

import (
	"time"

	"housingbuddy/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CommentRepo struct{ db *sqlx.DB }

func NewCommentRepo(db *sqlx.DB) *CommentRepo { return &CommentRepo{db: db} }

const commentCols = `id, property_id, user_id, author_name, content, author_contact, is_admin_only,
  admin_memo, admin_reply, is_deleted, created_at, updated_at`

// ListByProperty returns the live comments of a property, oldest first.
func (r *CommentRepo) ListByProperty(propertyID int64) ([]domain.Comment, error) {
	out := []domain.Comment{}
	err := r.db.Select(&out, `
	  SELECT `+commentCols+`
	  FROM comments
	  WHERE property_id = ? AND is_deleted = 0
	  ORDER BY created_at, id
	`, propertyID)
	return out, err
}

// Get returns a live comment; deleted comments read as sql.ErrNoRows.
func (r *CommentRepo) Get(id int64) (domain.Comment, error) {
	var c domain.Comment
	err := r.db.Get(&c, `SELECT `+commentCols+` FROM comments WHERE id = ? AND is_deleted = 0`, id)
	return c, err
}

func (r *CommentRepo) Create(c *domain.Comment, now time.Time) error {
	ts := now.UTC().Format(time.RFC3339)
	res, err := r.db.Exec(`
	  INSERT INTO comments(property_id, user_id, author_name, content, author_contact, is_admin_only, created_at, updated_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, c.PropertyID, c.UserID, c.AuthorName, c.Content, c.AuthorContact, c.IsAdminOnly, ts, ts)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID, c.CreatedAt, c.UpdatedAt = id, ts, ts
	return nil
}

func (r *CommentRepo) Update(c *domain.Comment, now time.Time) error {
	ts := now.UTC().Format(time.RFC3339)
	_, err := r.db.Exec(`
	  UPDATE comments
	  SET content = ?, author_contact = ?, is_admin_only = ?, admin_memo = ?, admin_reply = ?, updated_at = ?
	  WHERE id = ? AND is_deleted = 0
	`, c.Content, c.AuthorContact, c.IsAdminOnly, c.AdminMemo, c.AdminReply, ts, c.ID)
	if err == nil {
		c.UpdatedAt = ts
	}
	return err
}

func (r *CommentRepo) SoftDelete(id int64, now time.Time) (bool, error) {
	res, err := r.db.Exec(`UPDATE comments SET is_deleted = 1, updated_at = ? WHERE id = ? AND is_deleted = 0`,
		now.UTC().Format(time.RFC3339), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
