package repos

import (
	"housingbuddy/internal/domain"

	"github.com/jmoiron/sqlx"
)

type FavoriteRepo struct{ db *sqlx.DB }

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

func (r *FavoriteRepo) Add(userID string, propertyID int64) error {
	_, err := r.db.Exec(`
	  INSERT INTO favorites(user_id, property_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id, property_id) DO NOTHING
	`, userID, propertyID)
	return err
}

func (r *FavoriteRepo) Remove(userID string, propertyID int64) error {
	_, err := r.db.Exec(`DELETE FROM favorites WHERE user_id=? AND property_id=?`, userID, propertyID)
	return err
}

func (r *FavoriteRepo) Exists(userID string, propertyID int64) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM favorites WHERE user_id=? AND property_id=?`, userID, propertyID)
	return n > 0, err
}

// List returns the user's favorites whose property is not in the trash.
func (r *FavoriteRepo) List(userID string) ([]domain.Favorite, error) {
	out := []domain.Favorite{}
	err := r.db.Select(&out, `
	  SELECT p.id AS property_id, p.title, p.address, p.deposit, p.monthly_rent, p.is_active, f.created_at
	  FROM favorites f
	  JOIN properties p ON p.id = f.property_id
	  WHERE f.user_id = ? AND p.is_deleted = 0
	  ORDER BY f.created_at DESC, p.id DESC
	`, userID)
	return out, err
}
