package repos

import (
	"encoding/json"
	"strings"
	"time"

	"housingbuddy/internal/domain"
	applog "housingbuddy/internal/log"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type PropertyRepo struct {
	db *sqlx.DB
	sq sq.StatementBuilderType
}

func NewPropertyRepo(db *sqlx.DB) *PropertyRepo {
	return &PropertyRepo{db: db, sq: sq.StatementBuilder.PlaceholderFormat(sq.Question)}
}

var propertyCols = []string{
	"id", "title", "address", "deposit", "monthly_rent", "maintenance_fee", "description",
	"photos_json", "category", "original_url", "is_active", "is_deleted", "deleted_at",
	"created_at", "updated_at",
}

type PropertyFilter struct {
	Category   string
	Q          string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// List returns non-deleted properties, newest first.
func (r *PropertyRepo) List(f PropertyFilter) ([]domain.Property, error) {
	q := r.sq.Select(propertyCols...).From("properties").Where(sq.Eq{"is_deleted": 0})
	if f.Category != "" {
		q = q.Where(sq.Eq{"category": f.Category})
	}
	if f.Q != "" {
		like := "%" + strings.ToLower(f.Q) + "%"
		q = q.Where(sq.Or{
			sq.Like{"LOWER(title)": like},
			sq.Like{"LOWER(address)": like},
			sq.Like{"LOWER(description)": like},
		})
	}
	if f.ActiveOnly {
		q = q.Where(sq.Eq{"is_active": 1})
	}
	q = q.OrderBy("created_at DESC", "id DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit)).Offset(uint64(f.Offset))
	}
	return r.selectAll(q)
}

// Trash returns soft-deleted properties, most recently deleted first.
func (r *PropertyRepo) Trash() ([]domain.Property, error) {
	q := r.sq.Select(propertyCols...).From("properties").
		Where(sq.Eq{"is_deleted": 1}).
		OrderBy("deleted_at DESC", "id DESC")
	return r.selectAll(q)
}

// Get loads a property regardless of its deletion state.
func (r *PropertyRepo) Get(id int64) (domain.Property, error) {
	sqlStr, args, err := r.sq.Select(propertyCols...).From("properties").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return domain.Property{}, err
	}
	var p domain.Property
	if err := r.db.Get(&p, sqlStr, args...); err != nil {
		return domain.Property{}, err
	}
	hydrate(&p)
	return p, nil
}

func (r *PropertyRepo) Create(p *domain.Property, now time.Time) error {
	photos, err := encodePhotos(p.Photos)
	if err != nil {
		return err
	}
	ts := now.UTC().Format(time.RFC3339)
	sqlStr, args, err := r.sq.Insert("properties").
		Columns("title", "address", "deposit", "monthly_rent", "maintenance_fee", "description",
			"photos_json", "category", "original_url", "is_active", "created_at", "updated_at").
		Values(p.Title, p.Address, p.Deposit, p.MonthlyRent, p.MaintenanceFee, p.Description,
			photos, p.Category, p.OriginalURL, p.IsActive, ts, ts).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.Exec(sqlStr, args...)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID, p.PhotosJSON, p.CreatedAt, p.UpdatedAt = id, photos, ts, ts
	return nil
}

// Update rewrites the editable fields of a non-deleted property.
func (r *PropertyRepo) Update(p *domain.Property, now time.Time) (bool, error) {
	photos, err := encodePhotos(p.Photos)
	if err != nil {
		return false, err
	}
	sqlStr, args, err := r.sq.Update("properties").SetMap(map[string]any{
		"title":           p.Title,
		"address":         p.Address,
		"deposit":         p.Deposit,
		"monthly_rent":    p.MonthlyRent,
		"maintenance_fee": p.MaintenanceFee,
		"description":     p.Description,
		"photos_json":     photos,
		"category":        p.Category,
		"original_url":    p.OriginalURL,
		"is_active":       p.IsActive,
		"updated_at":      now.UTC().Format(time.RFC3339),
	}).Where(sq.Eq{"id": p.ID, "is_deleted": 0}).ToSql()
	if err != nil {
		return false, err
	}
	return r.execOne(sqlStr, args...)
}

// SoftDelete moves an active property to the trash.
func (r *PropertyRepo) SoftDelete(id int64, now time.Time) (bool, error) {
	sqlStr, args, err := r.sq.Update("properties").
		Set("is_deleted", 1).
		Set("is_active", 0).
		Set("deleted_at", now.UTC().Format(time.RFC3339)).
		Where(sq.Eq{"id": id, "is_deleted": 0}).ToSql()
	if err != nil {
		return false, err
	}
	return r.execOne(sqlStr, args...)
}

// Restore brings a trashed property back to the active listing. Like
// SoftDelete it leaves updated_at alone.
func (r *PropertyRepo) Restore(id int64) (bool, error) {
	sqlStr, args, err := r.sq.Update("properties").
		Set("is_deleted", 0).
		Set("is_active", 1).
		Set("deleted_at", nil).
		Where(sq.Eq{"id": id, "is_deleted": 1}).ToSql()
	if err != nil {
		return false, err
	}
	return r.execOne(sqlStr, args...)
}

// Purge hard-deletes a trashed property; comments and favorites cascade.
func (r *PropertyRepo) Purge(id int64) (bool, error) {
	sqlStr, args, err := r.sq.Delete("properties").Where(sq.Eq{"id": id, "is_deleted": 1}).ToSql()
	if err != nil {
		return false, err
	}
	return r.execOne(sqlStr, args...)
}

func (r *PropertyRepo) selectAll(q sq.SelectBuilder) ([]domain.Property, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	out := []domain.Property{}
	if err := r.db.Select(&out, sqlStr, args...); err != nil {
		return nil, err
	}
	for i := range out {
		hydrate(&out[i])
	}
	return out, nil
}

func (r *PropertyRepo) execOne(sqlStr string, args ...any) (bool, error) {
	res, err := r.db.Exec(sqlStr, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func hydrate(p *domain.Property) {
	p.Photos = []string{}
	if p.PhotosJSON == "" {
		return
	}
	if err := json.Unmarshal([]byte(p.PhotosJSON), &p.Photos); err != nil {
		applog.Event("warn", "property.photos.decode.fail", err, map[string]any{"property": p.ID})
		p.Photos = []string{}
	}
}

func encodePhotos(photos []string) (string, error) {
	if photos == nil {
		photos = []string{}
	}
	b, err := json.Marshal(photos)
	return string(b), err
}
