package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"housingbuddy/internal/domain"
	"housingbuddy/internal/repos"
	"housingbuddy/internal/translate"
	"housingbuddy/internal/validate"
)

type PropertyService struct {
	Props *repos.PropertyRepo
	Now   func() time.Time
}

func NewPropertyService(props *repos.PropertyRepo) *PropertyService {
	return &PropertyService{Props: props, Now: time.Now}
}

type PropertyInput struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Address        string   `json:"address" validate:"required,max=300"`
	Deposit        int64    `json:"deposit" validate:"gte=0"`
	MonthlyRent    int64    `json:"monthlyRent" validate:"gte=0"`
	MaintenanceFee *int64   `json:"maintenanceFee" validate:"omitempty,gte=0"`
	Description    string   `json:"description" validate:"max=5000"`
	Photos         []string `json:"photos" validate:"max=30,dive,http_url"`
	Category       string   `json:"category" validate:"category"`
	OriginalURL    string   `json:"originalUrl" validate:"omitempty,http_url,max=500"`
	IsActive       *bool    `json:"isActive"`
}

type ListQuery struct {
	Category   string
	Q          string
	ActiveOnly bool
	Page       int
	PageSize   int
}

func (s *PropertyService) List(q ListQuery) ([]domain.Property, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	return s.Props.List(repos.PropertyFilter{
		Category:   strings.TrimSpace(q.Category),
		Q:          strings.TrimSpace(q.Q),
		ActiveOnly: q.ActiveOnly,
		Limit:      q.PageSize,
		Offset:     (q.Page - 1) * q.PageSize,
	})
}

// Get returns a property that is not in the trash.
func (s *PropertyService) Get(id int64) (domain.Property, error) {
	p, err := s.Props.Get(id)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && p.IsDeleted) {
		return domain.Property{}, ErrNotFound
	}
	return p, err
}

func (s *PropertyService) Create(in PropertyInput) (domain.Property, error) {
	p, err := s.fromInput(in)
	if err != nil {
		return domain.Property{}, err
	}
	if err := s.Props.Create(&p, s.Now()); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

func (s *PropertyService) Update(id int64, in PropertyInput) (domain.Property, error) {
	p, err := s.fromInput(in)
	if err != nil {
		return domain.Property{}, err
	}
	p.ID = id
	ok, err := s.Props.Update(&p, s.Now())
	if err != nil {
		return domain.Property{}, err
	}
	if !ok {
		return domain.Property{}, ErrNotFound
	}
	return s.Get(id)
}

func (s *PropertyService) fromInput(in PropertyInput) (domain.Property, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Address = strings.TrimSpace(in.Address)
	in.Category = strings.TrimSpace(in.Category)
	if err := invalid(validate.Struct(in)); err != nil {
		return domain.Property{}, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	return domain.Property{
		Title:          in.Title,
		Address:        in.Address,
		Deposit:        in.Deposit,
		MonthlyRent:    in.MonthlyRent,
		MaintenanceFee: in.MaintenanceFee,
		Description:    in.Description,
		Photos:         in.Photos,
		Category:       in.Category,
		OriginalURL:    in.OriginalURL,
		IsActive:       active,
	}, nil
}

// ---------- soft-delete lifecycle ----------

// Delete moves an active property to the trash.
func (s *PropertyService) Delete(id int64) error {
	return s.transition(s.Props.SoftDelete(id, s.Now()))
}

// Restore returns a trashed property to the listing.
func (s *PropertyService) Restore(id int64) error {
	return s.transition(s.Props.Restore(id))
}

// Purge removes a trashed property for good.
func (s *PropertyService) Purge(id int64) error {
	return s.transition(s.Props.Purge(id))
}

func (s *PropertyService) transition(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *PropertyService) Trash() ([]domain.Property, error) {
	return s.Props.Trash()
}

// ---------- translation ----------

// TranslatableItems lists the text fields of every property in the listing.
func (s *PropertyService) TranslatableItems(ctx context.Context) ([]translate.Item, error) {
	props, err := s.Props.List(repos.PropertyFilter{})
	if err != nil {
		return nil, err
	}
	var items []translate.Item
	for _, p := range props {
		items = append(items, PropertyItems(p)...)
	}
	return items, nil
}

// PropertyItems keys each non-empty text field as "{field}_{id}".
func PropertyItems(p domain.Property) []translate.Item {
	items := make([]translate.Item, 0, len(domain.PropertyTextFields))
	for _, f := range domain.PropertyTextFields {
		if t := p.Text(f); t != "" {
			items = append(items, translate.Item{Key: FieldKey(f, p.ID), Text: t})
		}
	}
	return items
}

func FieldKey(field string, id int64) string { return fmt.Sprintf("%s_%d", field, id) }
