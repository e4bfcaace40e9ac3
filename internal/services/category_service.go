package services

import (
	"context"
	"encoding/json"
	"slices"

	applog "housingbuddy/internal/log"
	"housingbuddy/internal/uistate"
	"housingbuddy/internal/validate"
)

// DefaultCategories are always offered and cannot be removed.
var DefaultCategories = []string{"원룸", "투룸", "오피스텔", "아파트", "쉐어하우스"}

const maxCustomCategories = 20

// CategoryService keeps a session's custom categories as a JSON array under
// uistate.KeyCustomCategories.
type CategoryService struct {
	Store uistate.Store
}

// List returns the defaults followed by the session's custom categories.
func (s *CategoryService) List(ctx context.Context, sid string) ([]string, error) {
	custom, err := s.custom(ctx, sid)
	if err != nil {
		return nil, err
	}
	return append(slices.Clone(DefaultCategories), custom...), nil
}

func (s *CategoryService) Add(ctx context.Context, sid, name string) ([]string, error) {
	name, ok := validate.Category(name)
	if !ok {
		return nil, invalid(map[string]string{"name": "must be 1-30 letters, digits or spaces"})
	}
	custom, err := s.custom(ctx, sid)
	if err != nil {
		return nil, err
	}
	if slices.Contains(DefaultCategories, name) || slices.Contains(custom, name) {
		return s.List(ctx, sid)
	}
	if len(custom) >= maxCustomCategories {
		return nil, invalid(map[string]string{"name": "too many custom categories"})
	}
	if err := s.save(ctx, sid, append(custom, name)); err != nil {
		return nil, err
	}
	return s.List(ctx, sid)
}

func (s *CategoryService) Remove(ctx context.Context, sid, name string) ([]string, error) {
	custom, err := s.custom(ctx, sid)
	if err != nil {
		return nil, err
	}
	i := slices.Index(custom, name)
	if i < 0 {
		return nil, ErrNotFound
	}
	if err := s.save(ctx, sid, slices.Delete(custom, i, i+1)); err != nil {
		return nil, err
	}
	return s.List(ctx, sid)
}

// custom reads the stored list; a corrupt value reads as empty.
func (s *CategoryService) custom(ctx context.Context, sid string) ([]string, error) {
	raw, ok, err := s.Store.Get(ctx, sid, uistate.KeyCustomCategories)
	if err != nil || !ok {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		applog.Event("warn", "categories.decode.fail", err, nil)
		return nil, nil
	}
	return out, nil
}

func (s *CategoryService) save(ctx context.Context, sid string, names []string) error {
	if len(names) == 0 {
		return s.Store.Delete(ctx, sid, uistate.KeyCustomCategories)
	}
	b, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return s.Store.Set(ctx, sid, map[string]string{uistate.KeyCustomCategories: string(b)})
}
