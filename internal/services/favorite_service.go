package services

import (
	"housingbuddy/internal/domain"
	"housingbuddy/internal/repos"
)

type FavoriteService struct {
	Favs  *repos.FavoriteRepo
	Props *PropertyService
}

func (s *FavoriteService) List(userID string) ([]domain.Favorite, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.Favs.List(userID)
}

// Add is idempotent. Trashed properties cannot be favorited.
func (s *FavoriteService) Add(userID string, propertyID int64) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if _, err := s.Props.Get(propertyID); err != nil {
		return err
	}
	return s.Favs.Add(userID, propertyID)
}

func (s *FavoriteService) Remove(userID string, propertyID int64) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	return s.Favs.Remove(userID, propertyID)
}

func (s *FavoriteService) Status(userID string, propertyID int64) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.Favs.Exists(userID, propertyID)
}
