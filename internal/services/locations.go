package services

import (
	"context"
	"math"

	"civicreport-backend-go/internal/models"
	"civicreport-backend-go/internal/store"

	"github.com/jmoiron/sqlx"
)

const (
	locationNotFound = "Location not found"
	defaultRadiusKm  = 1.0
	maxRadiusKm      = 100.0
)

type LocationService struct {
	Locations *store.Locations
}

func NewLocationService(database *sqlx.DB) *LocationService {
	return &LocationService{Locations: store.NewLocations(database)}
}

func (s *LocationService) Create(ctx context.Context, latitude, longitude *float64) (models.Location, error) {
	if latitude == nil || longitude == nil {
		return models.Location{}, ErrValidation("latitude and longitude are required")
	}
	if err := checkCoordinates(*latitude, *longitude); err != nil {
		return models.Location{}, err
	}
	loc, err := s.Locations.Insert(ctx, *latitude, *longitude)
	if err != nil {
		return models.Location{}, classifyStoreError("create location", err, locationNotFound)
	}
	return loc, nil
}

func (s *LocationService) Get(ctx context.Context, id int64) (models.Location, error) {
	loc, err := s.Locations.Get(ctx, id)
	if err != nil {
		return models.Location{}, classifyStoreError("get location", err, locationNotFound)
	}
	return loc, nil
}

func (s *LocationService) List(ctx context.Context, page PageRequest) (Paged[models.Location], error) {
	items, err := s.Locations.List(ctx, page.window())
	if err != nil {
		return Paged[models.Location]{}, classifyStoreError("list locations", err, locationNotFound)
	}
	total, err := s.Locations.Count(ctx)
	if err != nil {
		return Paged[models.Location]{}, classifyStoreError("count locations", err, locationNotFound)
	}
	return newPaged(items, total, page), nil
}

// Nearby finds locations within radiusKm; a zero radius means the default of 1 km.
func (s *LocationService) Nearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]models.Location, error) {
	if err := checkCoordinates(latitude, longitude); err != nil {
		return nil, err
	}
	if radiusKm == 0 {
		radiusKm = defaultRadiusKm
	}
	if radiusKm < 0 || radiusKm > maxRadiusKm || math.IsNaN(radiusKm) {
		return nil, ErrValidation("radius_km must be between 0 and 100")
	}
	items, err := s.Locations.Nearby(ctx, latitude, longitude, radiusKm)
	if err != nil {
		return nil, classifyStoreError("nearby locations", err, locationNotFound)
	}
	return items, nil
}

func checkCoordinates(latitude, longitude float64) error {
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return ErrValidation("Latitude must be between -90 and 90")
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return ErrValidation("Longitude must be between -180 and 180")
	}
	return nil
}
