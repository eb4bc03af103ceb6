package store

import (
	"context"

	"civicreport-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

// earthRadiusKm is the mean radius used by the haversine distance.
const earthRadiusKm = 6371.0

type Locations struct {
	db sqlx.ExtContext
}

func NewLocations(db sqlx.ExtContext) *Locations {
	return &Locations{db: db}
}

func (l *Locations) Insert(ctx context.Context, latitude, longitude float64) (models.Location, error) {
	var loc models.Location
	err := sqlx.GetContext(ctx, l.db, &loc, `
INSERT INTO location (latitude, longitude)
VALUES ($1, $2)
RETURNING id, latitude, longitude`, latitude, longitude)
	return loc, err
}

func (l *Locations) Get(ctx context.Context, id int64) (models.Location, error) {
	var loc models.Location
	err := sqlx.GetContext(ctx, l.db, &loc, `SELECT id, latitude, longitude FROM location WHERE id = $1`, id)
	return loc, err
}

func (l *Locations) List(ctx context.Context, page Page) ([]models.Location, error) {
	items := []models.Location{}
	err := sqlx.SelectContext(ctx, l.db, &items, `
SELECT id, latitude, longitude
FROM location
ORDER BY id
LIMIT $1 OFFSET $2`, page.Limit, page.Offset)
	return items, err
}

func (l *Locations) Count(ctx context.Context) (int, error) {
	var total int
	err := sqlx.GetContext(ctx, l.db, &total, `SELECT COUNT(*) FROM location`)
	return total, err
}

// Nearby returns locations within radiusKm of the point, closest first.
func (l *Locations) Nearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]models.Location, error) {
	items := []models.Location{}
	err := sqlx.SelectContext(ctx, l.db, &items, `
SELECT id, latitude, longitude, distance
FROM (
  SELECT id, latitude, longitude,
    $4 * 2 * asin(LEAST(1, sqrt(
      power(sin(radians(latitude - $1) / 2), 2) +
      cos(radians($1)) * cos(radians(latitude)) * power(sin(radians(longitude - $2) / 2), 2)
    ))) AS distance
  FROM location
) nearby
WHERE distance <= $3
ORDER BY distance, id`, latitude, longitude, radiusKm, earthRadiusKm)
	return items, err
}
