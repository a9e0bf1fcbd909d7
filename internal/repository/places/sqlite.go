package places

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/climabot/meteo-actions/internal/models"
)

// ErrNotFound is returned when a city has no row in a reference table.
var ErrNotFound = errors.New("place not found")

// Repository serves the static city and attraction reference tables
// from sqlite. Rows are keyed by lowercased city name.
type Repository struct {
	DB  *sql.DB
	log zerolog.Logger
}

func NewRepository(db *sql.DB, logger zerolog.Logger) *Repository {
	logger = logger.With().Str("component", "PlacesRepository").Logger()
	return &Repository{DB: db, log: logger}
}

// GetCity looks up city metadata by name, case-insensitively.
func (r *Repository) GetCity(ctx context.Context, name string) (models.City, error) {
	var c models.City
	err := r.DB.QueryRowContext(ctx,
		`SELECT name, region, country, annual_tourists, lat, lon
		   FROM cities WHERE city_key = ?`,
		key(name),
	).Scan(&c.Name, &c.Region, &c.Country, &c.AnnualTourists, &c.Lat, &c.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return models.City{}, fmt.Errorf("city %q: %w", name, ErrNotFound)
	}
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Str("city", name).Msg("city lookup failed")
		return models.City{}, err
	}
	return c, nil
}

// GetAttraction looks up the tourist fact sheet for a city.
func (r *Repository) GetAttraction(ctx context.Context, name string) (models.Attraction, error) {
	var a models.Attraction
	err := r.DB.QueryRowContext(ctx,
		`SELECT city, region, country, category, description, annual_tourists,
		        currency, religion, foods, language, best_time, cost_of_living,
		        safety, cultural_significance
		   FROM attractions WHERE city_key = ?`,
		key(name),
	).Scan(&a.City, &a.Region, &a.Country, &a.Category, &a.Description,
		&a.AnnualTourists, &a.Currency, &a.Religion, &a.Foods, &a.Language,
		&a.BestTime, &a.CostOfLiving, &a.Safety, &a.CulturalSignificance)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Attraction{}, fmt.Errorf("attraction %q: %w", name, ErrNotFound)
	}
	if err != nil {
		r.log.Error().Err(err).Ctx(ctx).Str("city", name).Msg("attraction lookup failed")
		return models.Attraction{}, err
	}
	return a, nil
}

// ReplaceCities swaps the full cities table content in one transaction.
func (r *Repository) ReplaceCities(ctx context.Context, cities []models.City) error {
	start := time.Now()
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer rollback(tx, r.log)

	if _, err := tx.ExecContext(ctx, `DELETE FROM cities`); err != nil {
		return err
	}
	for _, c := range cities {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO cities
			    (city_key, name, region, country, annual_tourists, lat, lon)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			key(c.Name), c.Name, c.Region, c.Country, c.AnnualTourists, c.Lat, c.Lon,
		)
		if err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	r.log.Info().Ctx(ctx).
		Int("rows", len(cities)).
		Dur("duration", time.Since(start)).
		Msg("cities table reloaded")
	return nil
}

// ReplaceAttractions swaps the full attractions table content in one transaction.
func (r *Repository) ReplaceAttractions(ctx context.Context, attractions []models.Attraction) error {
	start := time.Now()
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer rollback(tx, r.log)

	if _, err := tx.ExecContext(ctx, `DELETE FROM attractions`); err != nil {
		return err
	}
	for _, a := range attractions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO attractions
			    (city_key, city, region, country, category, description,
			     annual_tourists, currency, religion, foods, language,
			     best_time, cost_of_living, safety, cultural_significance)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			key(a.City), a.City, a.Region, a.Country, a.Category, a.Description,
			a.AnnualTourists, a.Currency, a.Religion, a.Foods, a.Language,
			a.BestTime, a.CostOfLiving, a.Safety, a.CulturalSignificance,
		)
		if err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	r.log.Info().Ctx(ctx).
		Int("rows", len(attractions)).
		Dur("duration", time.Since(start)).
		Msg("attractions table reloaded")
	return nil
}

func rollback(tx *sql.Tx, log zerolog.Logger) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Error().Err(err).Msg("transaction rollback failed")
	}
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
