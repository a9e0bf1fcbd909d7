package places

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const refreshTimeout = 30 * time.Second

// Refresher re-imports the CSV reference datasets on a cron schedule,
// so dataset updates are picked up without a restart.
type Refresher struct {
	repo            *Repository
	logger          zerolog.Logger
	cron            *cron.Cron
	citiesPath      string
	attractionsPath string
	spec            string
}

func NewRefresher(repo *Repository, logger zerolog.Logger, citiesPath, attractionsPath, spec string) *Refresher {
	logger = logger.With().Str("component", "PlacesRefresher").Logger()
	return &Refresher{
		repo:            repo,
		logger:          logger,
		cron:            cron.New(cron.WithSeconds()),
		citiesPath:      citiesPath,
		attractionsPath: attractionsPath,
		spec:            spec,
	}
}

// Run imports both datasets once.
func (r *Refresher) Run(ctx context.Context) error {
	cities, err := LoadCities(r.citiesPath)
	if err != nil {
		return err
	}
	if err := r.repo.ReplaceCities(ctx, cities); err != nil {
		return err
	}

	attractions, err := LoadAttractions(r.attractionsPath)
	if err != nil {
		return err
	}
	return r.repo.ReplaceAttractions(ctx, attractions)
}

// Start schedules periodic re-imports. Errors are logged, never fatal.
func (r *Refresher) Start() error {
	_, err := r.cron.AddFunc(r.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if err := r.Run(ctx); err != nil {
			r.logger.Error().Err(err).Msg("scheduled dataset refresh failed")
			return
		}
		r.logger.Info().Msg("reference datasets refreshed")
	})
	if err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
