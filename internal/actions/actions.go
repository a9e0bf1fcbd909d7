// Package actions implements the conversational assistant's named
// actions: weather narratives, clothing and activity advice, air
// quality, sun times, and tourist facts. Every failure is converted
// into an Italian apology message; actions never return errors to the
// host.
package actions

import (
	"context"

	"github.com/climabot/meteo-actions/internal/models"
)

// Slot names the host framework fills from the conversation.
const (
	slotCity     = "city"
	slotDate     = "date"
	slotActivity = "activity"
)

// Shared user-facing messages.
const (
	msgAskCity            = "Per favore, indicami una città."
	msgAskActivity        = "❓ Quale attività ti piacerebbe fare?"
	msgWeatherUnavailable = "Servizio meteo non disponibile."
)

// weatherProvider is the slice of the weather backend the actions use.
type weatherProvider interface {
	Current(ctx context.Context, city string) (models.Conditions, error)
	Forecast(ctx context.Context, city string) (models.Forecast, error)
	AirPollution(ctx context.Context, lat, lon float64) (models.AirPollution, error)
	Geocode(ctx context.Context, city string) (models.GeoPlace, error)
}

// placesStore serves the static reference tables.
type placesStore interface {
	GetCity(ctx context.Context, name string) (models.City, error)
	GetAttraction(ctx context.Context, name string) (models.Attraction, error)
}

// Action is one named assistant action, dispatched by the webhook.
type Action interface {
	Name() string
	Run(ctx context.Context, tracker models.Tracker) models.ActionResponse
}

// Registry resolves action names to implementations.
type Registry struct {
	byName map[string]Action
}

func NewRegistry(actions ...Action) *Registry {
	byName := make(map[string]Action, len(actions))
	for _, a := range actions {
		byName[a.Name()] = a
	}
	return &Registry{byName: byName}
}

func (r *Registry) Get(name string) (Action, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Names lists the registered action names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	return names
}

func say(texts ...string) models.ActionResponse {
	msgs := make([]models.BotMessage, 0, len(texts))
	for _, t := range texts {
		msgs = append(msgs, models.BotMessage{Text: t})
	}
	return models.ActionResponse{Responses: msgs, Events: []models.Event{}}
}
