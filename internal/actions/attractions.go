package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/climabot/meteo-actions/internal/models"
)

// Attractions renders the tourist fact sheet for a city from the
// attraction reference dataset.
type Attractions struct {
	places placesStore
	logger zerolog.Logger
}

func NewAttractions(places placesStore, logger zerolog.Logger) *Attractions {
	return &Attractions{
		places: places,
		logger: logger.With().Str("action", "action_get_attractions").Logger(),
	}
}

func (a *Attractions) Name() string { return "action_get_attractions" }

func (a *Attractions) Run(ctx context.Context, tracker models.Tracker) models.ActionResponse {
	city := tracker.Slot(slotCity)
	if city == "" {
		return say(msgAskCity)
	}

	info, err := a.places.GetAttraction(ctx, city)
	if err != nil {
		return say(fmt.Sprintf("Mi dispiace, non ho informazioni turistiche per %s.", displayCity(city)))
	}

	message := fmt.Sprintf(
		"%s è una %s della regione %s in %s. "+
			"È famosa per %s Ogni anno accoglie circa %s turisti. "+
			"La moneta locale è %s e si parla principalmente %s, con tradizioni legate al %s. "+
			"Non perdere i piatti tipici come %s. "+
			"Il momento migliore per visitarla è %s, il costo della vita è %s "+
			"e la sicurezza viene descritta come %s. "+
			"Spicca come %s",
		info.City, strings.ToLower(info.Category), info.Region, info.Country,
		info.Description, info.AnnualTourists,
		strings.ToLower(info.Currency), strings.ToLower(info.Language), strings.ToLower(info.Religion),
		strings.ToLower(info.Foods),
		strings.ToLower(info.BestTime), strings.ToLower(info.CostOfLiving),
		strings.ToLower(info.Safety),
		info.CulturalSignificance,
	)

	return say(message)
}
