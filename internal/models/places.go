package models

// City is one row of the city reference dataset.
type City struct {
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	Country        string  `json:"country"`
	AnnualTourists string  `json:"annual_tourists"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
}

// Attraction is one row of the tourist-attraction reference dataset.
type Attraction struct {
	City                 string `json:"city"`
	Region               string `json:"region"`
	Country              string `json:"country"`
	Category             string `json:"category"`
	Description          string `json:"description"`
	AnnualTourists       string `json:"annual_tourists"`
	Currency             string `json:"currency"`
	Religion             string `json:"religion"`
	Foods                string `json:"foods"`
	Language             string `json:"language"`
	BestTime             string `json:"best_time"`
	CostOfLiving         string `json:"cost_of_living"`
	Safety               string `json:"safety"`
	CulturalSignificance string `json:"cultural_significance"`
}
