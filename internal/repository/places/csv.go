package places

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/climabot/meteo-actions/internal/models"
)

// The datasets ship with Italian headers; the loaders map them by name
// so column order in the files does not matter.

// LoadCities parses the city reference CSV.
func LoadCities(path string) ([]models.City, error) {
	rows, idx, err := readAll(path)
	if err != nil {
		return nil, err
	}

	required := []string{"Destinazione", "Regione", "Paese", "Turisti Annui Stimati", "Latitudine", "Longitudine"}
	if err := checkColumns(idx, required); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cities := make([]models.City, 0, len(rows))
	for i, row := range rows {
		lat, err := strconv.ParseFloat(row[idx["Latitudine"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad latitude: %w", path, i+2, err)
		}
		lon, err := strconv.ParseFloat(row[idx["Longitudine"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad longitude: %w", path, i+2, err)
		}
		cities = append(cities, models.City{
			Name:           row[idx["Destinazione"]],
			Region:         row[idx["Regione"]],
			Country:        row[idx["Paese"]],
			AnnualTourists: row[idx["Turisti Annui Stimati"]],
			Lat:            lat,
			Lon:            lon,
		})
	}
	return cities, nil
}

// LoadAttractions parses the tourist-attraction reference CSV.
func LoadAttractions(path string) ([]models.Attraction, error) {
	rows, idx, err := readAll(path)
	if err != nil {
		return nil, err
	}

	required := []string{
		"Destinazione", "Regione", "Paese", "Categoria", "Descrizione",
		"Turisti Annui Stimati", "Valuta", "Religione Principale", "Piatti Tipici",
		"Lingua", "Periodo Consigliato", "Costo della Vita", "Sicurezza",
		"Significato Culturale",
	}
	if err := checkColumns(idx, required); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	attractions := make([]models.Attraction, 0, len(rows))
	for _, row := range rows {
		attractions = append(attractions, models.Attraction{
			City:                 row[idx["Destinazione"]],
			Region:               row[idx["Regione"]],
			Country:              row[idx["Paese"]],
			Category:             row[idx["Categoria"]],
			Description:          row[idx["Descrizione"]],
			AnnualTourists:       row[idx["Turisti Annui Stimati"]],
			Currency:             row[idx["Valuta"]],
			Religion:             row[idx["Religione Principale"]],
			Foods:                row[idx["Piatti Tipici"]],
			Language:             row[idx["Lingua"]],
			BestTime:             row[idx["Periodo Consigliato"]],
			CostOfLiving:         row[idx["Costo della Vita"]],
			Safety:               row[idx["Sicurezza"]],
			CulturalSignificance: row[idx["Significato Culturale"]],
		})
	}
	return attractions, nil
}

func readAll(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: reading header: %w", path, err)
	}
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[col] = i
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		if len(row) < len(header) {
			continue
		}
		rows = append(rows, row)
	}
	return rows, idx, nil
}

func checkColumns(idx map[string]int, required []string) error {
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return fmt.Errorf("missing column %q", col)
		}
	}
	return nil
}
