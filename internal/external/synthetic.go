package external

import (
	"strings"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

type syntheticTemplate struct {
	kind        string
	name        string
	categories  []string
	dLat, dLon  float64
	address     string
	description string
}

// %s in name and address is replaced by the city name.
var syntheticTemplates = []syntheticTemplate{
	{"museum", "Museo Civico di %s", []string{"entertainment.museum"}, 0.001, 0.001,
		"Centro Storico, %s", "Museo civico con collezioni di storia locale e arte"},
	{"park", "Parco Centrale di %s", []string{"leisure.park"}, 0.002, -0.001,
		"%s", "Parco pubblico con aree verdi e zone ricreative"},
	{"cathedral", "Cattedrale di %s", []string{"building.historic", "tourism.sights"}, -0.001, 0.002,
		"Piazza del Duomo, %s", "Edificio storico religioso di grande importanza architettonica"},
	{"theater", "Teatro Comunale di %s", []string{"entertainment.culture"}, 0.0015, 0.0015,
		"Via Teatro, %s", "Teatro storico con programmazione di prosa, musica e danza"},
	{"piazza", "Piazza Principale di %s", []string{"tourism.attraction"}, 0, 0,
		"%s", "Piazza principale con caffè, negozi e monumenti storici"},
	{"market", "Mercato Storico di %s", []string{"commercial.shopping_mall"}, -0.0012, -0.0008,
		"Via del Mercato, %s", "Mercato tradizionale con prodotti locali e artigianato"},
}

// SyntheticPois returns six plausible points of interest placed just around
// (lat, lon). The output depends only on its arguments.
func SyntheticPois(cityName string, lat, lon float64) []domain.ExternalPoi {
	slug := strings.ReplaceAll(strings.ToLower(cityName), " ", "_")

	pois := make([]domain.ExternalPoi, 0, len(syntheticTemplates))
	for _, t := range syntheticTemplates {
		pois = append(pois, domain.ExternalPoi{
			PlaceID:     "synthetic_" + t.kind + "_" + slug,
			Name:        strings.ReplaceAll(t.name, "%s", cityName),
			Categories:  append([]string(nil), t.categories...),
			Latitude:    lat + t.dLat,
			Longitude:   lon + t.dLon,
			Address:     strings.ReplaceAll(t.address, "%s", cityName),
			Description: t.description,
			IsSynthetic: true,
		})
	}
	return pois
}
