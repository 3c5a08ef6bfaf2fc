package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/jwsummers/OnTrack/models"
)

const defaultOpenFoodFactsURL = "https://world.openfoodfacts.org"

type OpenFoodFactsService struct {
	baseURL string
	client  *http.Client
}

// NewOpenFoodFactsService initializes the client against the public API,
// or OFF_BASE_URL when set.
func NewOpenFoodFactsService() *OpenFoodFactsService {
	base := os.Getenv("OFF_BASE_URL")
	if base == "" {
		base = defaultOpenFoodFactsURL
	}
	return &OpenFoodFactsService{
		baseURL: base,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchProducts calls the OpenFoodFacts text-search endpoint.
//
// The nutriments object mixes numbers with strings (every nutrient carries
// companion keys like "energy-kcal_unit": "kcal"), so values decode lazily
// and only the numeric ones survive.
type productSearchResponse struct {
	Products []struct {
		ProductName string                     `json:"product_name"`
		Nutriments  map[string]json.RawMessage `json:"nutriments"`
	} `json:"products"`
}

func (s *OpenFoodFactsService) SearchProducts(query string) ([]models.FoodSuggestion, error) {
	u := fmt.Sprintf(
		"%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1",
		s.baseURL, url.QueryEscape(query),
	)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenFoodFacts search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenFoodFacts response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openfoodfacts API error %d: %s", resp.StatusCode, string(body))
	}

	var pr productSearchResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse OpenFoodFacts JSON: %w", err)
	}

	results := make([]models.FoodSuggestion, 0, len(pr.Products))
	for _, p := range pr.Products {
		nutrients := make(map[string]float64, len(p.Nutriments))
		for k, raw := range p.Nutriments {
			var v float64
			if err := json.Unmarshal(raw, &v); err == nil {
				nutrients[k] = v
			}
		}
		results = append(results, models.FoodSuggestion{
			Label:     p.ProductName,
			Nutrients: nutrients,
		})
	}
	return results, nil
}
