package services

import (
	"log"
	"sync/atomic"
	"unicode/utf8"

	"github.com/jwsummers/OnTrack/models"
)

// foodSearcher is what FoodService needs from the lookup boundary.
type foodSearcher interface {
	SearchProducts(query string) ([]models.FoodSuggestion, error)
}

// FoodService is the suggestion policy layer over the raw lookup client:
// short queries never hit the network, lookup failures degrade to an empty
// list, and every issued query carries a monotonically increasing sequence
// token so callers can discard results that a newer query has outrun.
type FoodService struct {
	off foodSearcher
	seq atomic.Uint64
}

func NewFoodService(off foodSearcher) *FoodService {
	return &FoodService{off: off}
}

// Suggest returns suggestions for a free-text query along with the query's
// sequence token. Queries of length <= 2 are answered locally with an empty
// list. A lookup failure is logged and answered with an empty list as well;
// the user sees no suggestions rather than an error.
func (s *FoodService) Suggest(query string) (uint64, []models.FoodSuggestion) {
	token := s.seq.Add(1)

	if utf8.RuneCountInString(query) <= 2 {
		return token, []models.FoodSuggestion{}
	}

	results, err := s.off.SearchProducts(query)
	if err != nil {
		log.Printf("food suggestion lookup failed for %q: %v", query, err)
		return token, []models.FoodSuggestion{}
	}
	if results == nil {
		results = []models.FoodSuggestion{}
	}
	return token, results
}

// Latest reports the newest issued sequence token. A response whose token is
// older than Latest() belongs to an abandoned query.
func (s *FoodService) Latest() uint64 {
	return s.seq.Load()
}
