package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jwsummers/OnTrack/config"
	"github.com/jwsummers/OnTrack/models"
)

type IntakeService struct {
	sessions *SessionRegistry
	hub      *RealtimeHub
}

func NewIntakeService(sessions *SessionRegistry, hub *RealtimeHub) *IntakeService {
	return &IntakeService{sessions: sessions, hub: hub}
}

// SubmissionResult reports what one form submission produced. Food and water
// are independent best-effort writes: one may persist while the other fails,
// and nothing is rolled back.
type SubmissionResult struct {
	Entries []models.IntakeEntry `json:"entries"`
	Totals  models.RunningTotals `json:"totals"`
	Errors  []string             `json:"errors,omitempty"`
}

// Submit handles one intake form submission: an optional selected food
// suggestion and an optional water amount in oz. Each present part is
// persisted in its own sequential append; a failed part is reported and the
// other still counts.
func (s *IntakeService) Submit(userID uint, food *models.FoodSuggestion, waterOz string) (*SubmissionResult, error) {
	if !s.sessions.IsSignedIn(userID) {
		return nil, ErrNotSignedIn
	}

	res := &SubmissionResult{Entries: []models.IntakeEntry{}}

	if food != nil {
		entry, err := s.appendFood(userID, food)
		if err != nil {
			log.Printf("error persisting food intake for user %d: %v", userID, err)
			res.Errors = append(res.Errors, "failed to log food intake")
		} else {
			s.sessions.RecordSubmission(userID, *entry)
			res.Entries = append(res.Entries, *entry)
		}
	}

	if waterOz != "" {
		entry, err := s.appendWater(userID, waterOz)
		if err != nil {
			log.Printf("error persisting water intake for user %d: %v", userID, err)
			res.Errors = append(res.Errors, "failed to log water intake")
		} else {
			s.sessions.RecordSubmission(userID, *entry)
			res.Entries = append(res.Entries, *entry)
		}
	}

	res.Totals = s.sessions.Totals(userID)

	if s.hub != nil && len(res.Entries) > 0 {
		goal, err := GetGoals(userID)
		if err == nil {
			s.hub.BroadcastProgress(userID, BuildProgress(res.Totals, goal))
		}
	}
	return res, nil
}

// Append persists one entry stamped with the owner and a call-time date and
// returns the store-assigned id. The signed-in check is re-validated here so
// a sign-out between the handler's check and this call cannot persist with a
// stale identity. Append is not idempotent: retrying an ambiguous failure
// may duplicate the entry.
func (s *IntakeService) Append(userID uint, entry *models.IntakeEntry) (string, error) {
	if !s.sessions.IsSignedIn(userID) {
		return "", ErrNotSignedIn
	}

	entry.UserID = userID
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	if err := config.DB.Create(entry).Error; err != nil {
		return "", fmt.Errorf("failed to persist intake entry: %w", err)
	}
	return entry.ID, nil
}

func (s *IntakeService) appendFood(userID uint, food *models.FoodSuggestion) (*models.IntakeEntry, error) {
	raw, err := json.Marshal(food.Nutrients)
	if err != nil {
		return nil, fmt.Errorf("failed to encode nutrition payload: %w", err)
	}

	entry := &models.IntakeEntry{
		Type:      models.IntakeFood,
		Value:     food.Label,
		Nutrition: raw,
		Calories:  food.Nutrients[models.NutrientCalories],
		Protein:   food.Nutrients[models.NutrientProtein],
		Carbs:     food.Nutrients[models.NutrientCarbs],
	}
	if _, err := s.Append(userID, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *IntakeService) appendWater(userID uint, waterOz string) (*models.IntakeEntry, error) {
	entry := &models.IntakeEntry{
		Type:  models.IntakeWater,
		Value: fmt.Sprintf("%s oz", waterOz),
	}
	if _, err := s.Append(userID, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// FetchAllForUser returns every entry owned by the identity, most recent
// first. No rows or a missing identity yields an empty slice, not an error.
func (s *IntakeService) FetchAllForUser(userID uint) ([]models.IntakeEntry, error) {
	if userID == 0 {
		return []models.IntakeEntry{}, nil
	}
	var entries []models.IntakeEntry
	err := config.DB.
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch intake history: %w", err)
	}
	if entries == nil {
		entries = []models.IntakeEntry{}
	}
	return entries, nil
}

// History fetches the identity's full log and groups it into day buckets,
// most recent day first. Gated like Submit: no store call while signed out.
func (s *IntakeService) History(userID uint) (map[string][]models.IntakeEntry, []string, error) {
	if !s.sessions.IsSignedIn(userID) {
		return nil, nil, ErrNotSignedIn
	}
	entries, err := s.FetchAllForUser(userID)
	if err != nil {
		return nil, nil, err
	}
	buckets, days := AggregateByDay(entries)
	return buckets, days, nil
}
