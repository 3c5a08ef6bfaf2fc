package services

import (
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/jwsummers/OnTrack/models"
)

// ErrNotSignedIn short-circuits gated operations before any store call is
// issued. Handlers translate it into a sign-in prompt, not an error page.
var ErrNotSignedIn = errors.New("please sign in to add your intake")

type session struct {
	Email   string
	Totals  models.RunningTotals
	Entries []models.IntakeEntry
}

// SessionRegistry tracks which identities are signed in and accumulates each
// session's running totals and in-session log. Identity-change notifications
// (sign-in/sign-out) are the only writers of session lifecycle; submissions
// only mutate an existing session.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[uint]*session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[uint]*session)}
}

// SignIn opens a session with zeroed totals. Re-signing an already open
// session keeps its accumulated state.
func (r *SessionRegistry) SignIn(userID uint, email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[userID]; !ok {
		r.sessions[userID] = &session{Email: email}
	}
}

// SignOut drops the session: running totals and the in-session log reset to
// empty. History already fetched by a client stays on its screen until the
// next fetch.
func (r *SessionRegistry) SignOut(userID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, userID)
}

func (r *SessionRegistry) IsSignedIn(userID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[userID]
	return ok
}

// RecordSubmission folds one successfully persisted entry into the session's
// running totals and log. Water entries contribute their parsed numeric
// value; food entries contribute their nutrient snapshot, with missing
// nutrients counting as zero.
func (r *SessionRegistry) RecordSubmission(userID uint, entry models.IntakeEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok {
		return
	}

	switch entry.Type {
	case models.IntakeWater:
		s.Totals.Water += parseWaterAmount(entry.Value)
	case models.IntakeFood:
		s.Totals.Calories += entry.Calories
		s.Totals.Protein += entry.Protein
		s.Totals.Carbs += entry.Carbs
	}
	s.Entries = append(s.Entries, entry)
}

func (r *SessionRegistry) Totals(userID uint) models.RunningTotals {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[userID]; ok {
		return s.Totals
	}
	return models.RunningTotals{}
}

// Entries returns the session's log in submission order.
func (r *SessionRegistry) Entries(userID uint) []models.IntakeEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[userID]
	if !ok {
		return nil
	}
	out := make([]models.IntakeEntry, len(s.Entries))
	copy(out, s.Entries)
	return out
}

// parseWaterAmount reads the leading number out of a water value such as
// "16 oz". Unparseable input contributes nothing.
func parseWaterAmount(value string) float64 {
	fields := strings.Fields(strings.TrimSpace(value))
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
