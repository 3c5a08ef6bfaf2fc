package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jwsummers/OnTrack/config"
	"github.com/jwsummers/OnTrack/models"
	"github.com/jwsummers/OnTrack/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// one connection: every pool conn of an in-memory DSN is its own database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access test database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.IntakeEntry{}, &models.DailyGoal{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })

	return routes.SetupRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signUpAndIn(t *testing.T, r *gin.Engine) string {
	t.Helper()
	creds := map[string]string{"email": "a@example.com", "password": "hunter22"}

	if w := doJSON(t, r, http.MethodPost, "/auth/register", "", creds); w.Code != http.StatusCreated {
		t.Fatalf("register: status %d: %s", w.Code, w.Body.String())
	}

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", creds)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.Token == "" {
		t.Fatalf("login response missing token: %s", w.Body.String())
	}
	return out.Token
}

func TestLogIntake_SignedOutIsPromptedWithoutStoreCall(t *testing.T) {
	r := setupRouter(t)

	// the gate prompt is route-neutral: the same message guards intake,
	// history and goals
	for _, req := range []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/intake", map[string]string{"water": "16"}},
		{http.MethodGet, "/intake/history", nil},
		{http.MethodGet, "/goals", nil},
	} {
		w := doJSON(t, r, req.method, req.path, "", req.body)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: status = %d, want 401", req.method, req.path, w.Code)
		}
		var out map[string]string
		json.Unmarshal(w.Body.Bytes(), &out)
		if out["prompt"] != "Please log in." {
			t.Errorf("%s %s: prompt = %q, want %q", req.method, req.path, out["prompt"], "Please log in.")
		}
	}

	var count int64
	config.DB.Model(&models.IntakeEntry{}).Count(&count)
	if count != 0 {
		t.Errorf("store has %d entries, want 0", count)
	}
}

func TestLogIntake_FoodAndWaterEndToEnd(t *testing.T) {
	r := setupRouter(t)
	token := signUpAndIn(t, r)

	body := map[string]any{
		"food": map[string]any{
			"label": "Apple",
			"nutrients": map[string]float64{
				"energy-kcal":   95,
				"proteins":      0.5,
				"carbohydrates": 25,
			},
		},
		"water": "16",
	}

	w := doJSON(t, r, http.MethodPost, "/intake", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var out struct {
		Entries []models.IntakeEntry `json:"entries"`
		Totals  models.RunningTotals `json:"totals"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(out.Entries))
	}
	want := models.RunningTotals{Water: 16, Calories: 95, Protein: 0.5, Carbs: 25}
	if out.Totals != want {
		t.Errorf("totals = %+v, want %+v", out.Totals, want)
	}

	var count int64
	config.DB.Model(&models.IntakeEntry{}).Count(&count)
	if count != 2 {
		t.Errorf("store has %d entries, want 2", count)
	}
}

func TestGetHistory_GroupsPersistedEntries(t *testing.T) {
	r := setupRouter(t)
	token := signUpAndIn(t, r)

	if w := doJSON(t, r, http.MethodPost, "/intake", token, map[string]string{"water": "8"}); w.Code != http.StatusCreated {
		t.Fatalf("log intake: status %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/intake/history", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history: status %d: %s", w.Code, w.Body.String())
	}
	var out struct {
		Days    []string                        `json:"days"`
		Buckets map[string][]models.IntakeEntry `json:"buckets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(out.Days) != 1 {
		t.Fatalf("got %d day keys, want 1", len(out.Days))
	}
	if len(out.Buckets[out.Days[0]]) != 1 {
		t.Errorf("day bucket has %d entries, want 1", len(out.Buckets[out.Days[0]]))
	}
}

// A failed history fetch must not look like an empty history: empty is a
// 200 with no day keys, a store failure is a 503.
func TestGetHistory_StoreFailureIsDistinguishableFromEmpty(t *testing.T) {
	r := setupRouter(t)
	token := signUpAndIn(t, r)

	w := doJSON(t, r, http.MethodGet, "/intake/history", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("empty history: status %d, want 200", w.Code)
	}
	var empty struct {
		Days []string `json:"days"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &empty); err != nil {
		t.Fatalf("decode empty history: %v", err)
	}
	if len(empty.Days) != 0 {
		t.Fatalf("empty history has %d day keys", len(empty.Days))
	}

	// break the store under the handler
	if err := config.DB.Migrator().DropTable(&models.IntakeEntry{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	w = doJSON(t, r, http.MethodGet, "/intake/history", token, nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("failed history: status %d, want 503", w.Code)
	}
	var out map[string]string
	json.Unmarshal(w.Body.Bytes(), &out)
	if out["error"] != "history unavailable" {
		t.Errorf("failed history body = %s", w.Body.String())
	}
}

func TestLogout_ResetsSessionAndGatesSubmission(t *testing.T) {
	r := setupRouter(t)
	token := signUpAndIn(t, r)

	if w := doJSON(t, r, http.MethodPost, "/intake", token, map[string]string{"water": "16"}); w.Code != http.StatusCreated {
		t.Fatalf("log intake: status %d", w.Code)
	}

	if w := doJSON(t, r, http.MethodPost, "/auth/logout", token, nil); w.Code != http.StatusOK {
		t.Fatalf("logout: status %d", w.Code)
	}

	// valid JWT, but the session is closed: the gate short-circuits with a
	// prompt and no store write
	w := doJSON(t, r, http.MethodPost, "/intake", token, map[string]string{"water": "8"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status after logout = %d, want 401", w.Code)
	}

	var count int64
	config.DB.Model(&models.IntakeEntry{}).Count(&count)
	if count != 1 {
		t.Errorf("store has %d entries, want 1 (no write after sign-out)", count)
	}
}
