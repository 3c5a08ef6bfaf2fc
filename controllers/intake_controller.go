package controllers

import (
	"errors"
	"net/http"

	"github.com/jwsummers/OnTrack/models"
	"github.com/jwsummers/OnTrack/services"

	"github.com/gin-gonic/gin"
)

type IntakeController struct {
	Intake   *services.IntakeService
	Sessions *services.SessionRegistry
}

func NewIntakeController(intake *services.IntakeService, sessions *services.SessionRegistry) *IntakeController {
	return &IntakeController{Intake: intake, Sessions: sessions}
}

type IntakeInput struct {
	// The food suggestion the user picked, if any.
	Food *models.FoodSuggestion `json:"food"`
	// Water amount in oz as entered, if any.
	Water string `json:"water"`
}

// POST /intake
func (ic *IntakeController) LogIntake(c *gin.Context) {
	var input IntakeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")
	result, err := ic.Intake.Submit(userID, input.Food, input.Water)
	if err != nil {
		if errors.Is(err, services.ErrNotSignedIn) {
			c.JSON(http.StatusUnauthorized, gin.H{"prompt": "Please log in to add your intake."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	goal, err := services.GetGoals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"entries":  result.Entries,
		"totals":   result.Totals,
		"progress": services.BuildProgress(result.Totals, goal),
		"errors":   result.Errors,
	})
}

// GET /intake/today — the session's log and totals since sign-in.
func (ic *IntakeController) TodayLog(c *gin.Context) {
	userID := c.GetUint("userID")
	entries := ic.Sessions.Entries(userID)
	if entries == nil {
		entries = []models.IntakeEntry{}
	}
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"totals":  ic.Sessions.Totals(userID),
	})
}

// GET /intake/history
//
// A store failure is a distinguishable unavailable state, never an
// empty-history lookalike.
func (ic *IntakeController) GetHistory(c *gin.Context) {
	userID := c.GetUint("userID")
	buckets, days, err := ic.Intake.History(userID)
	if err != nil {
		if errors.Is(err, services.ErrNotSignedIn) {
			c.JSON(http.StatusUnauthorized, gin.H{"prompt": "Please log in to view your history."})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"days":    days,
		"buckets": buckets,
	})
}
