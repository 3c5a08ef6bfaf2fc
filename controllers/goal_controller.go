package controllers

import (
	"net/http"

	"github.com/jwsummers/OnTrack/services"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	Sessions *services.SessionRegistry
}

func NewGoalController(sessions *services.SessionRegistry) *GoalController {
	return &GoalController{Sessions: sessions}
}

// GET /goals
func (g *GoalController) GetGoals(c *gin.Context) {
	userID := c.GetUint("userID")

	goal, err := services.GetGoals(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totals := g.Sessions.Totals(userID)
	c.JSON(http.StatusOK, gin.H{
		"goals":    goal,
		"progress": services.BuildProgress(totals, goal),
	})
}

// PUT /goals
//
// Goal edits come in as strings straight from the form; non-numeric and
// negative values coerce to 0.
func (g *GoalController) UpdateGoals(c *gin.Context) {
	userID := c.GetUint("userID")

	var req struct {
		Water    string `json:"water"`
		Calories string `json:"calories"`
		Protein  string `json:"protein"`
		Carbs    string `json:"carbs"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := services.UpsertGoals(userID, req.Water, req.Calories, req.Protein, req.Carbs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totals := g.Sessions.Totals(userID)
	c.JSON(http.StatusOK, gin.H{
		"goals":    goal,
		"progress": services.BuildProgress(totals, goal),
	})
}
