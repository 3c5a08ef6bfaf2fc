package controllers

import (
	"net/http"

	"github.com/jwsummers/OnTrack/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Foods *services.FoodService
}

func NewFoodController(foods *services.FoodService) *FoodController {
	return &FoodController{Foods: foods}
}

// GET /foods/search?q=apple
//
// Always 200: a failed or too-short lookup is an empty suggestion list, never
// an error. The seq token lets the client drop a response that a newer
// keystroke has already outrun.
func (f *FoodController) SearchFoods(c *gin.Context) {
	seq, suggestions := f.Foods.Suggest(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{
		"seq":         seq,
		"suggestions": suggestions,
	})
}
