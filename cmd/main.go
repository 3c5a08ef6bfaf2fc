package main

import (
	"github.com/jwsummers/OnTrack/config"
	"github.com/jwsummers/OnTrack/routes"
)

func main() {
	config.InitDB()
	r := routes.SetupRouter()
	r.Run(":8080")
}
