package main

import (
	"guate-servicios/commands"
	_ "guate-servicios/docs"
)

// @title Guate Servicios API
// @version 1.0
// @description Directory of local technicians: profiles, services and reviews.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	commands.Execute()
}
