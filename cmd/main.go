package main

import (
	"os"

	"venue-booking/cmd/cli"

	"github.com/gin-gonic/gin"
)

func init() {
	// never expose debug output because of a missing setting
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

func main() {
	cli.Execute()
}
