package main

import (
	"log"

	"github.com/MrSnakeDoc/pitch/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ pitch failed to start: %v", err)
	}
}
