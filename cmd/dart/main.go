package main

import (
	"log"

	"github.com/dartlinks/dart/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("dart failed to start: %v", err)
	}
}
