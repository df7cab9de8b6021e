// Package main implements the entry point for the Palime API server, the
// local backend of a Pali vocabulary trainer: spaced-repetition study
// sessions over a personal SQLite database.
package main

import (
	"context"
	"log"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.run(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
