package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spigell/hire-assessor/cmd"
)

func main() {
	// Values already present in the environment win over .env.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
