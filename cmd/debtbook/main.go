package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/mheller/debtbook/internal/cli"
)

func main() {
	// Optional .env for local overrides; absence is fine.
	_ = godotenv.Load()

	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
