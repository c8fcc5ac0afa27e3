package cmd

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// loadDotEnv loads the nearest .env file found walking up from the working
// directory. Variables already set in the environment win.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
