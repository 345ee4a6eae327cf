package config

import "github.com/joho/godotenv"

// EnvFiles are the .env files the binaries read in local development, in
// precedence order.
var EnvFiles = []string{"../.env", ".env"}

// LoadEnvFiles loads each file independently so a missing one does not stop
// the rest from being read. Variables already set in the environment win.
// It returns the files that were loaded.
func LoadEnvFiles(files ...string) []string {
	var loaded []string
	for _, f := range files {
		if err := godotenv.Load(f); err == nil {
			loaded = append(loaded, f)
		}
	}
	return loaded
}
