package utils

import (
	"log"
	"os"
	"strconv"
)

type envTypes interface {
	string | int | bool
}

func parseEnv[T envTypes](envVar, raw string) T {
	var value T
	switch out := any(&value).(type) {
	case *string:
		*out = raw
	case *int:
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Fatalf("environment variable %s: '%s' is not an integer", envVar, raw)
		}
		*out = parsed
	case *bool:
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Fatalf("environment variable %s: '%s' is not a boolean", envVar, raw)
		}
		*out = parsed
	}
	return value
}

// GetEnv returns the parsed value of the environment variable, or fallback
// when it is unset or empty.
func GetEnv[T envTypes](envVar string, fallback T) T {
	raw, ok := os.LookupEnv(envVar)
	if !ok || raw == "" {
		return fallback
	}
	return parseEnv[T](envVar, raw)
}

// GetRequiredEnv exits the process when the variable is unset: these are
// settings the service cannot guess, like signing keys and login passwords.
func GetRequiredEnv[T envTypes](envVar string) T {
	raw, ok := os.LookupEnv(envVar)
	if !ok || raw == "" {
		log.Fatalf("%s environment variable is required", envVar)
	}
	return parseEnv[T](envVar, raw)
}
