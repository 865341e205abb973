package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const apiKeyPrefix = "mp_"

// GenerateAPIKey returns a new url-safe key.
func GenerateAPIKey() (string, error) {
	id, err := gonanoid.New(32)
	if err != nil {
		return "", err
	}
	return apiKeyPrefix + id, nil
}
