package main

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultKeyDBURL      = "redis://keydb:6379"
	defaultKeyDBURLFile  = "/app/.keydb-url"
	keyDBURLFileVariable = "STORIES_KEYDB_URL_FILE"
)

// GetKeyDBURL resolves the KeyDB URL. keydb.url from the config (which
// KEYDB_URL overrides) wins, then the secret file named by
// STORIES_KEYDB_URL_FILE, then the default.
func GetKeyDBURL(configured string, logger *zap.Logger) string {
	if configured != "" {
		logger.Debug("Using KeyDB URL from configuration")
		return configured
	}

	urlFile := os.Getenv(keyDBURLFileVariable)
	if urlFile == "" {
		urlFile = defaultKeyDBURLFile
	}

	content, err := os.ReadFile(urlFile)
	if err != nil {
		logger.Debug("KeyDB URL file not readable, using default", zap.String("file", urlFile), zap.Error(err))
		return defaultKeyDBURL
	}

	if keydbURL := strings.TrimSpace(string(content)); keydbURL != "" {
		logger.Debug("Using KeyDB URL from file", zap.String("file", urlFile))
		return keydbURL
	}

	logger.Debug("KeyDB URL file is empty, using default", zap.String("file", urlFile))
	return defaultKeyDBURL
}
