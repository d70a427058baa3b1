package google_docs_auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/ivkamenev/school_schedule_bot/src/config"
	"github.com/ivkamenev/school_schedule_bot/src/logging"
	"golang.org/x/oauth2/google"
)

var scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
}

// GetClient builds an authorized http client from the service account JSON,
// taken either from a file path or inline from the environment.
func GetClient(ctx context.Context, cfg *config.Config) (*http.Client, error) {
	creds, err := loadServiceAccountJson(cfg)
	if err != nil {
		return nil, err
	}

	jwtConfig, err := google.JWTConfigFromJSON(creds, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	logging.Info("authorized google client", "service_account", jwtConfig.Email)
	return jwtConfig.Client(ctx), nil
}

func loadServiceAccountJson(cfg *config.Config) ([]byte, error) {
	if cfg.CredsJsonPath != "" {
		creds, err := os.ReadFile(cfg.CredsJsonPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file %s: %w", cfg.CredsJsonPath, err)
		}
		return creds, nil
	}
	if cfg.CredsJsonContent != "" {
		return []byte(cfg.CredsJsonContent), nil
	}
	return nil, errors.New("google credentials not available, set GOOGLE_CREDS_JSON_PATH or GOOGLE_CREDS_JSON_CONTENT")
}
