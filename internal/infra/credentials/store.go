// Package credentials keeps provider API keys in the integration_tokens
// table so a deployment can rotate them without touching the environment.
package credentials

import (
	"context"
	"errors"
	"strings"

	"promptgate/internal/infra"
	"promptgate/internal/sqlinline"
)

const ProviderGemini = "gemini"

type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// GeminiAPIKey returns the stored key, or "" when none was saved.
func (s *Store) GeminiAPIKey(ctx context.Context) (string, error) {
	return s.token(ctx, ProviderGemini)
}

func (s *Store) SetGeminiAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("gemini api key is required")
	}
	_, err := s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, ProviderGemini, key)
	return err
}

func (s *Store) token(ctx context.Context, provider string) (string, error) {
	var token string
	if err := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider).Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}
