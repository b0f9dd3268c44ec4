package credentials

import (
	"context"
	"strings"

	"dreamreel/internal/infra"
	"dreamreel/internal/sqlinline"
)

const ProviderGemini = "gemini"

// Store reads provider API credentials persisted alongside the dream records,
// so deployments can rotate keys without restarting the service with new
// environment variables.
type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

func (s *Store) GeminiAPIKey(ctx context.Context) (string, error) {
	return s.Token(ctx, ProviderGemini)
}

// Token returns the stored credential for the provider, or empty when none is
// configured.
func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}
