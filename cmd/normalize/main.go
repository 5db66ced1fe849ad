// Command normalize runs the fetch→normalize→aggregate pipeline once and
// prints the aggregated payload as JSON. Handy for inspecting provider data
// and curation state without standing up the server.
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rs/zerolog/log"

	"flex_reviews/internal/adapters/hostaway"
	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	"flex_reviews/internal/shared"
	filestore "flex_reviews/internal/storage/file"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	// The one-shot runner always reads the file overlay; server backends
	// (redis/mysql/pebble) belong to cmd/api.
	store := filestore.New(cfg.ApprovalPath)
	source := hostaway.New(cfg.HostawayBase, cfg.HostawayAccountID, cfg.HostawayAPIKey, cfg.ProviderRPS)
	q := app.NewQueryService(source, store)

	payload, err := q.Reviews(context.Background(), domain.Criteria{})
	if err != nil {
		log.Fatal().Err(err).Msg("pipeline run failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		log.Fatal().Err(err).Msg("encode payload failed")
	}
}
