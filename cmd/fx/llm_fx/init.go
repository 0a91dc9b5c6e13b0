package llm_fx

import (
	"context"
	"io"
	"log"

	"go.uber.org/fx"

	"gezi/internal/infra"
	"gezi/pkg/utils"
)

var Module = fx.Provide(ProvideCompletionClient)

// ProvideCompletionClient builds the provider selected by LLM_PROVIDER and
// releases its connection on shutdown when it holds one.
func ProvideCompletionClient(lc fx.Lifecycle, cfg *infra.Config) (utils.CompletionClientInterface, error) {
	client, err := utils.NewCompletionClient(cfg.Completion)
	if err != nil {
		return nil, err
	}
	log.Printf("Initializing %s completion client with model: %s", cfg.Completion.Provider, client.Model())

	if closer, ok := client.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}
	return client, nil
}
