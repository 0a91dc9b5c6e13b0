package config_fx

import (
	"log"

	"go.uber.org/fx"

	"gezi/internal/infra"
)

var Module = fx.Provide(provideConfig)

func provideConfig() *infra.Config {
	cfg, err := infra.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.Printf("Config loaded: provider=%s model=%s env=%s port=%s",
		cfg.Completion.Provider, cfg.Completion.Model, cfg.AppEnv, cfg.Port)
	return cfg
}
