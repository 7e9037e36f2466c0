package cmd

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	config "github.com/thirdweb-dev/walletbridge/configs"
	"github.com/thirdweb-dev/walletbridge/internal/orchestrator"
	"github.com/thirdweb-dev/walletbridge/internal/provider"
	"github.com/thirdweb-dev/walletbridge/internal/storage"
)

var (
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Watch the configured addresses and serve their history",
		Long:  "Connects to the wallet provider, subscribes to the configured addresses, merges every transaction batch into storage and serves the API.",
		Run: func(cmd *cobra.Command, args []string) {
			RunWatch(cmd, args)
		},
	}
)

func RunWatch(cmd *cobra.Command, args []string) {
	log.Info().Msg("Starting walletbridge")

	store, err := storage.NewConnector(&config.Cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create storage connector")
	}

	pc := provider.ConnectRemote(
		context.Background(),
		config.Cfg.Provider.URL,
		provider.RemoteOptions{HandshakeTimeout: time.Duration(config.Cfg.Provider.HandshakeTimeout) * time.Millisecond},
		time.Duration(config.Cfg.Provider.ReadyTimeout)*time.Millisecond,
	)

	orchestrator, err := orchestrator.NewOrchestrator(pc, store)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create orchestrator")
	}

	orchestrator.Start()
}
