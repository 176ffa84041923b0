package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/liftkit-dev/liftkit/internal/config"
	"github.com/liftkit-dev/liftkit/pkg/server"
)

func serveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve merged templates over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if cfg.ScriptStore.Backend == "s3" {
				// the S3 store needs an injected client; see page.NewS3Store
				return fmt.Errorf("the s3 script store is only available when embedding pkg/server")
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			srv := server.New(server.Config{
				Addr:             cfg.Addr(),
				TemplatesDir:     cfg.Templates,
				DevMode:          cfg.DevMode,
				StripComments:    cfg.StripComments,
				GCTracking:       cfg.GCTracking,
				AutoIncludeAJAX:  cfg.AutoIncludeAJAX,
				AutoIncludeComet: cfg.AutoIncludeComet,
				DeferredTimeout:  cfg.DeferredTimeout(),
				Logger:           logger,
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.ConfigFileName, "path to configuration file")
	return cmd
}
