package cmd

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AmiraAbdelhalim/fyyur/config"
	"github.com/AmiraAbdelhalim/fyyur/internal/consumer"
	"github.com/AmiraAbdelhalim/fyyur/internal/middleware"
	"github.com/AmiraAbdelhalim/fyyur/internal/repository"
	"github.com/AmiraAbdelhalim/fyyur/internal/server"
	"github.com/AmiraAbdelhalim/fyyur/internal/service"
	"github.com/AmiraAbdelhalim/fyyur/internal/view"
	"github.com/AmiraAbdelhalim/fyyur/pkg/database"
	"github.com/AmiraAbdelhalim/fyyur/pkg/rabbitmq"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Fyyur web server.",
		Long: `Start the Fyyur web server.

Pending migrations are applied first unless MIGRATE_ON_START=false.
When RABBITMQ_URL is set, domain events are published and consumed
into the home page activity feed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closer, err := setup(stderr)
			if err != nil {
				return err
			}
			defer closer.Close()

			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.ServerPort = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides SERVER_PORT).")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.MigrateOnStart {
		if err := database.MigrateUp(cfg.DSN()); err != nil {
			return err
		}
	}

	db := database.NewPostgresDB(cfg.DSN())
	defer database.Close(db)

	venueRepo := repository.NewVenueRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	showRepo := repository.NewShowRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	tx := repository.NewTransactor(db)

	publisher, stopEvents := startEvents(cfg, activityRepo)
	defer stopEvents()

	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}

	e := server.New(server.Services{
		Venues:  service.NewVenueService(venueRepo, tx, publisher),
		Artists: service.NewArtistService(artistRepo, tx, publisher),
		Shows:   service.NewShowService(showRepo, venueRepo, artistRepo, tx, publisher),
		Home:    service.NewHomeService(venueRepo, artistRepo, activityRepo),
	}, renderer, middleware.NewFlasher([]byte(cfg.FlashHashKey), []byte(cfg.FlashBlockKey)))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.ServerPort).Str("env", cfg.AppEnv).Msg("Fyyur starting")
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// startEvents connects the publisher and the activity consumer. Without a
// broker URL, or when the broker is unreachable, the returned publisher is a
// nil interface and mutations simply skip publishing.
func startEvents(cfg *config.Config, activity repository.ActivityRepository) (service.EventPublisher, func()) {
	if cfg.RabbitURL == "" {
		log.Info().Msg("RABBITMQ_URL not set, domain events disabled")
		return nil, func() {}
	}

	pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Warn().Err(err).Msg("RabbitMQ unavailable, domain events disabled")
		return nil, func() {}
	}

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Warn().Err(err).Msg("activity consumer unavailable")
		return pub, pub.Close
	}
	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Warn().Err(err).Msg("activity consumer unavailable")
		mqConsumer.Close()
		return pub, pub.Close
	}

	activityConsumer := consumer.NewActivityConsumer(activity)
	activityConsumer.Start(msgs)

	return pub, func() {
		mqConsumer.Close()
		<-activityConsumer.Done()
		pub.Close()
	}
}
