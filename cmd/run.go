package cmd

import (
	"context"
	"fmt"
	"time"

	"coinhouse/application"
	"coinhouse/config"
	"coinhouse/database"
	"coinhouse/domain/events"
	"coinhouse/repository"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the settlement engine
func Run(ctx context.Context) error {
	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	eventBus := events.NewBus()
	subscribeEventLogging(eventBus)

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	engine := application.NewEngine(uowFactory)

	go sweepTimeouts(ctx, engine)

	log.WithField("environment", cfg.Environment).Info("Settlement engine running")
	<-ctx.Done()

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}

// sweepTimeouts periodically closes expired games.
func sweepTimeouts(ctx context.Context, engine *application.Engine) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			closed, err := engine.SweepTimeouts(ctx)
			if err != nil {
				log.WithError(err).Error("timeout sweep failed")
				continue
			}
			if closed > 0 {
				log.WithField("closed", closed).Info("expired games closed")
			}
		}
	}
}

// subscribeEventLogging attaches an audit log line to every domain event.
func subscribeEventLogging(bus *events.Bus) {
	logEvent := func(ctx context.Context, event events.Event) {
		log.WithFields(log.Fields{
			"eventType": event.Type(),
			"eventID":   event.EventID(),
		}).Info("domain event")
	}

	for _, t := range []events.EventType{
		events.EventTypeGameStarted,
		events.EventTypeGameJoined,
		events.EventTypeGameFinished,
		events.EventTypePrizeWithdrawn,
		events.EventTypeRafflePlayed,
		events.EventTypeRaffleJackpotWithdrawn,
	} {
		bus.Subscribe(t, logEvent)
	}
}
