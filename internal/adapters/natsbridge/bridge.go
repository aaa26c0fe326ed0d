package natsbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"AppEvents/internal/core/domain"
	"AppEvents/internal/core/ports"
)

const (
	streamName    = "APPEVENTS"
	subjectPrefix = "appevents."
)

type bridge struct {
	conn      *nats.Conn
	jetStream nats.JetStreamContext
	log       zerolog.Logger
}

var _ ports.EventBridge = (*bridge)(nil) // Ensure compliance

// New connects to NATS and ensures the APPEVENTS stream exists. Published
// records land on subject "appevents.<event name>" as JSON.
func New(natsURL string, baseLogger *zerolog.Logger) (ports.EventBridge, error) {
	log := baseLogger.With().Str("component", "nats_bridge").Logger()

	nc, err := nats.Connect(natsURL,
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("initializing JetStream: %w", err)
	}

	// One stream for all application events; idempotent across restarts.
	if _, err := js.StreamInfo(streamName); err != nil {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:     streamName,
			Subjects: []string{subjectPrefix + ">"},
			Storage:  nats.FileStorage,
			MaxAge:   24 * time.Hour,
		})
		if err != nil {
			nc.Close()
			return nil, fmt.Errorf("creating stream %s: %w", streamName, err)
		}
		log.Info().Str("stream", streamName).Msg("Created JetStream stream")
	}

	log.Info().Str("url", natsURL).Msg("Connected to NATS")
	return &bridge{conn: nc, jetStream: js, log: log}, nil
}

// Publish forwards one raised event.
func (b *bridge) Publish(ctx context.Context, rec *domain.EventRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling event record: %w", err)
	}

	subject := subjectPrefix + rec.Event
	if _, err := b.jetStream.Publish(subject, data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}

	b.log.Debug().Str("subject", subject).Msg("Event bridged to NATS")
	return nil
}

// Close releases the NATS connection.
func (b *bridge) Close() error {
	b.conn.Close()
	return nil
}
