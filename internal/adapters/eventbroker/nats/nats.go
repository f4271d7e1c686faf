package nats

import (
	"context"
	"encoding/json"
	"filepress/internal/config"
	"filepress/internal/core/domain"
	"filepress/internal/core/port"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const maxDeliver = 5

func connect(cfg config.NATSConfig, name string, logger *slog.Logger) (*nats.Conn, jetstream.JetStream, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to connect to JetStream: %w", err)
	}

	return conn, js, nil
}

// subjects returns the wildcard covering every event subject
func subjects(cfg config.NATSConfig) string {
	return cfg.Subject + ".>"
}

// ensureStream creates the events stream or aligns an existing one
func ensureStream(ctx context.Context, js jetstream.JetStream, cfg config.NATSConfig) error {
	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{subjects(cfg)},
		Storage:  jetstream.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}
	return nil
}

// Publisher publishes file events to JetStream
type Publisher struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
}

// NewNATSPublisher connects and makes sure the stream exists
func NewNATSPublisher(ctx context.Context, cfg config.NATSConfig, logger *slog.Logger) (*Publisher, error) {
	conn, js, err := connect(cfg, "filepress-api", logger)
	if err != nil {
		return nil, err
	}

	if err := ensureStream(ctx, js, cfg); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, js: js, config: cfg, logger: logger}, nil
}

// Subject returns the subject an event type is published on
func (p *Publisher) Subject(eventType domain.EventType) string {
	return p.config.Subject + "." + string(eventType)
}

// Publish sends event and waits for the stream ack
func (p *Publisher) Publish(ctx context.Context, event domain.FileEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	ack, err := p.js.Publish(ctx, p.Subject(event.Type), data)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("event published", "type", event.Type, "stream", ack.Stream, "seq", ack.Sequence)
	return nil
}

// Close drains the connection
func (p *Publisher) Close() error {
	if p.conn != nil {
		return p.conn.Drain()
	}
	return nil
}

// Consumer feeds file events from a durable JetStream consumer to a handler
type Consumer struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
	cc     jetstream.ConsumeContext
}

// NewNATSConsumer connects to NATS. The stream is ensured on Subscribe.
func NewNATSConsumer(cfg config.NATSConfig, logger *slog.Logger) (*Consumer, error) {
	conn, js, err := connect(cfg, cfg.ConsumerName, logger)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		conn:   conn,
		js:     js,
		config: cfg,
		logger: logger,
	}, nil
}

// Subscribe starts delivering messages to handler and returns once the consumer is bound.
// A handler error naks the message so it is redelivered, up to maxDeliver attempts.
func (n *Consumer) Subscribe(ctx context.Context, handler port.MessageService) error {
	if err := ensureStream(ctx, n.js, n.config); err != nil {
		return err
	}

	cons, err := n.js.CreateOrUpdateConsumer(ctx, n.config.StreamName, jetstream.ConsumerConfig{
		Durable:       n.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		FilterSubject: subjects(n.config),
		AckWait:       10 * time.Second,
		MaxDeliver:    maxDeliver,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer %s: %w", n.config.ConsumerName, err)
	}

	cc, err := cons.Consume(
		func(msg jetstream.Msg) { n.handle(ctx, handler, msg) },
		jetstream.ConsumeErrHandler(func(_ jetstream.ConsumeContext, err error) {
			n.logger.Warn("NATS consume error", "consumer", n.config.ConsumerName, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	n.cc = cc

	n.logger.Info("NATS subscription started", "stream", n.config.StreamName, "consumer", n.config.ConsumerName)
	return nil
}

func (n *Consumer) handle(ctx context.Context, handler port.MessageService, msg jetstream.Msg) {
	if ctx.Err() != nil {
		_ = msg.Nak()
		return
	}

	if err := handler.HandleMessage(ctx, msg.Data()); err != nil {
		attempt := uint64(0)
		if meta, metaErr := msg.Metadata(); metaErr == nil {
			attempt = meta.NumDelivered
		}
		n.logger.Warn("failed to handle message", "subject", msg.Subject(), "attempt", attempt, "error", err)
		if err := msg.Nak(); err != nil {
			n.logger.Error("failed to nak message", "error", err)
		}
		return
	}

	if err := msg.Ack(); err != nil {
		n.logger.Error("failed to ack message", "error", err)
	}
}

// Close stops delivery and closes the connection
func (n *Consumer) Close() error {
	if n.cc != nil {
		n.cc.Stop()
		n.cc = nil
		n.logger.Info("NATS subscription stopped")
	}
	if n.conn != nil && !n.conn.IsClosed() {
		n.conn.Close()
	}
	return nil
}
