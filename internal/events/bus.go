// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/logging"
)

// DefaultBufferSize is the per-subscriber output channel buffer.
const DefaultBufferSize = 64

// Bus publishes and delivers catalog and index events in process.
type Bus struct {
	pubsub *gochannel.GoChannel
	mu     sync.RWMutex
	closed bool
}

// NewBus creates a bus. A nil logger routes Watermill logs through the
// global zerolog logger.
func NewBus(bufferSize int, logger watermill.LoggerAdapter) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if logger == nil {
		logger = watermill.NewSlogLogger(logging.NewSlogLogger())
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: int64(bufferSize),
		}, logger),
	}
}

// PublishCatalogChanged publishes a catalog.changed event.
func (b *Bus) PublishCatalogChanged(ctx context.Context, reason, path string) error {
	ev := CatalogChanged{
		EventID:   watermill.NewUUID(),
		Reason:    reason,
		Path:      path,
		Timestamp: time.Now().UTC(),
	}
	return b.publish(ctx, TopicCatalogChanged, ev.EventID, ev)
}

// PublishIndexRebuilt publishes an index.rebuilt event. EventID and
// Timestamp are filled in when empty.
func (b *Bus) PublishIndexRebuilt(ctx context.Context, ev IndexRebuilt) error {
	if ev.EventID == "" {
		ev.EventID = watermill.NewUUID()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	return b.publish(ctx, TopicIndexRebuilt, ev.EventID, ev)
}

func (b *Bus) publish(ctx context.Context, topic, id string, payload any) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", topic, err)
	}

	msg := message.NewMessage(id, data)
	corrID := logging.CorrelationIDFromContext(ctx)
	if corrID == "" {
		corrID = logging.GenerateCorrelationID()
	}
	msg.Metadata.Set(MetadataCorrelationID, corrID)
	msg.SetContext(ctx)

	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscribe returns the message channel for topic. The channel closes when
// ctx is cancelled or the bus is closed. Consumers must Ack or Nack every
// message.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if !knownTopic(topic) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrClosed
	}
	return b.pubsub.Subscribe(ctx, topic)
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.pubsub.Close()
}

// CorrelationID returns the correlation ID carried by msg.
func CorrelationID(msg *message.Message) string {
	return msg.Metadata.Get(MetadataCorrelationID)
}
