// Cinematch - Content-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
)

// Topics carried by the bus.
const (
	TopicCatalogChanged = "catalog.changed"
	TopicIndexRebuilt   = "index.rebuilt"
)

// Reasons attached to CatalogChanged.
const (
	ReasonManual      = "manual"
	ReasonFileChanged = "file_changed"
)

// MetadataCorrelationID is the message metadata key holding the correlation ID.
const MetadataCorrelationID = "correlation_id"

// CatalogChanged asks the index service to rebuild.
type CatalogChanged struct {
	EventID   string    `json:"event_id"`
	Reason    string    `json:"reason"`
	Path      string    `json:"path,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// IndexRebuilt announces a newly published snapshot.
type IndexRebuilt struct {
	EventID        string    `json:"event_id"`
	Version        int64     `json:"version"`
	Entries        int       `json:"entries"`
	VocabularySize int       `json:"vocabulary_size"`
	DurationMS     int64     `json:"duration_ms"`
	Timestamp      time.Time `json:"timestamp"`
}

func knownTopic(topic string) bool {
	return topic == TopicCatalogChanged || topic == TopicIndexRebuilt
}

// DecodeCatalogChanged parses a catalog.changed message payload.
func DecodeCatalogChanged(msg *message.Message) (*CatalogChanged, error) {
	var ev CatalogChanged
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return nil, fmt.Errorf("decode %s: %w", TopicCatalogChanged, err)
	}
	return &ev, nil
}

// DecodeIndexRebuilt parses an index.rebuilt message payload.
func DecodeIndexRebuilt(msg *message.Message) (*IndexRebuilt, error) {
	var ev IndexRebuilt
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return nil, fmt.Errorf("decode %s: %w", TopicIndexRebuilt, err)
	}
	return &ev, nil
}
