// Package storage is the persistent key-value bridge. Every collection in the
// store is serialized whole into a single namespaced key; the last writer
// wins. Read and write failures are logged and swallowed so the application
// degrades to an empty/default state instead of halting.
package storage

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/veranda/pkg/metrics"
)

// Backend is a raw string key-value store. Implementations: memory, redis,
// and a single-table SQL store (sqlite or postgres).
type Backend interface {
	Name() string
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Bridge adds JSON encoding and failure-swallowing on top of a Backend.
type Bridge struct {
	backend   Backend
	namespace string
	logger    ectologger.Logger
}

// NewBridge creates a bridge over the given backend. Keys are prefixed with
// namespace + ":".
func NewBridge(backend Backend, namespace string, logger ectologger.Logger) *Bridge {
	return &Bridge{
		backend:   backend,
		namespace: namespace,
		logger:    logger,
	}
}

// Load reads and decodes key into dest. On a missing key, backend failure, or
// corrupt payload, dest is left untouched and the failure is logged; Load
// never fails from the caller's point of view.
func (b *Bridge) Load(ctx context.Context, key string, dest any) {
	raw, found, err := b.backend.Get(ctx, b.fullKey(key))
	if err != nil {
		metrics.PersistenceFailures.WithLabelValues(key, "read").Inc()
		b.logger.WithContext(ctx).WithError(err).WithField("key", key).Error("storage read failed, using default")
		return
	}
	if !found {
		return
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		metrics.PersistenceFailures.WithLabelValues(key, "decode").Inc()
		b.logger.WithContext(ctx).WithError(err).WithField("key", key).Error("storage payload corrupt, using default")
	}
}

// Save encodes and writes value under key. Failures are logged and dropped;
// the in-memory state the caller holds stays authoritative for the session.
func (b *Bridge) Save(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		metrics.PersistenceFailures.WithLabelValues(key, "encode").Inc()
		b.logger.WithContext(ctx).WithError(err).WithField("key", key).Error("storage encode failed, write dropped")
		return
	}

	if err := b.backend.Set(ctx, b.fullKey(key), string(raw)); err != nil {
		metrics.PersistenceFailures.WithLabelValues(key, "write").Inc()
		b.logger.WithContext(ctx).WithError(err).WithField("key", key).Error("storage write failed, write dropped")
	}
}

// Delete removes key. Failures are logged and dropped.
func (b *Bridge) Delete(ctx context.Context, key string) {
	if err := b.backend.Delete(ctx, b.fullKey(key)); err != nil {
		metrics.PersistenceFailures.WithLabelValues(key, "delete").Inc()
		b.logger.WithContext(ctx).WithError(err).WithField("key", key).Error("storage delete failed")
	}
}

// Ping reports backend reachability for health checks.
func (b *Bridge) Ping(ctx context.Context) error {
	return b.backend.Ping(ctx)
}

// BackendName returns the active backend's name.
func (b *Bridge) BackendName() string {
	return b.backend.Name()
}

// Close closes the underlying backend.
func (b *Bridge) Close() error {
	return b.backend.Close()
}

func (b *Bridge) fullKey(key string) string {
	if b.namespace == "" {
		return key
	}
	return b.namespace + ":" + key
}
