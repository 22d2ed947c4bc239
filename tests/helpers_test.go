// Package tests contains integration tests for the business flows
package tests

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/openmusic/api/app/services"
	testingutil "github.com/openmusic/api/testing"
)

// setupDB creates a disposable test database and registers its teardown.
// Tests are skipped when no PostgreSQL server is reachable.
func setupDB(t *testing.T) *testingutil.TestDB {
	t.Helper()

	testDB, err := testingutil.SetupTestDB()
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := testDB.TeardownTestDB(); err != nil {
			t.Logf("Warning: failed to cleanup test database: %v", err)
		}
	})
	return testDB
}

// memoryCache is an in-process CacheService used instead of Redis in
// tests. Values round-trip through JSON like the real implementation.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte

	// failReads makes every Get return an error, simulating an
	// unreachable cache backend
	failReads bool
	readErr   error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failReads {
		return c.readErr
	}
	raw, ok := c.entries[key]
	if !ok {
		return services.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return nil }
func (c *memoryCache) Close() error                   { return nil }

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// recordedMessage is one Publish call captured by recordingProducer
type recordedMessage struct {
	Queue   string
	Message any
}

// recordingProducer is a ProducerService that records published messages
// instead of talking to a broker
type recordingProducer struct {
	mu        sync.Mutex
	published []recordedMessage
}

func newRecordingProducer() *recordingProducer {
	return &recordingProducer{}
}

func (p *recordingProducer) Publish(ctx context.Context, queue string, message any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, recordedMessage{Queue: queue, Message: message})
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func (p *recordingProducer) messages() []recordedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]recordedMessage, len(p.published))
	copy(out, p.published)
	return out
}
