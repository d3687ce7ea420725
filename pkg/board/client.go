package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Store is the persistence contract used by the mutation protocol.
// Load returns an error satisfying IsNotFound when no document has been saved yet.
type Store interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
}

// Client provides profile-scoped Redis operations for the kanban document.
// The document lives under a single key and is always written whole, so a reader
// never observes a partial write. There is no compare-and-swap: concurrent writers
// are last-write-wins.
// The client is thread-safe and can be used concurrently from multiple goroutines.
type Client struct {
	rdb     *redis.Client
	profile string
	key     string
	log     logrus.FieldLogger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithStorageKey overrides the well-known storage key (default "kanban.v1").
func WithStorageKey(key string) ClientOption {
	return func(c *Client) {
		if key != "" {
			c.key = key
		}
	}
}

// WithLogger sets the logger used to report self-healing repairs.
func WithLogger(log logrus.FieldLogger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient creates a new kanban client for the specified profile.
//
// Parameters:
//   - redisOpts: Redis connection options (address, password, DB, etc.)
//   - profile: namespace for keys and channels (must not be empty)
//
// Returns an error if profile is empty.
func NewClient(redisOpts *redis.Options, profile string, opts ...ClientOption) (*Client, error) {
	if profile == "" {
		return nil, fmt.Errorf("profile name cannot be empty")
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		rdb:     redis.NewClient(redisOpts),
		profile: profile,
		key:     DefaultStorageKey,
		log:     discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithFields(logrus.Fields{"profile": profile, "key": c.documentKey()})
	return c, nil
}

// Close closes the Redis connection. Implements io.Closer.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping verifies Redis connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Profile returns the namespace this client reads and writes.
func (c *Client) Profile() string {
	return c.profile
}

func (c *Client) documentKey() string {
	return DocumentKey(c.profile, c.key)
}

// LoadRaw reads the stored document bytes without interpretation.
// Returns (nil, redis.Nil) if nothing is stored.
func (c *Client) LoadRaw(ctx context.Context) ([]byte, error) {
	data, err := c.rdb.Get(ctx, c.documentKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("failed to read document from Redis: %w", err)
	}
	return data, nil
}

// Load reads the stored document and normalizes it.
// Returns (nil, redis.Nil) if no document is stored; use IsNotFound to check.
//
// If normalization repaired anything, the repaired document is saved before it is
// returned so storage heals on first read.
func (c *Client) Load(ctx context.Context) (*Document, error) {
	doc, _, err := c.LoadWithDiagnostics(ctx)
	return doc, err
}

// LoadWithDiagnostics is Load that also returns the repairs applied, if any.
func (c *Client) LoadWithDiagnostics(ctx context.Context) (*Document, []string, error) {
	data, err := c.LoadRaw(ctx)
	if err != nil {
		return nil, nil, err
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		// Unparseable bytes are not a mapping: Normalize replaces them with defaults.
		raw = string(data)
	}

	res := Normalize(raw)
	if res.Changed {
		for _, d := range res.Diagnostics {
			c.log.Warn(d)
		}
		if err := c.Save(ctx, res.Document); err != nil {
			return nil, nil, fmt.Errorf("failed to persist repaired document: %w", err)
		}
		c.log.WithField("repairs", len(res.Diagnostics)).Info("Repaired stored document")
	}
	return res.Document, res.Diagnostics, nil
}

// Save writes the document verbatim as a single value and publishes it on the
// document events channel. Save does not normalize.
func (c *Client) Save(ctx context.Context, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("cannot save a nil document")
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if err := c.rdb.Set(ctx, c.documentKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write document to Redis: %w", err)
	}

	// Change notification is best effort; the write above is what counts.
	if err := c.rdb.Publish(ctx, DocumentEventsChannel(c.profile), data).Err(); err != nil {
		c.log.WithError(err).Warn("Failed to publish document event")
	}

	return nil
}

// InitDefault saves and returns a fresh default document.
func (c *Client) InitDefault(ctx context.Context) (*Document, error) {
	doc := NewDocument()
	if err := c.Save(ctx, doc); err != nil {
		return nil, err
	}
	c.log.Info("Initialized default document")
	return doc, nil
}

// Exists checks if a document is stored without fetching it.
func (c *Client) Exists(ctx context.Context) (bool, error) {
	n, err := c.rdb.Exists(ctx, c.documentKey()).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check document existence: %w", err)
	}
	return n > 0, nil
}

// IsNotFound returns true if the error is a Redis "key not found" error (redis.Nil).
// Use this to check if Load returned "no document stored".
func IsNotFound(err error) bool {
	return errors.Is(err, redis.Nil)
}
