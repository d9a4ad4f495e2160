// Package checkpoint stores lattice configurations per bin in BadgerDB so an
// interrupted run can resume from its last completed bin.
//
// Keys are "ckpt:<run>:<bin, 10 digits>", so a reverse prefix scan finds the
// latest bin. Values are gob-encoded envelopes; the lattice inside uses its
// own binary encoding.
package checkpoint

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/katalvlaran/stringnet/lattice"
)

var (
	// ErrPathRequired is returned by Open for a persistent store without path.
	ErrPathRequired = errors.New("checkpoint: path is required for persistent store")

	// ErrNotFound is returned when a run has no checkpoint for the request.
	ErrNotFound = errors.New("checkpoint: not found")

	// ErrInvalid is returned by Save for an empty run id, negative bin or
	// missing lattice.
	ErrInvalid = errors.New("checkpoint: invalid checkpoint")
)

// Config holds configuration for the checkpoint database.
type Config struct {
	// Path is the database directory; ignored when InMemory is true.
	Path string
	// InMemory keeps everything in RAM. Useful for tests.
	InMemory bool
	// SyncWrites fsyncs every commit.
	SyncWrites bool
	// Logger receives Badger's internal logs. Nil disables them.
	Logger *slog.Logger
}

// DefaultConfig returns a durable on-disk configuration for path.
func DefaultConfig(path string) Config {
	return Config{Path: path, SyncWrites: true}
}

// InMemoryConfig returns a configuration for tests.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Checkpoint is the lattice at the end of one bin. Updates, Accepted and
// Steps are cumulative over the whole run, not just the segment that saved it.
type Checkpoint struct {
	Bin      int
	Updates  uint64
	Accepted uint64
	Steps    uint64
	SavedAt  time.Time
	Lattice  *lattice.Lattice
}

// Store is a Badger-backed checkpoint store. It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens the checkpoint database described by cfg.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, ErrPathRequired
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create checkpoint directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func prefix(runID string) []byte {
	return []byte("ckpt:" + runID + ":")
}

func key(runID string, bin int) []byte {
	return []byte(fmt.Sprintf("ckpt:%s:%010d", runID, bin))
}

// Save stores cp as bin cp.Bin of runID, replacing an existing entry.
func (s *Store) Save(ctx context.Context, runID string, cp Checkpoint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if runID == "" || strings.Contains(runID, ":") || cp.Bin < 0 || cp.Lattice == nil {
		return ErrInvalid
	}
	if cp.SavedAt.IsZero() {
		cp.SavedAt = time.Now().UTC()
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cp); err != nil {
		return fmt.Errorf("encode checkpoint %s/%d: %w", runID, cp.Bin, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(runID, cp.Bin), buf.Bytes())
	})
}

// Load returns bin bin of runID.
func (s *Store) Load(ctx context.Context, runID string, bin int) (Checkpoint, error) {
	if err := ctx.Err(); err != nil {
		return Checkpoint{}, err
	}
	var cp Checkpoint
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(runID, bin))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%s bin %d: %w", runID, bin, ErrNotFound)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error { return decode(val, &cp) })
	})

	return cp, err
}

// Latest returns the highest bin saved for runID.
func (s *Store) Latest(ctx context.Context, runID string) (Checkpoint, error) {
	if err := ctx.Err(); err != nil {
		return Checkpoint{}, err
	}
	var cp Checkpoint
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		p := prefix(runID)
		it.Seek(append(append([]byte(nil), p...), 0xFF))
		if !it.ValidForPrefix(p) {
			return nil
		}
		found = true

		return it.Item().Value(func(val []byte) error { return decode(val, &cp) })
	})
	if err != nil {
		return Checkpoint{}, err
	}
	if !found {
		return Checkpoint{}, fmt.Errorf("%s: %w", runID, ErrNotFound)
	}

	return cp, nil
}

// Bins lists the saved bins of runID in ascending order.
func (s *Store) Bins(ctx context.Context, runID string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var bins []int
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		p := prefix(runID)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			bin, err := strconv.Atoi(string(it.Item().Key()[len(p):]))
			if err != nil {
				return fmt.Errorf("parse checkpoint key %q: %w", it.Item().Key(), err)
			}
			bins = append(bins, bin)
		}

		return nil
	})

	return bins, err
}

// Prune deletes all but the newest keep bins of runID.
func (s *Store) Prune(ctx context.Context, runID string, keep int) error {
	bins, err := s.Bins(ctx, runID)
	if err != nil {
		return err
	}
	if keep < 0 {
		keep = 0
	}
	if len(bins) <= keep {
		return nil
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, bin := range bins[:len(bins)-keep] {
			if err := txn.Delete(key(runID, bin)); err != nil {
				return err
			}
		}

		return nil
	})
}

func decode(val []byte, cp *Checkpoint) error {
	if err := gob.NewDecoder(bytes.NewReader(val)).Decode(cp); err != nil {
		return fmt.Errorf("decode checkpoint: %w", err)
	}

	return nil
}
