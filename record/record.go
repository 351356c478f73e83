// Package record persists a single typed record in one backing file, safely
// shared between processes.
//
// Every operation takes the file's sentinel lock (see lockfile), so reads
// see complete writes and read-modify-write cycles do not interleave. Writes
// replace the whole file atomically; there are no partial updates and no
// append log. The record type S and its on-disk format (codec.JSON unless
// configured otherwise) are the caller's schema.
//
// A missing backing file is not an error: it decodes as the zero record, and
// the file appears on the first write.
package record

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/unkn0wn-root/statefile/atomicfile"
	"github.com/unkn0wn-root/statefile/codec"
	"github.com/unkn0wn-root/statefile/lockfile"
)

const (
	defaultFileMode os.FileMode = 0o644
	defaultDirMode  os.FileMode = 0o755
)

// Options configures a Store. The zero value is usable.
type Options[S any] struct {
	// Codec defines the on-disk format. Defaults to codec.JSON[S].
	Codec codec.Codec[S]
	// Lock tunes sentinel-lock acquisition (staleness, retry budget).
	Lock lockfile.Config
	// FileMode for the backing file (default 0o644).
	FileMode os.FileMode
	// DirMode for created parent directories (default 0o755).
	DirMode os.FileMode
}

// Store reads and writes the record at one path. Safe for concurrent use;
// cross-process safety comes from the file lock, not from the Store value.
type Store[S any] struct {
	path     string
	codec    codec.Codec[S]
	lock     *lockfile.Lock
	fileMode os.FileMode
}

// New returns a Store for the record at path, creating the parent directory
// if needed (the sentinel lock lives there too).
func New[S any](path string, opts Options[S]) (*Store[S], error) {
	if path == "" {
		return nil, errors.New("record: path is required")
	}
	if opts.Codec == nil {
		opts.Codec = codec.JSON[S]{}
	}
	if opts.FileMode == 0 {
		opts.FileMode = defaultFileMode
	}
	if opts.DirMode == 0 {
		opts.DirMode = defaultDirMode
	}
	if err := os.MkdirAll(filepath.Dir(path), opts.DirMode); err != nil {
		return nil, fmt.Errorf("record: mkdir for %s: %w", path, err)
	}
	return &Store[S]{
		path:     path,
		codec:    opts.Codec,
		lock:     lockfile.New(path, opts.Lock),
		fileMode: opts.FileMode,
	}, nil
}

// Path returns the backing file path.
func (s *Store[S]) Path() string { return s.path }

// Load returns the current record, or the zero record if the file does not
// exist yet. A file that exists but does not decode returns *MalformedError.
func (s *Store[S]) Load(ctx context.Context) (S, error) {
	snap, err := s.LoadSnapshot(ctx)
	return snap.Record, err
}

// LoadSnapshot is Load plus the raw encoded bytes and the file revision they
// were read at, all observed inside a single lock hold.
func (s *Store[S]) LoadSnapshot(ctx context.Context) (Snapshot[S], error) {
	var snap Snapshot[S]
	err := s.lock.WithLock(ctx, func() error {
		var err error
		snap, err = s.readLocked()
		return err
	})
	return snap, err
}

// Save replaces the record unconditionally. It does not read the previous
// content, which also makes it the escape hatch for overwriting a malformed
// file on purpose. Prefer Update for read-modify-write.
func (s *Store[S]) Save(ctx context.Context, rec S) error {
	return s.lock.WithLock(ctx, func() error {
		return s.writeLocked(rec)
	})
}

// Update runs fn on the current record and writes the result back, all under
// one lock hold. Concurrent Updates never lose increments, unlike separate
// Load/Save pairs. If fn returns an error, nothing is written and the error
// is returned as-is.
func (s *Store[S]) Update(ctx context.Context, fn func(*S) error) error {
	return s.lock.WithLock(ctx, func() error {
		snap, err := s.readLocked()
		if err != nil {
			return err
		}
		rec := snap.Record
		if err := fn(&rec); err != nil {
			return err
		}
		return s.writeLocked(rec)
	})
}

// readLocked reads and decodes the backing file. Callers hold the lock.
func (s *Store[S]) readLocked() (Snapshot[S], error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			var zero S
			return Snapshot[S]{Record: zero}, nil
		}
		return Snapshot[S]{}, fmt.Errorf("record: open %s: %w", s.path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return Snapshot[S]{}, fmt.Errorf("record: stat %s: %w", s.path, err)
	}
	raw, err := io.ReadAll(f)
	if err != nil {
		return Snapshot[S]{}, fmt.Errorf("record: read %s: %w", s.path, err)
	}

	rec, err := s.codec.Decode(raw)
	if err != nil {
		return Snapshot[S]{}, &MalformedError{Path: s.path, Err: err}
	}
	return Snapshot[S]{Record: rec, Raw: raw, Rev: revOf(fi)}, nil
}

// writeLocked encodes and atomically replaces the backing file. Callers hold
// the lock.
func (s *Store[S]) writeLocked(rec S) error {
	b, err := s.codec.Encode(rec)
	if err != nil {
		return fmt.Errorf("record: encode for %s: %w", s.path, err)
	}
	if err := atomicfile.WriteFile(s.path, b, s.fileMode); err != nil {
		return fmt.Errorf("record: write %s: %w", s.path, err)
	}
	return nil
}
