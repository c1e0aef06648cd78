package ark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"shodan/internal/fileutil"
)

// ErrLocked reports that another process holds an archive lock.
var ErrLocked = errors.New("archive is locked by another process")

// Snapshot builds the archive document from the current store contents.
func Snapshot(ctx context.Context, store *Store, meta Meta) (Document, error) {
	records, err := store.List(ctx)
	if err != nil {
		return Document{}, err
	}
	if records == nil {
		records = []Record{}
	}
	meta.TotalArtifacts = len(records)
	return Document{Meta: meta, Canon: records}, nil
}

// Export writes the archive document as indented JSON.
func Export(ctx context.Context, store *Store, w io.Writer, meta Meta) error {
	doc, err := Snapshot(ctx, store, meta)
	if err != nil {
		return err
	}
	return encodeDocument(w, doc)
}

// WriteFile exports the archive to path atomically while holding
// path+".lock".
func WriteFile(ctx context.Context, store *Store, path string, meta Meta) (Document, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Document{}, fmt.Errorf("create export directory: %w", err)
	}
	unlock, err := Lock(path + ".lock")
	if err != nil {
		return Document{}, err
	}
	defer unlock()

	doc, err := Snapshot(ctx, store, meta)
	if err != nil {
		return Document{}, err
	}
	if err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return encodeDocument(w, doc)
	}); err != nil {
		return Document{}, fmt.Errorf("write archive %s: %w", path, err)
	}
	return doc, nil
}

func encodeDocument(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode archive document: %w", err)
	}
	return nil
}

// Lock takes a non-blocking exclusive lock on path. The returned function
// releases it.
func Lock(path string) (func(), error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	return func() {
		_ = lock.Unlock()
	}, nil
}
