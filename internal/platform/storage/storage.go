// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage persists uploaded proposal files and reports where they live.

The only backend is a local directory that mimics a content-addressed bucket:
every object gets a fresh NanoID key (keeping the uploaded extension), a
public URL under a configurable base, and a BLAKE2b-256 checksum of its bytes.
*/
package storage

import (
	stdctx "context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/crypto/blake2b"
)

// ErrEmptyObject is returned when an upload carries no bytes.
var ErrEmptyObject = errors.New("storage: empty object")

// Object is a file to be uploaded.
type Object struct {
	Name     string
	MimeType string
	Data     []byte
}

// Stored describes an uploaded object.
type Stored struct {
	Key      string
	URL      string
	Checksum string
	Size     int64
}

// FileStorage is the contract the proposal service uploads through.
type FileStorage interface {
	Upload(context stdctx.Context, object Object) (*Stored, error)
}

// # Local Directory Backend

// LocalStorage writes objects into a directory on disk.
type LocalStorage struct {
	dir       string
	publicURL string
}

// NewLocalStorage creates the directory if needed.
func NewLocalStorage(dir, publicURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

/*
Upload writes the object under a fresh key.

Parameters:
  - context: Cancelled requests abort before touching the disk
  - object: Name (for the extension), mime type and raw bytes

Returns:
  - *Stored: Key, public URL, checksum and size
  - error: ErrEmptyObject, or a wrapped filesystem error
*/
func (storage *LocalStorage) Upload(context stdctx.Context, object Object) (*Stored, error) {
	if len(object.Data) == 0 {
		return nil, ErrEmptyObject
	}
	if err := context.Err(); err != nil {
		return nil, err
	}

	key, err := NewKey(object.Name)
	if err != nil {
		return nil, err
	}

	// Write to a temp file first so a failed upload never leaves a partial object.
	target := filepath.Join(storage.dir, key)
	temp := target + ".part"
	if err := os.WriteFile(temp, object.Data, 0o644); err != nil {
		return nil, fmt.Errorf("storage: write %s: %w", key, err)
	}
	if err := os.Rename(temp, target); err != nil {
		_ = os.Remove(temp)
		return nil, fmt.Errorf("storage: commit %s: %w", key, err)
	}

	return &Stored{
		Key:      key,
		URL:      storage.publicURL + "/" + key,
		Checksum: Checksum(object.Data),
		Size:     int64(len(object.Data)),
	}, nil
}

// # Helpers

// NewKey returns a random object key that keeps the lowercased extension of name.
func NewKey(name string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("storage: generate key: %w", err)
	}
	return id + strings.ToLower(filepath.Ext(filepath.Base(name))), nil
}

// Checksum is the hex BLAKE2b-256 digest of data.
func Checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
