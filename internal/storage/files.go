// Package storage persists uploaded binaries (contract PDFs, signature
// images, post photos) on the local file system. Only relative paths are
// handed to the store layer; raw bytes never reach the tabular store.
package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Subdirectories under the upload root. Served statically at /uploads/*.
const (
	DirContracts = "contracts"
	DirPosts     = "posts"
)

// ErrOutsideRoot is returned when a stored path escapes the upload root.
var ErrOutsideRoot = errors.New("storage: path escapes upload root")

// Files writes and resolves uploaded binaries under a single root
// directory.
type Files struct {
	Root string
}

// New creates the upload root and its type subdirectories.
func New(root string) (*Files, error) {
	for _, dir := range []string{DirContracts, DirPosts} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, err
		}
	}
	return &Files{Root: root}, nil
}

// SaveBase64 decodes a base64 payload (with or without a data-URI prefix)
// and writes it under dir. The stored filename is prefix, a millisecond
// timestamp and an extension derived from the declared media type.
// Returns the path relative to the upload root.
func (f *Files) SaveBase64(dir, prefix, raw string) (string, error) {
	data, ext, err := DecodeDataURI(raw)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%d%s", prefix, time.Now().UnixMilli(), ext)
	rel := path.Join(dir, name)
	if err := os.WriteFile(filepath.Join(f.Root, dir, name), data, 0o644); err != nil {
		return "", err
	}
	return rel, nil
}

// SaveUpload stores a multipart file upload. The original filename is kept
// as a suffix so operators can recognize files on disk.
func (f *Files) SaveUpload(dir, prefix string, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), sanitizeName(fh.Filename))
	rel := path.Join(dir, name)
	dst, err := os.Create(filepath.Join(f.Root, dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return rel, nil
}

// Abs resolves a stored relative path back to an absolute one, rejecting
// anything that would escape the upload root.
func (f *Files) Abs(rel string) (string, error) {
	clean := filepath.Clean(filepath.Join(f.Root, filepath.FromSlash(rel)))
	root := filepath.Clean(f.Root)
	if clean != root && !strings.HasPrefix(clean, root+string(os.PathSeparator)) {
		return "", ErrOutsideRoot
	}
	return clean, nil
}

// Remove deletes a stored file. A missing file is not an error; the record
// pointing at it is already being discarded.
func (f *Files) Remove(rel string) error {
	abs, err := f.Abs(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DecodeDataURI decodes base64 content that may carry a
// "data:<media>;base64," prefix. It returns the raw bytes and a file
// extension guessed from the media type, ".bin" when unknown.
func DecodeDataURI(raw string) ([]byte, string, error) {
	raw = strings.TrimSpace(raw)
	ext := ".bin"
	if strings.HasPrefix(raw, "data:") {
		meta, rest, ok := strings.Cut(raw, ",")
		if !ok {
			return nil, "", errors.New("storage: malformed data URI")
		}
		media := strings.TrimPrefix(meta, "data:")
		media = strings.TrimSuffix(media, ";base64")
		ext = extForMedia(media)
		raw = rest
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		// Some clients URL-safe encode; tolerate it before giving up.
		if d2, err2 := base64.URLEncoding.DecodeString(raw); err2 == nil {
			return d2, ext, nil
		}
		return nil, "", fmt.Errorf("storage: decode base64: %w", err)
	}
	return data, ext, nil
}

func extForMedia(media string) string {
	switch strings.ToLower(media) {
	case "application/pdf":
		return ".pdf"
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".bin"
	}
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "arquivo"
	}
	return b.String()
}
