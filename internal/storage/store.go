package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file exceeds the size limit")
	ErrNotFound     = errors.New("object not found")
)

// Object describes one stored file under a prefix.
type Object struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// Store is the object-storage boundary: write a blob under a path, list a
// prefix, delete, and mint retrieval URLs. The portal ships a local-disk
// implementation; the interface keeps handlers and services unaware of it.
type Store interface {
	Put(ctx context.Context, objectPath string, r io.Reader, size int64) (string, error)
	List(ctx context.Context, prefix string) ([]Object, error)
	Remove(ctx context.Context, objectPath string) error
	PublicURL(objectPath string) string
	SignedURL(objectPath string, ttl time.Duration) (string, error)
}

// DiskStore saves objects below baseDir and serves them from staticBase.
// Signed URLs carry an HMAC over path+expiry so a document link can be
// handed out without exposing the whole bucket.
type DiskStore struct {
	baseDir    string
	staticBase string
	secret     []byte
}

func NewDiskStore(baseDir, staticBase, signingSecret string) *DiskStore {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if staticBase == "" {
		staticBase = "/static/documents"
	}
	return &DiskStore{
		baseDir:    baseDir,
		staticBase: strings.TrimSuffix(staticBase, "/"),
		secret:     []byte(signingSecret),
	}
}

// BaseDir exposes the root so the router can mount a static file handler.
func (s *DiskStore) BaseDir() string { return s.baseDir }

func (s *DiskStore) Put(ctx context.Context, objectPath string, r io.Reader, size int64) (string, error) {
	if size == 0 {
		return "", ErrEmptyFile
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cleaned, err := cleanPath(objectPath)
	if err != nil {
		return "", err
	}

	absPath := filepath.Join(s.baseDir, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to create object: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(absPath)
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return s.PublicURL(cleaned), nil
}

func (s *DiskStore) List(ctx context.Context, prefix string) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned, err := cleanPath(prefix)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.baseDir, filepath.FromSlash(cleaned))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Object{}, nil
		}
		return nil, err
	}

	objects := make([]Object, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		objects = append(objects, Object{
			Name: e.Name(),
			Path: path.Join(cleaned, e.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Name < objects[j].Name })
	return objects, nil
}

func (s *DiskStore) Remove(ctx context.Context, objectPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cleaned, err := cleanPath(objectPath)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(cleaned))); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *DiskStore) PublicURL(objectPath string) string {
	return s.staticBase + "/" + strings.TrimPrefix(objectPath, "/")
}

// SignedURL appends an expiry and an HMAC signature to the public URL.
func (s *DiskStore) SignedURL(objectPath string, ttl time.Duration) (string, error) {
	cleaned, err := cleanPath(objectPath)
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(ttl).Unix()
	sig := s.sign(cleaned, expires)

	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("sig", sig)
	return s.PublicURL(cleaned) + "?" + q.Encode(), nil
}

// VerifySignature checks a signed URL's query parameters against the path.
// Used by the static document route before serving a file.
func (s *DiskStore) VerifySignature(objectPath, expiresStr, sig string) bool {
	expires, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return false
	}
	if time.Now().Unix() > expires {
		return false
	}
	cleaned, err := cleanPath(objectPath)
	if err != nil {
		return false
	}
	expected := s.sign(cleaned, expires)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func (s *DiskStore) sign(objectPath string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", objectPath, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

// cleanPath normalizes an object path and rejects traversal outside the base.
func cleanPath(p string) (string, error) {
	p = strings.TrimPrefix(strings.TrimSpace(p), "/")
	if p == "" {
		return "", errors.New("empty object path")
	}
	cleaned := path.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("invalid object path")
	}
	return cleaned, nil
}
