package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	storageerrors "github.com/heyyrintu/hrms-sub001/internal/storage/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultMaxBytes int64 = 10 << 20

type FileInfo struct {
	Key      string
	FileName string
	MimeType string
	Size     int64
}

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type Storage interface {
	Upload(ctx context.Context, r io.Reader, fileName, mimeType, entityType, entityID string) (FileInfo, error)
	Path(key string) (string, error)
	Delete(ctx context.Context, key string) error
}

var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// LocalStorage keeps files under a single root directory. Keys are
// slash-separated paths relative to that root.
type LocalStorage struct {
	root     string
	maxBytes int64
	logger   *zap.Logger
}

func NewLocalStorage(root string, maxBytes int64, logger ...*zap.Logger) (*LocalStorage, error) {
	l := zap.L().Named("storage.local")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.local")
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalStorage{root: abs, maxBytes: maxBytes, logger: l}, nil
}

func (s *LocalStorage) MaxBytes() int64 {
	return s.maxBytes
}

func (s *LocalStorage) Upload(ctx context.Context, r io.Reader, fileName, mimeType, entityType, entityID string) (FileInfo, error) {
	fileName = SanitizeFileName(fileName)

	dir := "misc"
	if segmentPattern.MatchString(entityType) {
		dir = strings.ToLower(entityType)
		if segmentPattern.MatchString(entityID) {
			dir = dir + "/" + entityID
		}
	}
	key := dir + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(fileName))

	target, err := s.Path(key)
	if err != nil {
		return FileInfo{}, err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return FileInfo{}, fmt.Errorf("create upload dir: %w", err)
	}

	br := bufio.NewReader(r)
	if strings.TrimSpace(mimeType) == "" {
		head, _ := br.Peek(512)
		mimeType = http.DetectContentType(head)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return FileInfo{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	n, err := io.Copy(tmp, io.LimitReader(br, s.maxBytes+1))
	closeErr := tmp.Close()
	if err != nil {
		cleanup()
		return FileInfo{}, fmt.Errorf("write upload: %w", err)
	}
	if closeErr != nil {
		cleanup()
		return FileInfo{}, fmt.Errorf("close upload: %w", closeErr)
	}
	if n == 0 {
		cleanup()
		return FileInfo{}, storageerrors.ErrEmptyFile
	}
	if n > s.maxBytes {
		cleanup()
		s.logger.Warn("upload rejected, too large", zap.String("file_name", fileName), zap.Int64("max_bytes", s.maxBytes))
		return FileInfo{}, storageerrors.ErrFileTooLarge
	}

	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return FileInfo{}, fmt.Errorf("finalize upload: %w", err)
	}

	s.logger.Debug("file stored", zap.String("key", key), zap.Int64("size", n))
	return FileInfo{Key: key, FileName: fileName, MimeType: mimeType, Size: n}, nil
}

// Path resolves key to an absolute path inside the root.
func (s *LocalStorage) Path(key string) (string, error) {
	if key == "" || strings.Contains(key, "\\") || strings.HasPrefix(key, "/") {
		return "", storageerrors.ErrInvalidKey
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return "", storageerrors.ErrInvalidKey
		}
	}

	p := filepath.Join(s.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.root, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", storageerrors.ErrInvalidKey
	}
	return p, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return storageerrors.ErrFileNotFound
		}
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

func SanitizeFileName(name string) string {
	cleaned := strings.TrimSpace(filepath.Base(strings.ReplaceAll(name, "\\", "/")))
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")
	if cleaned == "" || cleaned == "." || cleaned == "/" {
		return "document.bin"
	}
	return cleaned
}
