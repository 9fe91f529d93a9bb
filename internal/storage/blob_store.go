package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// BlobStore holds template assets and generated document bytes, addressed by
// a store-relative ref.
type BlobStore interface {
	// Read returns the blob's content
	Read(ref string) ([]byte, error)

	// Write stores content under ref, creating parent directories as needed
	Write(ref string, content []byte) error

	// Delete removes the blob; deleting a missing ref is not an error
	Delete(ref string) error
}

// LocalBlobStore implements BlobStore on the local filesystem under one base
// directory. Refs are validated so they cannot escape it.
type LocalBlobStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalBlobStore creates a new LocalBlobStore
func NewLocalBlobStore(baseDir string, logger *zap.Logger) *LocalBlobStore {
	return &LocalBlobStore{
		baseDir: baseDir,
		logger:  logger,
	}
}

// Read returns the content stored under ref
func (s *LocalBlobStore) Read(ref string) ([]byte, error) {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		s.logger.Error("Failed to read blob",
			zap.String("ref", ref),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}

	return content, nil
}

// Write stores content under ref, creating parent directories as needed
func (s *LocalBlobStore) Write(ref string, content []byte) error {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return err
	}

	parentDir := filepath.Dir(fullPath)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		s.logger.Error("Failed to create parent directories",
			zap.String("path", parentDir),
			zap.Error(err))
		return fmt.Errorf("failed to create directories: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("Failed to write blob",
			zap.String("ref", ref),
			zap.Error(err))
		return fmt.Errorf("failed to write blob: %w", err)
	}

	s.logger.Debug("Blob written",
		zap.String("ref", ref),
		zap.Int("size", len(content)))

	return nil
}

// Delete removes the blob stored under ref
func (s *LocalBlobStore) Delete(ref string) error {
	fullPath, err := s.resolve(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		s.logger.Error("Failed to delete blob",
			zap.String("ref", ref),
			zap.Error(err))
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	return nil
}

// resolve turns a ref into an absolute path and checks it stays within the
// base directory.
func (s *LocalBlobStore) resolve(ref string) (string, error) {
	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(absBase, filepath.FromSlash(ref)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return "", fmt.Errorf("ref escapes base directory: %s", ref)
	}

	return absPath, nil
}
