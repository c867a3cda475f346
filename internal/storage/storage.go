package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	maxFileSize = 1 << 20 // 1MB is far above any options or leaderboard file
	dirPerm     = 0o700
	filePerm    = 0o600
)

// ErrUnavailable marks a storage file that could not be read or written.
// Callers degrade to default state and keep going.
var ErrUnavailable = errors.New("storage unavailable")

// ExpandTilde expands the tilde in a path to the user's home directory.
func ExpandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// ReadFile reads a whole storage file, refusing anything larger than maxFileSize.
// A missing file is reported with an error satisfying os.IsNotExist.
func ReadFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%w: %s is too large: %d bytes (max %d)", ErrUnavailable, path, info.Size(), maxFileSize)
	}

	return io.ReadAll(io.LimitReader(file, maxFileSize))
}

// WriteFileAtomic replaces path with data. The bytes go to a temporary file in
// the same directory first and are renamed over the target, so an interrupted
// write never leaves a truncated file behind.
func WriteFileAtomic(path string, data []byte) error {
	logrus.Debug("Saving storage file to: ", path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}
