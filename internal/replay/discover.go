package replay

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charlievieth/fastwalk"
	"github.com/sirupsen/logrus"
)

const streamBufferSize = 64

func isScriptFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Discover expands paths into script files. Files are taken as given;
// directories are walked for *.yaml and *.yml files, skipping hidden
// directories. The result is sorted so replays run in a stable order.
func Discover(ctx context.Context, paths []string) ([]string, error) {
	var found []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("replay path: %w", err)
		}
		if !info.IsDir() {
			found = append(found, p)
			continue
		}
		for path := range streamScriptFiles(ctx, p) {
			found = append(found, path)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	slices.Sort(found)
	return slices.Compact(found), nil
}

// streamScriptFiles walks root and streams script files over a channel. The
// channel is closed when walking completes or the context is canceled.
func streamScriptFiles(ctx context.Context, root string) <-chan string {
	out := make(chan string, streamBufferSize)
	go func() {
		defer close(out)
		conf := fastwalk.DefaultConfig
		err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // Skip unreadable entries.
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return fs.SkipDir
				}
				return nil
			}
			if isScriptFile(path) {
				select {
				case out <- path:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
		if err != nil {
			logrus.WithField("root", root).WithError(err).Debug("Replay discovery stopped")
		}
	}()
	return out
}
