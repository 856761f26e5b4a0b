package installer

import (
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
)

type copyItem struct {
	src, dst string
	mode     iofs.FileMode
}

// copyBundle copies the bundle directory src to dst. Symlinks are
// recreated rather than followed; frameworks inside bundles rely on them.
func copyBundle(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("%s already exists", dst)
	}

	var (
		items []copyItem
		mu    sync.Mutex
	)

	conf := &fastwalk.Config{Follow: false}
	err := fastwalk.Walk(conf, src, func(path string, d iofs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		info, err := os.Lstat(path)
		if err != nil {
			return err
		}

		mu.Lock()
		items = append(items, copyItem{src: path, dst: filepath.Join(dst, rel), mode: info.Mode()})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", src, err)
	}

	// parents before children
	sort.Slice(items, func(i, j int) bool {
		return strings.Count(items[i].dst, string(filepath.Separator)) <
			strings.Count(items[j].dst, string(filepath.Separator))
	})

	for _, item := range items {
		if err := copyItemTo(item); err != nil {
			return err
		}
	}
	return nil
}

func copyItemTo(item copyItem) error {
	switch {
	case item.mode.IsDir():
		return os.MkdirAll(item.dst, item.mode.Perm()|0700)

	case item.mode&iofs.ModeSymlink != 0:
		target, err := os.Readlink(item.src)
		if err != nil {
			return err
		}
		return os.Symlink(target, item.dst)

	case item.mode.IsRegular():
		return copyFile(item.src, item.dst, item.mode.Perm())

	default:
		return fmt.Errorf("unsupported file type %s: %s", item.mode.Type(), item.src)
	}
}

func copyFile(src, dst string, perm iofs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
