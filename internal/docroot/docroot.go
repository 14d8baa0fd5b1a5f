// Package docroot confines filesystem access to the directory being served.
// Every lookup goes through an os.Root, so paths containing "..", absolute
// paths and symlinks that lead outside the directory fail instead of
// reaching content.
package docroot

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/docserve/pkg/constants"
	"github.com/agentstation/docserve/pkg/errors"
)

// Root is an open serving directory.
type Root struct {
	dir  string
	root *os.Root
}

// Open opens dir as a serving root.
func Open(dir string) (*Root, error) {
	if strings.TrimSpace(dir) == "" {
		dir = constants.DefaultRoot
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.WrapIO("open", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.WrapIO("open", abs, err)
	}
	if !info.IsDir() {
		return nil, errors.NewConfigError("root", abs+" is not a directory", nil)
	}
	r, err := os.OpenRoot(abs)
	if err != nil {
		return nil, errors.WrapIO("open", abs, err)
	}
	return &Root{dir: abs, root: r}, nil
}

// Dir returns the absolute path of the serving directory.
func (r *Root) Dir() string {
	return r.dir
}

// FS returns a filesystem confined to the root. Its opens never block on
// special files, so a FIFO is reported by Stat rather than waited on.
func (r *Root) FS() fs.FS {
	return rootFS{r.root}
}

// OpenFile opens name, a slash-separated path relative to the root, for
// reading.
func (r *Root) OpenFile(name string) (*os.File, error) {
	if !Confined(name) {
		return nil, errors.NewPathError(name, "escapes serving root")
	}
	if name == "" {
		name = "."
	}
	return r.root.OpenFile(filepath.FromSlash(name), openFlags, 0)
}

// Close releases the root handle.
func (r *Root) Close() error {
	return r.root.Close()
}

// Confined reports whether name stays inside the serving root: the empty
// string (the root itself) or a valid io/fs path. A single trailing slash,
// as used for directory URLs, is allowed.
func Confined(name string) bool {
	return name == "" || fs.ValidPath(strings.TrimSuffix(name, "/"))
}

// IsMarkup reports whether name carries the markup extension. The match is
// an exact, case-sensitive suffix.
func IsMarkup(name string) bool {
	return strings.HasSuffix(name, constants.MarkupExtension)
}

// rootFS is an fs.FS over an os.Root that opens with openFlags.
type rootFS struct {
	root *os.Root
}

func (f rootFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	file, err := f.root.OpenFile(filepath.FromSlash(name), openFlags, 0)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// Stat follows symlinks that stay inside the root.
func (f rootFS) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
	return f.root.Stat(filepath.FromSlash(name))
}

// checkContext maps a done context onto ErrCanceled.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return errors.ErrCanceled
	default:
		return nil
	}
}
