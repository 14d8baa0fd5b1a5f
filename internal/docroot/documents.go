package docroot

import (
	"context"
	"io/fs"
	"net/url"
	"sort"
	"time"

	"github.com/agentstation/docserve/pkg/logging"
)

// Document describes a file the server would render.
type Document struct {
	Path     string    `json:"path" yaml:"path"`
	URL      string    `json:"url" yaml:"url"`
	Size     int64     `json:"size" yaml:"size"`
	Modified time.Time `json:"modified" yaml:"modified"`
}

// Documents walks the root and returns every regular markup file, sorted by
// path. Symlinks count when their target is a regular file inside the root.
// Directories that cannot be read are skipped.
func (r *Root) Documents(ctx context.Context) ([]Document, error) {
	logger := logging.FromContext(ctx)
	var docs []Document

	err := fs.WalkDir(r.FS(), ".", func(name string, d fs.DirEntry, walkErr error) error {
		if err := checkContext(ctx); err != nil {
			return err
		}
		if walkErr != nil {
			if d != nil && d.IsDir() && name != "." {
				logger.Warn().Err(walkErr).Str("dir", name).Msg("Skipping unreadable directory")
				return fs.SkipDir
			}
			return walkErr
		}
		if !IsMarkup(name) {
			return nil
		}

		info, err := r.entryInfo(name, d)
		if err != nil {
			logger.Warn().Err(err).Str("path", name).Msg("Skipping document without file info")
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		docs = append(docs, Document{
			Path:     name,
			URL:      documentURL(name),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// entryInfo describes the file a walk entry names, following symlinks.
func (r *Root) entryInfo(name string, d fs.DirEntry) (fs.FileInfo, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		return fs.Stat(r.FS(), name)
	}
	return d.Info()
}

// documentURL returns the escaped request path that renders name.
func documentURL(name string) string {
	u := url.URL{Path: "/" + name}
	return u.EscapedPath()
}
