package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/docserve/internal/docroot"
	"github.com/agentstation/docserve/internal/server/handlers"
	"github.com/agentstation/docserve/pkg/logging"
)

const notesSource = "# Hi\n\n```\ncode\n```\n"

// setup creates a serving root populated with files and returns a handler
// over it together with the root for building reference fallbacks.
func setup(t *testing.T, files map[string]string) (*handlers.Documents, *docroot.Root, *logging.TestLogger) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	root, err := docroot.Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })

	tl := logging.NewTestLogger(t)
	return handlers.New(root, tl.Logger), root, tl
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestResolvePath(t *testing.T) {
	tests := []struct {
		urlPath string
		want    string
	}{
		{"/", ""},
		{"/a.md", "a.md"},
		{"//a.md", "/a.md"},
		{"/docs/guide.md", "docs/guide.md"},
		{"a.md", "a.md"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.urlPath, func(t *testing.T) {
			assert.Equal(t, tt.want, handlers.ResolvePath(tt.urlPath))
		})
	}
}

func TestDocuments_RendersMarkdown(t *testing.T) {
	h, _, _ := setup(t, map[string]string{"notes.md": notesSource})

	w := get(h, "/notes.md")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, w.Header().Get("Content-Length"), itoa(w.Body.Len()))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
	assert.Contains(t, body, "<title>notes.md</title>")
	assert.Contains(t, body, "<h1>Hi</h1>")
	assert.Contains(t, body, "<pre><code>code\n</code></pre>")
}

func TestDocuments_RendersTables(t *testing.T) {
	h, _, _ := setup(t, map[string]string{
		"docs/table.md": "| a | b |\n| --- | --- |\n| 1 | 2 |\n",
	})

	w := get(h, "/docs/table.md")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<table>")
	assert.Contains(t, w.Body.String(), "<td>1</td>")
	assert.Contains(t, w.Body.String(), "<title>docs/table.md</title>")
}

func TestDocuments_Idempotent(t *testing.T) {
	h, _, _ := setup(t, map[string]string{"notes.md": notesSource})

	first := get(h, "/notes.md").Body.String()
	second := get(h, "/notes.md").Body.String()

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated renders differ (-first +second):\n%s", diff)
	}
}

// TestDocuments_FallbackMatchesFileServer checks that non-markdown paths and
// missing markdown files answer exactly as the static file server does.
func TestDocuments_FallbackMatchesFileServer(t *testing.T) {
	h, root, _ := setup(t, map[string]string{
		"readme.txt":      "plain text\n",
		"style.css":       "body {}\n",
		"sub/inner.txt":   "inner\n",
		"site/index.html": "<p>index</p>",
	})
	reference := http.FileServerFS(root.FS())

	paths := []string{
		"/readme.txt",
		"/style.css",
		"/missing.md",
		"/missing.txt",
		"/sub/",
		"/sub",
		"/site/",
		"/",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			got := get(h, p)
			want := get(reference, p)

			assert.Equal(t, want.Code, got.Code)
			assert.Equal(t, want.Header().Get("Content-Type"), got.Header().Get("Content-Type"))
			assert.Equal(t, want.Header().Get("Location"), got.Header().Get("Location"))
			if diff := cmp.Diff(want.Body.String(), got.Body.String()); diff != "" {
				t.Errorf("body mismatch (-fileserver +handler):\n%s", diff)
			}
		})
	}
}

func TestDocuments_PlainFileUnmodified(t *testing.T) {
	h, _, _ := setup(t, map[string]string{"readme.txt": "# not rendered\n"})

	w := get(h, "/readme.txt")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# not rendered\n", w.Body.String())
	assert.NotContains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestDocuments_MissingMarkdown(t *testing.T) {
	h, _, _ := setup(t, map[string]string{"notes.md": notesSource})

	w := get(h, "/missing.md")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "<html>")
}

func TestDocuments_UppercaseExtensionNotRendered(t *testing.T) {
	h, _, _ := setup(t, map[string]string{"NOTES.MD": "# Hi\n"})

	w := get(h, "/NOTES.MD")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# Hi\n", w.Body.String())
}

func TestDocuments_RejectsEscapingPaths(t *testing.T) {
	h, _, tl := setup(t, map[string]string{"a.md": "# A\n"})

	t.Run("single strip", func(t *testing.T) {
		ok := get(h, "/a.md")
		assert.Equal(t, http.StatusOK, ok.Code)

		rejected := get(h, "//a.md")
		assert.Equal(t, http.StatusBadRequest, rejected.Code)
		assert.Equal(t, "invalid URL path\n", rejected.Body.String())
	})

	for _, target := range []string{"/../secret.md", "/../secret.txt", "/docs/../a.md", "/./a.md", "//etc/passwd"} {
		t.Run(target, func(t *testing.T) {
			w := get(h, target)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	tl.AssertContains(t, "Rejected path outside serving root")
}

func TestDocuments_SymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.md"), []byte("# top secret\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("top secret\n"), 0o644))

	h, root, tl := setup(t, nil)
	if err := os.Symlink(filepath.Join(outside, "secret.md"), filepath.Join(root.Dir(), "link.md")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(outside, filepath.Join(root.Dir(), "out")))

	for _, target := range []string{"/link.md", "/out/secret.md"} {
		t.Run(target, func(t *testing.T) {
			w := get(h, target)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, "Internal Server Error\n", w.Body.String())
		})
	}
	tl.AssertContains(t, `"stage":"open"`)
	tl.AssertContains(t, `"resolved_path":"link.md"`)

	w := get(h, "/out/secret.txt")
	assert.NotEqual(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "top secret")
}

func TestDocuments_TitleEscaped(t *testing.T) {
	h, _, _ := setup(t, map[string]string{"<script>x.md": "# Hi\n"})

	w := get(h, "/%3Cscript%3Ex.md")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>&lt;script&gt;x.md</title>")
	assert.NotContains(t, w.Body.String(), "<title><script>")
}

func TestDocuments_DirectoryNamedMarkdown(t *testing.T) {
	h, root, _ := setup(t, map[string]string{"x.md/inner.txt": "inner\n"})
	reference := http.FileServerFS(root.FS())

	w := get(h, "/x.md")
	want := get(reference, "/x.md")
	assert.Equal(t, want.Code, w.Code)
	assert.Equal(t, want.Header().Get("Location"), w.Header().Get("Location"))

	listing := get(h, "/x.md/")
	require.Equal(t, http.StatusOK, listing.Code)
	assert.Contains(t, listing.Body.String(), "inner.txt")
}

func TestDocuments_InvalidUTF8(t *testing.T) {
	h, _, tl := setup(t, map[string]string{
		"bad.md":  "# caf\xe9\n",
		"good.md": "# Good\n",
	})

	w := get(h, "/bad.md")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error\n", w.Body.String())
	tl.AssertContains(t, "Failed to render document")
	tl.AssertContains(t, `"stage":"decode"`)
	tl.AssertContains(t, `"resolved_path":"bad.md"`)

	next := get(h, "/good.md")
	assert.Equal(t, http.StatusOK, next.Code)
	assert.Contains(t, next.Body.String(), "<h1>Good</h1>")
}

func TestDocuments_EmptyDocument(t *testing.T) {
	h, _, _ := setup(t, map[string]string{"empty.md": ""})

	w := get(h, "/empty.md")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<title>empty.md</title>")
}

func TestDocuments_RawHTMLPassesThrough(t *testing.T) {
	h, _, _ := setup(t, map[string]string{"raw.md": "<div class=\"note\">hi</div>\n"})

	w := get(h, "/raw.md")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<div class="note">hi</div>`)
}

func TestDocuments_WithFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# A\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "d.md"), 0o755))
	root, err := docroot.Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = root.Close() })

	var fallbackPaths []string
	fallback := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fallbackPaths = append(fallbackPaths, r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
	})
	h := handlers.New(root, nil, handlers.WithFallback(fallback))

	assert.Equal(t, http.StatusOK, get(h, "/a.md").Code)
	assert.Equal(t, http.StatusTeapot, get(h, "/b.md").Code)
	assert.Equal(t, http.StatusTeapot, get(h, "/c.txt").Code)
	assert.Equal(t, http.StatusTeapot, get(h, "/d.md").Code)
	assert.Equal(t, []string{"/b.md", "/c.txt", "/d.md"}, fallbackPaths)
}

func TestDocuments_UsesRequestLogger(t *testing.T) {
	h, _, handlerLog := setup(t, map[string]string{"bad.md": "\xff"})
	requestLog := logging.NewTestLogger(t)

	req := httptest.NewRequest(http.MethodGet, "/bad.md", nil)
	req = req.WithContext(logging.WithLogger(req.Context(), requestLog.Logger))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	requestLog.AssertContains(t, "Failed to render document")
	handlerLog.AssertCount(t, 0)
}

func TestDocuments_Concurrent(t *testing.T) {
	h, _, _ := setup(t, map[string]string{
		"notes.md":   notesSource,
		"readme.txt": "plain\n",
	})
	want := get(h, "/notes.md").Body.String()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				w := get(h, "/notes.md")
				assert.Equal(t, http.StatusOK, w.Code)
				assert.Equal(t, want, w.Body.String())
				return
			}
			assert.Equal(t, http.StatusOK, get(h, "/readme.txt").Code)
		}()
	}
	wg.Wait()
}

func TestRenderPage(t *testing.T) {
	page, err := handlers.RenderPage(`a&b "c".md`, []byte("<p>kept <em>as is</em></p>\n"))
	require.NoError(t, err)

	body := string(page)
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">"))
	assert.Contains(t, body, "<title>a&amp;b &#34;c&#34;.md</title>")
	assert.Contains(t, body, "<body>\n<p>kept <em>as is</em></p>\n\n</body>")
	assert.Contains(t, body, "max-width: 700px")
	assert.Contains(t, body, "background: #f4f4f4")

	again, err := handlers.RenderPage(`a&b "c".md`, []byte("<p>kept <em>as is</em></p>\n"))
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(page, again))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
