// Package markdown converts Markdown documents to HTML fragments with
// goldmark. Callers name the syntax extensions they want enabled; the
// converter keeps one immutable engine per extension set so it can be shared
// across concurrent requests without locking.
package markdown

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Extension names understood by Convert.
const (
	FencedCode    = "fenced_code"
	Tables        = "tables"
	Strikethrough = "strikethrough"
	Footnotes     = "footnotes"
	Definitions   = "def_list"
	TaskList      = "tasklist"
	Linkify       = "linkify"
)

// DocumentExtensions is the fixed set enabled for served documents.
var DocumentExtensions = []string{FencedCode, Tables}

// extensionRegistry maps extension names to goldmark extenders. A nil entry
// names syntax that CommonMark already parses natively.
var extensionRegistry = map[string]goldmark.Extender{
	"fenced_code":   nil,
	"fenced-code":   nil,
	"tables":        extension.Table,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"footnotes":     extension.Footnote,
	"footnote":      extension.Footnote,
	"def_list":      extension.DefinitionList,
	"definition":    extension.DefinitionList,
	"tasklist":      extension.TaskList,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
}

var engines sync.Map // canonical extension key -> goldmark.Markdown

// Convert renders markdown source to an HTML fragment with the named
// extensions enabled. Unknown names are ignored.
func Convert(source []byte, extensions ...string) ([]byte, error) {
	engine := engineFor(extensions)
	var buf bytes.Buffer
	if err := engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown convert: %w", err)
	}
	return buf.Bytes(), nil
}

func engineFor(names []string) goldmark.Markdown {
	exts, key := collectExtensions(names)
	if cached, ok := engines.Load(key); ok {
		return cached.(goldmark.Markdown)
	}
	engine := newEngine(exts)
	actual, _ := engines.LoadOrStore(key, engine)
	return actual.(goldmark.Markdown)
}

// newEngine builds a goldmark instance. Heading IDs are not generated and
// raw HTML in documents is passed through.
func newEngine(exts []goldmark.Extender) goldmark.Markdown {
	opts := []goldmark.Option{
		goldmark.WithRendererOptions(html.WithUnsafe()),
	}
	if len(exts) > 0 {
		opts = append(opts, goldmark.WithExtensions(exts...))
	}
	return goldmark.New(opts...)
}

// collectExtensions resolves names to extenders and returns a canonical key
// identifying the resulting set.
func collectExtensions(names []string) ([]goldmark.Extender, string) {
	var (
		extenders []goldmark.Extender
		keys      []string
	)
	seen := map[goldmark.Extender]struct{}{}

	for _, name := range names {
		ext, ok := extensionRegistry[normalize(name)]
		if !ok || ext == nil {
			continue
		}
		if _, dup := seen[ext]; dup {
			continue
		}
		seen[ext] = struct{}{}
		extenders = append(extenders, ext)
		keys = append(keys, fmt.Sprintf("%T", ext))
	}

	slices.Sort(keys)
	return extenders, strings.Join(keys, ",")
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
