package handlers

import (
	"io"
	"io/fs"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/agentstation/docserve/internal/docroot"
	"github.com/agentstation/docserve/internal/markdown"
	"github.com/agentstation/docserve/internal/server/response"
	"github.com/agentstation/docserve/pkg/errors"
	"github.com/agentstation/docserve/pkg/logging"
)

// ResolvePath maps a URL path onto a root-relative name by removing a
// single leading slash. Further slashes are kept, so "//a.md" resolves to
// "/a.md" and is later rejected as escaping the root.
func ResolvePath(urlPath string) string {
	return strings.TrimPrefix(urlPath, "/")
}

// ServeHTTP implements http.Handler.
func (d *Documents) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := ResolvePath(r.URL.Path)
	ctx := logging.WithPath(logging.WithLogger(r.Context(), logging.FromContextOr(r.Context(), d.logger)), name)
	logger := logging.FromContext(ctx)

	if !docroot.Confined(name) {
		logger.Warn().Msg("Rejected path outside serving root")
		response.Error(w, errors.NewPathError(name, "escapes serving root"))
		return
	}

	if !docroot.IsMarkup(name) {
		d.fallback.ServeHTTP(w, r)
		return
	}

	body, err := d.render(name)
	switch {
	case err == nil:
		response.HTML(w, http.StatusOK, body)
	case errors.IsNotFound(err), errors.Is(err, errors.ErrNotRegular):
		d.fallback.ServeHTTP(w, r)
	default:
		d.renderFailed(logger, w, err)
	}
}

// render opens, reads, decodes and converts the document at name. Missing
// files report ErrNotFound and directories, FIFOs and devices report
// ErrNotRegular, so the caller falls back to static serving. The open does
// not block, so the regular-file check runs before anything is read.
func (d *Documents) render(name string) ([]byte, error) {
	f, err := d.root.OpenFile(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.ErrNotFound
		}
		return nil, errors.NewRenderError(name, errors.StageOpen, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.NewRenderError(name, errors.StageOpen, err)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.ErrNotRegular
	}

	source, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.NewRenderError(name, errors.StageRead, err)
	}
	if !utf8.Valid(source) {
		return nil, errors.NewRenderError(name, errors.StageDecode, errors.ErrInvalidEncoding)
	}

	fragment, err := markdown.Convert(source, markdown.DocumentExtensions...)
	if err != nil {
		return nil, errors.NewRenderError(name, errors.StageConvert, err)
	}

	page, err := RenderPage(name, fragment)
	if err != nil {
		return nil, errors.NewRenderError(name, errors.StageLayout, err)
	}
	return page, nil
}

func (d *Documents) renderFailed(logger *zerolog.Logger, w http.ResponseWriter, err error) {
	event := logger.Error().Err(err)
	var renderErr *errors.RenderError
	if errors.As(err, &renderErr) {
		event = event.Str("stage", string(renderErr.Stage))
	}
	event.Msg("Failed to render document")
	response.InternalError(w)
}
