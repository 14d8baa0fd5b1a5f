// Package response provides helpers that write complete HTTP responses for
// the document server. Every helper sets the headers, the status code and
// the full body in one write; nothing is streamed.
package response

import (
	"net/http"
	"strconv"

	"github.com/agentstation/docserve/pkg/errors"
)

// Content types written by the helpers.
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypeText = "text/plain; charset=utf-8"
)

// Write writes status and body with the given content type.
func Write(w http.ResponseWriter, status int, contentType string, body []byte) {
	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	// Write errors mean the client went away; headers are already sent.
	_, _ = w.Write(body)
}

// HTML writes an HTML document.
func HTML(w http.ResponseWriter, status int, body []byte) {
	Write(w, status, ContentTypeHTML, body)
}

// Text writes a plain-text message followed by a newline.
func Text(w http.ResponseWriter, status int, message string) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	Write(w, status, ContentTypeText, []byte(message+"\n"))
}

// BadRequest writes a 400 response.
func BadRequest(w http.ResponseWriter, message string) {
	Text(w, http.StatusBadRequest, message)
}

// NotFound writes a 404 response.
func NotFound(w http.ResponseWriter) {
	Text(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

// InternalError writes a generic 500 response. Error details are logged by
// the caller and never exposed to the client.
func InternalError(w http.ResponseWriter) {
	Text(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// Error maps typed errors to responses.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.IsInvalidPath(err):
		BadRequest(w, "invalid URL path")
	case errors.IsNotFound(err):
		NotFound(w)
	default:
		InternalError(w)
	}
}
