// Package result holds what a parse server endpoint responds with and writes
// it to the client as JSON.
package result

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/dekarrin/chomsky/server/serr"
)

// Result is the response to a request. Body is marshaled to JSON; a nil Body
// gives an empty response. Note is only written to the server log.
type Result struct {
	Status int
	Body   interface{}
	Note   string

	header http.Header
}

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Status int    `json:"status"`
	Error  string `json:"error"`

	// Detail is why an uploaded grammar or a sentence was refused.
	Detail string `json:"detail,omitempty"`
}

func newResult(status int, body interface{}, note string, a []interface{}) Result {
	if len(a) > 0 {
		note = fmt.Sprintf(note, a...)
	}
	return Result{Status: status, Body: body, Note: note}
}

func errorResult(status int, msg, detail, note string, a []interface{}) Result {
	return newResult(status, ErrorBody{Status: status, Error: msg, Detail: detail}, note, a)
}

func OK(body interface{}, note string, a ...interface{}) Result {
	return newResult(http.StatusOK, body, note, a)
}

func Created(body interface{}, note string, a ...interface{}) Result {
	return newResult(http.StatusCreated, body, note, a)
}

func NoContent(note string, a ...interface{}) Result {
	return newResult(http.StatusNoContent, nil, note, a)
}

// BadRequest is an HTTP-400 whose error message is shown to the client.
func BadRequest(msg string, note string, a ...interface{}) Result {
	return errorResult(http.StatusBadRequest, msg, "", note, a)
}

// Unauthorized is an HTTP-401 asking for a bearer token.
func Unauthorized(note string, a ...interface{}) Result {
	r := errorResult(http.StatusUnauthorized, "a valid bearer token is required", "", note, a)
	return r.WithHeader("WWW-Authenticate", `Bearer realm="chomskyd"`)
}

func Forbidden(note string, a ...interface{}) Result {
	return errorResult(http.StatusForbidden, "you do not have permission to do that", "", note, a)
}

func NotFound(note string, a ...interface{}) Result {
	return errorResult(http.StatusNotFound, "the requested resource does not exist", "", note, a)
}

func MethodNotAllowed(req *http.Request) Result {
	return errorResult(http.StatusMethodNotAllowed, "method not allowed", "", "%s is not allowed on %s", []interface{}{req.Method, req.URL.Path})
}

func InternalError(note string, a ...interface{}) Result {
	return errorResult(http.StatusInternalServerError, "an internal server error occurred", "", note, a)
}

// Redirect is a permanent redirect to uri that keeps the request method.
func Redirect(uri string) Result {
	r := newResult(http.StatusPermanentRedirect, nil, "redirect to "+uri, nil)
	return r.WithHeader("Location", uri)
}

// FromErr gives the response for an error returned by the service layer. The
// kind of the error decides the status, and grammar errors carry the reason
// the grammar was refused as the Detail of the body.
func FromErr(err error, note string, a ...interface{}) Result {
	if len(a) > 0 {
		note = fmt.Sprintf(note, a...)
	}
	if note == "" {
		note = err.Error()
	} else {
		note += ": " + err.Error()
	}

	switch {
	case errors.Is(err, serr.ErrGrammar) && errors.Is(err, serr.ErrBadArgument):
		return errorResult(http.StatusUnprocessableEntity, "the grammar was refused", serr.Detail(err), note, nil)
	case errors.Is(err, serr.ErrBadArgument), errors.Is(err, serr.ErrBadBody):
		return errorResult(http.StatusBadRequest, err.Error(), "", note, nil)
	case errors.Is(err, serr.ErrBadCredentials):
		return Unauthorized(note)
	case errors.Is(err, serr.ErrNotFound):
		return NotFound(note)
	case errors.Is(err, serr.ErrAlreadyExists):
		return errorResult(http.StatusConflict, err.Error(), "", note, nil)
	default:
		return InternalError(note)
	}
}

// WithHeader returns a copy of r that also sets the header key to val.
func (r Result) WithHeader(key, val string) Result {
	h := http.Header{}
	for k := range r.header {
		h[k] = append([]string(nil), r.header[k]...)
	}
	h.Add(key, val)
	r.header = h
	return r
}

// Log writes a line describing r as the response to req to the server log.
func (r Result) Log(req *http.Request) {
	level := "INFO "
	switch {
	case r.Status >= 500:
		level = "ERROR"
	case r.Status >= 400:
		level = "WARN "
	}
	Logf(level, req, r.Status, "%s", r.Note)
}

// Logf writes a line about the response to req to the server log. level is
// padded to five characters.
func Logf(level string, req *http.Request, status int, msg string, a ...interface{}) {
	ip := req.RemoteAddr
	if i := strings.LastIndex(ip, ":"); i >= 0 {
		ip = ip[:i]
	}
	log.Printf("%-5s %s %s %s: HTTP-%d %s", level, ip, req.Method, req.URL.Path, status, fmt.Sprintf(msg, a...))
}

// Write sends r to the client. If Body cannot be marshaled, a plain-text
// HTTP-500 is sent instead and the marshaling error is returned.
func (r Result) Write(w http.ResponseWriter) error {
	var data []byte
	if r.Body != nil {
		var err error
		data, err = json.Marshal(r.Body)
		if err != nil {
			http.Error(w, "an internal server error occurred", http.StatusInternalServerError)
			return fmt.Errorf("marshal response body: %w", err)
		}
	}

	for k := range r.header {
		for _, v := range r.header[k] {
			w.Header().Add(k, v)
		}
	}
	if data != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(r.Status)

	if data != nil {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write response body: %w", err)
		}
	}
	return nil
}
