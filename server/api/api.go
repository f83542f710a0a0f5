// Package api provides HTTP API endpoints for the parse server.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/middle"
	"github.com/dekarrin/chomsky/server/result"
	"github.com/dekarrin/chomsky/server/serr"
	"github.com/dekarrin/chomsky/server/svc"
	"github.com/go-chi/chi/v5"
)

// PathPrefix is the prefix of every path in the API.
const PathPrefix = "/api/v1"

// maxBodySize bounds request bodies. Grammar files are the largest thing a
// client sends.
const maxBodySize = 1 << 20

// API holds the HTTP endpoints of the parse server. Assign the result of its
// HTTP* methods as handlers on a router.
//
// For programmatic access to the backend without HTTP, see [svc.Service].
type API struct {
	Backend svc.Service

	// Secret signs the tokens issued at login.
	Secret []byte

	// UnauthDelay is how long a request waits before an HTTP-401, HTTP-403,
	// or HTTP-500 is sent.
	UnauthDelay time.Duration

	// TableWidth is the width CYK tables are rendered at in parse responses.
	TableWidth int
}

// EndpointFunc is the signature of every endpoint implementation in the API.
type EndpointFunc func(req *http.Request) result.Result

// Endpoint converts ep into an http.HandlerFunc that logs and writes its
// result. A panic in ep becomes an HTTP-500.
func Endpoint(unauthDelay time.Duration, ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer recoverTo500(w, req)

		r := ep(req)
		if r.Status == 0 {
			r = result.InternalError("endpoint gave no result")
		}
		r.Log(req)

		switch r.Status {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError:
			time.Sleep(unauthDelay)
		}

		if err := r.Write(w); err != nil {
			result.Logf("ERROR", req, r.Status, "%v", err)
		}
	}
}

func recoverTo500(w http.ResponseWriter, req *http.Request) {
	if p := recover(); p != nil {
		r := result.InternalError("panic: %v\nSTACK TRACE: %s", p, debug.Stack())
		r.Log(req)
		_ = r.Write(w)
	}
}

// decodeJSON reads the JSON body of req into v. Errors match
// serr.ErrBadBody.
func decodeJSON(req *http.Request, v interface{}) error {
	const op = "decode body"

	mediaType, _, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return serr.New(op, errors.New("content-type must be application/json"), serr.ErrBadBody)
	}

	data, err := io.ReadAll(io.LimitReader(req.Body, maxBodySize+1))
	if err != nil {
		return serr.New(op, err, serr.ErrBadBody)
	}
	if len(data) > maxBodySize {
		return serr.New(op, fmt.Errorf("body is larger than %d bytes", maxBodySize), serr.ErrBadBody)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return serr.New(op, err, serr.ErrBadBody)
	}
	return nil
}

// requireUser returns the user the request was authenticated as. It panics if
// the route is not behind middle.Auth.Required.
func requireUser(req *http.Request) dao.User {
	u, ok := middle.User(req.Context())
	if !ok {
		panic("request has no authenticated user")
	}
	return u
}

// pathParam returns the URL parameter key. Routes only match when the
// parameter is a UUID, so it is never empty.
func pathParam(req *http.Request, key string) string {
	return chi.URLParam(req, key)
}
