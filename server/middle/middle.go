// Package middle has the HTTP middleware of the parse server.
package middle

import (
	"context"
	"net/http"
	"time"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/result"
	"github.com/dekarrin/chomsky/server/token"
)

type ctxKey int

const userKey ctxKey = iota

// Auth authenticates requests by their bearer token.
type Auth struct {
	Users  dao.UserRepository
	Secret []byte

	// Delay is how long a request that fails authentication waits before its
	// HTTP-401 is sent.
	Delay time.Duration
}

// Required refuses any request without a valid token with an HTTP-401.
func (a Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		u, err := a.authenticate(req)
		if err != nil {
			r := result.Unauthorized("%v", err)
			r.Log(req)
			time.Sleep(a.Delay)
			if err := r.Write(w); err != nil {
				result.Logf("ERROR", req, r.Status, "%v", err)
			}
			return
		}
		next.ServeHTTP(w, withUser(req, u))
	})
}

// Optional passes every request on, authenticated or not. Use User to tell
// the two apart.
func (a Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if u, err := a.authenticate(req); err == nil {
			req = withUser(req, u)
		}
		next.ServeHTTP(w, req)
	})
}

func (a Auth) authenticate(req *http.Request) (dao.User, error) {
	tok, err := token.FromRequest(req)
	if err != nil {
		return dao.User{}, err
	}
	return token.Validate(req.Context(), tok, a.Secret, a.Users)
}

func withUser(req *http.Request, u dao.User) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), userKey, u))
}

// User returns the user a request was authenticated as. ok is false if the
// request carried no valid token.
func User(ctx context.Context) (u dao.User, ok bool) {
	u, ok = ctx.Value(userKey).(dao.User)
	return u, ok
}
