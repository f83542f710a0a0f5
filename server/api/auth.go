package api

import (
	"net/http"
	"time"

	"github.com/dekarrin/chomsky/server/result"
	"github.com/dekarrin/chomsky/server/token"
)

// HTTPLogin returns a HandlerFunc that trades a username and password for a
// bearer token.
func (api API) HTTPLogin() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epLogin)
}

func (api API) epLogin(req *http.Request) result.Result {
	var login LoginRequest
	if err := decodeJSON(req, &login); err != nil {
		return result.FromErr(err, "")
	}

	u, err := api.Backend.Login(req.Context(), login.Username, login.Password)
	if err != nil {
		return result.FromErr(err, "login as %q", login.Username)
	}

	tok, expires, err := token.Issue(api.Secret, u)
	if err != nil {
		return result.InternalError("issue token for %q: %v", u.Username, err)
	}

	return result.Created(TokenModel{
		Token:   tok,
		UserID:  u.ID.String(),
		Expires: expires.Format(time.RFC3339),
	}, "user %q logged in", u.Username)
}

// HTTPLogout returns a HandlerFunc that invalidates every token issued to the
// logged-in user, including the one the request was made with.
func (api API) HTTPLogout() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epLogout)
}

func (api API) epLogout(req *http.Request) result.Result {
	u := requireUser(req)

	if _, err := api.Backend.Logout(req.Context(), u.ID); err != nil {
		return result.FromErr(err, "logout of %q", u.Username)
	}
	return result.NoContent("user %q logged out", u.Username)
}
