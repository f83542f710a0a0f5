package api

import (
	"net/http"

	"github.com/dekarrin/chomsky/internal/version"
	"github.com/dekarrin/chomsky/server/middle"
	"github.com/dekarrin/chomsky/server/result"
)

// HTTPGetInfo returns a HandlerFunc that gives the version of the server. It
// needs no login, but logs who asked if the client sent a token.
func (api API) HTTPGetInfo() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epGetInfo)
}

func (api API) epGetInfo(req *http.Request) result.Result {
	var resp InfoModel
	resp.Version.Server = version.ServerCurrent
	resp.Version.Chomsky = version.Current

	who := "unauthed client"
	if u, ok := middle.User(req.Context()); ok {
		who = "user " + u.Username
	}
	return result.OK(resp, "%s got API info", who)
}
