package server

import (
	"net/http"
	"strings"

	"github.com/dekarrin/chomsky/server/api"
	"github.com/dekarrin/chomsky/server/middle"
	"github.com/dekarrin/chomsky/server/result"
	"github.com/go-chi/chi/v5"
)

const uuidPattern = "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}"

// uuidParam is a route parameter that only matches a UUID.
func uuidParam(name string) string {
	return "{" + name + ":" + uuidPattern + "}"
}

func newRouter(a api.API, auth middle.Auth) http.Handler {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeResult(w, req, result.NotFound("no route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeResult(w, req, result.MethodNotAllowed(req))
	})

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.With(auth.Optional).Get("/info", a.HTTPGetInfo())

		r.Post("/login", a.HTTPLogin())
		r.With(auth.Required).Delete("/login", a.HTTPLogout())

		r.With(auth.Required).Post("/users", a.HTTPCreateUser())

		r.Route("/grammars", func(r chi.Router) {
			r.Use(auth.Required)

			r.Get("/", a.HTTPGetAllGrammars())
			r.Post("/", a.HTTPCreateGrammar())

			r.Route("/"+uuidParam("id"), func(r chi.Router) {
				r.Get("/", a.HTTPGetGrammar())
				r.Delete("/", a.HTTPDeleteGrammar())
				r.Get("/cnf", a.HTTPGetCNF())
				r.Get("/parses", a.HTTPGetParses())
				r.Post("/parses", a.HTTPCreateParse())
				r.Get("/parses/"+uuidParam("parseID"), a.HTTPGetParse())
			})
		})
	})

	return stripTrailingSlash(r)
}

// stripTrailingSlash redirects any path ending in a slash to the same path
// without it.
func stripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if p := req.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
			target := strings.TrimRight(p, "/")
			if req.URL.RawQuery != "" {
				target += "?" + req.URL.RawQuery
			}
			writeResult(w, req, result.Redirect(target))
			return
		}
		next.ServeHTTP(w, req)
	})
}

func writeResult(w http.ResponseWriter, req *http.Request, r result.Result) {
	r.Log(req)
	if err := r.Write(w); err != nil {
		result.Logf("ERROR", req, r.Status, "%v", err)
	}
}
