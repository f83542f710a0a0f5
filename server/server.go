// Package server provides an HTTP REST server that stores uploaded grammars in
// Chomsky Normal Form and parses sentences with them.
//
// Routes, all under /api/v1:
//
//	GET    /info                           version of the server
//	POST   /login                          trade a username and password for a token
//	DELETE /login                          invalidate every token of the caller
//	POST   /users                          add an account (admin)
//	GET    /grammars                       list grammars
//	POST   /grammars                       upload a grammar file
//	GET    /grammars/{id}                  get a grammar with its source
//	DELETE /grammars/{id}                  delete a grammar (owner or admin)
//	GET    /grammars/{id}/cnf              get the normalized rules of a grammar
//	GET    /grammars/{id}/parses           get the parse history of a grammar
//	POST   /grammars/{id}/parses           parse a sentence
//	GET    /grammars/{id}/parses/{parseID} get one parse
//
// Everything but /info and POST /login needs a bearer token.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/dekarrin/chomsky/server/api"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/middle"
	"github.com/dekarrin/chomsky/server/svc"
)

// ParseServer is an HTTP REST server that provides grammar storage and CYK
// parsing. Use New to get one.
type ParseServer struct {
	router http.Handler
	db     dao.Store
	svc    svc.Service
	listen string
}

// New opens the store cfg names and builds the routes of the server.
func New(cfg Config) (*ParseServer, error) {
	s, err := cfg.resolve()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := s.db.open()
	if err != nil {
		return nil, err
	}

	backend := svc.Service{
		DB:        db,
		Parallel:  s.parse.Parallel,
		MaxTokens: s.parse.MaxTokens,
	}

	a := api.API{
		Backend:     backend,
		Secret:      s.secret,
		UnauthDelay: s.unauthDelay,
		TableWidth:  s.parse.TableWidth,
	}
	auth := middle.Auth{
		Users:  db.Users(),
		Secret: s.secret,
		Delay:  s.unauthDelay,
	}

	return &ParseServer{
		router: newRouter(a, auth),
		db:     db,
		svc:    backend,
		listen: s.listen,
	}, nil
}

// Handler returns the handler that serves every route of the server.
func (ps *ParseServer) Handler() http.Handler {
	return ps.router
}

// Service returns the backend of the server for direct access, such as
// creating the first admin account.
func (ps *ParseServer) Service() svc.Service {
	return ps.svc
}

// Close releases the store of the server.
func (ps *ParseServer) Close() error {
	return ps.db.Close()
}

// ListenAndServe serves HTTP requests on the configured address until the
// listener fails.
func (ps *ParseServer) ListenAndServe() error {
	log.Printf("INFO  Listening on %s", ps.listen)
	return http.ListenAndServe(ps.listen, ps.router)
}
