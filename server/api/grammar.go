package api

import (
	"net/http"
	"time"

	"github.com/dekarrin/chomsky/internal/grammar"
	"github.com/dekarrin/chomsky/internal/util"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/result"
)

// HTTPCreateGrammar returns a HandlerFunc that uploads a grammar owned by the
// logged-in user. The grammar is converted to Chomsky Normal Form before it is
// stored; one that cannot be loaded or converted gets an HTTP-422 with the
// reason in the detail of the body.
func (api API) HTTPCreateGrammar() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epCreateGrammar)
}

func (api API) epCreateGrammar(req *http.Request) result.Result {
	user := requireUser(req)

	var create GrammarCreateRequest
	if err := decodeJSON(req, &create); err != nil {
		return result.FromErr(err, "")
	}
	if create.Source == "" {
		return result.BadRequest("source: property is empty or missing from request", "empty source")
	}

	g, err := api.Backend.CreateGrammar(req.Context(), user.ID, create.Name, create.Source)
	if err != nil {
		return result.FromErr(err, "user %q upload grammar", user.Username)
	}

	resp := grammarModel(g, true)
	return result.Created(resp, "user %q created grammar %q (%s)", user.Username, g.Name, resp.ID)
}

// HTTPGetAllGrammars returns a HandlerFunc that lists every stored grammar
// without its source.
func (api API) HTTPGetAllGrammars() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epGetAllGrammars)
}

func (api API) epGetAllGrammars(req *http.Request) result.Result {
	user := requireUser(req)

	all, err := api.Backend.GetAllGrammars(req.Context())
	if err != nil {
		return result.FromErr(err, "user %q list grammars", user.Username)
	}

	resp := make([]GrammarModel, len(all))
	for i := range all {
		resp[i] = grammarModel(all[i], false)
	}
	return result.OK(resp, "user %q got %d grammars", user.Username, len(resp))
}

func (api API) HTTPGetGrammar() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epGetGrammar)
}

func (api API) epGetGrammar(req *http.Request) result.Result {
	id := pathParam(req, "id")
	user := requireUser(req)

	g, err := api.Backend.GetGrammar(req.Context(), id)
	if err != nil {
		return result.FromErr(err, "user %q get grammar %s", user.Username, id)
	}
	return result.OK(grammarModel(g, true), "user %q got grammar %q", user.Username, g.Name)
}

// HTTPGetCNF returns a HandlerFunc that gets the Chomsky Normal Form of a
// grammar. The start rule is listed first and the rest are sorted by
// non-terminal.
func (api API) HTTPGetCNF() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epGetCNF)
}

func (api API) epGetCNF(req *http.Request) result.Result {
	id := pathParam(req, "id")
	user := requireUser(req)

	g, err := api.Backend.GetGrammar(req.Context(), id)
	if err != nil {
		return result.FromErr(err, "user %q get CNF of %s", user.Username, id)
	}

	start := g.CNF.StartSymbol()
	sorted := util.SortBy(g.CNF.Rules(), func(l, r grammar.Rule) bool {
		if l.NonTerminal == start {
			return r.NonTerminal != start
		}
		if r.NonTerminal == start {
			return false
		}
		return l.NonTerminal < r.NonTerminal
	})

	resp := CNFModel{
		GrammarID: g.ID.String(),
		Start:     start,
		Origin:    g.CNF.Origin,
		Rules:     make([]string, len(sorted)),
		Nullable:  g.CNF.Nullable,
	}
	for i := range sorted {
		resp.Rules[i] = sorted[i].String()
	}
	return result.OK(resp, "user %q got CNF of grammar %q", user.Username, g.Name)
}

// HTTPDeleteGrammar returns a HandlerFunc that deletes a grammar and its parse
// history. Only the owner of the grammar or an admin may do so.
func (api API) HTTPDeleteGrammar() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epDeleteGrammar)
}

func (api API) epDeleteGrammar(req *http.Request) result.Result {
	id := pathParam(req, "id")
	user := requireUser(req)

	g, err := api.Backend.GetGrammar(req.Context(), id)
	if err != nil {
		return result.FromErr(err, "user %q delete grammar %s", user.Username, id)
	}
	if g.UserID != user.ID && user.Role != dao.RoleAdmin {
		return result.Forbidden("user %q (role %s) delete grammar %q: forbidden", user.Username, user.Role, g.Name)
	}

	if _, err := api.Backend.DeleteGrammar(req.Context(), id); err != nil {
		return result.FromErr(err, "user %q delete grammar %q", user.Username, g.Name)
	}
	return result.NoContent("user %q deleted grammar %q", user.Username, g.Name)
}

func grammarModel(g dao.Grammar, withSource bool) GrammarModel {
	m := GrammarModel{
		URI:      PathPrefix + "/grammars/" + g.ID.String(),
		ID:       g.ID.String(),
		UserID:   g.UserID.String(),
		Name:     g.Name,
		Start:    g.CNF.Origin,
		Created:  g.Created.Format(time.RFC3339),
		Modified: g.Modified.Format(time.RFC3339),
	}
	if withSource {
		m.Source = g.Source
	}
	return m
}
