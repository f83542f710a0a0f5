package api

import (
	"net/http"
	"time"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/result"
)

// HTTPCreateParse returns a HandlerFunc that parses a sentence with a stored
// grammar and records the parse in the grammar's history. The sentence is
// split and folded the same way the CLI does it.
func (api API) HTTPCreateParse() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epCreateParse)
}

func (api API) epCreateParse(req *http.Request) result.Result {
	id := pathParam(req, "id")
	user := requireUser(req)

	var parseReq ParseRequest
	if err := decodeJSON(req, &parseReq); err != nil {
		return result.FromErr(err, "")
	}

	rec, res, err := api.Backend.ParseSentence(req.Context(), id, user.ID, parseReq.Sentence)
	if err != nil {
		return result.FromErr(err, "user %q parse with grammar %s", user.Username, id)
	}

	resp := parseModel(rec)
	resp.Tokens = res.Tokens
	if parseReq.Table {
		resp.Table = res.TableString(api.TableWidth)
	}

	verdict := "rejected"
	if rec.Accepted {
		verdict = "accepted"
	}
	return result.Created(resp, "user %q parsed %d tokens with grammar %s: %s", user.Username, len(res.Tokens), id, verdict)
}

// HTTPGetParses returns a HandlerFunc that gets the parse history of a
// grammar, oldest first. The owner of the grammar and admins see every parse;
// other users see only their own.
func (api API) HTTPGetParses() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epGetParses)
}

func (api API) epGetParses(req *http.Request) result.Result {
	id := pathParam(req, "id")
	user := requireUser(req)

	g, err := api.Backend.GetGrammar(req.Context(), id)
	if err != nil {
		return result.FromErr(err, "user %q get parses of %s", user.Username, id)
	}

	all, err := api.Backend.GetParses(req.Context(), id)
	if err != nil {
		return result.FromErr(err, "user %q get parses of %q", user.Username, g.Name)
	}

	seeAll := g.UserID == user.ID || user.Role == dao.RoleAdmin
	resp := []ParseModel{}
	for i := range all {
		if !seeAll && all[i].UserID != user.ID {
			continue
		}
		resp = append(resp, parseModel(all[i]))
	}
	return result.OK(resp, "user %q got %d parses of grammar %q", user.Username, len(resp), g.Name)
}

// HTTPGetParse returns a HandlerFunc that gets one parse from the history of
// a grammar, with the same visibility as HTTPGetParses.
func (api API) HTTPGetParse() http.HandlerFunc {
	return Endpoint(api.UnauthDelay, api.epGetParse)
}

func (api API) epGetParse(req *http.Request) result.Result {
	id := pathParam(req, "id")
	parseID := pathParam(req, "parseID")
	user := requireUser(req)

	g, err := api.Backend.GetGrammar(req.Context(), id)
	if err != nil {
		return result.FromErr(err, "user %q get parse %s", user.Username, parseID)
	}

	p, err := api.Backend.GetParse(req.Context(), id, parseID)
	if err != nil {
		return result.FromErr(err, "user %q get parse %s", user.Username, parseID)
	}
	if p.UserID != user.ID && g.UserID != user.ID && user.Role != dao.RoleAdmin {
		return result.Forbidden("user %q (role %s) get parse %s: forbidden", user.Username, user.Role, parseID)
	}

	return result.OK(parseModel(p), "user %q got parse %s of grammar %q", user.Username, parseID, g.Name)
}

func parseModel(p dao.Parse) ParseModel {
	return ParseModel{
		URI:            PathPrefix + "/grammars/" + p.GrammarID.String() + "/parses/" + p.ID.String(),
		ID:             p.ID.String(),
		GrammarID:      p.GrammarID.String(),
		UserID:         p.UserID.String(),
		Sentence:       p.Sentence,
		Accepted:       p.Accepted,
		ElapsedSeconds: p.Elapsed.Seconds(),
		Tree:           p.Tree,
		Created:        p.Created.Format(time.RFC3339),
	}
}
