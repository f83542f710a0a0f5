package svc

import (
	"context"
	"errors"
	"fmt"

	"github.com/dekarrin/chomsky/internal/cyk"
	"github.com/dekarrin/chomsky/internal/tokens"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/serr"
	"github.com/google/uuid"
)

// ParseSentence runs the CYK parser of the grammar with the given ID against
// sentence and records the run in the grammar's parse history under the given
// user. The CYK result is returned along with the stored record.
//
// A blank sentence, or one with more than MaxTokens words, gives
// serr.ErrBadArgument. A stored grammar the CYK parser refuses gives
// serr.ErrGrammar alone.
func (svc Service) ParseSentence(ctx context.Context, grammarID string, user uuid.UUID, sentence string) (dao.Parse, cyk.Result, error) {
	const op = "parse sentence"

	words := tokens.Split(sentence)
	if len(words) == 0 {
		return dao.Parse{}, cyk.Result{}, serr.New(op, errors.New("sentence cannot be blank"), serr.ErrBadArgument)
	}
	if svc.MaxTokens > 0 && len(words) > svc.MaxTokens {
		return dao.Parse{}, cyk.Result{}, serr.New(op, fmt.Errorf("sentence has %d words; the limit is %d", len(words), svc.MaxTokens), serr.ErrBadArgument)
	}

	g, err := svc.GetGrammar(ctx, grammarID)
	if err != nil {
		return dao.Parse{}, cyk.Result{}, err
	}

	parser, err := cyk.New(g.CNF)
	if err != nil {
		return dao.Parse{}, cyk.Result{}, serr.Grammar("build parser", err)
	}

	var res cyk.Result
	if svc.Parallel {
		res = parser.ParseParallel(words)
	} else {
		res = parser.Parse(words)
	}

	rec := dao.Parse{
		GrammarID: g.ID,
		UserID:    user,
		Sentence:  sentence,
		Accepted:  res.Accepted,
		Elapsed:   res.Elapsed,
	}
	if res.Accepted {
		rec.Tree = cyk.BuildTree(res).String()
	}

	rec, err = svc.DB.Parses().Create(ctx, rec)
	if err != nil {
		return dao.Parse{}, cyk.Result{}, serr.DB("record parse", err, serr.ErrNotFound)
	}

	return rec, res, nil
}

// GetParses returns the parse history of the grammar with the given ID, oldest
// first.
func (svc Service) GetParses(ctx context.Context, grammarID string) ([]dao.Parse, error) {
	g, err := svc.GetGrammar(ctx, grammarID)
	if err != nil {
		return nil, err
	}

	all, err := svc.DB.Parses().GetAllByGrammar(ctx, g.ID)
	if err != nil {
		return nil, serr.DB("get parses", err, nil)
	}
	return all, nil
}

// GetParse returns a single parse from the history of the grammar with the
// given ID. A parse that exists but belongs to another grammar is not found.
func (svc Service) GetParse(ctx context.Context, grammarID, parseID string) (dao.Parse, error) {
	uuidGrammarID, err := uuid.Parse(grammarID)
	if err != nil {
		return dao.Parse{}, serr.New("get parse", errors.New("grammar ID is not valid"), serr.ErrBadArgument)
	}
	uuidParseID, err := uuid.Parse(parseID)
	if err != nil {
		return dao.Parse{}, serr.New("get parse", errors.New("parse ID is not valid"), serr.ErrBadArgument)
	}

	p, err := svc.DB.Parses().GetByID(ctx, uuidParseID)
	if err != nil {
		return dao.Parse{}, serr.DB("get parse", err, nil)
	}
	if p.GrammarID != uuidGrammarID {
		return dao.Parse{}, serr.New("get parse", nil, serr.ErrNotFound)
	}

	return p, nil
}
