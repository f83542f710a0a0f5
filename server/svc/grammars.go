package svc

import (
	"context"
	"errors"

	"github.com/dekarrin/chomsky/internal/gramfile"
	"github.com/dekarrin/chomsky/internal/grammar"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/serr"
	"github.com/google/uuid"
)

// CreateGrammar loads a grammar file, converts the grammar to Chomsky Normal
// Form, and stores both under owner. If name is empty, the name given in the
// grammar file is used.
//
// A source that cannot be loaded or normalized gives an error matching both
// serr.ErrGrammar and serr.ErrBadArgument.
func (svc Service) CreateGrammar(ctx context.Context, owner uuid.UUID, name, source string) (dao.Grammar, error) {
	if source == "" {
		return dao.Grammar{}, serr.New("create grammar", errors.New("source cannot be blank"), serr.ErrBadArgument)
	}

	def, err := gramfile.Parse([]byte(source))
	if err != nil {
		return dao.Grammar{}, serr.Grammar("load grammar", err)
	}

	cnf, err := grammar.Normalize(def.Grammar)
	if err != nil {
		return dao.Grammar{}, serr.Grammar("normalize grammar", err)
	}

	if name == "" {
		name = def.Name
	}
	if name == "" {
		return dao.Grammar{}, serr.New("create grammar", errors.New("a name is needed when the grammar file does not set one"), serr.ErrBadArgument)
	}

	g, err := svc.DB.Grammars().Create(ctx, dao.Grammar{
		UserID: owner,
		Name:   name,
		Source: source,
		CNF:    cnf,
	})
	if err != nil {
		return dao.Grammar{}, serr.DB("create grammar", err, serr.ErrNotFound)
	}
	return g, nil
}

// GetAllGrammars returns every stored grammar, oldest first.
func (svc Service) GetAllGrammars(ctx context.Context) ([]dao.Grammar, error) {
	all, err := svc.DB.Grammars().GetAll(ctx)
	if err != nil {
		return nil, serr.DB("get grammars", err, nil)
	}
	return all, nil
}

// GetGrammar returns the grammar with the given ID. An unknown ID gives
// serr.ErrNotFound and a malformed one serr.ErrBadArgument.
func (svc Service) GetGrammar(ctx context.Context, id string) (dao.Grammar, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Grammar{}, serr.New("get grammar", errors.New("ID is not valid"), serr.ErrBadArgument)
	}

	g, err := svc.DB.Grammars().GetByID(ctx, uuidID)
	if err != nil {
		return dao.Grammar{}, serr.DB("get grammar", err, nil)
	}
	return g, nil
}

// DeleteGrammar deletes the grammar with the given ID along with its parse
// history and returns the deleted grammar.
func (svc Service) DeleteGrammar(ctx context.Context, id string) (dao.Grammar, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Grammar{}, serr.New("delete grammar", errors.New("ID is not valid"), serr.ErrBadArgument)
	}

	if _, err := svc.DB.Parses().DeleteAllByGrammar(ctx, uuidID); err != nil {
		return dao.Grammar{}, serr.DB("delete parse history", err, nil)
	}

	g, err := svc.DB.Grammars().Delete(ctx, uuidID)
	if err != nil {
		return dao.Grammar{}, serr.DB("delete grammar", err, nil)
	}
	return g, nil
}
