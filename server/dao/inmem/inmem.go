// Package inmem provides an in-memory implementation of dao.Store. Nothing it
// holds survives the process.
package inmem

import (
	"fmt"

	"github.com/dekarrin/chomsky/server/dao"
)

type store struct {
	users    *InMemoryUsersRepository
	grammars *InMemoryGrammarsRepository
	parses   *InMemoryParsesRepository
}

func NewDatastore() dao.Store {
	return &store{
		users:    NewUsersRepository(),
		grammars: NewGrammarsRepository(),
		parses:   NewParsesRepository(),
	}
}

func (s *store) Users() dao.UserRepository {
	return s.users
}

func (s *store) Grammars() dao.GrammarRepository {
	return s.grammars
}

func (s *store) Parses() dao.ParseRepository {
	return s.parses
}

func (s *store) Close() error {
	var err error

	closers := []func() error{s.users.Close, s.grammars.Close, s.parses.Close}
	for _, c := range closers {
		nextErr := c()
		if nextErr == nil {
			continue
		}
		if err != nil {
			err = fmt.Errorf("%s\nadditionally, %w", err, nextErr)
		} else {
			err = nextErr
		}
	}

	return err
}
