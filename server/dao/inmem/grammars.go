package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/chomsky/internal/util"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/google/uuid"
)

func NewGrammarsRepository() *InMemoryGrammarsRepository {
	return &InMemoryGrammarsRepository{
		grammars: make(map[uuid.UUID]dao.Grammar),
	}
}

type InMemoryGrammarsRepository struct {
	mtx      sync.RWMutex
	grammars map[uuid.UUID]dao.Grammar
}

func (imgr *InMemoryGrammarsRepository) Close() error {
	return nil
}

func (imgr *InMemoryGrammarsRepository) Create(ctx context.Context, g dao.Grammar) (dao.Grammar, error) {
	imgr.mtx.Lock()
	defer imgr.mtx.Unlock()

	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Grammar{}, fmt.Errorf("could not generate ID: %w", err)
	}

	now := time.Now()

	g.ID = newUUID
	g.CNF = g.CNF.Copy()
	g.Created = now
	g.Modified = now

	imgr.grammars[g.ID] = g

	return copyGrammar(g), nil
}

func (imgr *InMemoryGrammarsRepository) GetAll(ctx context.Context) ([]dao.Grammar, error) {
	imgr.mtx.RLock()
	defer imgr.mtx.RUnlock()

	all := make([]dao.Grammar, 0, len(imgr.grammars))
	for k := range imgr.grammars {
		all = append(all, copyGrammar(imgr.grammars[k]))
	}

	return sortGrammars(all), nil
}

func (imgr *InMemoryGrammarsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	imgr.mtx.RLock()
	defer imgr.mtx.RUnlock()

	g, ok := imgr.grammars[id]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}

	return copyGrammar(g), nil
}

func (imgr *InMemoryGrammarsRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	imgr.mtx.Lock()
	defer imgr.mtx.Unlock()

	g, ok := imgr.grammars[id]
	if !ok {
		return dao.Grammar{}, dao.ErrNotFound
	}

	delete(imgr.grammars, id)

	return g, nil
}

func copyGrammar(g dao.Grammar) dao.Grammar {
	g.CNF = g.CNF.Copy()
	return g
}

func sortGrammars(all []dao.Grammar) []dao.Grammar {
	return util.SortBy(all, func(l, r dao.Grammar) bool {
		if l.Created.Equal(r.Created) {
			return l.ID.String() < r.ID.String()
		}
		return l.Created.Before(r.Created)
	})
}
