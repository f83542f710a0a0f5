package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/google/uuid"
)

func NewParsesRepository() *InMemoryParsesRepository {
	return &InMemoryParsesRepository{
		parses:           make(map[uuid.UUID]dao.Parse),
		byGrammarIDIndex: make(map[uuid.UUID][]uuid.UUID),
	}
}

// InMemoryParsesRepository keeps each grammar's parses in the order they were
// created.
type InMemoryParsesRepository struct {
	mtx              sync.RWMutex
	parses           map[uuid.UUID]dao.Parse
	byGrammarIDIndex map[uuid.UUID][]uuid.UUID
}

func (impr *InMemoryParsesRepository) Close() error {
	return nil
}

func (impr *InMemoryParsesRepository) Create(ctx context.Context, p dao.Parse) (dao.Parse, error) {
	impr.mtx.Lock()
	defer impr.mtx.Unlock()

	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Parse{}, fmt.Errorf("could not generate ID: %w", err)
	}

	p.ID = newUUID
	p.Created = time.Now()

	impr.parses[p.ID] = p
	impr.byGrammarIDIndex[p.GrammarID] = append(impr.byGrammarIDIndex[p.GrammarID], p.ID)

	return p, nil
}

func (impr *InMemoryParsesRepository) GetAllByGrammar(ctx context.Context, grammarID uuid.UUID) ([]dao.Parse, error) {
	impr.mtx.RLock()
	defer impr.mtx.RUnlock()

	ids := impr.byGrammarIDIndex[grammarID]
	all := make([]dao.Parse, len(ids))
	for i := range ids {
		all[i] = impr.parses[ids[i]]
	}

	return all, nil
}

func (impr *InMemoryParsesRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Parse, error) {
	impr.mtx.RLock()
	defer impr.mtx.RUnlock()

	p, ok := impr.parses[id]
	if !ok {
		return dao.Parse{}, dao.ErrNotFound
	}

	return p, nil
}

func (impr *InMemoryParsesRepository) DeleteAllByGrammar(ctx context.Context, grammarID uuid.UUID) ([]dao.Parse, error) {
	impr.mtx.Lock()
	defer impr.mtx.Unlock()

	ids := impr.byGrammarIDIndex[grammarID]
	deleted := make([]dao.Parse, len(ids))
	for i := range ids {
		deleted[i] = impr.parses[ids[i]]
		delete(impr.parses, ids[i])
	}
	delete(impr.byGrammarIDIndex, grammarID)

	return deleted, nil
}
