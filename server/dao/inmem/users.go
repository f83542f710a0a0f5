package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/google/uuid"
)

func NewUsersRepository() *InMemoryUsersRepository {
	return &InMemoryUsersRepository{
		accounts: make(map[uuid.UUID]dao.User),
		names:    make(map[string]uuid.UUID),
	}
}

// InMemoryUsersRepository keeps accounts keyed by ID, with usernames held
// unique by a second index.
type InMemoryUsersRepository struct {
	mtx      sync.RWMutex
	accounts map[uuid.UUID]dao.User
	names    map[string]uuid.UUID
}

func (repo *InMemoryUsersRepository) Close() error {
	return nil
}

func (repo *InMemoryUsersRepository) Create(ctx context.Context, u dao.User) (dao.User, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	if _, taken := repo.names[u.Username]; taken {
		return dao.User{}, dao.ErrConstraintViolation
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return dao.User{}, fmt.Errorf("could not generate ID: %w", err)
	}

	u.ID = id
	u.Created = time.Now()
	u.LogoutTime = time.Time{}

	repo.accounts[id] = u
	repo.names[u.Username] = id

	return u, nil
}

func (repo *InMemoryUsersRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.User, error) {
	repo.mtx.RLock()
	defer repo.mtx.RUnlock()

	u, ok := repo.accounts[id]
	if !ok {
		return dao.User{}, dao.ErrNotFound
	}
	return u, nil
}

func (repo *InMemoryUsersRepository) GetByUsername(ctx context.Context, username string) (dao.User, error) {
	repo.mtx.RLock()
	defer repo.mtx.RUnlock()

	id, ok := repo.names[username]
	if !ok {
		return dao.User{}, dao.ErrNotFound
	}
	return repo.accounts[id], nil
}

func (repo *InMemoryUsersRepository) SetLogoutTime(ctx context.Context, id uuid.UUID, t time.Time) (dao.User, error) {
	repo.mtx.Lock()
	defer repo.mtx.Unlock()

	u, ok := repo.accounts[id]
	if !ok {
		return dao.User{}, dao.ErrNotFound
	}

	u.LogoutTime = t
	repo.accounts[id] = u
	return u, nil
}
