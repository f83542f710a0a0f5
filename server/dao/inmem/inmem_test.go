package inmem

import (
	"context"
	"testing"
	"time"

	"github.com/dekarrin/chomsky/internal/grammar"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_UsersRepository(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	repo := NewUsersRepository()

	created, err := repo.Create(ctx, dao.User{Username: "ana", PassHash: "x", Role: dao.RoleUser})
	require.NoError(t, err)
	assert.NotEqual(uuid.Nil, created.ID)
	assert.False(created.Created.IsZero())
	assert.True(created.LogoutTime.IsZero())

	_, err = repo.Create(ctx, dao.User{Username: "ana"})
	assert.ErrorIs(err, dao.ErrConstraintViolation)

	byName, err := repo.GetByUsername(ctx, "ana")
	assert.NoError(err)
	assert.Equal(created.ID, byName.ID)

	now := time.Now()
	loggedOut, err := repo.SetLogoutTime(ctx, created.ID, now)
	assert.NoError(err)
	assert.True(now.Equal(loggedOut.LogoutTime))

	byID, err := repo.GetByID(ctx, created.ID)
	assert.NoError(err)
	assert.True(now.Equal(byID.LogoutTime))

	_, err = repo.SetLogoutTime(ctx, uuid.New(), now)
	assert.ErrorIs(err, dao.ErrNotFound)

	_, err = repo.GetByUsername(ctx, "bea")
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_GrammarsRepository(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	repo := NewGrammarsRepository()
	owner := uuid.New()
	cnf := grammar.MustNormalize(grammar.MustParse("S -> a S b | a b"))

	created, err := repo.Create(ctx, dao.Grammar{UserID: owner, Name: "anbn", Source: "src", CNF: cnf})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	assert.NoError(err)
	assert.Equal("anbn", got.Name)
	assert.True(cnf.Equal(got.CNF))

	_, err = repo.Delete(ctx, created.ID)
	assert.NoError(err)

	all, err := repo.GetAll(ctx)
	assert.NoError(err)
	assert.Empty(all)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_ParsesRepository(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	repo := NewParsesRepository()
	grammarID := uuid.New()

	sentences := []string{"a b", "a a b b", "b a"}
	for _, s := range sentences {
		_, err := repo.Create(ctx, dao.Parse{GrammarID: grammarID, Sentence: s})
		require.NoError(t, err)
	}

	all, err := repo.GetAllByGrammar(ctx, grammarID)
	assert.NoError(err)
	if assert.Len(all, 3) {
		for i := range sentences {
			assert.Equal(sentences[i], all[i].Sentence)
		}
	}

	deleted, err := repo.DeleteAllByGrammar(ctx, grammarID)
	assert.NoError(err)
	assert.Len(deleted, 3)

	all, err = repo.GetAllByGrammar(ctx, grammarID)
	assert.NoError(err)
	assert.Empty(all)
}
