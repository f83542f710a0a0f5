package sqlite

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

func newTestStore(t *testing.T) dao.Store {
	st, err := NewDatastore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

func Test_Users(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.Users().Create(ctx, dao.User{Username: "ana", PassHash: "x", Role: dao.RoleAdmin})
	require.NoError(t, err)
	assert.Equal("ana", created.Username)
	assert.Equal(dao.RoleAdmin, created.Role)
	assert.True(created.LogoutTime.IsZero())

	_, err = st.Users().Create(ctx, dao.User{Username: "ana", PassHash: "y", Role: dao.RoleUser})
	assert.ErrorIs(err, dao.ErrConstraintViolation)

	logout := time.Unix(1700000000, 123456789)
	updated, err := st.Users().SetLogoutTime(ctx, created.ID, logout)
	assert.NoError(err)
	assert.Equal(logout.UnixNano(), updated.LogoutTime.UnixNano())

	byName, err := st.Users().GetByUsername(ctx, "ana")
	assert.NoError(err)
	assert.Equal(created.ID, byName.ID)
	assert.Equal("x", byName.PassHash)

	_, err = st.Users().GetByUsername(ctx, "nobody")
	assert.ErrorIs(err, dao.ErrNotFound)

	_, err = st.Users().SetLogoutTime(ctx, uuid.New(), logout)
	assert.ErrorIs(err, dao.ErrNotFound)
}

func Test_GrammarsAndParses(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	owner, err := st.Users().Create(ctx, dao.User{Username: "ana", PassHash: "x", Role: dao.RoleUser})
	require.NoError(t, err)

	cnf := grammar.MustNormalize(grammar.MustParse("S -> NP VP; NP -> he | she; VP -> eats | V NP; V -> eats"))

	g, err := st.Grammars().Create(ctx, dao.Grammar{UserID: owner.ID, Name: "tiny", Source: "src", CNF: cnf})
	require.NoError(t, err)
	assert.Equal("tiny", g.Name)
	assert.True(cnf.Equal(g.CNF), "stored CNF does not round-trip:\n%s", g.CNF.String())

	all, err := st.Grammars().GetAll(ctx)
	assert.NoError(err)
	assert.Len(all, 1)

	for _, s := range []string{"she eats", "eats she"} {
		_, err := st.Parses().Create(ctx, dao.Parse{
			GrammarID: g.ID,
			UserID:    owner.ID,
			Sentence:  s,
			Accepted:  s == "she eats",
			Elapsed:   1500 * time.Nanosecond,
		})
		require.NoError(t, err)
	}

	parses, err := st.Parses().GetAllByGrammar(ctx, g.ID)
	assert.NoError(err)
	if assert.Len(parses, 2) {
		assert.Equal("she eats", parses[0].Sentence)
		assert.True(parses[0].Accepted)
		assert.Equal(1500*time.Nanosecond, parses[0].Elapsed)
		assert.False(parses[1].Accepted)
	}

	_, err = st.Grammars().Delete(ctx, g.ID)
	assert.NoError(err)

	_, err = st.Grammars().GetByID(ctx, g.ID)
	assert.ErrorIs(err, dao.ErrNotFound)

	parses, err = st.Parses().GetAllByGrammar(ctx, g.ID)
	assert.NoError(err)
	assert.Empty(parses)
}

func Test_Parses_UnknownGrammar(t *testing.T) {
	assert := assert.New(t)
	st := newTestStore(t)

	_, err := st.Parses().Create(context.Background(), dao.Parse{GrammarID: uuid.New(), UserID: uuid.New(), Sentence: "x"})

	assert.ErrorIs(err, dao.ErrConstraintViolation)
}
