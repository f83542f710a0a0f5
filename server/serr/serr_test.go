package serr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dekarrin/chomsky/internal/grammar"
	"github.com/dekarrin/chomsky/server/dao"
	"github.com/stretchr/testify/assert"
)

func Test_Error_Is(t *testing.T) {
	diskErr := errors.New("disk is on fire")
	cnfErr := grammar.CNF{}.Check()

	testCases := []struct {
		name      string
		err       error
		expectIs  []error
		expectNot []error
	}{
		{
			name:      "kinds given to New",
			err:       New("parse sentence", nil, ErrBadArgument),
			expectIs:  []error{ErrBadArgument},
			expectNot: []error{ErrNotFound, ErrGrammar},
		},
		{
			name:      "cause is unwrapped",
			err:       New("create user", diskErr, ErrDB),
			expectIs:  []error{ErrDB, diskErr},
			expectNot: []error{ErrBadArgument},
		},
		{
			name:      "uploaded grammar is the client's fault",
			err:       Grammar("load grammar", fmt.Errorf("line 3: %w", grammar.ErrMalformedGrammar)),
			expectIs:  []error{ErrGrammar, ErrBadArgument, grammar.ErrMalformedGrammar},
			expectNot: []error{ErrDB},
		},
		{
			name:      "broken CNF is not the client's fault",
			err:       Grammar("build parser", cnfErr),
			expectIs:  []error{ErrGrammar, grammar.ErrInvalidCNFGrammar},
			expectNot: []error{ErrBadArgument},
		},
		{
			name:      "missing entity",
			err:       DB("get grammar", dao.ErrNotFound, nil),
			expectIs:  []error{ErrNotFound, dao.ErrNotFound},
			expectNot: []error{ErrDB},
		},
		{
			name:      "constraint with a conflict kind",
			err:       DB("create user", dao.ErrConstraintViolation, ErrAlreadyExists),
			expectIs:  []error{ErrAlreadyExists},
			expectNot: []error{ErrDB},
		},
		{
			name:      "constraint with no conflict kind",
			err:       DB("create grammar", dao.ErrConstraintViolation, nil),
			expectIs:  []error{ErrDB},
			expectNot: []error{ErrAlreadyExists},
		},
		{
			name:     "through fmt wrapping",
			err:      fmt.Errorf("outer: %w", New("", nil, ErrGrammar)),
			expectIs: []error{ErrGrammar},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			for _, target := range tc.expectIs {
				assert.ErrorIs(tc.err, target)
			}
			for _, target := range tc.expectNot {
				assert.NotErrorIs(tc.err, target)
			}
		})
	}
}

func Test_Error_Error(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "op only",
			err:    New("bad thing", nil),
			expect: "bad thing",
		},
		{
			name:   "op and cause",
			err:    New("bad thing", errors.New("cause"), ErrDB),
			expect: "bad thing: cause",
		},
		{
			name:   "kind stands in for a missing cause",
			err:    New("get parse", nil, ErrNotFound),
			expect: "get parse: " + ErrNotFound.Error(),
		},
		{
			name:   "kind only",
			err:    New("", nil, ErrBadCredentials),
			expect: ErrBadCredentials.Error(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, tc.err.Error())
		})
	}
}

func Test_Detail(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "cause of a service error",
			err:    Grammar("normalize grammar", errors.New("S has no rule")),
			expect: "S has no rule",
		},
		{
			name:   "service error deeper in the chain",
			err:    fmt.Errorf("create: %w", Grammar("load grammar", errors.New("bad toml"))),
			expect: "bad toml",
		},
		{
			name:   "service error with no cause",
			err:    New("parse sentence", nil, ErrBadArgument),
			expect: "parse sentence: " + ErrBadArgument.Error(),
		},
		{
			name:   "plain error",
			err:    errors.New("plain"),
			expect: "plain",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, Detail(tc.err))
		})
	}
}
