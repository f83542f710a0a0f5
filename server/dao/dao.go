// Package dao provides data access objects for use in the chomsky parse
// server.
package dao

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dekarrin/chomsky/internal/grammar"
	"github.com/google/uuid"
)

// Store holds all the repositories.
type Store interface {
	Users() UserRepository
	Grammars() GrammarRepository
	Parses() ParseRepository
	Close() error
}

// UserRepository holds the accounts that own grammars and run parses.
type UserRepository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)

	// SetLogoutTime records when the user last logged out and returns the
	// updated user.
	SetLogoutTime(ctx context.Context, id uuid.UUID, t time.Time) (User, error)
	Close() error
}

type GrammarRepository interface {

	// Create creates a new Grammar. All attributes except for auto-generated
	// fields are taken from the provided Grammar.
	Create(ctx context.Context, g Grammar) (Grammar, error)
	GetAll(ctx context.Context) ([]Grammar, error)
	GetByID(ctx context.Context, id uuid.UUID) (Grammar, error)
	Delete(ctx context.Context, id uuid.UUID) (Grammar, error)
	Close() error
}

type ParseRepository interface {

	// Create creates a new Parse. All attributes except for auto-generated
	// fields are taken from the provided Parse.
	Create(ctx context.Context, p Parse) (Parse, error)
	GetAllByGrammar(ctx context.Context, grammarID uuid.UUID) ([]Parse, error)
	GetByID(ctx context.Context, id uuid.UUID) (Parse, error)

	// DeleteAllByGrammar removes the history of the grammar with the given ID
	// and returns the removed parses.
	DeleteAllByGrammar(ctx context.Context, grammarID uuid.UUID) ([]Parse, error)
	Close() error
}

// Role decides what a user may do with grammars they do not own.
type Role string

const (
	// RoleUser may run parses against any grammar but only sees and deletes
	// what it created.
	RoleUser Role = "user"

	// RoleAdmin sees every parse and may delete any grammar.
	RoleAdmin Role = "admin"
)

// ParseRole returns the Role named by s, ignoring case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(s))
	if r != RoleUser && r != RoleAdmin {
		return "", fmt.Errorf("role must be %q or %q", RoleUser, RoleAdmin)
	}
	return r, nil
}

// User is an account of the parse server. PassHash is a bcrypt hash.
//
// Tokens are only valid if they were issued after LogoutTime.
type User struct {
	ID         uuid.UUID
	Username   string
	PassHash   string
	Role       Role
	Created    time.Time
	LogoutTime time.Time
}

// Grammar is an uploaded grammar along with the Chomsky Normal Form that was
// derived from it at upload time.
type Grammar struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Source   string
	CNF      grammar.CNF
	Created  time.Time
	Modified time.Time
}

// Parse is a single recorded run of the CYK parser against a stored grammar.
type Parse struct {
	ID        uuid.UUID
	GrammarID uuid.UUID
	UserID    uuid.UUID
	Sentence  string
	Accepted  bool
	Elapsed   time.Duration

	// Tree is the rendered parse tree. It is empty when Accepted is false.
	Tree    string
	Created time.Time
}
