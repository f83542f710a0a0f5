// Package sqlite provides a dao.Store backed by a SQLite database file.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/chomsky/server/dao"
	"modernc.org/sqlite"
)

// DBFilename is the name of the database file created in the storage
// directory.
const DBFilename = "data.db"

type store struct {
	dbFilename string
	db         *sql.DB

	users    *UsersDB
	grammars *GrammarsDB
	parses   *ParsesDB
}

// NewDatastore opens (creating if needed) the database in storageDir and
// ensures every table exists.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{
		dbFilename: DBFilename,
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.users = &UsersDB{db: st.db}
	if err := st.users.init(); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("users: %w", err)
	}

	st.grammars = &GrammarsDB{db: st.db}
	if err := st.grammars.init(true); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("grammars: %w", err)
	}

	st.parses = &ParsesDB{db: st.db}
	if err := st.parses.init(true); err != nil {
		st.db.Close()
		return nil, fmt.Errorf("parses: %w", err)
	}

	return st, nil
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
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		// the primary result code is in the low byte; extended codes such as
		// SQLITE_CONSTRAINT_UNIQUE keep it there.
		if sqliteErr.Code()&0xff == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}

// scanner is a *sql.Row or *sql.Rows positioned on a row.
type scanner interface {
	Scan(dest ...any) error
}
