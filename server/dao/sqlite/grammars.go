package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/google/uuid"
)

const grammarColumns = `id, user_id, name, source, cnf, created, modified`

type GrammarsDB struct {
	db *sql.DB
}

func (repo *GrammarsDB) init(fk bool) error {
	stmt := `CREATE TABLE IF NOT EXISTS grammars (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL`

	if fk {
		stmt += ` REFERENCES users(id) ON DELETE CASCADE ON UPDATE CASCADE`
	}

	stmt += `,
		name TEXT NOT NULL,
		source TEXT NOT NULL,
		cnf TEXT NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *GrammarsDB) Create(ctx context.Context, g dao.Grammar) (dao.Grammar, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Grammar{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO grammars (` + grammarColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}
	defer stmt.Close()

	now := time.Now()
	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(g.UserID),
		g.Name,
		g.Source,
		convertToDB_CNF(g.CNF),
		convertToDB_Time(now),
		convertToDB_Time(now),
	)
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *GrammarsDB) GetAll(ctx context.Context) ([]dao.Grammar, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT `+grammarColumns+` FROM grammars ORDER BY created, id;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	return scanGrammars(rows)
}

func (repo *GrammarsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT `+grammarColumns+` FROM grammars WHERE id = ?;`, convertToDB_UUID(id))
	return scanGrammar(row)
}

func (repo *GrammarsDB) Delete(ctx context.Context, id uuid.UUID) (dao.Grammar, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM grammars WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *GrammarsDB) Close() error {
	return nil
}

func scanGrammars(rows *sql.Rows) ([]dao.Grammar, error) {
	defer rows.Close()

	var all []dao.Grammar
	for rows.Next() {
		g, err := scanGrammar(rows)
		if err != nil {
			return all, err
		}
		all = append(all, g)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func scanGrammar(row scanner) (dao.Grammar, error) {
	var g dao.Grammar
	var id string
	var userID string
	var cnf string
	var created int64
	var modified int64

	err := row.Scan(
		&id,
		&userID,
		&g.Name,
		&g.Source,
		&cnf,
		&created,
		&modified,
	)
	if err != nil {
		return dao.Grammar{}, wrapDBError(err)
	}

	err = convertFromDB_UUID(id, &g.ID)
	if err != nil {
		return g, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	err = convertFromDB_UUID(userID, &g.UserID)
	if err != nil {
		return g, fmt.Errorf("stored user ID %q is invalid: %w", userID, err)
	}
	err = convertFromDB_CNF(cnf, &g.CNF)
	if err != nil {
		return g, fmt.Errorf("stored CNF grammar is invalid: %w", err)
	}
	err = convertFromDB_Time(created, &g.Created)
	if err != nil {
		return g, fmt.Errorf("stored created time %d is invalid: %w", created, err)
	}
	err = convertFromDB_Time(modified, &g.Modified)
	if err != nil {
		return g, fmt.Errorf("stored modified time %d is invalid: %w", modified, err)
	}

	return g, nil
}
