package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/google/uuid"
)

const parseColumns = `id, grammar_id, user_id, sentence, accepted, elapsed, tree, created`

type ParsesDB struct {
	db *sql.DB
}

func (repo *ParsesDB) init(fk bool) error {
	stmt := `CREATE TABLE IF NOT EXISTS parses (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		grammar_id TEXT NOT NULL`

	if fk {
		stmt += ` REFERENCES grammars(id) ON DELETE CASCADE ON UPDATE CASCADE`
	}

	stmt += `,
		user_id TEXT NOT NULL`

	if fk {
		stmt += ` REFERENCES users(id) ON DELETE CASCADE ON UPDATE CASCADE`
	}

	stmt += `,
		sentence TEXT NOT NULL,
		accepted INTEGER NOT NULL,
		elapsed INTEGER NOT NULL,
		tree TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *ParsesDB) Create(ctx context.Context, p dao.Parse) (dao.Parse, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Parse{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO parses (` + parseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Parse{}, wrapDBError(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		convertToDB_UUID(p.GrammarID),
		convertToDB_UUID(p.UserID),
		p.Sentence,
		p.Accepted,
		convertToDB_Duration(p.Elapsed),
		p.Tree,
		convertToDB_Time(time.Now()),
	)
	if err != nil {
		return dao.Parse{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

// GetAllByGrammar returns the parses of the grammar in the order they were
// created.
func (repo *ParsesDB) GetAllByGrammar(ctx context.Context, grammarID uuid.UUID) ([]dao.Parse, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT `+parseColumns+` FROM parses WHERE grammar_id = ? ORDER BY seq;`, convertToDB_UUID(grammarID))
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	all := []dao.Parse{}
	for rows.Next() {
		p, err := scanParse(rows)
		if err != nil {
			return all, err
		}
		all = append(all, p)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *ParsesDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Parse, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT `+parseColumns+` FROM parses WHERE id = ?;`, convertToDB_UUID(id))
	return scanParse(row)
}

func (repo *ParsesDB) DeleteAllByGrammar(ctx context.Context, grammarID uuid.UUID) ([]dao.Parse, error) {
	curVals, err := repo.GetAllByGrammar(ctx, grammarID)
	if err != nil {
		return nil, err
	}

	_, err = repo.db.ExecContext(ctx, `DELETE FROM parses WHERE grammar_id = ?`, convertToDB_UUID(grammarID))
	if err != nil {
		return nil, wrapDBError(err)
	}

	return curVals, nil
}

func (repo *ParsesDB) Close() error {
	return nil
}

func scanParse(row scanner) (dao.Parse, error) {
	var p dao.Parse
	var id string
	var grammarID string
	var userID string
	var elapsed int64
	var created int64

	err := row.Scan(
		&id,
		&grammarID,
		&userID,
		&p.Sentence,
		&p.Accepted,
		&elapsed,
		&p.Tree,
		&created,
	)
	if err != nil {
		return dao.Parse{}, wrapDBError(err)
	}

	err = convertFromDB_UUID(id, &p.ID)
	if err != nil {
		return p, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	err = convertFromDB_UUID(grammarID, &p.GrammarID)
	if err != nil {
		return p, fmt.Errorf("stored grammar ID %q is invalid: %w", grammarID, err)
	}
	err = convertFromDB_UUID(userID, &p.UserID)
	if err != nil {
		return p, fmt.Errorf("stored user ID %q is invalid: %w", userID, err)
	}
	err = convertFromDB_Duration(elapsed, &p.Elapsed)
	if err != nil {
		return p, fmt.Errorf("stored elapsed time %d is invalid: %w", elapsed, err)
	}
	err = convertFromDB_Time(created, &p.Created)
	if err != nil {
		return p, fmt.Errorf("stored created time %d is invalid: %w", created, err)
	}

	return p, nil
}
