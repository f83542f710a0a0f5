package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/google/uuid"
)

const userColumns = `id, username, pass_hash, role, created, logout_time`

type UsersDB struct {
	db *sql.DB
}

func (repo *UsersDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		pass_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created INTEGER NOT NULL,
		logout_time INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *UsersDB) Create(ctx context.Context, u dao.User) (dao.User, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return dao.User{}, fmt.Errorf("could not generate ID: %w", err)
	}

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		convertToDB_UUID(id),
		u.Username,
		u.PassHash,
		string(u.Role),
		convertToDB_Time(time.Now()),
		convertToDB_NanoTime(time.Time{}),
	)
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, id)
}

func (repo *UsersDB) GetByID(ctx context.Context, id uuid.UUID) (dao.User, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?;`, convertToDB_UUID(id))
	return scanUser(row)
}

func (repo *UsersDB) GetByUsername(ctx context.Context, username string) (dao.User, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?;`, username)
	return scanUser(row)
}

func (repo *UsersDB) SetLogoutTime(ctx context.Context, id uuid.UUID, t time.Time) (dao.User, error) {
	res, err := repo.db.ExecContext(ctx, `UPDATE users SET logout_time = ? WHERE id = ?;`, convertToDB_NanoTime(t), convertToDB_UUID(id))
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}
	if n < 1 {
		return dao.User{}, dao.ErrNotFound
	}

	return repo.GetByID(ctx, id)
}

func (repo *UsersDB) Close() error {
	return nil
}

func scanUser(row scanner) (dao.User, error) {
	var u dao.User
	var id string
	var role string
	var created int64
	var logout int64

	err := row.Scan(&id, &u.Username, &u.PassHash, &role, &created, &logout)
	if err != nil {
		return dao.User{}, wrapDBError(err)
	}

	if err := convertFromDB_UUID(id, &u.ID); err != nil {
		return u, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	if u.Role, err = dao.ParseRole(role); err != nil {
		return u, fmt.Errorf("stored role %q is invalid: %w", role, err)
	}
	if err := convertFromDB_Time(created, &u.Created); err != nil {
		return u, fmt.Errorf("stored created time %d is invalid: %w", created, err)
	}
	convertFromDB_NanoTime(logout, &u.LogoutTime)

	return u, nil
}
