package svc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/dekarrin/chomsky/server/serr"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost of stored password hashes.
const PasswordCost = bcrypt.DefaultCost

// CreateUser adds an account that can upload grammars and run parses.
//
// A taken username gives an error matching serr.ErrAlreadyExists. A blank
// username or password, or a password bcrypt cannot hash, matches
// serr.ErrBadArgument.
func (svc Service) CreateUser(ctx context.Context, username, password string, role dao.Role) (dao.User, error) {
	const op = "create user"

	if username == "" {
		return dao.User{}, serr.New(op, errors.New("username cannot be blank"), serr.ErrBadArgument)
	}
	if password == "" {
		return dao.User{}, serr.New(op, errors.New("password cannot be blank"), serr.ErrBadArgument)
	}
	if _, err := dao.ParseRole(string(role)); err != nil {
		return dao.User{}, serr.New(op, err, serr.ErrBadArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return dao.User{}, serr.New(op, fmt.Errorf("password is longer than 72 bytes"), serr.ErrBadArgument)
		}
		return dao.User{}, serr.New(op, err)
	}

	u, err := svc.DB.Users().Create(ctx, dao.User{
		Username: username,
		PassHash: string(hash),
		Role:     role,
	})
	if err != nil {
		return dao.User{}, serr.DB(op, err, serr.ErrAlreadyExists)
	}
	return u, nil
}

// Login returns the user that username and password belong to. A wrong
// username or password both give serr.ErrBadCredentials.
func (svc Service) Login(ctx context.Context, username, password string) (dao.User, error) {
	u, err := svc.DB.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.User{}, serr.New("", nil, serr.ErrBadCredentials)
		}
		return dao.User{}, serr.DB("log in", err, nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PassHash), []byte(password)); err != nil {
		return dao.User{}, serr.New("", nil, serr.ErrBadCredentials)
	}
	return u, nil
}

// Logout invalidates every token issued to the user so far.
func (svc Service) Logout(ctx context.Context, id uuid.UUID) (dao.User, error) {
	u, err := svc.DB.Users().SetLogoutTime(ctx, id, time.Now())
	if err != nil {
		return dao.User{}, serr.DB("log out", err, nil)
	}
	return u, nil
}
