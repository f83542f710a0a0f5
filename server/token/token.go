// Package token issues and checks the JWT bearer tokens used to authenticate
// clients of the parse server.
package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dekarrin/chomsky/server/dao"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is the value of the "iss" claim of every token.
const Issuer = "chomskyd"

// Lifetime is how long a token is valid for after it is issued.
const Lifetime = time.Hour

var method = jwt.SigningMethodHS512

// Issue creates a signed token for u. It returns the token and the time it
// expires.
func Issue(secret []byte, u dao.User) (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(Lifetime)

	claims := jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   u.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	signed, err := jwt.NewWithClaims(method, claims).SignedString(signingKey(secret, u))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Validate checks tok and returns the user it was issued to. The signing key
// of a token covers the user's password hash and last logout time, so a
// logout invalidates every token issued before it.
func Validate(ctx context.Context, tok string, secret []byte, users dao.UserRepository) (dao.User, error) {
	var u dao.User

	keyFunc := func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, err
		}
		id, err := uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("subject is not a user ID")
		}

		u, err = users.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, dao.ErrNotFound) {
				return nil, fmt.Errorf("subject does not exist")
			}
			return nil, fmt.Errorf("look up subject: %w", err)
		}
		return signingKey(secret, u), nil
	}

	_, err := jwt.ParseWithClaims(tok, &jwt.RegisteredClaims{}, keyFunc,
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(time.Minute),
	)
	if err != nil {
		return dao.User{}, err
	}
	return u, nil
}

// FromRequest returns the bearer token in the Authorization header of req.
func FromRequest(req *http.Request) (string, error) {
	auth := strings.TrimSpace(req.Header.Get("Authorization"))
	if auth == "" {
		return "", fmt.Errorf("no authorization header")
	}

	scheme, tok, ok := strings.Cut(auth, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", fmt.Errorf("authorization header is not a bearer token")
	}
	return strings.TrimSpace(tok), nil
}

func signingKey(secret []byte, u dao.User) []byte {
	key := make([]byte, 0, len(secret)+len(u.PassHash)+20)
	key = append(key, secret...)
	key = append(key, u.PassHash...)
	key = strconv.AppendInt(key, u.LogoutTime.UnixNano(), 10)
	return key
}
