package api

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/npezzotti/go-messageboard/internal/database"
	"golang.org/x/crypto/bcrypt"
)

// authKeyword is the expected Authorization scheme. Matching is
// case-insensitive.
const authKeyword = "Bearer"

const (
	msgNoCredentials      = "Invalid token header. No credentials provided."
	msgTokenContainsSpace = "Invalid token header. Token string should not contain spaces."
	msgInvalidToken       = "Invalid token."
	msgNotAuthenticated   = "Authentication credentials were not provided."
	msgInvalidCredentials = "Invalid credentials"
)

type contextKey string

const memberKey contextKey = "member"

func WithMember(ctx context.Context, m database.Member) context.Context {
	return context.WithValue(ctx, memberKey, m)
}

// MemberFromContext returns the member resolved by the auth middleware.
func MemberFromContext(ctx context.Context) (database.Member, bool) {
	m, ok := ctx.Value(memberKey).(database.Member)
	return m, ok
}

// authenticate resolves an Authorization header value to a member. A nil
// member with a nil error means no bearer credential was supplied: either
// the header is absent or it belongs to another auth scheme. A non-nil error
// means a bearer credential was supplied but is malformed or unknown. The
// lookup is read-only.
func (s *MessageBoardApp) authenticate(headerValue string) (*database.Member, *ApiError) {
	if headerValue == "" {
		return nil, nil
	}

	parts := strings.Fields(headerValue)
	if len(parts) == 0 {
		return nil, nil
	}

	if !strings.EqualFold(parts[0], authKeyword) {
		// some other scheme, not ours to reject
		return nil, nil
	}

	if len(parts) == 1 {
		return nil, NewAuthenticationError(msgNoCredentials)
	}
	if len(parts) > 2 {
		return nil, NewAuthenticationError(msgTokenContainsSpace)
	}

	member, err := s.db.GetMemberByTokenKey(parts[1])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewAuthenticationError(msgInvalidToken)
		}
		return nil, NewInternalServerError(err)
	}

	return &member, nil
}

func hashPassword(passwd string) (string, error) {
	passwdHash, err := bcrypt.GenerateFromPassword([]byte(passwd), bcrypt.DefaultCost)
	return string(passwdHash), err
}

func verifyPassword(passwdHash, passwd string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(passwdHash), []byte(passwd))
	return err == nil
}
