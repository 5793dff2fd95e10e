package database

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres raises 23505 when an insert or update breaks a unique constraint.
// The constraint name tells us which invariant fired, which callers need to
// distinguish a duplicate username from a losing token race.
const uniqueViolationCode = pq.ErrorCode("23505")

const (
	membersUsernameConstraint = "members_username_key"
	tokensMemberIdConstraint  = "tokens_member_id_key"
	tokensKeyConstraint       = "tokens_key_key"
)

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return pqErr.Code == uniqueViolationCode && pqErr.Constraint == constraint
}

// IsDuplicateUsername reports whether err is a unique violation on
// members.username.
func IsDuplicateUsername(err error) bool {
	return isUniqueViolation(err, membersUsernameConstraint)
}

// IsDuplicateTokenMember reports whether err is a unique violation on
// tokens.member_id, meaning a concurrent issue already created this member's
// token.
func IsDuplicateTokenMember(err error) bool {
	return isUniqueViolation(err, tokensMemberIdConstraint)
}

// IsDuplicateTokenKey reports whether err is a unique violation on
// tokens.key, meaning the generated key collided with an existing one.
func IsDuplicateTokenKey(err error) bool {
	return isUniqueViolation(err, tokensKeyConstraint)
}
