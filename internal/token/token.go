// Package token issues the opaque bearer tokens members authenticate with.
// A token is forty hex characters drawn from a cryptographically secure
// source and carries no member information; the tokens table holds the only
// mapping back to its owner.
package token

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/npezzotti/go-messageboard/internal/database"
)

const (
	keyBytes = 20

	// A collision between two forty-character random keys is vanishingly
	// unlikely, so a handful of retries is plenty.
	maxIssueAttempts = 3
)

type Issuer struct {
	log *log.Logger
	db  database.MessageBoardRepository
}

func NewIssuer(logger *log.Logger, db database.MessageBoardRepository) *Issuer {
	return &Issuer{
		log: logger,
		db:  db,
	}
}

// GenerateKey returns a new forty character hex token key.
func GenerateKey() (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// Issue creates and persists a token for the given member. The store's
// unique constraints are the authority: a key collision regenerates the key,
// and losing a race against a concurrent issue for the same member returns
// the winner's token instead of an error.
func (i *Issuer) Issue(memberId int) (database.Token, error) {
	for attempt := 1; attempt <= maxIssueAttempts; attempt++ {
		key, err := GenerateKey()
		if err != nil {
			return database.Token{}, err
		}

		tok, err := i.db.CreateToken(memberId, key)
		switch {
		case err == nil:
			return tok, nil
		case database.IsDuplicateTokenKey(err):
			i.log.Printf("token key collision on attempt %d, regenerating", attempt)
		case database.IsDuplicateTokenMember(err):
			return i.db.GetTokenByMemberId(memberId)
		default:
			return database.Token{}, fmt.Errorf("create token: %w", err)
		}
	}

	return database.Token{}, fmt.Errorf("exhausted %d token key generation attempts", maxIssueAttempts)
}

// GetOrIssue returns the member's existing token, issuing one if none
// exists. Calling it twice for the same member yields the same token.
func (i *Issuer) GetOrIssue(memberId int) (database.Token, bool, error) {
	tok, err := i.db.GetTokenByMemberId(memberId)
	if err == nil {
		return tok, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return database.Token{}, false, fmt.Errorf("get token: %w", err)
	}

	tok, err = i.Issue(memberId)
	if err != nil {
		return database.Token{}, false, err
	}

	return tok, true, nil
}
