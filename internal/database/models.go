package database

import "time"

type Member struct {
	Id           int
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Token struct {
	Id        int
	MemberId  int
	Key       string
	CreatedAt time.Time
}

type Message struct {
	Id             int
	MemberId       int
	MemberUsername string
	Content        string
	CreatedAt      time.Time
}

type CreateMemberParams struct {
	Username     string
	PasswordHash string
}

// UpdateMemberParams carries a partial update. Empty Username or PasswordHash
// means the current value is kept.
type UpdateMemberParams struct {
	MemberId     int
	Username     string
	PasswordHash string
}

type CreateMessageParams struct {
	MemberId int
	Content  string
}
