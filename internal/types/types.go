package types

import "time"

// Member is the outward representation of a registered member. The password
// hash never leaves the database package.
type Member struct {
	Id        int       `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// MemberSummary is the short member form embedded in auth and message
// responses.
type MemberSummary struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
}

type Message struct {
	Id        int           `json:"id"`
	Member    MemberSummary `json:"member"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token  string        `json:"token"`
	Member MemberSummary `json:"member"`
}

// MessagePage is a single page of the message log. Count is the total number
// of stored messages, not the page size.
type MessagePage struct {
	Count   int       `json:"count"`
	Results []Message `json:"results"`
}
