package database

import (
	"time"
)

func (db *PgMessageBoardRepository) CreateMember(params CreateMemberParams) (Member, error) {
	res := db.conn.QueryRow(
		"INSERT INTO members (username, password_hash, created_at) "+
			"VALUES ($1, $2, $3) RETURNING id, username, password_hash, created_at",
		params.Username,
		params.PasswordHash,
		time.Now().UTC(),
	)

	var m Member
	err := res.Scan(
		&m.Id,
		&m.Username,
		&m.PasswordHash,
		&m.CreatedAt,
	)

	return m, err
}

func (db *PgMessageBoardRepository) UpdateMember(params UpdateMemberParams) (Member, error) {
	res := db.conn.QueryRow(
		"UPDATE members SET username = COALESCE(NULLIF($2, ''), username), "+
			"password_hash = COALESCE(NULLIF($3, ''), password_hash) "+
			"WHERE id = $1 RETURNING id, username, created_at",
		params.MemberId,
		params.Username,
		params.PasswordHash,
	)

	var m Member
	err := res.Scan(
		&m.Id,
		&m.Username,
		&m.CreatedAt,
	)

	return m, err
}

func (db *PgMessageBoardRepository) GetMemberByUsername(username string) (Member, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, created_at FROM members "+
			"WHERE username = $1 LIMIT 1",
		username,
	)

	var m Member
	err := row.Scan(
		&m.Id,
		&m.Username,
		&m.PasswordHash,
		&m.CreatedAt,
	)

	return m, err
}

func (db *PgMessageBoardRepository) CreateToken(memberId int, key string) (Token, error) {
	res := db.conn.QueryRow(
		"INSERT INTO tokens (member_id, key, created_at) "+
			"VALUES ($1, $2, $3) RETURNING id, member_id, key, created_at",
		memberId,
		key,
		time.Now().UTC(),
	)

	var t Token
	err := res.Scan(
		&t.Id,
		&t.MemberId,
		&t.Key,
		&t.CreatedAt,
	)

	return t, err
}

func (db *PgMessageBoardRepository) GetTokenByMemberId(memberId int) (Token, error) {
	row := db.conn.QueryRow(
		"SELECT id, member_id, key, created_at FROM tokens "+
			"WHERE member_id = $1 LIMIT 1",
		memberId,
	)

	var t Token
	err := row.Scan(
		&t.Id,
		&t.MemberId,
		&t.Key,
		&t.CreatedAt,
	)

	return t, err
}

func (db *PgMessageBoardRepository) GetMemberByTokenKey(key string) (Member, error) {
	row := db.conn.QueryRow(
		"SELECT m.id, m.username, m.created_at FROM tokens t "+
			"JOIN members m ON m.id = t.member_id WHERE t.key = $1 LIMIT 1",
		key,
	)

	var m Member
	err := row.Scan(
		&m.Id,
		&m.Username,
		&m.CreatedAt,
	)

	return m, err
}

func (db *PgMessageBoardRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	res := db.conn.QueryRow(
		"INSERT INTO messages (member_id, content, created_at) "+
			"VALUES ($1, $2, $3) RETURNING id, member_id, content, created_at",
		params.MemberId,
		params.Content,
		time.Now().UTC(),
	)

	var msg Message
	err := res.Scan(
		&msg.Id,
		&msg.MemberId,
		&msg.Content,
		&msg.CreatedAt,
	)

	return msg, err
}

func (db *PgMessageBoardRepository) GetMessages(limit, offset int) ([]Message, error) {
	rows, err := db.conn.Query(
		"SELECT msg.id, msg.member_id, m.username, msg.content, msg.created_at "+
			"FROM messages msg JOIN members m ON m.id = msg.member_id "+
			"ORDER BY msg.created_at, msg.id LIMIT $1 OFFSET $2",
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages = make([]Message, 0, limit)
	for rows.Next() {
		var msg Message
		if err = rows.Scan(&msg.Id, &msg.MemberId, &msg.MemberUsername, &msg.Content, &msg.CreatedAt); err != nil {
			break
		}

		messages = append(messages, msg)
	}
	if err != nil {
		return nil, err
	}

	return messages, rows.Err()
}

func (db *PgMessageBoardRepository) CountMessages() (int, error) {
	row := db.conn.QueryRow("SELECT COUNT(*) FROM messages")

	var count int
	err := row.Scan(&count)

	return count, err
}
