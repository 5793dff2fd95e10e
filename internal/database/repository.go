package database

type MessageBoardRepository interface {
	Ping() error
	CreateMember(params CreateMemberParams) (Member, error)
	UpdateMember(params UpdateMemberParams) (Member, error)
	GetMemberByUsername(username string) (Member, error)
	CreateToken(memberId int, key string) (Token, error)
	GetTokenByMemberId(memberId int) (Token, error)
	GetMemberByTokenKey(key string) (Member, error)
	CreateMessage(params CreateMessageParams) (Message, error)
	GetMessages(limit, offset int) ([]Message, error)
	CountMessages() (int, error)
}
