package database

import (
	"github.com/stretchr/testify/mock"
)

type MockMessageBoardRepository struct {
	mock.Mock
}

func (m *MockMessageBoardRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockMessageBoardRepository) CreateMember(params CreateMemberParams) (Member, error) {
	args := m.Called(params)
	return args.Get(0).(Member), args.Error(1)
}
func (m *MockMessageBoardRepository) UpdateMember(params UpdateMemberParams) (Member, error) {
	args := m.Called(params)
	return args.Get(0).(Member), args.Error(1)
}
func (m *MockMessageBoardRepository) GetMemberByUsername(username string) (Member, error) {
	args := m.Called(username)
	return args.Get(0).(Member), args.Error(1)
}
func (m *MockMessageBoardRepository) CreateToken(memberId int, key string) (Token, error) {
	args := m.Called(memberId, key)
	return args.Get(0).(Token), args.Error(1)
}
func (m *MockMessageBoardRepository) GetTokenByMemberId(memberId int) (Token, error) {
	args := m.Called(memberId)
	return args.Get(0).(Token), args.Error(1)
}
func (m *MockMessageBoardRepository) GetMemberByTokenKey(key string) (Member, error) {
	args := m.Called(key)
	return args.Get(0).(Member), args.Error(1)
}
func (m *MockMessageBoardRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockMessageBoardRepository) GetMessages(limit, offset int) ([]Message, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockMessageBoardRepository) CountMessages() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}
