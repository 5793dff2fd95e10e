package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/npezzotti/go-messageboard/internal/database"
	"github.com/npezzotti/go-messageboard/internal/stats"
	"github.com/npezzotti/go-messageboard/internal/types"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 150
	minPasswordLen = 6
	maxPasswordLen = 128
	maxContentLen  = 5000

	defaultMessageLimit = 50
	maxMessageLimit     = 100
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateMessageRequest struct {
	Content string `json:"content"`
}

func (s *MessageBoardApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

func validateUsername(username string) *ApiError {
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return NewValidationError("Username must be between 3 and 150 characters")
	}
	return nil
}

func validatePassword(password string) *ApiError {
	if n := utf8.RuneCountInString(password); n < minPasswordLen || n > maxPasswordLen {
		return NewValidationError("Password must be between 6 and 128 characters")
	}
	return nil
}

func (s *MessageBoardApp) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if errResp := validateUsername(req.Username); errResp != nil {
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}
	if errResp := validatePassword(req.Password); errResp != nil {
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	// Pre-check is an optimization only; the unique constraint on
	// members.username is the authority under concurrent registrations.
	if _, err := s.db.GetMemberByUsername(req.Username); err == nil {
		errResp := NewConflictError("Username already exists")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	pwdHash, err := hashPassword(req.Password)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			errResp = NewValidationError("Password must be between 6 and 128 characters")
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	member, err := s.db.CreateMember(database.CreateMemberParams{
		Username:     req.Username,
		PasswordHash: pwdHash,
	})
	if err != nil {
		var errResp *ApiError
		if database.IsDuplicateUsername(err) {
			errResp = NewConflictError("Username already exists")
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	tok, err := s.tokens.Issue(member.Id)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.TotalRegistrations)
	s.writeJson(w, http.StatusCreated, types.AuthResponse{
		Token: tok.Key,
		Member: types.MemberSummary{
			Id:       member.Id,
			Username: member.Username,
		},
	})
}

func (s *MessageBoardApp) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Username == "" || req.Password == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	// An unknown username and a wrong password produce the same response so
	// valid usernames cannot be enumerated.
	member, err := s.db.GetMemberByUsername(req.Username)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, sql.ErrNoRows) {
			errResp = NewAuthenticationError(msgInvalidCredentials)
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if !verifyPassword(member.PasswordHash, req.Password) {
		errResp := NewAuthenticationError(msgInvalidCredentials)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	tok, _, err := s.tokens.GetOrIssue(member.Id)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.TotalLogins)
	s.writeJson(w, http.StatusOK, types.AuthResponse{
		Token: tok.Key,
		Member: types.MemberSummary{
			Id:       member.Id,
			Username: member.Username,
		},
	})
}

func (s *MessageBoardApp) getProfile(w http.ResponseWriter, r *http.Request) {
	member, ok := MemberFromContext(r.Context())
	if !ok {
		errResp := NewAuthenticationError(msgNotAuthenticated)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, types.Member{
		Id:        member.Id,
		Username:  member.Username,
		CreatedAt: member.CreatedAt,
	})
}

func (s *MessageBoardApp) updateProfile(w http.ResponseWriter, r *http.Request) {
	member, ok := MemberFromContext(r.Context())
	if !ok {
		errResp := NewAuthenticationError(msgNotAuthenticated)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	params := database.UpdateMemberParams{MemberId: member.Id}

	if req.Username != "" && req.Username != member.Username {
		if _, err := s.db.GetMemberByUsername(req.Username); err == nil {
			errResp := NewConflictError("Username already exists")
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		} else if !errors.Is(err, sql.ErrNoRows) {
			errResp := NewInternalServerError(err)
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		params.Username = req.Username
	}

	if req.Password != "" {
		if utf8.RuneCountInString(req.Password) < minPasswordLen {
			errResp := NewValidationError("Password must be at least 6 characters")
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		pwdHash, err := hashPassword(req.Password)
		if err != nil {
			var errResp *ApiError
			if errors.Is(err, bcrypt.ErrPasswordTooLong) {
				errResp = NewValidationError("Password must be between 6 and 128 characters")
			} else {
				errResp = NewInternalServerError(err)
			}
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		params.PasswordHash = pwdHash
	}

	updated, err := s.db.UpdateMember(params)
	if err != nil {
		var errResp *ApiError
		if database.IsDuplicateUsername(err) {
			errResp = NewConflictError("Username already exists")
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, types.Member{
		Id:        updated.Id,
		Username:  updated.Username,
		CreatedAt: updated.CreatedAt,
	})
}

func (s *MessageBoardApp) listMessages(w http.ResponseWriter, r *http.Request) {
	limit, offset := defaultMessageLimit, 0

	// A parameter that is present must parse as an integer, even when its
	// value is empty (?limit=); only an absent parameter defaults.
	var err error
	query := r.URL.Query()
	if vals, ok := query["limit"]; ok {
		limit, err = strconv.Atoi(vals[0])
		if err != nil {
			errResp := NewValidationError("Invalid limit or offset value")
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}
	}

	if vals, ok := query["offset"]; ok {
		offset, err = strconv.Atoi(vals[0])
		if err != nil {
			errResp := NewValidationError("Invalid limit or offset value")
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}
	}

	// Out-of-range values fall back silently, only non-integers are an
	// error.
	if limit < 1 || limit > maxMessageLimit {
		limit = defaultMessageLimit
	}
	if offset < 0 {
		offset = 0
	}

	count, err := s.db.CountMessages()
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	messages, err := s.db.GetMessages(limit, offset)
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	results := make([]types.Message, 0, len(messages))
	for _, msg := range messages {
		results = append(results, types.Message{
			Id: msg.Id,
			Member: types.MemberSummary{
				Id:       msg.MemberId,
				Username: msg.MemberUsername,
			},
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}

	s.writeJson(w, http.StatusOK, types.MessagePage{
		Count:   count,
		Results: results,
	})
}

func (s *MessageBoardApp) createMessage(w http.ResponseWriter, r *http.Request) {
	member, ok := MemberFromContext(r.Context())
	if !ok {
		errResp := NewAuthenticationError(msgNotAuthenticated)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.Content == "" {
		errResp := NewValidationError("Content is required")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}
	if utf8.RuneCountInString(req.Content) > maxContentLen {
		errResp := NewValidationError("Content must be at most 5000 characters")
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	msg, err := s.db.CreateMessage(database.CreateMessageParams{
		MemberId: member.Id,
		Content:  req.Content,
	})
	if err != nil {
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.MessagesPosted)
	s.writeJson(w, http.StatusCreated, types.Message{
		Id: msg.Id,
		Member: types.MemberSummary{
			Id:       member.Id,
			Username: member.Username,
		},
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	})
}

func (s *MessageBoardApp) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.log.Println("health check:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
