package api

import (
	"fmt"
	"net/http"

	"github.com/npezzotti/go-messageboard/internal/stats"
)

func (s *MessageBoardApp) errorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				var panicError error
				switch e := err.(type) {
				case error:
					panicError = e
				default:
					panicError = fmt.Errorf("%v", e)
				}
				s.log.Printf("panic: %v", panicError)
				errResp := NewInternalServerError(panicError)
				w.Header().Set("Connection", "close")
				s.writeJson(w, errResp.StatusCode, errResp)
				return
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// authMiddleware gates protected routes. A malformed or unknown credential
// is rejected with its specific reason; a request with no bearer credential
// at all is also unauthorized here, but logged separately so the two cases
// stay distinguishable.
func (s *MessageBoardApp) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		member, authErr := s.authenticate(r.Header.Get("Authorization"))
		if authErr != nil {
			s.log.Printf("authentication rejected: %s", authErr.Error())
			s.stats.Incr(stats.AuthRejections)
			s.writeJson(w, authErr.StatusCode, authErr)
			return
		}

		if member == nil {
			s.log.Printf("anonymous request to protected route %s", r.URL.Path)
			s.stats.Incr(stats.AuthRejections)
			errResp := NewAuthenticationError(msgNotAuthenticated)
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}

		ctx := WithMember(r.Context(), *member)
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")

		next(w, r.WithContext(ctx))
	}
}
