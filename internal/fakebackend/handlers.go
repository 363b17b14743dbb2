package fakebackend

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jrsteele09/go-school-client/oauthmodel"
)

// InvalidCredentialsMessage is the login error text the backend returns.
const InvalidCredentialsMessage = "Invalid username or password. Please try again."

// LoginHandler exchanges {user_name, password} for a token pair and the user.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req oauthmodel.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, oauthmodel.ErrorResponse{Error: "malformed request"})
			return
		}

		s.mu.Lock()
		account, ok := s.accounts[req.UserName]
		s.mu.Unlock()
		if !ok || account.Password != req.Password {
			writeJSON(w, http.StatusUnauthorized, oauthmodel.ErrorResponse{Error: InvalidCredentialsMessage})
			return
		}

		access, refresh, err := s.IssueTokens(account.UserName)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, oauthmodel.ErrorResponse{Error: err.Error()})
			return
		}

		profile := map[string]any{"user_name": account.UserName}
		for k, v := range account.Profile {
			profile[k] = v
		}
		user, _ := json.Marshal(profile)
		writeJSON(w, http.StatusOK, oauthmodel.LoginResponse{Access: access, Refresh: refresh, User: user})
	}
}

// RefreshHandler exchanges {refresh} for {access} and, when rotation is on,
// a new refresh token.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req oauthmodel.RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
			writeJSON(w, http.StatusBadRequest, map[string][]string{"refresh": {"This field is required."}})
			return
		}

		s.mu.Lock()
		delay := s.refreshDelay
		failStatus := s.refreshStatus
		s.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if failStatus != 0 {
			writeDetail(w, failStatus, "Token is invalid or expired", "token_not_valid")
			return
		}

		s.mu.Lock()
		userName, ok := s.refreshTokens[req.Refresh]
		s.mu.Unlock()
		if !ok {
			var err error
			if userName, err = s.tokens.verify(req.Refresh, tokenTypeRefresh); err != nil {
				writeDetail(w, http.StatusUnauthorized, "Token is invalid or expired", "token_not_valid")
				return
			}
		}

		access, err := s.nextAccessToken(userName)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, oauthmodel.ErrorResponse{Error: err.Error()})
			return
		}

		resp := oauthmodel.RefreshResponse{Access: access}

		s.mu.Lock()
		rotate := s.rotate
		s.mu.Unlock()
		if rotate {
			refresh, err := s.tokens.create(userName, tokenTypeRefresh, s.tokens.refreshTTL)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, oauthmodel.ErrorResponse{Error: err.Error()})
				return
			}
			s.mu.Lock()
			delete(s.refreshTokens, req.Refresh)
			s.refreshTokens[refresh] = userName
			s.mu.Unlock()
			resp.Refresh = refresh
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) nextAccessToken(userName string) (string, error) {
	s.mu.Lock()
	if len(s.nextAccess) > 0 {
		token := s.nextAccess[0]
		s.nextAccess = s.nextAccess[1:]
		s.staticAccess[token] = userName
		delete(s.revoked, token)
		s.mu.Unlock()
		return token, nil
	}
	s.mu.Unlock()
	return s.tokens.create(userName, tokenTypeAccess, s.tokens.accessTTL)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail, code string) {
	writeJSON(w, status, oauthmodel.ErrorResponse{Detail: detail, Code: code})
}
