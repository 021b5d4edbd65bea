package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"content-summarizer/internal/handler/http/requestid"

	"github.com/golang-jwt/jwt/v5"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// tokenTTL bounds how long an issued token stays valid.
const tokenTTL = 1 * time.Hour

// TokenHandler creates an HTTP handler that authenticates clients and
// issues JWT tokens signed with JWT_SECRET.
func TokenHandler(store *CredentialStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := requestid.FromContext(r.Context())
		logger := slog.With(slog.String("request_id", requestID))

		logger.Info("authentication attempt started")

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_request"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		creds := Credentials{
			Username: req.Username,
			Password: req.Password,
		}

		if err := store.Validate(creds); err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_credentials"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("unknown", "failure")
			RecordAuthDuration("unknown", time.Since(start).Seconds())
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		secret := []byte(os.Getenv("JWT_SECRET"))

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  req.Username,
			"role": "admin",
			"exp":  time.Now().Add(tokenTTL).Unix(),
		})

		signed, err := token.SignedString(secret)
		if err != nil {
			logger.Error("token generation failed",
				slog.String("error", err.Error()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			RecordAuthRequest("admin", "failure")
			RecordAuthDuration("admin", time.Since(start).Seconds())
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		logger.Info("authentication successful",
			slog.String("username", req.Username),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))

		RecordAuthRequest("admin", "success")
		RecordAuthDuration("admin", time.Since(start).Seconds())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tokenResponse{Token: signed}); err != nil {
			logger.Error("failed to encode token response",
				slog.String("error", err.Error()))
		}
	}
}
