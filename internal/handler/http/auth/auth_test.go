package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testStore(t *testing.T) *CredentialStore {
	t.Helper()
	t.Setenv("AUTH_USERNAME", "admin")
	t.Setenv("AUTH_PASSWORD", "s3cret")
	store, err := NewCredentialStoreFromEnv()
	if err != nil {
		t.Fatalf("NewCredentialStoreFromEnv() error = %v", err)
	}
	return store
}

func TestNewCredentialStoreFromEnv_MissingVars(t *testing.T) {
	t.Setenv("AUTH_USERNAME", "")
	t.Setenv("AUTH_PASSWORD", "")
	if _, err := NewCredentialStoreFromEnv(); err == nil {
		t.Fatal("expected error when credentials are unset")
	}
}

func TestCredentialStore_Validate(t *testing.T) {
	store := testStore(t)

	tests := []struct {
		name    string
		creds   Credentials
		wantErr bool
	}{
		{name: "valid", creds: Credentials{Username: "admin", Password: "s3cret"}, wantErr: false},
		{name: "wrong password", creds: Credentials{Username: "admin", Password: "nope"}, wantErr: true},
		{name: "wrong username", creds: Credentials{Username: "other", Password: "s3cret"}, wantErr: true},
		{name: "empty", creds: Credentials{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Validate(tt.creds)
			if tt.wantErr && !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Validate() error = %v, want ErrInvalidCredentials", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestIsPublicEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/health", true},
		{"/health?format=json", true},
		{"/health/", true},
		{"/health/detail", false},
		{"/healthcheck", false},
		{"/ready", true},
		{"/live", true},
		{"/metrics", true},
		{"/auth/token", true},
		{"/summaries", false},
		{"/summaries/1", false},
	}

	for _, tt := range tests {
		if got := IsPublicEndpoint(tt.path); got != tt.want {
			t.Errorf("IsPublicEndpoint(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestTokenHandler(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	store := testStore(t)
	handler := TokenHandler(store)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		body, _ := json.Marshal(loginRequest{Username: "admin", Password: "s3cret"})
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}

		var resp tokenResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Token == "" {
			t.Fatal("expected non-empty token")
		}

		user, role, err := validateJWT("Bearer "+resp.Token, []byte("test-secret"))
		if err != nil {
			t.Fatalf("validateJWT() error = %v", err)
		}
		if user != "admin" || role != "admin" {
			t.Errorf("claims = (%q, %q), want (admin, admin)", user, role)
		}
	})

	t.Run("invalid credentials rejected", func(t *testing.T) {
		body, _ := json.Marshal(loginRequest{Username: "admin", Password: "wrong"})
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthz(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var gotUser string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Authz(next)

	validClaims := jwt.MapClaims{
		"sub":  "admin",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}

	t.Run("public endpoint bypasses auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("missing token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/summaries", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("valid token passes and sets user", func(t *testing.T) {
		gotUser = ""
		req := httptest.NewRequest(http.MethodGet, "/summaries", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", validClaims))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if gotUser != "admin" {
			t.Errorf("user in context = %q, want %q", gotUser, "admin")
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		claims := jwt.MapClaims{
			"sub":  "admin",
			"role": "admin",
			"exp":  time.Now().Add(-time.Minute).Unix(),
		}
		req := httptest.NewRequest(http.MethodGet, "/summaries", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", claims))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("non-admin role forbidden", func(t *testing.T) {
		claims := jwt.MapClaims{
			"sub":  "viewer",
			"role": "viewer",
			"exp":  time.Now().Add(time.Hour).Unix(),
		}
		req := httptest.NewRequest(http.MethodPost, "/summaries", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", claims))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/summaries", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", validClaims))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}
