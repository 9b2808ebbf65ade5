package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

const secret = "test-secret"

type userMap map[string]*models.User

func (m userMap) FindByID(_ context.Context, id string) (*models.User, error) {
	return m[id], nil
}

func TestToken_RoundTrip(t *testing.T) {
	tok, err := GenerateToken(secret, time.Hour, "u1", "ana@aurora.test", "crew", "v1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ValidateToken(secret, tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "crew" || claims.ShipID != "v1" || claims.Subject != "u1" {
		t.Fatalf("claims = %+v", claims)
	}
	if _, err := ValidateToken("other-secret", tok); err == nil {
		t.Fatal("token accepted with the wrong secret")
	}
	expired, _ := GenerateToken(secret, -time.Minute, "u1", "", "crew", "")
	if _, err := ValidateToken(secret, expired); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestToken_ClaimNames(t *testing.T) {
	tok, err := GenerateToken(secret, time.Hour, "u1", "ana@aurora.test", "crew", "v1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	raw := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, raw); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if raw["user_id"] != "u1" || raw["ship_id"] != "v1" {
		t.Fatalf("claims = %v", raw)
	}
	if _, ok := raw["shipId"]; ok {
		t.Fatalf("camelCase claim present: %v", raw)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword("secret1", hash) || CheckPassword("secret2", hash) {
		t.Fatal("password check mismatch")
	}
}

func TestMiddleware(t *testing.T) {
	users := userMap{
		"u1": {ID: "u1", Name: "Ana", Role: models.RoleCrew, ShipID: "v1", Active: true},
		"u2": {ID: "u2", Name: "Gone", Role: models.RoleCrew, Active: false},
	}
	var seen models.Session
	h := Middleware(secret, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetSession(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	bearer := func(id string) string {
		tok, err := GenerateToken(secret, time.Hour, id, "", "crew", "")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		return "Bearer " + tok
	}

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"unknown user", bearer("u9"), http.StatusUnauthorized},
		{"inactive", bearer("u2"), http.StatusForbidden},
		{"ok", bearer("u1"), http.StatusNoContent},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Fatalf("%s: status = %d, want %d", tc.name, rec.Code, tc.status)
		}
		if tc.status != http.StatusNoContent {
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil || body["detail"] == "" {
				t.Fatalf("%s: body = %v %v", tc.name, body, err)
			}
		}
	}
	if seen.UserID != "u1" || seen.ShipID != "v1" || !seen.Active {
		t.Fatalf("session = %+v", seen)
	}
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(models.RoleMaster)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	run := func(ctx context.Context) int {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil).WithContext(ctx))
		return rec.Code
	}
	if code := run(context.Background()); code != http.StatusUnauthorized {
		t.Fatalf("no session: %d", code)
	}
	if code := run(WithSession(context.Background(), models.Session{Role: models.RoleCrew})); code != http.StatusForbidden {
		t.Fatalf("crew: %d", code)
	}
	if code := run(WithSession(context.Background(), models.Session{Role: models.RoleMaster})); code != http.StatusNoContent {
		t.Fatalf("master: %d", code)
	}
}
