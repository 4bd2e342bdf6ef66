package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bobmcallan/vantage/internal/common"
)

// --- JWT helpers ---

func TestSignToken_RoundTrip(t *testing.T) {
	cfg := &common.AuthConfig{
		JWTSecret:   "test-secret-key",
		TokenExpiry: "1h",
	}

	token, err := SignToken("analyst", cfg)
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	parsed, claims, err := validateJWT(token, []byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("validateJWT failed: %v", err)
	}
	if !parsed.Valid {
		t.Error("expected token to be valid")
	}
	if claims["sub"] != "analyst" {
		t.Errorf("expected sub=analyst, got %v", claims["sub"])
	}
	if claims["iss"] != tokenIssuer {
		t.Errorf("expected iss=%s, got %v", tokenIssuer, claims["iss"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("expected exp claim: %v", err)
	}
	if d := time.Until(exp.Time); d < 59*time.Minute || d > 61*time.Minute {
		t.Errorf("expected expiry about 1h out, got %v", d)
	}
}

func TestSignToken_RequiresSecretAndSubject(t *testing.T) {
	if _, err := SignToken("analyst", &common.AuthConfig{}); err == nil {
		t.Error("expected error without secret")
	}
	if _, err := SignToken("  ", &common.AuthConfig{JWTSecret: "s"}); err == nil {
		t.Error("expected error without subject")
	}
}

func TestValidateJWT_ExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "analyst",
		"iss": tokenIssuer,
		"iat": time.Now().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().Add(-1 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, _, err := validateJWT(token, []byte("secret")); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateJWT_RejectsNoneAlgorithm(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "analyst"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, _, err := validateJWT(token, []byte("secret")); err == nil {
		t.Error("expected error for unsigned token")
	}
}

// --- /api/auth/validate ---

func TestHandleAuthValidate_AuthDisabled(t *testing.T) {
	srv := newTestServer(nil, nil)
	srv.app.Config.Auth.JWTSecret = ""

	rr := serve(srv, http.MethodPost, "/api/auth/validate", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["auth_required"] != false {
		t.Errorf("expected auth_required=false, got %v", body["auth_required"])
	}
}

func TestHandleAuthValidate_ValidToken(t *testing.T) {
	srv := newTestServer(nil, nil)
	srv.app.Config.Auth.JWTSecret = "secret"
	srv.app.Config.Auth.TokenExpiry = "1h"

	token, err := SignToken("analyst", &srv.app.Config.Auth)
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/validate", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	srv.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var body map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["subject"] != "analyst" || body["auth_required"] != true {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestHandleAuthValidate_MissingToken(t *testing.T) {
	srv := newTestServer(nil, nil)
	srv.app.Config.Auth.JWTSecret = "secret"

	rr := serve(srv, http.MethodPost, "/api/auth/validate", "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestHandleAuthValidate_GarbageToken(t *testing.T) {
	srv := newTestServer(nil, nil)
	srv.app.Config.Auth.JWTSecret = "secret"

	req := httptest.NewRequest(http.MethodPost, "/api/auth/validate", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rr := httptest.NewRecorder()
	srv.mux.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestHandleAuthValidate_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(nil, nil)
	rr := serve(srv, http.MethodGet, "/api/auth/validate", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rr.Code)
	}
}
