package util

import (
	"testing"
	"time"

	"guidesphere_backend/internal/model"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "test-secret-material-for-round-trip"
	user := &model.UserAccount{Name: "Ana", Email: "ana@example.com", Role: model.Professor}
	user.ID = model.GenerateUUID()

	token, err := GenerateJWT(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("user id = %q, want %q", claims.UserID, user.ID)
	}
	if claims.Role != model.Professor {
		t.Errorf("role = %q, want professor", claims.Role)
	}
	if claims.Email != user.Email {
		t.Errorf("email = %q, want %q", claims.Email, user.Email)
	}
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	user := &model.UserAccount{Email: "ana@example.com", Role: model.Student}
	user.ID = model.GenerateUUID()

	token, err := GenerateJWT(user, "secret-one", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "secret-two"); err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}

func TestParseJWTRejectsExpired(t *testing.T) {
	user := &model.UserAccount{Email: "ana@example.com", Role: model.Student}
	user.ID = model.GenerateUUID()

	token, err := GenerateJWT(user, "secret-one", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if _, err := ParseJWT(token, "secret-one"); err == nil {
		t.Fatal("expired token verified")
	}
}
