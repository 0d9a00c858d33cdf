package utils

import (
	"testing"

	"taiz-marketplace-server/config"
)

func TestHashAndCheckAdminCode(t *testing.T) {
	hash, err := HashAdminCode("secret-code")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret-code" {
		t.Fatal("code stored in plaintext")
	}
	if !CheckAdminCode("secret-code", hash) {
		t.Fatal("correct code rejected")
	}
	if CheckAdminCode("wrong-code", hash) {
		t.Fatal("wrong code accepted")
	}
}

func TestAdminTokenRoundTrip(t *testing.T) {
	config.Load()

	token, err := GenerateAdminToken(42)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := VerifyAdminToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.AdminID != 42 {
		t.Fatalf("expected admin 42, got %d", claims.AdminID)
	}

	if _, err := VerifyAdminToken(token + "tampered"); err == nil {
		t.Fatal("tampered token accepted")
	}
}
