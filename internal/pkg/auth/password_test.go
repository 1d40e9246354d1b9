package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Password1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "Password1" {
		t.Fatal("hash equals the plaintext password")
	}

	if !CheckPassword(hash, "Password1") {
		t.Error("CheckPassword rejected the correct password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword accepted a wrong password")
	}
	if CheckPassword("", "anything") {
		t.Error("CheckPassword accepted an empty hash")
	}
}
