package utils

import "testing"

func TestHashPasswordSalts(t *testing.T) {
	h1, err := HashPassword("p@ss1", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := HashPassword("p@ss1", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password should differ (salting)")
	}
	if !VerifyPassword(h1, "p@ss1") || !VerifyPassword(h2, "p@ss1") {
		t.Error("both hashes should verify against the original password")
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	tests := []struct {
		name  string
		hash  string
		plain string
		want  bool
	}{
		{"match", hash, "correct-horse", true},
		{"mismatch", hash, "battery-staple", false},
		{"empty password", hash, "", false},
		{"malformed hash", "not-a-bcrypt-digest", "correct-horse", false},
		{"empty hash", "", "correct-horse", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := VerifyPassword(tc.hash, tc.plain); got != tc.want {
				t.Errorf("VerifyPassword(%q, %q) = %v, want %v", tc.hash, tc.plain, got, tc.want)
			}
		})
	}
}
