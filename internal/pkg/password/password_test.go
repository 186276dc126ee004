package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct-horse-battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct-horse-battery" {
		t.Fatal("hash must not equal plaintext")
	}

	if !Verify("correct-horse-battery", hash) {
		t.Error("expected matching password to verify")
	}
	if Verify("wrong-password", hash) {
		t.Error("expected mismatched password to fail")
	}
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"short", false},
		{"1234567", false},
		{"12345678", true},
		{"a-much-longer-password", true},
	}
	for _, tc := range cases {
		if got := ValidatePassword(tc.password); got != tc.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}
