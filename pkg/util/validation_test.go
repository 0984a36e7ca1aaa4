package util

import (
	"strings"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Alice@Example.COM", "alice@example.com"},
		{"  bob@x.com  ", "bob@x.com"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "first.last+tag@sub.example.com", "x_1%2@host-name.org"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) = %v", email, err)
		}
	}

	invalid := []string{
		"",
		"no-at-sign",
		"@missing-local.com",
		"missing-domain@",
		"two@@signs.com",
		"bad@tld.x",
		"a@" + strings.Repeat("x", MaxEmailLength) + ".com",
	}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) accepted", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("pw123456"); err != nil {
		t.Errorf("ValidatePassword: %v", err)
	}
	for _, pw := range []string{"", "short"} {
		if err := ValidatePassword(pw); err == nil {
			t.Errorf("ValidatePassword(%q) accepted", pw)
		}
	}
}

func TestValidateName(t *testing.T) {
	name, err := ValidateName("  Alice  ")
	if err != nil || name != "Alice" {
		t.Errorf("ValidateName = %q, %v", name, err)
	}

	// Empty names are allowed; trimming happens first.
	if name, err := ValidateName("   "); err != nil || name != "" {
		t.Errorf("blank name: %q, %v", name, err)
	}

	if _, err := ValidateName(strings.Repeat("x", MaxNameLength+1)); err == nil {
		t.Error("overlong name accepted")
	}
}
