package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidReferenceNumber(t *testing.T) {
	valid := []string{"PRJ-2024-0113", "A1", "CON-7"}
	invalid := []string{"prj-2024", "PRJ_2024", "-PRJ", "PRJ-", "", "PRJ--1"}
	for _, ref := range valid {
		if !IsValidReferenceNumber(ref) {
			t.Errorf("IsValidReferenceNumber(%q) = false, want true", ref)
		}
	}
	for _, ref := range invalid {
		if IsValidReferenceNumber(ref) {
			t.Errorf("IsValidReferenceNumber(%q) = true, want false", ref)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"pending", "accepted", "completed"}
	if !IsInSlice("accepted", slice) {
		t.Error("IsInSlice(accepted) = false, want true")
	}
	if IsInSlice("revoked", slice) {
		t.Error("IsInSlice(revoked) = true, want false")
	}
}
