package validate_test

import (
	"testing"

	"github.com/blackgoldstudios/animax/internal/validate"
)

func TestNonEmptyString(t *testing.T) {
	if err := validate.NonEmptyString("name", "hello"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := validate.NonEmptyString("name", "   "); err == nil {
		t.Error("expected error for whitespace-only string")
	}
	if err := validate.NonEmptyString("name", ""); err == nil {
		t.Error("expected error for empty string")
	}
}

func TestMaxLength(t *testing.T) {
	if err := validate.MaxLength("name", "hello", 10); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := validate.MaxLength("name", "hello world!", 5); err == nil {
		t.Error("expected error for too-long string")
	}
}

func TestIsUUID(t *testing.T) {
	if err := validate.IsUUID("id", "550e8400-e29b-41d4-a716-446655440000"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := validate.IsUUID("id", "not-a-uuid"); err == nil {
		t.Error("expected error for invalid UUID")
	}
	if err := validate.IsUUID("id", "' OR 1=1 --"); err == nil {
		t.Error("expected error for SQL injection string")
	}
}

func TestIsEmail(t *testing.T) {
	if err := validate.IsEmail("email", "user@example.com"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := validate.IsEmail("email", "not-an-email"); err == nil {
		t.Error("expected error for non-email")
	}
	if err := validate.IsEmail("email", "<script>alert(1)</script>"); err == nil {
		t.Error("expected error for XSS payload")
	}
}

func TestIsContentID(t *testing.T) {
	valid := []string{"movie-1", "serie-3", "tmdb-movie-603", "anime_4"}
	for _, v := range valid {
		if err := validate.IsContentID("id", v); err != nil {
			t.Errorf("IsContentID rejected valid id %q: %v", v, err)
		}
	}
	invalid := []string{"", "-leading-dash", "../etc/passwd", "a b", "' OR 1=1"}
	for _, v := range invalid {
		if err := validate.IsContentID("id", v); err == nil {
			t.Errorf("IsContentID accepted invalid id %q", v)
		}
	}
}

func TestIntInRange(t *testing.T) {
	if err := validate.IntInRange("count", 5, 1, 10); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := validate.IntInRange("count", 0, 1, 10); err == nil {
		t.Error("expected error for below minimum")
	}
	if err := validate.IntInRange("count", 100, 1, 10); err == nil {
		t.Error("expected error for above maximum")
	}
}

func TestOneOf(t *testing.T) {
	if err := validate.OneOf("namespace", "liked", "liked", "my-list", "watched"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := validate.OneOf("namespace", "favorites", "liked", "my-list", "watched"); err == nil {
		t.Error("expected error for unknown namespace")
	}
}

func TestIsVerificationCode(t *testing.T) {
	if err := validate.IsVerificationCode("code", "123456"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	invalid := []string{"12345", "1234567", "abcdef", "", "12 456"}
	for _, v := range invalid {
		if err := validate.IsVerificationCode("code", v); err == nil {
			t.Errorf("IsVerificationCode accepted %q", v)
		}
	}
}

func TestMultiError(t *testing.T) {
	var me validate.MultiError
	if me.HasErrors() {
		t.Error("expected no errors initially")
	}
	me.Add(validate.NonEmptyString("name", ""))
	me.Add(validate.IsEmail("email", "bad"))
	me.Add(nil) // should be no-op
	if !me.HasErrors() {
		t.Error("expected errors after adding")
	}
	if len(me.Errors) != 2 {
		t.Errorf("expected 2 errors, got %d", len(me.Errors))
	}
}
