// attack_test.go — adversarial input tests.
// Every validator that accepts free-form text is exercised against classic
// attack payloads. All must return a ValidationError — never panic, never pass.
package validate_test

import (
	"strings"
	"testing"

	"github.com/blackgoldstudios/animax/internal/validate"
)

// attackPayloads is a shared list of known-bad strings used across validators
// that accept free-form text.
var attackPayloads = []struct {
	name  string
	value string
}{
	{"sql_injection_classic", "' OR 1=1 --"},
	{"sql_injection_union", "1 UNION SELECT email,password_hash FROM users--"},
	{"sql_injection_stacked", "1; DROP TABLE users;--"},
	{"xss_script", "<script>alert(1)</script>"},
	{"xss_event", `" onmouseover="alert(1)`},
	{"xss_img", "<img src=x onerror=alert(1)>"},
	{"path_traversal_unix", "../../../etc/passwd"},
	{"path_traversal_win", `..\..\..\\windows\\system32`},
	{"path_traversal_encoded", "..%2F..%2Fetc%2Fpasswd"},
	{"null_byte_middle", "hello\x00world"},
	{"null_byte_start", "\x00admin"},
	{"null_byte_end", "admin\x00"},
	{"long_string", strings.Repeat("A", 10001)},
	{"unicode_rtl", "‮ evil text"},
	{"format_string", "%s%s%s%s%s%s%s"},
}

// TestUUIDAgainstAttacks verifies IsUUID rejects all attack payloads.
func TestUUIDAgainstAttacks(t *testing.T) {
	for _, tc := range attackPayloads {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.IsUUID("id", tc.value)
			if err == nil {
				t.Errorf("IsUUID accepted attack payload %q", tc.value[:min(len(tc.value), 50)])
			}
		})
	}
}

// TestEmailAgainstAttacks verifies IsEmail rejects all attack payloads.
func TestEmailAgainstAttacks(t *testing.T) {
	for _, tc := range attackPayloads {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.IsEmail("email", tc.value)
			if err == nil {
				t.Errorf("IsEmail accepted attack payload %q", tc.value[:min(len(tc.value), 50)])
			}
		})
	}
}

// TestContentIDAgainstAttacks verifies IsContentID rejects all attack payloads.
func TestContentIDAgainstAttacks(t *testing.T) {
	for _, tc := range attackPayloads {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.IsContentID("id", tc.value)
			if err == nil {
				t.Errorf("IsContentID accepted attack payload %q", tc.value[:min(len(tc.value), 50)])
			}
		})
	}
}

// TestVerificationCodeAgainstAttacks verifies IsVerificationCode rejects all
// attack payloads.
func TestVerificationCodeAgainstAttacks(t *testing.T) {
	for _, tc := range attackPayloads {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.IsVerificationCode("code", tc.value)
			if err == nil {
				t.Errorf("IsVerificationCode accepted attack payload %q", tc.value[:min(len(tc.value), 50)])
			}
		})
	}
}

// TestMaxLengthLargeInputs verifies MaxLength handles 10k+ char strings without panicking.
func TestMaxLengthLargeInputs(t *testing.T) {
	huge := strings.Repeat("x", 10000)
	err := validate.MaxLength("field", huge, 100)
	if err == nil {
		t.Error("MaxLength should reject 10k-char string with max=100")
	}

	// Verify it does not panic on even larger inputs.
	enormous := strings.Repeat("A", 100000)
	_ = validate.MaxLength("field", enormous, 200)
}

// TestNoNilPanic verifies no validator panics on empty or zero-value inputs.
func TestNoNilPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("validator panicked: %v", r)
		}
	}()

	_ = validate.NonEmptyString("f", "")
	_ = validate.MinLength("f", "", 1)
	_ = validate.MaxLength("f", "", 10)
	_ = validate.IsUUID("f", "")
	_ = validate.IsEmail("f", "")
	_ = validate.IsContentID("f", "")
	_ = validate.IntInRange("f", 0, 1, 10)
	_ = validate.OneOf("f", "")
	_ = validate.IsVerificationCode("f", "")
}

// min returns the smaller of a and b (Go 1.21+ has builtin; keep local for compat).
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
