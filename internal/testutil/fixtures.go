// fixtures.go — test data seed helpers for the Animax schema.
package testutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// User is a minimal seeded test viewer.
type User struct {
	ID    string
	Email string
	Name  string
}

// SeedUser inserts a verified test viewer on the basic plan and returns it.
// The password hash is a throwaway; tests that need a real password should
// register through the account handlers instead.
func SeedUser(t *testing.T, db *sql.DB) *User {
	t.Helper()
	u := &User{
		ID:    uuid.NewString(),
		Email: fmt.Sprintf("test-%d@example.com", time.Now().UnixNano()),
		Name:  "Test Viewer",
	}
	_, err := db.Exec(`
		INSERT INTO users (id, email, password_hash, name, plan, email_verified)
		VALUES ($1, $2, '$2a$12$fakehashfortest', $3, 'basic', TRUE)
	`, u.ID, u.Email, u.Name)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	t.Cleanup(func() { CleanupUser(db, u.ID) })
	return u
}

// SeedMessage inserts a chat message for the given viewer and returns its ID.
func SeedMessage(t *testing.T, db *sql.DB, userID, userName, body string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO messages (id, user_id, user_name, body)
		VALUES ($1, $2, $3, $4)
	`, id, userID, userName, body)
	if err != nil {
		t.Fatalf("seed message: %v", err)
	}
	return id
}

// CleanupUser removes a test viewer; dependent rows cascade.
func CleanupUser(db *sql.DB, userID string) {
	_, _ = db.Exec(`DELETE FROM users WHERE id = $1`, userID)
}
