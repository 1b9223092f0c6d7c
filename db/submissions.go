// ABOUTME: Submission log database operations
// ABOUTME: Audit rows for successful CRM profile upserts, ULID-keyed
package db

import (
	"database/sql"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/prismfoil/intake/models"
)

func newSubmissionID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// RecordSubmission writes the local audit row after a successful CRM
// upsert. The CRM copy is authoritative; this row only answers "when did
// who submit through which flow".
func RecordSubmission(db *sql.DB, email, variant string) (*models.Submission, error) {
	sub := &models.Submission{
		ID:        newSubmissionID(),
		Email:     email,
		Variant:   variant,
		CreatedAt: time.Now(),
	}

	_, err := db.Exec(`
		INSERT INTO submissions (id, email, variant, created_at)
		VALUES (?, ?, ?, ?)
	`, sub.ID, sub.Email, sub.Variant, sub.CreatedAt)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// ListSubmissions returns the most recent audit rows, newest first.
func ListSubmissions(db *sql.DB, limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT id, email, variant, created_at
		FROM submissions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.Variant, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
