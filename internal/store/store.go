// Package store persists pipeline runs and enriched contacts in SQLite
// so that results survive between runs and can be served over the API.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/beeleads/replysift/internal/classify"
	"github.com/beeleads/replysift/internal/enrich"
)

type Store struct {
	*sql.DB
}

// Run is one persisted pipeline run.
type Run struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	TotalMessages int       `json:"total_messages"`
	TotalContacts int       `json:"total_contacts"`
	HighQuality   int       `json:"high_quality"`
	MediumQuality int       `json:"medium_quality"`
	LowQuality    int       `json:"low_quality"`
}

// Contact is one persisted enriched contact.
type Contact struct {
	LeadScore    int      `json:"lead_score"`
	Name         string   `json:"name,omitempty"`
	PrimaryEmail string   `json:"primary_email"`
	Emails       []string `json:"emails"`
	PrimaryPhone string   `json:"primary_phone,omitempty"`
	Phones       []string `json:"phones"`
	Title        string   `json:"title,omitempty"`
	Company      string   `json:"company,omitempty"`
	Domain       string   `json:"domain,omitempty"`
	FreeEmail    bool     `json:"is_free_email"`
	ResponseType string   `json:"response_type"`
	Category     string   `json:"category"`
	Subject      string   `json:"original_subject,omitempty"`
	Date         string   `json:"date,omitempty"`
}

// Open opens the SQLite database at dbPath and initializes the schema.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// _time_format=sqlite makes the driver parse stored timestamps.
	dsn := dbPath + "?_time_format=sqlite"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	s := &Store{sqlDB}
	if _, err := s.Exec(schema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

// SaveRun persists a run with its category counts and contacts in a
// single transaction.
func (s *Store) SaveRun(runID string, totalMessages int, categories map[classify.Category][]string, contacts []enrich.Contact, highThreshold, mediumThreshold int) error {
	tx, err := s.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var high, medium, low int
	for _, c := range contacts {
		switch {
		case c.LeadScore >= highThreshold:
			high++
		case c.LeadScore >= mediumThreshold:
			medium++
		default:
			low++
		}
	}

	// Timestamps go through the driver so they round-trip with the
	// configured _time_format.
	_, err = tx.Exec(`
		INSERT INTO runs (id, created_at, total_messages, total_contacts, high_quality, medium_quality, low_quality)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, time.Now().UTC(), totalMessages, len(contacts), high, medium, low)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	catStmt, err := tx.Prepare(`
		INSERT INTO run_categories (run_id, category, message_count) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare category insert: %w", err)
	}
	defer catStmt.Close()
	for cat, files := range categories {
		if _, err := catStmt.Exec(runID, string(cat), len(files)); err != nil {
			return fmt.Errorf("failed to insert category count: %w", err)
		}
	}

	contactStmt, err := tx.Prepare(`
		INSERT INTO contacts (
			run_id, lead_score, name, primary_email, emails, primary_phone,
			phones, title, company, domain, is_free_email, response_type,
			category, original_subject, date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare contact insert: %w", err)
	}
	defer contactStmt.Close()
	for _, c := range contacts {
		_, err := contactStmt.Exec(
			runID, c.LeadScore, c.Name, c.PrimaryEmail,
			strings.Join(c.Emails, "; "), c.PrimaryPhone,
			strings.Join(c.Phones, "; "), c.Title, c.Company, c.Domain,
			c.FreeEmail, c.ResponseType, string(c.Category), c.Subject, c.Date,
		)
		if err != nil {
			return fmt.Errorf("failed to insert contact %s: %w", c.PrimaryEmail, err)
		}
	}

	return tx.Commit()
}

// LatestRun returns the most recent run, or nil if none exist.
func (s *Store) LatestRun() (*Run, error) {
	var r Run
	err := s.QueryRow(`
		SELECT id, created_at, total_messages, total_contacts,
		       high_quality, medium_quality, low_quality
		FROM runs ORDER BY created_at DESC, id DESC LIMIT 1
	`).Scan(&r.ID, &r.CreatedAt, &r.TotalMessages, &r.TotalContacts,
		&r.HighQuality, &r.MediumQuality, &r.LowQuality)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	return &r, nil
}

// ListContacts returns contacts from the latest run with a lead score of
// at least minScore, best first, capped at limit.
func (s *Store) ListContacts(minScore, limit int) ([]Contact, error) {
	latest, err := s.LatestRun()
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return []Contact{}, nil
	}

	rows, err := s.Query(`
		SELECT lead_score, name, primary_email, emails, primary_phone,
		       phones, title, company, domain, is_free_email, response_type,
		       category, original_subject, date
		FROM contacts
		WHERE run_id = ? AND lead_score >= ?
		ORDER BY lead_score DESC, primary_email ASC
		LIMIT ?
	`, latest.ID, minScore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	return scanContacts(rows)
}

// GetContact returns the contact with the given primary email from the
// latest run, or nil when not found.
func (s *Store) GetContact(email string) (*Contact, error) {
	latest, err := s.LatestRun()
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}

	rows, err := s.Query(`
		SELECT lead_score, name, primary_email, emails, primary_phone,
		       phones, title, company, domain, is_free_email, response_type,
		       category, original_subject, date
		FROM contacts
		WHERE run_id = ? AND primary_email = ?
		LIMIT 1
	`, latest.ID, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact: %w", err)
	}
	defer rows.Close()

	contacts, err := scanContacts(rows)
	if err != nil {
		return nil, err
	}
	if len(contacts) == 0 {
		return nil, nil
	}
	return &contacts[0], nil
}

// CategorySummary returns per-category message counts for the latest run.
func (s *Store) CategorySummary() (map[string]int, error) {
	latest, err := s.LatestRun()
	if err != nil {
		return nil, err
	}
	summary := make(map[string]int)
	if latest == nil {
		return summary, nil
	}

	rows, err := s.Query(`
		SELECT category, message_count FROM run_categories WHERE run_id = ?
	`, latest.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category summary: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		summary[category] = count
	}
	return summary, rows.Err()
}

func scanContacts(rows *sql.Rows) ([]Contact, error) {
	contacts := []Contact{}
	for rows.Next() {
		var c Contact
		var emails, phones string
		err := rows.Scan(&c.LeadScore, &c.Name, &c.PrimaryEmail, &emails,
			&c.PrimaryPhone, &phones, &c.Title, &c.Company, &c.Domain,
			&c.FreeEmail, &c.ResponseType, &c.Category, &c.Subject, &c.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		c.Emails = splitJoined(emails)
		c.Phones = splitJoined(phones)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func splitJoined(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "; ")
}
