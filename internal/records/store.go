package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const recordColumns = `id, title, author, resource_url, owner_id, visibility, created_at, updated_at`

// eligibleFilter selects records awaiting reconciliation: no resource link
// yet. Already-linked records are excluded, which is what makes repeated
// batches with an advanced offset resumable.
const eligibleFilter = `resource_url IS NULL OR resource_url = ''`

// Store manages book record persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the record database and applies migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Insert adds a record and returns it with its assigned identifier.
func (s *Store) Insert(ctx context.Context, record *Record) (*Record, error) {
	if record == nil {
		return nil, errors.New("record is nil")
	}
	if record.Title == "" {
		return nil, errors.New("record title is required")
	}

	now := time.Now().UTC()
	ownerID := record.OwnerID
	if ownerID == 0 {
		ownerID = 1
	}
	visibility := record.Visibility
	if visibility == "" {
		visibility = "private"
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO books (title, author, resource_url, owner_id, visibility, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Title,
		nullableString(record.Author),
		nullableString(record.ResourceURL),
		ownerID,
		visibility,
		now.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a record by identifier. Returns ErrNotFound when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM books WHERE id = ?`, id)
	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return record, nil
}

// CountEligible returns the number of records lacking a resource link.
func (s *Store) CountEligible(ctx context.Context) (int64, error) {
	var count int64
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM books WHERE `+eligibleFilter)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count eligible: %w", err)
	}
	return count, nil
}

// PageEligible returns one page of eligible records ordered by title (id as
// tiebreak), so repeated invocations with an advancing offset walk the
// eligible set deterministically.
func (s *Store) PageEligible(ctx context.Context, offset, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+recordColumns+` FROM books WHERE `+eligibleFilter+` ORDER BY title, id LIMIT ? OFFSET ?`,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("page eligible: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// ListEligible returns the entire eligible set ordered by title, for plan
// emission, which operates over all unmatched records at once.
func (s *Store) ListEligible(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+recordColumns+` FROM books WHERE `+eligibleFilter+` ORDER BY title, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list eligible: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// SetResourceLink writes the resource link and an explicit modification
// timestamp on one record. The timestamp is explicit because bulk paths
// bypass the application layer that normally maintains it.
func (s *Store) SetResourceLink(ctx context.Context, id int64, url string, at time.Time) error {
	if url == "" {
		return errors.New("resource url is required")
	}
	res, err := s.db.ExecContext(
		ctx,
		`UPDATE books SET resource_url = ?, updated_at = ? WHERE id = ?`,
		url,
		at.UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("set resource link: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns up to limit records ordered by title, linked or not. A
// non-positive limit returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT ` + recordColumns + ` FROM books ORDER BY title, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

// Stats summarizes the store for operator commands.
type Stats struct {
	Total    int64
	Eligible int64
	Linked   int64
}

// Stats returns record counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM books`)
	if err := row.Scan(&stats.Total); err != nil {
		return Stats{}, fmt.Errorf("count records: %w", err)
	}
	eligible, err := s.CountEligible(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats.Eligible = eligible
	stats.Linked = stats.Total - stats.Eligible
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var record Record
	var author sql.NullString
	var resourceURL sql.NullString
	var createdAt string
	var updatedAt string

	if err := row.Scan(
		&record.ID,
		&record.Title,
		&author,
		&resourceURL,
		&record.OwnerID,
		&record.Visibility,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	if author.Valid {
		record.Author = &author.String
	}
	if resourceURL.Valid {
		record.ResourceURL = &resourceURL.String
	}
	record.CreatedAt = parseTimestamp(createdAt)
	record.UpdatedAt = parseTimestamp(updatedAt)
	return &record, nil
}

func collectRecords(rows *sql.Rows) ([]Record, error) {
	var result []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		result = append(result, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return result, nil
}

func parseTimestamp(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func nullableString(value *string) any {
	if value == nil || *value == "" {
		return nil
	}
	return *value
}
