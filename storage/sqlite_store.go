package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"sheetsite/catalog"
	"sheetsite/loader"
)

// SQLiteStore keeps offline snapshots of loaded catalog pages. Page
// requests never read from it.
type SQLiteStore struct {
	db *sql.DB
}

type PageSummary struct {
	Key        string
	Title      string
	ItemCount  int
	LoadError  string
	CapturedAt time.Time
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	statements := []string{`
CREATE TABLE IF NOT EXISTS pages (
	page_key TEXT PRIMARY KEY,
	service_type TEXT NOT NULL DEFAULT '',
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	contact_cta TEXT NOT NULL,
	show_prices INTEGER NOT NULL CHECK(show_prices IN (0, 1)),
	load_error TEXT NOT NULL DEFAULT '',
	captured_at TEXT NOT NULL
);`, `
CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	page_key TEXT NOT NULL REFERENCES pages(page_key) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	image_url TEXT NOT NULL,
	fields_json TEXT NOT NULL,
	UNIQUE(page_key, position)
);`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// SaveSnapshot replaces the stored snapshot of one page and returns the
// number of items written. A page that failed to load (data.Error set) keeps
// its previous items and category; only the load error is recorded.
func (s *SQLiteStore) SaveSnapshot(pageKey string, data loader.PageData, capturedAt time.Time) (int, error) {
	pageKey = strings.TrimSpace(pageKey)
	if pageKey == "" {
		return 0, fmt.Errorf("page key is required")
	}
	if data.Error != "" {
		return 0, s.recordLoadError(pageKey, data, capturedAt)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM items WHERE page_key = ?;`, pageKey); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("delete previous items: %w", err)
	}

	const upsertPage = `
INSERT INTO pages (page_key, service_type, title, description, contact_cta, show_prices, load_error, captured_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(page_key) DO UPDATE SET
	service_type = excluded.service_type,
	title = excluded.title,
	description = excluded.description,
	contact_cta = excluded.contact_cta,
	show_prices = excluded.show_prices,
	load_error = excluded.load_error,
	captured_at = excluded.captured_at;`

	info := data.CategoryInfo
	if _, err := tx.Exec(
		upsertPage,
		pageKey,
		info.ServiceType,
		info.Title,
		info.Description,
		info.ContactCTA,
		boolToInt(info.ShowPrices),
		data.Error,
		capturedAt.UTC().Format(time.RFC3339),
	); err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("upsert page: %w", err)
	}

	stmt, err := tx.Prepare(`
INSERT INTO items (page_key, position, name, description, image_url, fields_json)
VALUES (?, ?, ?, ?, ?, ?);`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for i, item := range data.Items {
		fields, err := json.Marshal(item)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("encode item %d: %w", i, err)
		}
		if _, err := stmt.Exec(pageKey, i, item.Name(), item.Description(), item.ImageURL(), string(fields)); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return len(data.Items), nil
}

// recordLoadError marks the stored page as failed without touching its
// items or captured_at. A page without a snapshot gets a row with the
// fallback category and no items.
func (s *SQLiteStore) recordLoadError(pageKey string, data loader.PageData, capturedAt time.Time) error {
	result, err := s.db.Exec(`UPDATE pages SET load_error = ? WHERE page_key = ?;`, data.Error, pageKey)
	if err != nil {
		return fmt.Errorf("record load error: %w", err)
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("record load error: %w", err)
	}
	if updated > 0 {
		return nil
	}

	info := data.CategoryInfo
	if _, err := s.db.Exec(`
INSERT INTO pages (page_key, service_type, title, description, contact_cta, show_prices, load_error, captured_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		pageKey,
		info.ServiceType,
		info.Title,
		info.Description,
		info.ContactCTA,
		boolToInt(info.ShowPrices),
		data.Error,
		capturedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("insert failed page: %w", err)
	}
	return nil
}

// ListItems returns the stored items of one page in their original order.
func (s *SQLiteStore) ListItems(pageKey string) ([]catalog.Item, error) {
	rows, err := s.db.Query(`SELECT fields_json FROM items WHERE page_key = ? ORDER BY position;`, pageKey)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := make([]catalog.Item, 0, 64)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item := catalog.Item{}
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, fmt.Errorf("decode item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// GetCategory returns the stored category info of one page.
func (s *SQLiteStore) GetCategory(pageKey string) (catalog.CategoryInfo, bool, error) {
	var (
		info       catalog.CategoryInfo
		showPrices int
	)
	err := s.db.QueryRow(`
SELECT service_type, title, description, contact_cta, show_prices
FROM pages WHERE page_key = ?;`, pageKey).Scan(
		&info.ServiceType,
		&info.Title,
		&info.Description,
		&info.ContactCTA,
		&showPrices,
	)
	if err == sql.ErrNoRows {
		return catalog.CategoryInfo{}, false, nil
	}
	if err != nil {
		return catalog.CategoryInfo{}, false, fmt.Errorf("query page %s: %w", pageKey, err)
	}
	info.ShowPrices = showPrices == 1
	return info, true, nil
}

func (s *SQLiteStore) ListPages() ([]PageSummary, error) {
	const query = `
SELECT p.page_key, p.title, p.load_error, p.captured_at, COUNT(i.id)
FROM pages p
LEFT JOIN items i ON i.page_key = p.page_key
GROUP BY p.page_key
ORDER BY p.page_key;`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer rows.Close()

	pages := make([]PageSummary, 0, 16)
	for rows.Next() {
		var (
			summary     PageSummary
			capturedRaw string
		)
		if err := rows.Scan(&summary.Key, &summary.Title, &summary.LoadError, &capturedRaw, &summary.ItemCount); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		summary.CapturedAt, err = time.Parse(time.RFC3339, capturedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse captured_at %q: %w", capturedRaw, err)
		}
		pages = append(pages, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w", err)
	}
	return pages, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
