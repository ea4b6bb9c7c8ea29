package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	"powerpages/internal/application"
	"powerpages/internal/domain"
	"powerpages/internal/ports"
)

const schemaVersion = "1"

// Store implements ports.PageRepository using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// Ensure Store implements PageRepository
var _ ports.PageRepository = (*Store)(nil)

// Open opens (and creates if needed) the page database at dbPath
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas + schema in single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS pages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL UNIQUE,
			alias TEXT UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			keywords TEXT NOT NULL DEFAULT '',
			template TEXT NOT NULL DEFAULT '',
			page_processor TEXT NOT NULL DEFAULT '',
			page_processor_config TEXT NOT NULL DEFAULT '',
			locally_edited INTEGER NOT NULL DEFAULT 0,
			added_at INTEGER NOT NULL,
			changed_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_pages_locally_edited ON pages(locally_edited);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Store{db: db, dbPath: dbPath, now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

const pageColumns = `id, url, alias, title, description, keywords, template,
	page_processor, page_processor_config, locally_edited, added_at, changed_at`

// GetByURL retrieves a page by URL
func (s *Store) GetByURL(ctx context.Context, url string) (*domain.Page, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE url = ?`, url)
	return scanOne(row)
}

// GetByAlias retrieves a page by alias
func (s *Store) GetByAlias(ctx context.Context, alias string) (*domain.Page, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE alias = ?`, alias)
	return scanOne(row)
}

// ListSubtree returns pages whose URL starts with prefix, ordered by URL
func (s *Store) ListSubtree(ctx context.Context, prefix string) ([]*domain.Page, error) {
	// substr instead of LIKE: URLs routinely contain '_'
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+pageColumns+`
		FROM pages
		WHERE substr(url, 1, length(?1)) = ?1
		ORDER BY url
	`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*domain.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

// Save inserts or updates a page by URL
func (s *Store) Save(ctx context.Context, page *domain.Page) error {
	config, err := domain.EncodeConfig(page.PageProcessorConfig)
	if err != nil {
		return err
	}
	now := s.now()

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO pages (url, alias, title, description, keywords, template,
				page_processor, page_processor_config, locally_edited, added_at, changed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(url) DO UPDATE SET
				alias = excluded.alias,
				title = excluded.title,
				description = excluded.description,
				keywords = excluded.keywords,
				template = excluded.template,
				page_processor = excluded.page_processor,
				page_processor_config = excluded.page_processor_config,
				locally_edited = excluded.locally_edited,
				changed_at = excluded.changed_at
		`, page.URL, page.Alias, page.Title, page.Description, page.Keywords, page.Template,
			page.PageProcessor, config, page.LocallyEdited, now.UnixNano(), now.UnixNano())
		if err != nil {
			return translateError(err, page)
		}

		var addedAt int64
		err = tx.QueryRowContext(ctx, `SELECT id, added_at FROM pages WHERE url = ?`, page.URL).
			Scan(&page.ID, &addedAt)
		if err != nil {
			return err
		}
		page.AddedAt = time.Unix(0, addedAt)
		page.ChangedAt = time.Unix(0, now.UnixNano())
		return nil
	})
}

// Delete removes a page by URL
func (s *Store) Delete(ctx context.Context, url string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE url = ?`, url)
	if err != nil {
		return err
	}
	return requireAffected(res, url)
}

// SetLocallyEdited sets the locally edited flag without touching changed_at
func (s *Store) SetLocallyEdited(ctx context.Context, url string, edited bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE pages SET locally_edited = ? WHERE url = ?`, edited, url)
	if err != nil {
		return err
	}
	return requireAffected(res, url)
}

func requireAffected(res sql.Result, url string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("page %s: %w", url, application.ErrNotFound)
	}
	return nil
}

// translateError maps constraint violations to application errors
func translateError(err error, page *domain.Page) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %s", application.ErrAliasTaken, page.AliasString())
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row *sql.Row) (*domain.Page, error) {
	page, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return page, nil
}

func scanPage(row scanner) (*domain.Page, error) {
	var (
		page             domain.Page
		alias            sql.NullString
		config           string
		addedAt, changed int64
	)
	err := row.Scan(&page.ID, &page.URL, &alias, &page.Title, &page.Description, &page.Keywords,
		&page.Template, &page.PageProcessor, &config, &page.LocallyEdited, &addedAt, &changed)
	if err != nil {
		return nil, err
	}

	if alias.Valid {
		page.Alias = &alias.String
	}
	if page.PageProcessorConfig, err = domain.DecodeConfig(config); err != nil {
		return nil, fmt.Errorf("page %s: %w", page.URL, err)
	}
	page.AddedAt = time.Unix(0, addedAt)
	page.ChangedAt = time.Unix(0, changed)
	return &page, nil
}
