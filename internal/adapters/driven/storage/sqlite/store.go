package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/verity-labs/claimlens-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/verity-labs/claimlens-cli/internal/core/domain"
	"github.com/verity-labs/claimlens-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// the metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.claimlens/data/claimlens.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".claimlens", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "claimlens.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// AuditLog returns an AuditLog interface backed by this store.
func (s *Store) AuditLog() driven.AuditLog {
	return &auditLog{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// CreateDocument inserts a new document row. The unique index on
// (company_id, content_hash) makes the conflict check atomic.
func (s *documentStore) CreateDocument(ctx context.Context, doc *domain.Document) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, company_id, version_label, content_hash, source_uri, status, page_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.CompanyID, doc.VersionLabel, doc.ContentHash, doc.SourceURI,
		string(doc.Status), doc.PageCount, doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("document for company %s with hash %s: %w",
				doc.CompanyID, doc.ContentHash, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("creating document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, company_id, version_label, content_hash, source_uri, status, page_count, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	return scanDocument(row)
}

// FindByContentHash looks up the document for a (company, hash) pair.
func (s *documentStore) FindByContentHash(ctx context.Context, companyID, contentHash string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, company_id, version_label, content_hash, source_uri, status, page_count, created_at, updated_at
		FROM documents WHERE company_id = ? AND content_hash = ?
	`, companyID, contentHash)

	return scanDocument(row)
}

// UpdateStatus transitions a document's lifecycle state. The read and
// write share a transaction so a concurrent transition cannot slip in
// between the check and the update.
// UpdatePageCount records the number of pages extracted from the
// document's content.
func (s *documentStore) UpdatePageCount(ctx context.Context, id string, pageCount int) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE documents SET page_count = ?, updated_at = ? WHERE id = ?
	`, pageCount, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating page count: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking page count update: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *documentStore) UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("status %q: %w", status, domain.ErrInvalidInput)
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var current string
	row := tx.QueryRowContext(ctx, "SELECT status FROM documents WHERE id = ?", id)
	if err := row.Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("reading document status: %w", err)
	}

	if !domain.DocumentStatus(current).CanTransition(status) {
		return fmt.Errorf("status %s to %s: %w", current, status, domain.ErrInvalidTransition)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE documents SET status = ?, updated_at = ? WHERE id = ?
	`, string(status), time.Now().UTC(), id); err != nil {
		return fmt.Errorf("updating document status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListDocuments returns all documents for a company, newest first.
func (s *documentStore) ListDocuments(ctx context.Context, companyID string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, company_id, version_label, content_hash, source_uri, status, page_count, created_at, updated_at
		FROM documents WHERE company_id = ?
		ORDER BY created_at DESC, id DESC
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// LatestCompleted returns the most recently created completed document
// for a company.
func (s *documentStore) LatestCompleted(ctx context.Context, companyID string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, company_id, version_label, content_hash, source_uri, status, page_count, created_at, updated_at
		FROM documents WHERE company_id = ? AND status = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, companyID, string(domain.StatusCompleted))

	return scanDocument(row)
}

// ReplaceChunks atomically replaces the whole chunk set for a document.
func (s *documentStore) ReplaceChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks WHERE document_id = ?", documentID); err != nil {
		return fmt.Errorf("deleting existing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, document_id, chunk_index, page_number, section_title, content, content_raw, embedding, token_count, bbox)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		bboxJSON, err := marshalBBox(chunk.BBox)
		if err != nil {
			return err
		}

		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, documentID, chunk.Index,
			chunk.PageNumber, chunk.SectionTitle, chunk.Text, chunk.TextRaw,
			embeddingBlob, chunk.TokenCount, bboxJSON); err != nil {
			return fmt.Errorf("saving chunk %d: %w", chunk.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetChunks retrieves a document's chunks ordered by chunk index.
func (s *documentStore) GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, chunk_index, page_number, section_title, content, content_raw, embedding, token_count, bbox
		FROM chunks WHERE document_id = ?
		ORDER BY chunk_index
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	return scanChunks(rows)
}

// GetChunksByIDs retrieves specific chunks by ID. Missing IDs are
// skipped. Results come back in chunk order, not argument order.
func (s *documentStore) GetChunksByIDs(ctx context.Context, ids []string) ([]domain.Chunk, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, document_id, chunk_index, page_number, section_title, content, content_raw, embedding, token_count, bbox
		FROM chunks WHERE id IN (`+placeholders+`)
		ORDER BY document_id, chunk_index
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	return scanChunks(rows)
}

// DeleteDocument removes a document and, via cascade, its chunks.
func (s *documentStore) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	return nil
}

// ==================== Audit Log ====================

// auditLog implements driven.AuditLog.
type auditLog struct {
	store *Store
}

var _ driven.AuditLog = (*auditLog)(nil)

// Record appends a completed verification result.
func (a *auditLog) Record(ctx context.Context, result domain.VerificationResult) error {
	citationsJSON, err := json.Marshal(result.Citations)
	if err != nil {
		return fmt.Errorf("marshalling citations: %w", err)
	}

	verifiedAt := result.VerifiedAt
	if verifiedAt.IsZero() {
		verifiedAt = time.Now().UTC()
	}

	_, err = a.store.db.ExecContext(ctx, `
		INSERT INTO verification_logs (id, claim_text, claim_category, verdict, confidence, citations, explanation, error, verified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), result.Claim.Text, result.Claim.Category,
		string(result.Verdict), result.Confidence, string(citationsJSON),
		result.Explanation, result.Error, verifiedAt)

	if err != nil {
		return fmt.Errorf("recording verification: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// isUniqueViolation reports whether the error is a SQLite unique
// constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// marshalBBox serialises an optional bounding box to JSON text.
func marshalBBox(bbox *domain.BoundingBox) (sql.NullString, error) {
	if bbox == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(bbox)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshalling bounding box: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	var doc domain.Document
	var status string

	if err := row.Scan(&doc.ID, &doc.CompanyID, &doc.VersionLabel, &doc.ContentHash,
		&doc.SourceURI, &status, &doc.PageCount, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Status = domain.DocumentStatus(status)
	return &doc, nil
}

// scanDocumentRows scans a document from a multi-row result set.
func scanDocumentRows(rows *sql.Rows) (*domain.Document, error) {
	var doc domain.Document
	var status string

	if err := rows.Scan(&doc.ID, &doc.CompanyID, &doc.VersionLabel, &doc.ContentHash,
		&doc.SourceURI, &status, &doc.PageCount, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Status = domain.DocumentStatus(status)
	return &doc, nil
}

// scanChunks drains a chunk result set.
func scanChunks(rows *sql.Rows) ([]domain.Chunk, error) {
	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var embedding []byte
		var bboxJSON sql.NullString

		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Index,
			&chunk.PageNumber, &chunk.SectionTitle, &chunk.Text, &chunk.TextRaw,
			&embedding, &chunk.TokenCount, &bboxJSON); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		chunk.Embedding = bytesToFloat32Slice(embedding)
		if bboxJSON.Valid {
			var bbox domain.BoundingBox
			if err := json.Unmarshal([]byte(bboxJSON.String), &bbox); err != nil {
				return nil, fmt.Errorf("unmarshaling bounding box: %w", err)
			}
			chunk.BBox = &bbox
		}

		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}
