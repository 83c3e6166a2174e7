package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mindwell-labs/sanara/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
)

// Store is the SQLite-backed content storage. It owns the database
// handle; port interfaces are served through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.sanara/data/content.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sanara", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "content.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// ContentStore returns a ContentStore interface backed by this store.
func (s *Store) ContentStore() driven.ContentStore {
	return &contentStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

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

// ==================== Content Store ====================

// contentStore implements driven.ContentStore.
type contentStore struct {
	store *Store
}

var _ driven.ContentStore = (*contentStore)(nil)

// Save stores or updates a content item. Writes come from the content
// loader, never from the search core.
func (s *contentStore) Save(ctx context.Context, item *domain.ContentItem) error {
	cultural, err := json.Marshal(item.CulturalTags)
	if err != nil {
		return fmt.Errorf("marshalling cultural tags: %w", err)
	}
	themes, err := json.Marshal(item.TherapeuticThemes)
	if err != nil {
		return fmt.Errorf("marshalling therapeutic themes: %w", err)
	}
	issues, err := json.Marshal(item.TargetIssues)
	if err != nil {
		return fmt.Errorf("marshalling target issues: %w", err)
	}

	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO content (id, type, title, body, cultural_tags, therapeutic_themes, target_issues,
			source, author, period, embedding, validated, bias_score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type = excluded.type,
			title = excluded.title,
			body = excluded.body,
			cultural_tags = excluded.cultural_tags,
			therapeutic_themes = excluded.therapeutic_themes,
			target_issues = excluded.target_issues,
			source = excluded.source,
			author = excluded.author,
			period = excluded.period,
			embedding = excluded.embedding,
			validated = excluded.validated,
			bias_score = excluded.bias_score,
			updated_at = excluded.updated_at
	`, item.ID, string(item.Type), item.Title, item.Body,
		string(cultural), string(themes), string(issues),
		item.Source, item.Author, item.Period,
		float32SliceToBytes(item.Embedding), item.Validated, item.BiasScore,
		item.CreatedAt, item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving content item: %w", err)
	}
	return nil
}

// Delete removes a content item.
func (s *contentStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM content WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting content item: %w", err)
	}
	return nil
}

// Get retrieves a content item by ID.
func (s *contentStore) Get(ctx context.Context, id string) (*domain.ContentItem, error) {
	row := s.store.db.QueryRowContext(ctx, selectContent+" WHERE id = ?", id)
	item, err := scanContentRow(row)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// FindByTags returns items whose tag columns intersect the given tags,
// items matching more tags first. Tag columns hold JSON arrays, so the
// match is a LIKE over the quoted tag.
func (s *contentStore) FindByTags(ctx context.Context, tags []string, limit int) ([]domain.ContentItem, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	var score strings.Builder
	args := make([]any, 0, len(tags)*3+1)
	for i, tag := range tags {
		if i > 0 {
			score.WriteString(" + ")
		}
		pattern := `%"` + strings.ToLower(tag) + `"%`
		score.WriteString("(CASE WHEN lower(cultural_tags) LIKE ? OR lower(therapeutic_themes) LIKE ? OR lower(target_issues) LIKE ? THEN 1 ELSE 0 END)")
		args = append(args, pattern, pattern, pattern)
	}

	query := selectContentColumns + ", (" + score.String() + ") AS tag_matches" +
		" FROM content WHERE tag_matches > 0 ORDER BY tag_matches DESC, id LIMIT ?"
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying by tags: %w", err)
	}
	defer rows.Close()

	return scanContentItems(rows, true)
}

// FindByFullText returns items whose title or body contain query
// tokens, items with more token hits first.
func (s *contentStore) FindByFullText(ctx context.Context, query string, limit int) ([]domain.ContentItem, error) {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return nil, nil
	}

	var score strings.Builder
	args := make([]any, 0, len(tokens)+1)
	for i, tok := range tokens {
		if i > 0 {
			score.WriteString(" + ")
		}
		score.WriteString("(CASE WHEN lower(title || ' ' || body) LIKE ? THEN 1 ELSE 0 END)")
		args = append(args, "%"+tok+"%")
	}

	sqlQuery := selectContentColumns + ", (" + score.String() + ") AS text_hits" +
		" FROM content WHERE text_hits > 0 ORDER BY text_hits DESC, id LIMIT ?"
	args = append(args, limit)

	rows, err := s.store.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("querying by full text: %w", err)
	}
	defer rows.Close()

	return scanContentItems(rows, true)
}

// FindByEmbedding scans stored embeddings and returns cosine matches
// meeting the threshold, most similar first. The scan happens in Go;
// the table only stores the vectors.
func (s *contentStore) FindByEmbedding(ctx context.Context, vector []float32, threshold float64, limit int) ([]driven.EmbeddingHit, error) {
	rows, err := s.store.db.QueryContext(ctx, selectContent+" WHERE embedding IS NOT NULL AND length(embedding) > 0")
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	items, err := scanContentItems(rows, false)
	if err != nil {
		return nil, err
	}

	var hits []driven.EmbeddingHit
	for _, item := range items {
		sim := cosineSimilarity(vector, item.Embedding)
		if sim >= threshold {
			hits = append(hits, driven.EmbeddingHit{Item: item, Similarity: sim})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].Item.ID < hits[j].Item.ID
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// selectContent is the shared column list for content queries.
const selectContentColumns = `
	SELECT id, type, title, body, cultural_tags, therapeutic_themes, target_issues,
		source, author, period, embedding, validated, bias_score, created_at, updated_at`

const selectContent = selectContentColumns + `
	FROM content`

// scanContentRow scans a single-row query result.
func scanContentRow(row *sql.Row) (*domain.ContentItem, error) {
	var item domain.ContentItem
	var typ, cultural, themes, issues string
	var embedding []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&item.ID, &typ, &item.Title, &item.Body,
		&cultural, &themes, &issues,
		&item.Source, &item.Author, &item.Period,
		&embedding, &item.Validated, &item.BiasScore,
		&createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning content item: %w", err)
	}

	if err := fillContentItem(&item, typ, cultural, themes, issues, embedding, createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

// scanContentItems drains a multi-row query result. extraCol is true
// when the query appended a computed score column.
func scanContentItems(rows *sql.Rows, extraCol bool) ([]domain.ContentItem, error) {
	var items []domain.ContentItem
	for rows.Next() {
		var item domain.ContentItem
		var typ, cultural, themes, issues string
		var embedding []byte
		var createdAt, updatedAt sql.NullTime

		dest := []any{&item.ID, &typ, &item.Title, &item.Body,
			&cultural, &themes, &issues,
			&item.Source, &item.Author, &item.Period,
			&embedding, &item.Validated, &item.BiasScore,
			&createdAt, &updatedAt}
		if extraCol {
			var ignored int
			dest = append(dest, &ignored)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning content item: %w", err)
		}
		if err := fillContentItem(&item, typ, cultural, themes, issues, embedding, createdAt, updatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating content items: %w", err)
	}
	return items, nil
}

// fillContentItem decodes the JSON and blob columns into the item.
func fillContentItem(item *domain.ContentItem, typ, cultural, themes, issues string, embedding []byte, createdAt, updatedAt sql.NullTime) error {
	item.Type = domain.ContentType(typ)
	if err := json.Unmarshal([]byte(cultural), &item.CulturalTags); err != nil {
		return fmt.Errorf("unmarshalling cultural tags: %w", err)
	}
	if err := json.Unmarshal([]byte(themes), &item.TherapeuticThemes); err != nil {
		return fmt.Errorf("unmarshalling therapeutic themes: %w", err)
	}
	if err := json.Unmarshal([]byte(issues), &item.TargetIssues); err != nil {
		return fmt.Errorf("unmarshalling target issues: %w", err)
	}
	item.Embedding = bytesToFloat32Slice(embedding)
	if createdAt.Valid {
		item.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		item.UpdatedAt = updatedAt.Time
	}
	return nil
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

// cosineSimilarity computes the cosine similarity between two vectors,
// 0 for mismatched dimensions.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
