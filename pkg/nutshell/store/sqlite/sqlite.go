package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/nutshell/pkg/nutshell/graph"
	"github.com/cognicore/nutshell/pkg/nutshell/internalerr"
	"github.com/cognicore/nutshell/pkg/nutshell/store"
)

// sqliteStore implements the CorpusStore interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.CorpusStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS corpora (
	name TEXT PRIMARY KEY,
	words INTEGER NOT NULL,
	edges INTEGER NOT NULL,
	tokens INTEGER NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS corpus_words (
	corpus TEXT NOT NULL,
	word TEXT NOT NULL,
	frequency INTEGER NOT NULL,
	PRIMARY KEY(corpus, word),
	FOREIGN KEY(corpus) REFERENCES corpora(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS corpus_edges (
	corpus TEXT NOT NULL,
	src TEXT NOT NULL,
	dst TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(corpus, src, dst),
	FOREIGN KEY(corpus) REFERENCES corpora(name) ON DELETE CASCADE
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveGraph replaces the rows stored under name in one transaction.
func (s *sqliteStore) SaveGraph(ctx context.Context, name string, g *graph.Graph) error {
	if name == "" || g == nil {
		return fmt.Errorf("%w: corpus name and graph required", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := deleteCorpus(ctx, tx, name); err != nil {
		return err
	}

	info := store.Describe(name, g, time.Now().UTC())
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO corpora (name, words, edges, tokens, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		info.Name, info.Words, info.Edges, info.Tokens, info.UpdatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert corpus: %w", err)
	}

	if err := insertWords(ctx, tx, name, g.Words()); err != nil {
		return err
	}
	if err := insertEdges(ctx, tx, name, g.Edges()); err != nil {
		return err
	}

	return tx.Commit()
}

func insertWords(ctx context.Context, tx *sql.Tx, name string, words []graph.WordCount) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO corpus_words (corpus, word, frequency) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, name, w.Word, w.Frequency); err != nil {
			return fmt.Errorf("insert word %q: %w", w.Word, err)
		}
	}
	return nil
}

func insertEdges(ctx context.Context, tx *sql.Tx, name string, edges []graph.EdgeCount) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO corpus_edges (corpus, src, dst, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range edges {
		if _, err := stmt.ExecContext(ctx, name, e.From, e.To, e.Count); err != nil {
			return fmt.Errorf("insert edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return nil
}

// LoadGraph reads the rows stored under name and rebuilds the graph.
func (s *sqliteStore) LoadGraph(ctx context.Context, name string) (*graph.Graph, bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM corpora WHERE name=?`, name).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	words, err := s.loadWords(ctx, name)
	if err != nil {
		return nil, false, err
	}
	edges, err := s.loadEdges(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return graph.Restore(words, edges), true, nil
}

func (s *sqliteStore) loadWords(ctx context.Context, name string) ([]graph.WordCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word, frequency FROM corpus_words WHERE corpus=?`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []graph.WordCount
	for rows.Next() {
		var w graph.WordCount
		if err := rows.Scan(&w.Word, &w.Frequency); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

func (s *sqliteStore) loadEdges(ctx context.Context, name string) ([]graph.EdgeCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT src, dst, count FROM corpus_edges WHERE corpus=?`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []graph.EdgeCount
	for rows.Next() {
		var e graph.EdgeCount
		if err := rows.Scan(&e.From, &e.To, &e.Count); err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// ListGraphs returns the stored corpora sorted by name.
func (s *sqliteStore) ListGraphs(ctx context.Context) ([]store.CorpusInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, words, edges, tokens, updated_at
		FROM corpora
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []store.CorpusInfo
	for rows.Next() {
		var info store.CorpusInfo
		var updated string
		if err := rows.Scan(&info.Name, &info.Words, &info.Edges, &info.Tokens, &updated); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			info.UpdatedAt = t
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// DeleteGraph removes a corpus and its rows.
func (s *sqliteStore) DeleteGraph(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	n, err := deleteCorpus(ctx, tx, name)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("corpus %q: %w", name, internalerr.ErrNotFound)
	}
	return tx.Commit()
}

// deleteCorpus removes the rows of a corpus explicitly, since foreign keys
// are only enforced on connections that enabled them. It returns the number
// of corpora removed.
func deleteCorpus(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	for _, q := range []string{
		`DELETE FROM corpus_edges WHERE corpus=?`,
		`DELETE FROM corpus_words WHERE corpus=?`,
	} {
		if _, err := tx.ExecContext(ctx, q, name); err != nil {
			return 0, fmt.Errorf("delete corpus rows: %w", err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM corpora WHERE name=?`, name)
	if err != nil {
		return 0, fmt.Errorf("delete corpus: %w", err)
	}
	return res.RowsAffected()
}
