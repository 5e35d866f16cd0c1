// Package sqlitevec provides a SQLite-backed vector index using sqlite-vec.
package sqlitevec

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"sync"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/vector"
)

// MemoryPath opens a private in-memory database per index.
const MemoryPath = ":memory:"

// Config holds configuration for the sqlite-vec index.
type Config struct {
	// DBPath is the path to the SQLite database file.
	// Defaults to MemoryPath. With a file path every index creates its own
	// uniquely named tables and drops them on Close.
	DBPath string

	// Dimensions is the number of dimensions for the embedding vectors.
	// Zero adopts the dimensionality of the first added document.
	Dimensions uint
}

// Index implements vector.Index using SQLite with sqlite-vec.
type Index struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *zap.Logger

	docsTable string
	vecTable  string
	dims      int
	count     int
	ephemeral bool
	closed    bool
}

// Factory returns a vector.Factory creating a new sqlite-vec index per call.
func Factory(c Config, logger *zap.Logger) vector.Factory {
	return func(ctx context.Context) (vector.Index, error) {
		return NewIndex(ctx, c, logger)
	}
}

// NewIndex opens a database and creates the document mapping table.
func NewIndex(ctx context.Context, c Config, logger *zap.Logger) (*Index, error) {
	// enable connection to have sqlite-vec extension
	sqlite_vec.Auto()

	dbPath := c.DBPath
	if dbPath == "" {
		dbPath = MemoryPath
	}
	inMemory := dbPath == MemoryPath

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", vector.ErrConnection, err)
	}

	// each connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	// Verify sqlite-vec is loaded
	var vecVersion string
	if err := db.QueryRowContext(ctx, "SELECT vec_version()").Scan(&vecVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: sqlite-vec not available: %v", vector.ErrConnection, err)
	}

	suffix := ""
	if !inMemory {
		suffix = "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	}

	idx := &Index{
		db:        db,
		logger:    logger,
		docsTable: "vec_documents" + suffix,
		vecTable:  "vec_embeddings" + suffix,
		dims:      int(c.Dimensions),
		ephemeral: !inMemory,
	}

	// vec0 virtual tables use integer rowids, so the mapping table carries
	// the document id, insertion ordinal and text for each rowid.
	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE %s (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			doc_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			text TEXT NOT NULL DEFAULT ''
		)
	`, idx.docsTable))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating documents table: %w", err)
	}

	if idx.dims > 0 {
		if err := idx.createVecTable(ctx); err != nil {
			idx.Close()
			return nil, err
		}
	}

	logger.Debug("sqlite-vec index opened",
		zap.String("db_path", dbPath),
		zap.String("table", idx.vecTable),
		zap.String("vec_version", vecVersion),
	)

	return idx, nil
}

func (i *Index) createVecTable(ctx context.Context) error {
	createVec := fmt.Sprintf(
		`CREATE VIRTUAL TABLE %s USING vec0(embedding float[%d])`,
		i.vecTable, i.dims,
	)
	if _, err := i.db.ExecContext(ctx, createVec); err != nil {
		return fmt.Errorf("creating vec0 table: %w", err)
	}
	return nil
}

// serializeFloat32 converts a float32 slice to a little-endian byte slice
// suitable for sqlite-vec BLOB format.
func serializeFloat32(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// Add stores documents with their embeddings.
func (i *Index) Add(ctx context.Context, docs []vector.Document) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return vector.ErrClosed
	}
	if len(docs) == 0 {
		return nil
	}

	hadTable := i.dims > 0
	dims, err := vector.CheckDimensions(i.dims, docs)
	if err != nil {
		return err
	}
	if !hadTable {
		i.dims = dims
		if err := i.createVecTable(ctx); err != nil {
			i.dims = 0
			return err
		}
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, doc := range docs {
		// Insert into mapping table first to get the rowid
		result, err := tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s(doc_id, seq, text) VALUES (?, ?, ?)`, i.docsTable),
			doc.ID, doc.Seq, doc.Text,
		)
		if err != nil {
			return fmt.Errorf("inserting document %s: %w", doc.ID, err)
		}

		rowID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting rowid for doc %s: %w", doc.ID, err)
		}

		// Insert embedding into vec0 table with matching rowid
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s(rowid, embedding) VALUES (?, ?)`, i.vecTable),
			rowID, serializeFloat32(doc.Embedding),
		); err != nil {
			return fmt.Errorf("inserting embedding for doc %s: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	i.count += len(docs)

	i.logger.Debug("added documents to sqlite-vec",
		zap.Int("count", len(docs)),
	)

	return nil
}

// Query finds the k most similar documents to the given embedding.
func (i *Index) Query(ctx context.Context, embedding []float32, k int) ([]vector.QueryResult, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil, vector.ErrClosed
	}
	if vector.CapK(k, i.count) == 0 {
		return []vector.QueryResult{}, nil
	}
	if len(embedding) != i.dims {
		return nil, fmt.Errorf("%w: query has %d dimensions, index has %d", vector.ErrDimensionMismatch, len(embedding), i.dims)
	}

	// The KNN search covers the whole table so vector.Rank decides ties at
	// the k boundary.
	rows, err := i.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT
			d.doc_id,
			d.seq,
			d.text,
			ve.distance
		FROM %s ve
		INNER JOIN %s d ON d.rowid = ve.rowid
		WHERE ve.embedding MATCH ?
			AND ve.k = ?
		ORDER BY ve.distance
	`, i.vecTable, i.docsTable), serializeFloat32(embedding), i.count)
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	var results []vector.QueryResult
	for rows.Next() {
		var (
			doc      vector.Document
			distance float64
		)
		if err := rows.Scan(&doc.ID, &doc.Seq, &doc.Text, &distance); err != nil {
			return nil, fmt.Errorf("scanning query result: %w", err)
		}

		results = append(results, vector.QueryResult{
			Document: doc,
			// Convert distance to similarity score: lower distance = higher similarity
			Score: float32(1.0 / (1.0 + distance)),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating query results: %w", err)
	}

	i.logger.Debug("queried sqlite-vec",
		zap.Int("results", len(results)),
	)

	return vector.Rank(results, k), nil
}

// Close drops the index tables when they live in a shared file and closes
// the database.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true

	if i.ephemeral {
		for _, table := range []string{i.vecTable, i.docsTable} {
			if _, err := i.db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
				i.logger.Warn("dropping sqlite-vec table", zap.String("table", table), zap.Error(err))
			}
		}
	}
	return i.db.Close()
}

var _ vector.Index = (*Index)(nil)
