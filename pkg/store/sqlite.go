package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/praetorian-inc/tsce/pkg/types"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store. The driver is mattn/go-sqlite3
// in cgo builds and modernc.org/sqlite otherwise.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// AddBlob stores a blob record.
func (s *SQLiteStore) AddBlob(id types.ContentID, size int64) error {
	_, err := s.db.Exec("INSERT OR IGNORE INTO blobs (id, size) VALUES (?, ?)", id.Hex(), size)
	if err != nil {
		return fmt.Errorf("inserting blob: %w", err)
	}
	return nil
}

// AddProvenance associates provenance with a blob.
func (s *SQLiteStore) AddProvenance(id types.ContentID, prov types.Provenance) error {
	switch prov.(type) {
	case types.FileProvenance, types.BufferProvenance:
	default:
		return fmt.Errorf("unknown provenance type: %T", prov)
	}

	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO provenance (blob_id, type, path)
		VALUES (?, ?, ?)
	`,
		id.Hex(),
		prov.Kind(),
		prov.Path(),
	)
	if err != nil {
		return fmt.Errorf("inserting provenance: %w", err)
	}

	return nil
}

// AddComponent stores a component record.
func (s *SQLiteStore) AddComponent(r *types.Record) error {
	propsJSON, err := json.Marshal(r.Component.PropNames)
	if err != nil {
		return fmt.Errorf("marshaling prop names: %w", err)
	}

	var classStart, classEnd *int
	if o := r.Component.ClassNameOffsets; o != nil {
		classStart, classEnd = &o.Start, &o.End
	}

	_, err = s.db.Exec(`
		INSERT OR IGNORE INTO components (
			blob_id, path, name, class_name, prop_names_json,
			class_name_start, class_name_end, tag_start, tag_end,
			start_line, start_column, end_line, end_column, declaration
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ContentID.Hex(),
		r.Path,
		r.Component.Name,
		r.Component.ClassName,
		string(propsJSON),
		classStart,
		classEnd,
		r.Component.TagOffsets.Start,
		r.Component.TagOffsets.End,
		r.Location.Source.Start.Line,
		r.Location.Source.Start.Column,
		r.Location.Source.End.Line,
		r.Location.Source.End.Column,
		r.Declaration,
	)
	if err != nil {
		return fmt.Errorf("inserting component: %w", err)
	}

	return nil
}

const selectComponents = `
	SELECT blob_id, path, name, class_name, prop_names_json,
		class_name_start, class_name_end, tag_start, tag_end,
		start_line, start_column, end_line, end_column, declaration
	FROM components
`

// GetComponents retrieves the records of one blob.
func (s *SQLiteStore) GetComponents(id types.ContentID) ([]*types.Record, error) {
	rows, err := s.db.Query(selectComponents+" WHERE blob_id = ? ORDER BY path, tag_start", id.Hex())
	if err != nil {
		return nil, fmt.Errorf("querying components: %w", err)
	}
	return scanRecords(rows)
}

// GetAllComponents retrieves every record.
func (s *SQLiteStore) GetAllComponents() ([]*types.Record, error) {
	rows, err := s.db.Query(selectComponents + " ORDER BY path, tag_start")
	if err != nil {
		return nil, fmt.Errorf("querying components: %w", err)
	}
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*types.Record, error) {
	defer rows.Close()

	records := []*types.Record{}
	for rows.Next() {
		var r types.Record
		var propsJSON string
		var classStart, classEnd sql.NullInt64

		err := rows.Scan(
			&r.ContentID,
			&r.Path,
			&r.Component.Name,
			&r.Component.ClassName,
			&propsJSON,
			&classStart,
			&classEnd,
			&r.Component.TagOffsets.Start,
			&r.Component.TagOffsets.End,
			&r.Location.Source.Start.Line,
			&r.Location.Source.Start.Column,
			&r.Location.Source.End.Line,
			&r.Location.Source.End.Column,
			&r.Declaration,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning component: %w", err)
		}

		if err := json.Unmarshal([]byte(propsJSON), &r.Component.PropNames); err != nil {
			return nil, fmt.Errorf("unmarshaling prop names: %w", err)
		}
		if classStart.Valid && classEnd.Valid {
			r.Component.ClassNameOffsets = &types.Offsets{Start: int(classStart.Int64), End: int(classEnd.Int64)}
		}
		r.Location.Offset = r.Component.TagOffsets

		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating components: %w", err)
	}

	return records, nil
}

// BlobExists checks if a blob has already been scanned.
func (s *SQLiteStore) BlobExists(id types.ContentID) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM blobs WHERE id = ?", id.Hex()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking blob existence: %w", err)
	}
	return count > 0, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
