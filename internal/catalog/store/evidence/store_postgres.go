package evidence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"auditlink/internal/catalog"
	"auditlink/internal/catalog/models"
	id "auditlink/pkg/domain"
)

// PostgresStore reads evidence items from the evidence_items table, which
// the upload pipeline (an external collaborator) writes.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed evidence store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const evidenceColumns = `id, factory_id, name, kind, declared_standard, declared_code, tags, uploaded_at, size_bytes`

func (s *PostgresStore) List(ctx context.Context, factoryID id.FactoryID) ([]*models.EvidenceItem, error) {
	query := `
		SELECT ` + evidenceColumns + `
		FROM evidence_items
		WHERE factory_id = $1
		ORDER BY uploaded_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, factoryID.String())
	if err != nil {
		return nil, fmt.Errorf("list evidence: %w", err)
	}
	defer rows.Close()

	var out []*models.EvidenceItem
	for rows.Next() {
		item, err := scanEvidence(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *PostgresStore) FindByID(ctx context.Context, evidenceID id.EvidenceID) (*models.EvidenceItem, error) {
	query := `
		SELECT ` + evidenceColumns + `
		FROM evidence_items
		WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, query, evidenceID.String())
	item, err := scanEvidence(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEvidence funnels every row through the model constructor so malformed
// database records are rejected at the loading boundary, not downstream.
func scanEvidence(row rowScanner) (*models.EvidenceItem, error) {
	var (
		rawID, rawFactoryID        string
		name, kind                 string
		declaredStandard, declCode sql.NullString
		tags                       pq.StringArray
		uploadedAt                 sql.NullTime
		sizeBytes                  int64
	)
	if err := row.Scan(&rawID, &rawFactoryID, &name, &kind, &declaredStandard, &declCode, &tags, &uploadedAt, &sizeBytes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan evidence row: %w", err)
	}

	evidenceID, err := id.ParseEvidenceID(rawID)
	if err != nil {
		return nil, fmt.Errorf("evidence row %q: %w", rawID, err)
	}
	factoryID, err := id.ParseFactoryID(rawFactoryID)
	if err != nil {
		return nil, fmt.Errorf("evidence row %q: %w", rawID, err)
	}
	return models.NewEvidenceItem(
		evidenceID,
		factoryID,
		name,
		models.EvidenceKind(kind),
		declaredStandard.String,
		declCode.String,
		tags,
		uploadedAt.Time,
		sizeBytes,
	)
}
