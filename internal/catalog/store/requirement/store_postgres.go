package requirement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"auditlink/internal/catalog"
	"auditlink/internal/catalog/models"
	id "auditlink/pkg/domain"
)

// PostgresStore reads requirements from the requirements table, maintained
// by the framework-import tooling.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed requirement store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Requirement, error) {
	query := `
		SELECT id, standard, category, code, title
		FROM requirements
		ORDER BY standard, category, code
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	defer rows.Close()

	var out []*models.Requirement
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *PostgresStore) FindByID(ctx context.Context, requirementID id.RequirementID) (*models.Requirement, error) {
	query := `
		SELECT id, standard, category, code, title
		FROM requirements
		WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, query, requirementID.String())
	req, err := scanRequirement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequirement(row rowScanner) (*models.Requirement, error) {
	var rawID, standard, category, code, title string
	if err := row.Scan(&rawID, &standard, &category, &code, &title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan requirement row: %w", err)
	}
	requirementID, err := id.ParseRequirementID(rawID)
	if err != nil {
		return nil, fmt.Errorf("requirement row %q: %w", rawID, err)
	}
	return models.NewRequirement(requirementID, standard, models.Category(category), code, title)
}
