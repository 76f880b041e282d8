package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"auditlink/internal/link/models"
	id "auditlink/pkg/domain"
)

// PostgresStore persists links in the links table. Batched deletes run as a
// single statement so readers never see a half-applied batch.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed link store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const linkColumns = `id, evidence_id, requirement_id, link_type, strength, description, tags, priority, verified, verified_by, verified_at, created_at, created_by`

func (s *PostgresStore) Insert(ctx context.Context, link *models.Link) (id.LinkID, error) {
	query := `
		INSERT INTO links (` + linkColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	var verifiedBy sql.NullString
	if link.VerifiedBy != "" {
		verifiedBy = sql.NullString{String: link.VerifiedBy, Valid: true}
	}
	var verifiedAt sql.NullTime
	if link.VerifiedAt != nil {
		verifiedAt = sql.NullTime{Time: *link.VerifiedAt, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, query,
		link.ID.String(),
		link.EvidenceID.String(),
		link.RequirementID.String(),
		string(link.Type),
		link.Strength,
		link.Description,
		pq.Array(link.Tags),
		string(link.Priority),
		link.Verified,
		verifiedBy,
		verifiedAt,
		link.CreatedAt,
		link.CreatedBy,
	)
	if err != nil {
		return id.LinkID{}, fmt.Errorf("insert link: %w", err)
	}
	return link.ID, nil
}

func (s *PostgresStore) List(ctx context.Context, filter Filter) ([]*models.Link, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE ($1::uuid IS NULL OR evidence_id = $1)
		  AND ($2::uuid IS NULL OR requirement_id = $2)
		  AND ($3::boolean IS NULL OR verified = $3)
		ORDER BY created_at, id
	`
	var evidenceID, requirementID sql.NullString
	if filter.EvidenceID != nil {
		evidenceID = sql.NullString{String: filter.EvidenceID.String(), Valid: true}
	}
	if filter.RequirementID != nil {
		requirementID = sql.NullString{String: filter.RequirementID.String(), Valid: true}
	}
	var verified sql.NullBool
	if filter.Verified != nil {
		verified = sql.NullBool{Bool: *filter.Verified, Valid: true}
	}

	rows, err := s.db.QueryContext(ctx, query, evidenceID, requirementID, verified)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()

	var out []*models.Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, link)
	}
	return out, rows.Err()
}

func (s *PostgresStore) FindByID(ctx context.Context, linkID id.LinkID) (*models.Link, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE id = $1
	`
	row := s.db.QueryRowContext(ctx, query, linkID.String())
	link, err := scanLink(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return link, nil
}

func (s *PostgresStore) CountByEvidence(ctx context.Context, evidenceID id.EvidenceID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM links WHERE evidence_id = $1`,
		evidenceID.String(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count links: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) CountsByEvidence(ctx context.Context) (map[id.EvidenceID]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT evidence_id, COUNT(*) FROM links GROUP BY evidence_id`)
	if err != nil {
		return nil, fmt.Errorf("count links by evidence: %w", err)
	}
	defer rows.Close()

	counts := make(map[id.EvidenceID]int)
	for rows.Next() {
		var rawID string
		var count int
		if err := rows.Scan(&rawID, &count); err != nil {
			return nil, fmt.Errorf("scan link count row: %w", err)
		}
		evidenceID, err := id.ParseEvidenceID(rawID)
		if err != nil {
			return nil, fmt.Errorf("link count row %q: %w", rawID, err)
		}
		counts[evidenceID] = count
	}
	return counts, rows.Err()
}

func (s *PostgresStore) DeleteByEvidence(ctx context.Context, evidenceID id.EvidenceID) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM links WHERE evidence_id = $1`,
		evidenceID.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("delete links by evidence: %w", err)
	}
	return rowsAffected(res)
}

func (s *PostgresStore) DeleteBatch(ctx context.Context, evidenceIDs []id.EvidenceID, requirementIDs []id.RequirementID) (int, error) {
	rawEvidence := make([]string, 0, len(evidenceIDs))
	for _, eid := range evidenceIDs {
		rawEvidence = append(rawEvidence, eid.String())
	}
	rawRequirements := make([]string, 0, len(requirementIDs))
	for _, rid := range requirementIDs {
		rawRequirements = append(rawRequirements, rid.String())
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM links WHERE evidence_id = ANY($1) OR requirement_id = ANY($2)`,
		pq.Array(rawEvidence), pq.Array(rawRequirements),
	)
	if err != nil {
		return 0, fmt.Errorf("delete link batch: %w", err)
	}
	return rowsAffected(res)
}

func (s *PostgresStore) MarkVerified(ctx context.Context, linkID id.LinkID, verifiedBy string, at time.Time) error {
	// The update only applies to unverified rows, so the first verifier and
	// timestamp stick on repeat calls.
	res, err := s.db.ExecContext(ctx, `
		UPDATE links
		SET verified = TRUE, verified_by = $2, verified_at = $3
		WHERE id = $1 AND verified = FALSE
	`, linkID.String(), verifiedBy, at)
	if err != nil {
		return fmt.Errorf("mark link verified: %w", err)
	}
	affected, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM links WHERE id = $1)`,
			linkID.String(),
		).Scan(&exists); err != nil {
			return fmt.Errorf("check link exists: %w", err)
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}

func rowsAffected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanLink rebuilds a link from a row without re-running constructor
// validation: rows were validated on the way in, and verification fields are
// outside what the constructor accepts.
func scanLink(row rowScanner) (*models.Link, error) {
	var (
		rawID, rawEvidenceID, rawRequirementID string
		linkType, priority, createdBy          string
		strength                               int
		description                            sql.NullString
		tags                                   pq.StringArray
		verified                               bool
		verifiedBy                             sql.NullString
		verifiedAt                             sql.NullTime
		createdAt                              time.Time
	)
	if err := row.Scan(
		&rawID, &rawEvidenceID, &rawRequirementID,
		&linkType, &strength, &description, &tags, &priority,
		&verified, &verifiedBy, &verifiedAt,
		&createdAt, &createdBy,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan link row: %w", err)
	}

	linkID, err := id.ParseLinkID(rawID)
	if err != nil {
		return nil, fmt.Errorf("link row %q: %w", rawID, err)
	}
	evidenceID, err := id.ParseEvidenceID(rawEvidenceID)
	if err != nil {
		return nil, fmt.Errorf("link row %q: %w", rawID, err)
	}
	requirementID, err := id.ParseRequirementID(rawRequirementID)
	if err != nil {
		return nil, fmt.Errorf("link row %q: %w", rawID, err)
	}

	link := &models.Link{
		ID:            linkID,
		EvidenceID:    evidenceID,
		RequirementID: requirementID,
		Type:          models.LinkType(linkType),
		Strength:      strength,
		Description:   description.String,
		Tags:          tags,
		Priority:      models.Priority(priority),
		Verified:      verified,
		VerifiedBy:    verifiedBy.String,
		CreatedAt:     createdAt,
		CreatedBy:     createdBy,
	}
	if verifiedAt.Valid {
		at := verifiedAt.Time
		link.VerifiedAt = &at
	}
	return link, nil
}
