package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema is the full DDL for the service, applied idempotently at startup.
// The evidence and requirement tables are populated by the upload pipeline
// and standards importer; this service only reads them.
const Schema = `
CREATE TABLE IF NOT EXISTS evidence_items (
	id                UUID PRIMARY KEY,
	factory_id        UUID NOT NULL,
	name              TEXT NOT NULL,
	kind              TEXT NOT NULL,
	declared_standard TEXT,
	declared_code     TEXT,
	tags              TEXT[] NOT NULL DEFAULT '{}',
	uploaded_at       TIMESTAMPTZ NOT NULL,
	size_bytes        BIGINT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_evidence_items_factory ON evidence_items (factory_id, uploaded_at DESC);

CREATE TABLE IF NOT EXISTS requirements (
	id       UUID PRIMARY KEY,
	standard TEXT NOT NULL,
	category TEXT NOT NULL,
	code     TEXT NOT NULL,
	title    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_requirements_standard_code ON requirements (standard, code);

CREATE TABLE IF NOT EXISTS links (
	id             UUID PRIMARY KEY,
	evidence_id    UUID NOT NULL,
	requirement_id UUID NOT NULL,
	link_type      TEXT NOT NULL,
	strength       INT NOT NULL,
	description    TEXT,
	tags           TEXT[] NOT NULL DEFAULT '{}',
	priority       TEXT NOT NULL,
	verified       BOOLEAN NOT NULL DEFAULT FALSE,
	verified_by    TEXT,
	verified_at    TIMESTAMPTZ,
	created_at     TIMESTAMPTZ NOT NULL,
	created_by     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_links_evidence ON links (evidence_id);
CREATE INDEX IF NOT EXISTS idx_links_requirement ON links (requirement_id);

CREATE TABLE IF NOT EXISTS audit_events (
	id          UUID PRIMARY KEY,
	event_type  TEXT NOT NULL,
	actor       TEXT NOT NULL,
	subject_id  TEXT NOT NULL,
	detail      JSONB,
	occurred_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_events_occurred ON audit_events (occurred_at DESC);
`

// EnsureSchema applies the DDL. Safe to run on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
