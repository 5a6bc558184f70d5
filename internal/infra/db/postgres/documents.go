package postgres

import "context"

const documentsSchema = `
CREATE TABLE IF NOT EXISTS quote_documents (
	id         BIGSERIAL PRIMARY KEY,
	filename   TEXT        NOT NULL,
	content    BYTEA       NOT NULL,
	size_bytes INTEGER     NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema creates the exported documents table.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, documentsSchema)
	return err
}

// Write archives an exported document. It makes DB usable as an export sink.
func (db *DB) Write(ctx context.Context, filename string, doc []byte) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO quote_documents (filename, content, size_bytes) VALUES ($1, $2, $3)`,
		filename, doc, len(doc))
	return err
}
