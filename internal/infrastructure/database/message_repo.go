package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"hytalei18n/internal/ports/output"
	"hytalei18n/pkg/i18n"
)

var _ output.MessageStore = (*MessageRepository)(nil)

const (
	listMessagesSQL = `SELECT locale, key, template FROM i18n_messages ORDER BY locale, key`

	upsertMessageSQL = `INSERT INTO i18n_messages (locale, key, template, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (locale, key) DO UPDATE SET template = EXCLUDED.template, updated_at = now()`

	messageOrigin = "postgres:i18n_messages"
)

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// MessageRepository stores locale templates in PostgreSQL.
type MessageRepository struct {
	db DB
}

// NewMessageRepository creates a MessageRepository.
func NewMessageRepository(db DB) *MessageRepository {
	return &MessageRepository{db: db}
}

type messageRow struct {
	Locale   string
	Key      string
	Template string
}

func (r *MessageRepository) Name() string { return messageOrigin }

// Resources returns one resource per stored locale.
func (r *MessageRepository) Resources(ctx context.Context) ([]i18n.Resource, error) {
	rows, err := r.db.Query(ctx, listMessagesSQL)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	messages, err := pgx.CollectRows(rows, pgx.RowToStructByPos[messageRow])
	if err != nil {
		return nil, fmt.Errorf("scan messages: %w", err)
	}
	return groupMessages(messages), nil
}

// Import upserts every entry of resources in one transaction and returns the
// number of rows written. Resources are validated as a catalog first, so a
// duplicate or malformed resource writes nothing.
func (r *MessageRepository) Import(ctx context.Context, resources []i18n.Resource) (int, error) {
	rows, err := importRows(resources)
	if err != nil {
		return 0, fmt.Errorf("import messages: %w", err)
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(upsertMessageSQL, row.Locale, row.Key, row.Template)
	}
	if batch.Len() == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return 0, fmt.Errorf("upsert message %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return batch.Len(), nil
}

// importRows validates resources and returns the rows to store, with locales and
// keys in the form the catalog uses.
func importRows(resources []i18n.Resource) ([]messageRow, error) {
	if _, err := i18n.Load(resources...); err != nil {
		return nil, err
	}
	var rows []messageRow
	for _, res := range resources {
		locale, err := i18n.NormalizeLocale(res.Locale)
		if err != nil {
			return nil, err
		}
		for _, entry := range res.Entries {
			rows = append(rows, messageRow{Locale: locale, Key: strings.TrimSpace(entry.Key), Template: entry.Value})
		}
	}
	return rows, nil
}

func groupMessages(rows []messageRow) []i18n.Resource {
	var out []i18n.Resource
	for _, row := range rows {
		if len(out) == 0 || out[len(out)-1].Locale != row.Locale {
			out = append(out, i18n.Resource{Locale: row.Locale, Origin: messageOrigin})
		}
		last := &out[len(out)-1]
		last.Entries = append(last.Entries, i18n.Entry{Key: row.Key, Value: row.Template})
	}
	return out
}
