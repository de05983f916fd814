package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_backend/internal/models"
	"github.com/finbooks/finbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, workplace_id, entry_date, description, reference, status, original_entry_id, reversing_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, line_no, debit, credit, description`

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

func toModelEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		WorkplaceID:      d.WorkplaceID,
		EntryDate:        d.EntryDate,
		Description:      d.Description,
		Reference:        d.Reference,
		Status:           models.EntryStatus(d.Status),
		OriginalEntryID:  d.OriginalEntryID,
		ReversingEntryID: d.ReversingEntryID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		WorkplaceID:      m.WorkplaceID,
		EntryDate:        m.EntryDate,
		Description:      m.Description,
		Reference:        m.Reference,
		Status:           domain.EntryStatus(m.Status),
		OriginalEntryID:  m.OriginalEntryID,
		ReversingEntryID: m.ReversingEntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainLine(m models.JournalLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
	}
}

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var originalID, reversingID sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.WorkplaceID,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.Status,
		&originalID,
		&reversingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return m, err
	}
	if originalID.Valid {
		m.OriginalEntryID = &originalID.String
	}
	if reversingID.Valid {
		m.ReversingEntryID = &reversingID.String
	}
	return m, nil
}

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.LineNo,
		&m.Debit,
		&m.Credit,
		&m.Description,
	)
	return m, err
}

// insertEntryTx inserts the entry row and its lines inside the transaction.
func (r *PgxEntryRepository) insertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := toModelEntry(entry)

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.WorkplaceID,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.Status,
		m.OriginalEntryID,
		m.ReversingEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", m.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	batch := &pgx.Batch{}
	for i, line := range entry.Lines {
		batch.Queue(lineQuery,
			line.LineID,
			m.EntryID,
			line.AccountID,
			i,
			line.Debit,
			line.Credit,
			line.Description,
		)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range entry.Lines {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert lines for entry %s: %w", m.EntryID, err)
		}
	}
	return results.Close()
}

// SaveEntry persists an accepted entry and its lines atomically.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntryTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveReversal inserts the reversing entry and marks the original entry
// REVERSED, all in one transaction.
func (r *PgxEntryRepository) SaveReversal(ctx context.Context, reversing domain.JournalEntry, originalEntryID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntryTx(ctx, tx, reversing); err != nil {
		return err
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $2, reversing_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = $6;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		originalEntryID,
		models.Reversed,
		reversing.EntryID,
		now,
		userID,
		models.Posted,
	)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s reversed: %w", originalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Already reversed by a concurrent request, or gone.
		return fmt.Errorf("entry %s is not in POSTED state: %w", originalEntryID, apperrors.ErrConflict)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry by its ID, without lines.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	entry := toDomainEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves the lines of an entry in submitted order.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_no;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalEntryLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, toDomainLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}

	return lines, nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries in one query.
func (r *PgxEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalEntryLine{}, nil
	}

	query := `
		SELECT ` + lineColumns + `
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines by entry IDs: %w", err)
	}
	defer rows.Close()

	linesByEntry := make(map[string][]domain.JournalEntryLine)
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row during batch fetch: %w", err)
		}
		linesByEntry[m.EntryID] = append(linesByEntry[m.EntryID], toDomainLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows during batch fetch: %w", err)
	}

	return linesByEntry, nil
}

// ListEntriesByWorkplace retrieves a token-paginated list of entries for a
// workplace, newest first. It returns the page, a token for the next page (if
// any), and an error.
func (r *PgxEntryRepository) ListEntriesByWorkplace(ctx context.Context, workplaceID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE workplace_id = $1
	`
	// Stable ordering: entry_date DESC with created_at DESC as tie-breaker.
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{workplaceID}
	query := baseQuery

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("invalid nextToken: %w", apperrors.ErrValidation)
		}
		query += ` AND (entry_date, created_at) < ($2, $3) `
		args = append(args, lastDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for workplace %s: %w", workplaceID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row for workplace %s: %w", workplaceID, err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows for workplace %s: %w", workplaceID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		// The token points at the last item included in this page; the next
		// query resumes after it.
		lastEntry := modelEntries[limit-1]
		newToken := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		nextTokenVal = &newToken
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = toDomainEntry(m)
	}

	return entries, nextTokenVal, nil
}

// ListEntriesWithLines retrieves every entry of a workplace with lines
// populated. This is the aggregation input and is deliberately unpaginated:
// balances are a function of the complete entry set.
func (r *PgxEntryRepository) ListEntriesWithLines(ctx context.Context, workplaceID string) ([]domain.JournalEntry, error) {
	entryQuery := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE workplace_id = $1
		ORDER BY entry_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, entryQuery, workplaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for workplace %s: %w", workplaceID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row for workplace %s: %w", workplaceID, err)
		}
		entries = append(entries, toDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows for workplace %s: %w", workplaceID, err)
	}

	if len(entries) == 0 {
		return entries, nil
	}

	lineQuery := `
		SELECT ` + lineColumns + `
		FROM journal_lines l
		WHERE EXISTS (
			SELECT 1 FROM journal_entries e
			WHERE e.entry_id = l.entry_id AND e.workplace_id = $1
		)
		ORDER BY l.entry_id, l.line_no;
	`
	lineRows, err := r.Pool.Query(ctx, lineQuery, workplaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for workplace %s: %w", workplaceID, err)
	}
	defer lineRows.Close()

	linesByEntry := make(map[string][]domain.JournalEntryLine)
	for lineRows.Next() {
		m, err := scanLine(lineRows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for workplace %s: %w", workplaceID, err)
		}
		linesByEntry[m.EntryID] = append(linesByEntry[m.EntryID], toDomainLine(m))
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for workplace %s: %w", workplaceID, err)
	}

	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}

	return entries, nil
}
