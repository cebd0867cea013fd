package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/finbook/ledger-service/internal/apperrors"
	"github.com/finbook/ledger-service/internal/core/domain"
	portsrepo "github.com/finbook/ledger-service/internal/core/ports/repositories"
	"github.com/finbook/ledger-service/internal/models"
	"github.com/finbook/ledger-service/internal/utils/accounting"
	"github.com/finbook/ledger-service/internal/utils/mapping"
	"github.com/finbook/ledger-service/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id, journal_id, tenant_id, account_id, amount, direction, currency_code, effective_date, posted_at, idempotency_key, metadata`

// rawSumExpr folds entries into the raw balance model: debits add, credits
// subtract.
const rawSumExpr = `COALESCE(SUM(CASE WHEN direction = 'DEBIT' THEN amount ELSE -amount END), 0)`

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for the append-only entry
// store.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

func scanEntry(row pgx.Row) (models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.JournalID,
		&m.TenantID,
		&m.AccountID,
		&m.Amount,
		&m.Direction,
		&m.CurrencyCode,
		&m.EffectiveDate,
		&m.PostedAt,
		&m.IdempotencyKey,
		&m.Metadata,
	)
	return m, err
}

// CommitJournal atomically inserts all entries of one journal.
//
// Inside a single database transaction it locks the touched account rows with
// SELECT ... FOR UPDATE, re-reads their current raw totals and enforces each
// account's negative-balance policy, then batch-inserts the entries. The lock
// serializes concurrent posts touching the same accounts, so two simultaneous
// debits cannot both pass the overdraft check against a stale balance.
//
// A uniqueness violation on the idempotency key during insert means a
// concurrent post with the same key committed first; it surfaces as
// apperrors.ErrConflict so the caller can re-read the winner's journal.
func (r *PgxEntryRepository) CommitJournal(ctx context.Context, tenantID string, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: no entries to commit", apperrors.ErrValidation)
	}

	accountIDSet := make(map[string]struct{}, len(entries))
	accountIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, seen := accountIDSet[e.AccountID]; !seen {
			accountIDSet[e.AccountID] = struct{}{}
			accountIDs = append(accountIDs, e.AccountID)
		}
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once the transaction is committed

	// 1. Lock the touched accounts for the duration of the transaction.
	lockQuery := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND account_id = ANY($2)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, tenantID, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for commit: %w", err)
	}
	lockedAccounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		m, scanErr := scanAccount(rows)
		if scanErr != nil {
			rows.Close()
			return fmt.Errorf("failed to scan locked account row: %w", scanErr)
		}
		lockedAccounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating locked account rows: %w", err)
	}
	if len(lockedAccounts) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := lockedAccounts[id]; !found {
				missing = append(missing, id)
			}
		}
		return fmt.Errorf("%w: could not lock accounts %v", apperrors.ErrNotFound, missing)
	}

	// 2. Read each account's current raw total under the lock and enforce
	// the negative-balance policy across the journal's entries in order.
	sumQuery := `
		SELECT account_id, ` + rawSumExpr + `
		FROM entries
		WHERE tenant_id = $1 AND account_id = ANY($2)
		GROUP BY account_id;
	`
	sumRows, err := tx.Query(ctx, sumQuery, tenantID, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to read current balances: %w", err)
	}
	currentRaw := make(map[string]decimal.Decimal, len(accountIDs))
	for sumRows.Next() {
		var accountID string
		var raw decimal.Decimal
		if scanErr := sumRows.Scan(&accountID, &raw); scanErr != nil {
			sumRows.Close()
			return fmt.Errorf("failed to scan balance row: %w", scanErr)
		}
		currentRaw[accountID] = raw
	}
	sumRows.Close()
	if err := sumRows.Err(); err != nil {
		return fmt.Errorf("error iterating balance rows: %w", err)
	}

	if err := accounting.CheckOverdraft(entries, lockedAccounts, currentRaw); err != nil {
		return err
	}

	// 3. Insert all entries as one batch; all-or-nothing.
	insertQuery := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelEntry(e)
		batch.Queue(insertQuery,
			m.EntryID,
			m.JournalID,
			m.TenantID,
			m.AccountID,
			m.Amount,
			m.Direction,
			m.CurrencyCode,
			m.EffectiveDate,
			m.PostedAt,
			m.IdempotencyKey,
			m.Metadata,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: idempotency key already committed by a concurrent post", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to insert entries for journal %s: %w", entries[0].JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntriesByJournalID retrieves all entries of one journal in posted
// order.
func (r *PgxEntryRepository) FindEntriesByJournalID(ctx context.Context, tenantID, journalID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE tenant_id = $1 AND journal_id = $2
		ORDER BY posted_at;
	`
	return r.queryEntries(ctx, query, tenantID, journalID)
}

// FindJournalByIdempotencyKey resolves an idempotency key to the journal it
// committed. The key is globally unique, so the owning tenant comes from the
// matched entry itself.
func (r *PgxEntryRepository) FindJournalByIdempotencyKey(ctx context.Context, key string) (*domain.Journal, error) {
	var tenantID, journalID string
	err := r.Pool.QueryRow(ctx,
		`SELECT tenant_id, journal_id FROM entries WHERE idempotency_key = $1;`, key,
	).Scan(&tenantID, &journalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up idempotency key: %w", err)
	}

	entries, err := r.FindEntriesByJournalID(ctx, tenantID, journalID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}

	return journalFromEntries(journalID, tenantID, entries), nil
}

// SumEntriesByAccount returns the account's raw balance over entries with
// effective_date <= asOf.
func (r *PgxEntryRepository) SumEntriesByAccount(ctx context.Context, tenantID, accountID string, asOf time.Time) (decimal.Decimal, error) {
	query := `
		SELECT ` + rawSumExpr + `
		FROM entries
		WHERE tenant_id = $1 AND account_id = $2 AND effective_date <= $3;
	`
	var raw decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID, asOf).Scan(&raw); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum entries for account %s: %w", accountID, err)
	}
	return raw, nil
}

// FindEntriesByAccountAndDateRange retrieves an account's entries within the
// inclusive date range, in statement order.
func (r *PgxEntryRepository) FindEntriesByAccountAndDateRange(ctx context.Context, tenantID, accountID string, startDate, endDate time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE tenant_id = $1 AND account_id = $2 AND effective_date BETWEEN $3 AND $4
		ORDER BY effective_date, posted_at;
	`
	return r.queryEntries(ctx, query, tenantID, accountID, startDate, endDate)
}

// ListJournals retrieves a page of journals most-recent-first. Journals are
// not stored rows; the page is derived by grouping entries on journal_id and
// paginated on the (effective_date, first posted_at) tuple.
func (r *PgxEntryRepository) ListJournals(ctx context.Context, tenantID string, filter portsrepo.ListJournalsFilter, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	fetchLimit := limit + 1

	query := `
		SELECT journal_id, effective_date, MIN(posted_at) AS first_posted_at
		FROM entries
		WHERE tenant_id = $1`
	args := []interface{}{tenantID}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		query += ` AND account_id = $` + strconv.Itoa(len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += ` AND effective_date >= $` + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += ` AND effective_date <= $` + strconv.Itoa(len(args))
	}

	query += ` GROUP BY journal_id, effective_date`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastPostedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		args = append(args, lastDate, lastPostedAt)
		query += ` HAVING (effective_date, MIN(posted_at)) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY effective_date DESC, first_posted_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journals for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	type journalHead struct {
		journalID     string
		effectiveDate time.Time
		postedAt      time.Time
	}
	heads := make([]journalHead, 0, fetchLimit)
	for rows.Next() {
		var h journalHead
		if scanErr := rows.Scan(&h.journalID, &h.effectiveDate, &h.postedAt); scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan journal row for tenant %s: %w", tenantID, scanErr)
		}
		heads = append(heads, h)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal rows for tenant %s: %w", tenantID, err)
	}

	var nextTokenVal *string
	if len(heads) > limit {
		heads = heads[:limit]
		last := heads[limit-1]
		token := pagination.EncodeToken(last.effectiveDate, last.postedAt)
		nextTokenVal = &token
	}

	if len(heads) == 0 {
		return []domain.Journal{}, nil, nil
	}

	journalIDs := make([]string, len(heads))
	for i, h := range heads {
		journalIDs[i] = h.journalID
	}
	entriesMap, err := r.findEntriesByJournalIDs(ctx, tenantID, journalIDs)
	if err != nil {
		return nil, nil, err
	}

	journals := make([]domain.Journal, len(heads))
	for i, h := range heads {
		journals[i] = *journalFromEntries(h.journalID, tenantID, entriesMap[h.journalID])
	}
	return journals, nextTokenVal, nil
}

// ListEntriesByAccount retrieves a page of an account's entries,
// most-recent-first, using the (effective_date, posted_at) cursor.
func (r *PgxEntryRepository) ListEntriesByAccount(ctx context.Context, tenantID, accountID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	fetchLimit := limit + 1

	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE tenant_id = $1 AND account_id = $2`
	args := []interface{}{tenantID, accountID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastPostedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		args = append(args, lastDate, lastPostedAt)
		query += ` AND (effective_date, posted_at) < ($3, $4)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY effective_date DESC, posted_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	entries, err := r.queryEntries(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EffectiveDate, last.PostedAt)
		nextTokenVal = &token
	}
	return entries, nextTokenVal, nil
}

// findEntriesByJournalIDs retrieves all entries for a list of journal IDs,
// grouped by journal ID.
func (r *PgxEntryRepository) findEntriesByJournalIDs(ctx context.Context, tenantID string, journalIDs []string) (map[string][]domain.LedgerEntry, error) {
	if len(journalIDs) == 0 {
		return map[string][]domain.LedgerEntry{}, nil
	}

	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE tenant_id = $1 AND journal_id = ANY($2)
		ORDER BY journal_id, posted_at;
	`
	entries, err := r.queryEntries(ctx, query, tenantID, journalIDs)
	if err != nil {
		return nil, err
	}

	entriesMap := make(map[string][]domain.LedgerEntry)
	for _, e := range entries {
		entriesMap[e.JournalID] = append(entriesMap[e.JournalID], e)
	}
	return entriesMap, nil
}

func (r *PgxEntryRepository) queryEntries(ctx context.Context, query string, args ...interface{}) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", scanErr)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	return mapping.ToDomainEntrySlice(entries), nil
}

func journalFromEntries(journalID, tenantID string, entries []domain.LedgerEntry) *domain.Journal {
	j := &domain.Journal{
		JournalID: journalID,
		TenantID:  tenantID,
		Entries:   entries,
	}
	if len(entries) > 0 {
		j.CurrencyCode = entries[0].CurrencyCode
		j.EffectiveDate = entries[0].EffectiveDate
		j.PostedAt = entries[0].PostedAt
	}
	return j
}
