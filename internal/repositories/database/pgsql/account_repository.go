package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
	"github.com/shokoko2010/Elhamd-sub014/internal/models"
	"github.com/shokoko2010/Elhamd-sub014/internal/utils/mapping"
	"github.com/shokoko2010/Elhamd-sub014/internal/utils/pagination"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(db DBTX) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// accountHierarchyLockKey is the advisory lock taken by re-parenting transactions.
const accountHierarchyLockKey int64 = 0x6c6564676572 // "ledger"

const accountColumns = `account_id, code, name, account_type, normal_balance, parent_account_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.NormalBalance,
		&m.ParentAccountID,
		&m.Description,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func (r *PgxAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, domain.ErrAccountNotFound, "query accounts")
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, translateError(err, domain.ErrAccountNotFound, "scan account")
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, domain.ErrAccountNotFound, "iterate accounts")
	}
	return accounts, nil
}

func (r *PgxAccountRepository) findOne(ctx context.Context, query string, key string) (*domain.Account, error) {
	acc, err := scanAccount(r.DB.QueryRow(ctx, query, key))
	if err != nil {
		return nil, translateError(err, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, key), "find account")
	}
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	if !isUUID(accountID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`, accountID)
}

// FindAccountByCode retrieves an account by its chart-of-accounts code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = $1`, code)
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return r.findMany(ctx, accountIDs, "")
}

func (r *PgxAccountRepository) findMany(ctx context.Context, accountIDs []string, lockClause string) (map[string]domain.Account, error) {
	ids := validUUIDs(accountIDs)
	accountsMap := make(map[string]domain.Account, len(ids))
	if len(ids) == 0 {
		return accountsMap, nil
	}

	// Ordered by id so concurrent posters take row locks in the same order.
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1::uuid[]) ORDER BY account_id` + lockClause
	accounts, err := r.queryAccounts(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		accountsMap[acc.AccountID] = acc
	}
	return accountsMap, nil
}

// ListAccounts retrieves a page of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, *string, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.AccountType != nil {
		query += fmt.Sprintf(" AND account_type = $%d", argPos)
		args = append(args, string(*filter.AccountType))
		argPos++
	}
	if filter.ActiveOnly {
		query += " AND is_active = TRUE"
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += fmt.Sprintf(" AND code > $%d", argPos)
		args = append(args, fields[0])
		argPos++
	}

	// Fetch one extra row to know whether another page exists
	query += fmt.Sprintf(" ORDER BY code ASC LIMIT $%d", argPos)
	args = append(args, filter.Limit+1)

	accounts, err := r.queryAccounts(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(accounts) > filter.Limit {
		accounts = accounts[:filter.Limit]
		token := pagination.EncodeMultiFieldToken(accounts[len(accounts)-1].Code)
		nextToken = &token
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nextToken, nil
}

// ListAllAccounts returns the whole chart ordered by code.
func (r *PgxAccountRepository) ListAllAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := r.queryAccounts(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY code ASC`)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, code, name, account_type, normal_balance, parent_account_id, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.DB.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.AccountType,
		m.NormalBalance,
		m.ParentAccountID,
		m.Description,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return translateError(err, domain.ErrAccountNotFound, "save account "+m.Code)
}

// UpdateAccount updates an existing account's name, description and parent.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $1, description = $2, parent_account_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $6;
	`
	cmdTag, err := r.DB.Exec(ctx, query, m.Name, m.Description, m.ParentAccountID, m.LastUpdatedAt, m.LastUpdatedBy, m.AccountID)
	if err != nil {
		return translateError(err, domain.ErrAccountNotFound, "update account "+m.AccountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, m.AccountID)
	}
	return nil
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, actorID string, now time.Time) error {
	if !isUUID(accountID) {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE account_id = $3;
	`
	cmdTag, err := r.DB.Exec(ctx, query, now, actorID, accountID)
	if err != nil {
		return translateError(err, domain.ErrAccountNotFound, "deactivate account "+accountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	return nil
}

// LockAccountsForPosting takes FOR SHARE locks: concurrent postings proceed,
// a deactivation (FOR UPDATE) waits for them.
func (r *PgxAccountRepository) LockAccountsForPosting(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return r.findMany(ctx, accountIDs, " FOR SHARE")
}

// LockAccountForUpdate exclusively locks one account row.
func (r *PgxAccountRepository) LockAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	if !isUUID(accountID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	return r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1 FOR UPDATE`, accountID)
}

// LockHierarchy takes a transaction-scoped advisory lock. Ancestor walks that
// follow it read parents committed by any earlier re-parent.
func (r *PgxAccountRepository) LockHierarchy(ctx context.Context) error {
	if _, err := r.DB.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, accountHierarchyLockKey); err != nil {
		return apperrors.NewAppError(500, "failed to lock account hierarchy", err)
	}
	return nil
}
