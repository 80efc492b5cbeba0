package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
	"github.com/shokoko2010/Elhamd-sub014/internal/utils/pagination"
)

type accountRepository struct {
	h *handle
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	acc, ok := r.h.read().accounts[accountID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	return &acc, nil
}

func (r *accountRepository) FindAccountByCode(_ context.Context, code string) (*domain.Account, error) {
	for _, acc := range r.h.read().accounts {
		if acc.Code == code {
			return &acc, nil
		}
	}
	return nil, fmt.Errorf("%w: code %s", domain.ErrAccountNotFound, code)
}

func (r *accountRepository) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	st := r.h.read()
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := st.accounts[id]; ok {
			out[id] = acc
		}
	}
	return out, nil
}

func sortedAccounts(st *state) []domain.Account {
	all := make([]domain.Account, 0, len(st.accounts))
	for _, acc := range st.accounts {
		all = append(all, acc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return all
}

func (r *accountRepository) ListAccounts(_ context.Context, filter domain.AccountFilter) ([]domain.Account, *string, error) {
	after := ""
	if filter.NextToken != nil && *filter.NextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = fields[0]
	}

	page := make([]domain.Account, 0, filter.Limit)
	var nextToken *string
	for _, acc := range sortedAccounts(r.h.read()) {
		if after != "" && acc.Code <= after {
			continue
		}
		if filter.ActiveOnly && !acc.IsActive {
			continue
		}
		if filter.AccountType != nil && acc.AccountType != *filter.AccountType {
			continue
		}
		if filter.Limit > 0 && len(page) == filter.Limit {
			token := pagination.EncodeMultiFieldToken(page[len(page)-1].Code)
			nextToken = &token
			break
		}
		page = append(page, acc)
	}
	return page, nextToken, nil
}

func (r *accountRepository) ListAllAccounts(_ context.Context) ([]domain.Account, error) {
	return sortedAccounts(r.h.read()), nil
}

func (r *accountRepository) SaveAccount(_ context.Context, account domain.Account) error {
	return r.h.write(func(st *state) error {
		if _, ok := st.accounts[account.AccountID]; ok {
			return duplicate("account id " + account.AccountID)
		}
		for _, existing := range st.accounts {
			if existing.Code == account.Code {
				return duplicate("account code " + account.Code)
			}
		}
		if account.ParentAccountID != nil {
			if _, ok := st.accounts[*account.ParentAccountID]; !ok {
				return fmt.Errorf("%w: parent %s", domain.ErrInvalidParent, *account.ParentAccountID)
			}
		}
		st.accounts[account.AccountID] = account
		return nil
	})
}

func (r *accountRepository) UpdateAccount(_ context.Context, account domain.Account) error {
	return r.h.write(func(st *state) error {
		current, ok := st.accounts[account.AccountID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, account.AccountID)
		}
		current.Name = account.Name
		current.Description = account.Description
		current.ParentAccountID = account.ParentAccountID
		current.LastUpdatedAt = account.LastUpdatedAt
		current.LastUpdatedBy = account.LastUpdatedBy
		st.accounts[account.AccountID] = current
		return nil
	})
}

func (r *accountRepository) DeactivateAccount(_ context.Context, accountID string, actorID string, now time.Time) error {
	return r.h.write(func(st *state) error {
		acc, ok := st.accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
		}
		acc.IsActive = false
		acc.Touch(actorID, now)
		st.accounts[accountID] = acc
		return nil
	})
}

// LockAccountsForPosting has nothing to lock: the store runs one writer at a time.
func (r *accountRepository) LockAccountsForPosting(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return r.FindAccountsByIDs(ctx, accountIDs)
}

func (r *accountRepository) LockAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.FindAccountByID(ctx, accountID)
}

// LockHierarchy is a no-op: writers already run one at a time.
func (r *accountRepository) LockHierarchy(ctx context.Context) error {
	return nil
}
