package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
	portssvc "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/services"
	"github.com/shokoko2010/Elhamd-sub014/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txManager   portsrepo.TransactionManager
}

// NewAccountService creates the chart-of-accounts registry.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, txManager portsrepo.TransactionManager) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: repo,
		txManager:   txManager,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// lookupAccount resolves a UUID-shaped argument by ID and anything else by code.
func lookupAccount(ctx context.Context, reader portsrepo.AccountReader, idOrCode string) (*domain.Account, error) {
	ref := strings.TrimSpace(idOrCode)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty account reference", domain.ErrAccountNotFound)
	}
	if uuid.Validate(ref) == nil {
		acc, err := reader.FindAccountByID(ctx, ref)
		if err == nil || !errors.Is(err, apperrors.ErrNotFound) {
			return acc, err
		}
	}
	return reader.FindAccountByCode(ctx, domain.NormalizeCode(ref))
}

// resolveParent validates a parent reference for accountID (empty for a new
// account) and returns the parent's ID. The ancestor walk stops at the root,
// at MaxAccountDepth, or at the first repeated node.
func resolveParent(ctx context.Context, reader portsrepo.AccountReader, accountID string, parentRef string) (string, error) {
	parent, err := lookupAccount(ctx, reader, parentRef)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: parent %s does not exist", domain.ErrInvalidParent, parentRef)
		}
		return "", err
	}

	visited := make(map[string]struct{}, 8)
	cur := parent
	for depth := 0; ; depth++ {
		if cur.AccountID == accountID {
			return "", fmt.Errorf("%w: %s would become its own ancestor", domain.ErrInvalidParent, accountID)
		}
		if _, seen := visited[cur.AccountID]; seen {
			return "", fmt.Errorf("%w: cycle above %s", domain.ErrInvalidParent, parent.AccountID)
		}
		if depth >= domain.MaxAccountDepth {
			return "", fmt.Errorf("%w: hierarchy deeper than %d", domain.ErrInvalidParent, domain.MaxAccountDepth)
		}
		visited[cur.AccountID] = struct{}{}
		if cur.ParentAccountID == nil {
			return parent.AccountID, nil
		}
		next, err := reader.FindAccountByID(ctx, *cur.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return "", fmt.Errorf("%w: dangling ancestor %s", domain.ErrInvalidParent, *cur.ParentAccountID)
			}
			return "", err
		}
		cur = next
	}
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	code := domain.NormalizeCode(req.Code)
	if code == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: account code and name are required", apperrors.ErrValidation)
	}

	account := domain.Account{
		AccountID:     uuid.NewString(),
		Code:          code,
		Name:          strings.TrimSpace(req.Name),
		AccountType:   domain.AccountType(strings.ToUpper(string(req.AccountType))),
		NormalBalance: domain.NormalBalance(strings.ToUpper(string(req.NormalBalance))),
		Description:   req.Description,
		IsActive:      true,
		AuditFields:   domain.NewAuditFields(actorID, s.now()),
	}
	if err := account.ResolveNormalBalance(); err != nil {
		s.LogDebug(ctx, "Rejected account definition", slog.String("code", code), slog.String("error", err.Error()))
		return nil, err
	}

	if _, err := s.accountRepo.FindAccountByCode(ctx, code); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateCode, code)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code", slog.String("code", code))
		return nil, err
	}

	if req.ParentAccountID != nil && strings.TrimSpace(*req.ParentAccountID) != "" {
		parentID, err := resolveParent(ctx, s.accountRepo, account.AccountID, *req.ParentAccountID)
		if err != nil {
			return nil, err
		}
		account.ParentAccountID = &parentID
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with another create of the same code.
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateCode, code)
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) LookupAccount(ctx context.Context, idOrCode string) (*domain.Account, error) {
	account, err := lookupAccount(ctx, s.accountRepo, idOrCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up account", slog.String("ref", idOrCode))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	filter := domain.AccountFilter{
		AccountType: params.AccountType,
		ActiveOnly:  params.ActiveOnly,
		Limit:       pageSize(params.Limit),
		NextToken:   params.NextToken,
	}
	accounts, nextToken, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", params.Limit))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	resp := dto.ToListAccountsResponse(accounts, nextToken)
	return &resp, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	target, err := lookupAccount(ctx, s.accountRepo, accountID)
	if err != nil {
		return nil, err
	}

	var updated *domain.Account
	reparent := req.ParentAccountID != nil && strings.TrimSpace(*req.ParentAccountID) != ""
	err = s.txManager.WithTx(ctx, func(ctx context.Context, store portsrepo.Store) error {
		if reparent {
			if err := store.Accounts().LockHierarchy(ctx); err != nil {
				return err
			}
		}
		account, err := store.Accounts().LockAccountForUpdate(ctx, target.AccountID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
			}
			account.Name = name
		}
		if req.Description != nil {
			account.Description = *req.Description
		}
		if req.ParentAccountID != nil {
			if strings.TrimSpace(*req.ParentAccountID) == "" {
				account.ParentAccountID = nil
			} else {
				parentID, err := resolveParent(ctx, store.Accounts(), account.AccountID, *req.ParentAccountID)
				if err != nil {
					return err
				}
				account.ParentAccountID = &parentID
			}
		}
		account.Touch(actorID, s.now())

		if err := store.Accounts().UpdateAccount(ctx, *account); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update account", slog.String("account_id", target.AccountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", updated.AccountID))
	return updated, nil
}

// DeactivateAccount refuses while the account carries a posted balance or is
// referenced by a payroll batch that has not reached a terminal state.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) (*domain.Account, error) {
	target, err := lookupAccount(ctx, s.accountRepo, accountID)
	if err != nil {
		return nil, err
	}

	var result *domain.Account
	err = s.txManager.WithTx(ctx, func(ctx context.Context, store portsrepo.Store) error {
		account, err := store.Accounts().LockAccountForUpdate(ctx, target.AccountID)
		if err != nil {
			return err
		}
		if !account.IsActive {
			result = account
			return nil
		}

		totals, err := store.Reporting().SumPostedByAccount(ctx, account.AccountID)
		if err != nil {
			return err
		}
		if balance := account.SignedBalance(totals.Debits, totals.Credits); !balance.IsZero() {
			return fmt.Errorf("%w: %s has balance %s", domain.ErrAccountInUse, account.Code, balance)
		}

		open, err := store.Payroll().CountOpenBatchesUsingAccount(ctx, account.AccountID)
		if err != nil {
			return err
		}
		if open > 0 {
			return fmt.Errorf("%w: %s is referenced by %d open payroll batch(es)", domain.ErrAccountInUse, account.Code, open)
		}

		now := s.now()
		if err := store.Accounts().DeactivateAccount(ctx, account.AccountID, actorID, now); err != nil {
			return err
		}
		account.IsActive = false
		account.Touch(actorID, now)
		result = account
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", target.AccountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", result.AccountID))
	return result, nil
}
