package memory

import (
	"context"

	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	portsrepo "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/repositories"
)

type reportingRepository struct {
	h *handle
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

func (r *reportingRepository) SumPostedByAccount(ctx context.Context, accountID string) (domain.AccountTotals, error) {
	all, err := r.SumPostedByAllAccounts(ctx)
	if err != nil {
		return domain.AccountTotals{}, err
	}
	totals := all[accountID]
	totals.AccountID = accountID
	return totals, nil
}

func (r *reportingRepository) SumPostedByAllAccounts(_ context.Context) (map[string]domain.AccountTotals, error) {
	out := make(map[string]domain.AccountTotals)
	for _, e := range r.h.read().entries {
		for _, it := range e.Items {
			t := out[it.AccountID]
			t.AccountID = it.AccountID
			t.Debits += it.Debit
			t.Credits += it.Credit
			out[it.AccountID] = t
		}
	}
	return out, nil
}

func (r *reportingRepository) CountEntriesByStatus(_ context.Context) (map[domain.EntryStatus]int, error) {
	out := make(map[domain.EntryStatus]int)
	for _, e := range r.h.read().entries {
		out[e.Status]++
	}
	return out, nil
}
