package domain_test

import (
	"testing"

	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
	"github.com/shokoko2010/Elhamd-sub014/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidateLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.PostingLine
		wantErr error
	}{
		{
			name: "balanced two lines",
			lines: []domain.PostingLine{
				{AccountID: "cash", Debit: 50000},
				{AccountID: "sales", Credit: 50000},
			},
		},
		{
			name: "balanced split credit",
			lines: []domain.PostingLine{
				{AccountID: "cash", Debit: 10000},
				{AccountID: "sales", Credit: 9000},
				{AccountID: "fees", Credit: 1000},
			},
		},
		{
			name:    "single line",
			lines:   []domain.PostingLine{{AccountID: "cash", Debit: 100}},
			wantErr: domain.ErrEmptyEntry,
		},
		{
			name:    "no lines",
			wantErr: domain.ErrEmptyEntry,
		},
		{
			name: "both sides set",
			lines: []domain.PostingLine{
				{AccountID: "cash", Debit: 100, Credit: 100},
				{AccountID: "sales", Credit: 100},
			},
			wantErr: domain.ErrMalformedLine,
		},
		{
			name: "both sides zero",
			lines: []domain.PostingLine{
				{AccountID: "cash"},
				{AccountID: "sales", Credit: 100},
			},
			wantErr: domain.ErrMalformedLine,
		},
		{
			name: "negative debit",
			lines: []domain.PostingLine{
				{AccountID: "cash", Debit: -100},
				{AccountID: "sales", Credit: -100},
			},
			wantErr: domain.ErrMalformedLine,
		},
		{
			name: "missing account",
			lines: []domain.PostingLine{
				{Debit: 100},
				{AccountID: "sales", Credit: 100},
			},
			wantErr: domain.ErrMalformedLine,
		},
		{
			name: "unbalanced",
			lines: []domain.PostingLine{
				{AccountID: "cash", Debit: 10000},
				{AccountID: "sales", Credit: 9000},
			},
			wantErr: domain.ErrUnbalancedEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateLines(tt.lines)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestValidateLines_TotalsCannotWrap(t *testing.T) {
	const top = domain.Money(1) << 53
	// 2048 lines at the cap sum to 2^64 and wrap to zero in int64.
	lines := make([]domain.PostingLine, 0, 2050)
	for range 2048 {
		lines = append(lines, domain.PostingLine{AccountID: "cash", Debit: top})
	}
	lines = append(lines,
		domain.PostingLine{AccountID: "cash", Debit: 100},
		domain.PostingLine{AccountID: "sales", Credit: 100},
	)

	err := domain.ValidateLines(lines)
	assert.ErrorIs(t, err, domain.ErrUnbalancedEntry)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.NoError(t, domain.ValidateLines([]domain.PostingLine{
		{AccountID: "cash", Debit: top},
		{AccountID: "sales", Credit: top},
	}))
}

func TestReversalLines(t *testing.T) {
	items := []domain.JournalEntryItem{
		{LineNo: 1, AccountID: "cash", Debit: 50000, Memo: "sale"},
		{LineNo: 2, AccountID: "sales", Credit: 50000},
	}

	lines := domain.ReversalLines(items)

	assert.Equal(t, []domain.PostingLine{
		{AccountID: "cash", Credit: 50000, Memo: "sale"},
		{AccountID: "sales", Debit: 50000},
	}, lines)
	assert.NoError(t, domain.ValidateLines(lines))
	// source items untouched
	assert.Equal(t, domain.Money(50000), items[0].Debit)
	assert.Equal(t, domain.Money(0), items[0].Credit)
}

func TestJournalEntryItem_Side(t *testing.T) {
	debit := domain.JournalEntryItem{Debit: 100}
	credit := domain.JournalEntryItem{Credit: 250}

	assert.Equal(t, domain.Debit, debit.Side())
	assert.Equal(t, domain.Money(100), debit.Amount())
	assert.Equal(t, domain.Credit, credit.Side())
	assert.Equal(t, domain.Money(250), credit.Amount())
}

func TestJournalEntry_TotalsAndAccounts(t *testing.T) {
	entry := domain.JournalEntry{Items: []domain.JournalEntryItem{
		{AccountID: "a", Debit: 300},
		{AccountID: "b", Credit: 100},
		{AccountID: "a", Debit: 100},
		{AccountID: "c", Credit: 300},
	}}

	debits, credits := entry.Totals()
	assert.Equal(t, domain.Money(400), debits)
	assert.Equal(t, domain.Money(400), credits)
	assert.Equal(t, []string{"a", "b", "c"}, entry.AccountIDs())
}
