package domain

import (
	"fmt"

	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
)

// Ledger and payroll errors. Each wraps an apperrors category so callers can
// match either the specific failure or its class with errors.Is.
var (
	ErrDuplicateCode        = fmt.Errorf("%w: account code already exists", apperrors.ErrDuplicate)
	ErrInvalidNormalBalance = fmt.Errorf("%w: normal balance contradicts account type", apperrors.ErrValidation)
	ErrInvalidParent        = fmt.Errorf("%w: invalid parent account", apperrors.ErrValidation)
	ErrAccountInUse         = fmt.Errorf("%w: account is in use", apperrors.ErrConflict)

	ErrEmptyEntry      = fmt.Errorf("%w: journal entry needs at least two lines", apperrors.ErrValidation)
	ErrInvalidAccount  = fmt.Errorf("%w: account is missing or inactive", apperrors.ErrValidation)
	ErrMalformedLine   = fmt.Errorf("%w: line must carry exactly one positive side", apperrors.ErrValidation)
	ErrUnbalancedEntry = fmt.Errorf("%w: debits do not equal credits", apperrors.ErrValidation)
	ErrAlreadyVoided   = fmt.Errorf("%w: journal entry is not posted", apperrors.ErrConflict)

	ErrInvalidTransition = fmt.Errorf("%w: invalid payroll batch transition", apperrors.ErrConflict)

	ErrAccountNotFound = fmt.Errorf("%w: account", apperrors.ErrNotFound)
	ErrEntryNotFound   = fmt.Errorf("%w: journal entry", apperrors.ErrNotFound)
	ErrBatchNotFound   = fmt.Errorf("%w: payroll batch", apperrors.ErrNotFound)
	ErrRecordNotFound  = fmt.Errorf("%w: payroll record", apperrors.ErrNotFound)
)
