package memory

import (
	"fmt"

	"github.com/shokoko2010/Elhamd-sub014/internal/apperrors"
)

var errReadOnly = apperrors.NewAppError(500, "write attempted in a read-only snapshot", nil)

func duplicate(what string) error {
	return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, what)
}
