package audit

import (
	"fmt"

	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", clmerr.ErrValidation, msg)
}
