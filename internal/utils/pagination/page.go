package pagination

import (
	"fmt"
	"math"

	"github.com/SscSPs/fxrates_backend/internal/apperrors"
)

// Defaults applied by the HTTP layer when the query string omits them.
const (
	DefaultPageIndex = 0
	DefaultPageSize  = 10
)

// Validate checks a 0-based page index and a page size.
func Validate(pageIndex, pageSize int) error {
	if pageIndex < 0 {
		return apperrors.NewValidationError(fmt.Sprintf("page index must not be negative, got %d", pageIndex))
	}
	if pageSize <= 0 {
		return apperrors.NewValidationError(fmt.Sprintf("page size must be positive, got %d", pageSize))
	}
	return nil
}

// Offset returns the number of rows preceding page pageIndex, saturating at math.MaxInt.
func Offset(pageIndex, pageSize int) int {
	if pageSize > 0 && pageIndex > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return pageIndex * pageSize
}

// PastEnd reports whether page pageIndex holds none of total items.
// It never multiplies, so huge indexes cannot overflow.
func PastEnd(pageIndex, pageSize, total int) bool {
	return total <= 0 || pageIndex > (total-1)/pageSize
}
