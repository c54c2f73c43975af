package storeerr

import (
	"github.com/inkpress/blog-backend/internal/errs"
	"github.com/inkpress/blog-backend/internal/store"
	"github.com/pkg/errors"
)

// HandleError maps an error from the record access layer to an
// *errs.HTTPError suitable for the API response.
//
// Rules:
//   - store.ErrNotFound -> 404 ("No such document!")
//   - already-classified *errs.HTTPError -> returned unchanged
//   - anything else -> 500 carrying the raw store message
func HandleError(err error) *errs.HTTPError {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	if errors.Is(err, store.ErrNotFound) {
		return errs.NewNotFoundError("No such document!", false, nil)
	}

	return errs.NewStoreError(err.Error())
}
