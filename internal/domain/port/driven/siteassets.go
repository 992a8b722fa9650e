// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericfisherdev/gagesite/internal/domain/model"
)

// ErrAssetNotFound indicates the requested site asset does not exist.
var ErrAssetNotFound = errors.New("site asset not found")

// StatusError reports a non-2xx response from a remote site host.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// A ref names a site asset either as a slash-separated path relative to the
// site root ("partials/header.html") or as an absolute http(s) URL.

// PartialSource fetches shared HTML partials such as the header and footer.
// Implementations never cache: each call reads the partial afresh.
type PartialSource interface {
	FetchPartial(ctx context.Context, ref string) ([]byte, error)
}

// StaffSource loads the ordered staff directory from a JSON array.
// Implementations bypass any cache.
type StaffSource interface {
	LoadStaff(ctx context.Context, ref string) ([]model.StaffRecord, error)
}
