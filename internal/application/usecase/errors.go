// Package usecase contains application-level services.
package usecase

import (
	"errors"
	"fmt"
)

// ErrDuplicateKey is reported inside a StoreError when a URL is recorded twice.
var ErrDuplicateKey = errors.New("article url already recorded")

// FetchError reports a feed that could not be retrieved or parsed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StoreError reports a fault in the seen-article store.
// Op is one of "open", "exists" or "record".
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NotifyError reports a message the mail transport rejected.
type NotifyError struct {
	Subject string
	Err     error
}

func (e *NotifyError) Error() string {
	return fmt.Sprintf("notify %q: %v", e.Subject, e.Err)
}

func (e *NotifyError) Unwrap() error { return e.Err }
