package errs

import (
	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is reports whether err matches target through its wrap chain or through a
// mark attached with Mark. The standard library's errors.Is cannot see marks,
// so every branch point on a marked sentinel must go through this.
func Is(err error, target error) bool {
	return cr.Is(err, target)
}
