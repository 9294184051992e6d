package errors

import "fmt"

// Wrap prefixes err with msg and keeps it matchable with errors.Is, so a
// caller can still test for ErrRemoteAhead or ErrNotGitRepo after context is
// added:
//
//	return errors.Wrap(err, "failed to load session state")
//
// A nil err stays nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted prefix:
//
//	return errors.Wrapf(ErrInvalidBranchName, "%q", name)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
