package mailbox

import "errors"

// Error taxonomy. Every failure returned by this package wraps one of these
// sentinels, so callers can classify with errors.Is. Nothing in this package
// retries or recovers locally; errors always propagate to the immediate
// caller.
var (
	// ErrNotOK is returned when the server answers a request with a non-OK
	// status.
	ErrNotOK = errors.New("imap: server returned non-OK status")

	// ErrNoSuchMessage is returned when the server answered OK but the
	// targeted UID does not exist (empty fetch payload). Distinct from
	// ErrNotOK: the request itself succeeded.
	ErrNoSuchMessage = errors.New("imap: no message with that UID")

	// ErrMalformedResponse is returned when an OK response cannot be parsed
	// into the expected shape. It signals a server or implementation
	// mismatch, not a caller error.
	ErrMalformedResponse = errors.New("imap: malformed server response")

	// ErrNoSuchFolder is returned when a folder cannot be selected because
	// it does not exist.
	ErrNoSuchFolder = errors.New("imap: no such folder")

	// ErrUnsupported is returned by operations that have no honest IMAP
	// equivalent, such as in-place message replacement.
	ErrUnsupported = errors.New("imap: operation not supported")

	// ErrUnsupportedTarget is returned when a copy or move target is of a
	// kind this package cannot interpret.
	ErrUnsupportedTarget = errors.New("imap: unsupported copy target")

	// ErrEmptyMailbox is returned by PopItem on a mailbox with no messages.
	ErrEmptyMailbox = errors.New("imap: mailbox is empty")
)
