package mailbox

import (
	"fmt"
	"time"

	"github.com/emersion/go-imap"
)

// Flags returns the current flag set of the message with uid: system flags
// like "\\Seen" or "\\Deleted" plus any keyword flags. A message with no
// flags yields an empty, non-nil slice. Flags can change server-side at any
// moment, so they are never cached and every call round-trips.
func (m *Mailbox) Flags(uid uint32) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getFlags(uid)
}

func (m *Mailbox) getFlags(uid uint32) ([]string, error) {
	msg, err := m.fetchOne(uid, []imap.FetchItem{imap.FetchFlags, imap.FetchUid})
	if err != nil {
		return nil, err
	}
	flags := make([]string, 0, len(msg.Flags))
	flags = append(flags, msg.Flags...)
	return flags, nil
}

// AddFlags adds each flag to the message with uid. Flags go out one STORE at
// a time, not as a batch: a failure part-way leaves the earlier flags applied,
// and the returned error names the flag that failed.
func (m *Mailbox) AddFlags(uid uint32, flags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeEach(uid, imap.AddFlags, flags)
}

// RemoveFlags removes each flag from the message with uid, with the same
// one-STORE-per-flag semantics as AddFlags.
func (m *Mailbox) RemoveFlags(uid uint32, flags ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeEach(uid, imap.RemoveFlags, flags)
}

// SetFlags replaces the whole flag set of the message with uid in a single
// STORE.
func (m *Mailbox) SetFlags(uid uint32, flags []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store(uid, imap.SetFlags, flags)
}

func (m *Mailbox) storeEach(uid uint32, op imap.FlagsOp, flags []string) error {
	for _, flag := range flags {
		if err := m.store(uid, op, []string{flag}); err != nil {
			return fmt.Errorf("flag %q: %w", flag, err)
		}
	}
	return nil
}

func (m *Mailbox) store(uid uint32, op imap.FlagsOp, flags []string) error {
	seqset := new(imap.SeqSet)
	seqset.AddNum(uid)
	item := imap.FormatFlagsOp(op, true)
	value := make([]interface{}, 0, len(flags))
	for _, f := range flags {
		value = append(value, f)
	}
	if err := m.backend.UidStore(seqset, item, value, nil); err != nil {
		return fmt.Errorf("%w: store on %d: %v", ErrNotOK, uid, err)
	}
	return nil
}

// Size returns the byte count of the message with uid.
func (m *Mailbox) Size(uid uint32) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getSize(uid)
}

func (m *Mailbox) getSize(uid uint32) (uint32, error) {
	msg, err := m.fetchOne(uid, []imap.FetchItem{imap.FetchRFC822Size, imap.FetchUid})
	if err != nil {
		return 0, err
	}
	if msg.Size == 0 {
		return 0, fmt.Errorf("%w: no RFC822.SIZE for %d", ErrMalformedResponse, uid)
	}
	return msg.Size, nil
}

// InternalDate returns the server-assigned received timestamp of the message
// with uid. This is not the Date header inside the message content.
func (m *Mailbox) InternalDate(uid uint32) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getInternalDate(uid)
}

func (m *Mailbox) getInternalDate(uid uint32) (time.Time, error) {
	msg, err := m.fetchOne(uid, []imap.FetchItem{imap.FetchInternalDate, imap.FetchUid})
	if err != nil {
		return time.Time{}, err
	}
	if msg.InternalDate.IsZero() {
		return time.Time{}, fmt.Errorf("%w: no INTERNALDATE for %d", ErrMalformedResponse, uid)
	}
	return msg.InternalDate, nil
}
