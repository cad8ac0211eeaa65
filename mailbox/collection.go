package mailbox

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/emersion/go-imap"
)

// Contains reports whether uid currently resolves to a message. It costs a
// full search; no count is maintained locally.
func (m *Mailbox) Contains(uid uint32) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uids, err := m.search("ALL")
	if err != nil {
		return false, err
	}
	return containsUID(uids, uid), nil
}

// Count returns the number of messages in the mailbox, at full-search cost.
func (m *Mailbox) Count() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uids, err := m.search("ALL")
	if err != nil {
		return 0, err
	}
	return len(uids), nil
}

// Keys returns the UID list as of this call. Server-side changes after the
// snapshot are not reflected.
func (m *Mailbox) Keys() ([]uint32, error) {
	return m.Search("ALL")
}

// Item pairs a UID with its message.
type Item struct {
	UID     uint32
	Message *Message
}

// Values fetches every message in the mailbox. This downloads the whole
// folder; mind the bandwidth.
func (m *Mailbox) Values() ([]*Message, error) {
	cur, err := m.Iterate()
	if err != nil {
		return nil, err
	}
	var msgs []*Message
	for cur.Next() {
		msgs = append(msgs, cur.Message())
	}
	return msgs, cur.Err()
}

// Items fetches every (UID, message) pair in the mailbox. Same cost caveat as
// Values.
func (m *Mailbox) Items() ([]Item, error) {
	cur, err := m.Iterate()
	if err != nil {
		return nil, err
	}
	var items []Item
	for cur.Next() {
		items = append(items, Item{UID: cur.UID(), Message: cur.Message()})
	}
	return items, cur.Err()
}

// Cursor walks a point-in-time UID snapshot, resolving one message per Next
// call. It is not a live view: messages appearing or vanishing after the
// snapshot are not reflected. Restart by taking a new Cursor.
type Cursor struct {
	m    *Mailbox
	uids []uint32
	pos  int
	uid  uint32
	msg  *Message
	err  error
}

// Iterate snapshots the UID list and returns a cursor over it.
func (m *Mailbox) Iterate() (*Cursor, error) {
	uids, err := m.Keys()
	if err != nil {
		return nil, err
	}
	return &Cursor{m: m, uids: uids}, nil
}

// Next advances to the next message, fetching it. It returns false at the
// end of the snapshot or on the first error; check Err afterwards.
func (c *Cursor) Next() bool {
	if c.err != nil || c.pos >= len(c.uids) {
		return false
	}
	c.uid = c.uids[c.pos]
	c.pos++
	c.msg, c.err = c.m.Get(c.uid)
	return c.err == nil
}

// UID returns the key of the current message.
func (c *Cursor) UID() uint32 { return c.uid }

// Message returns the current message.
func (c *Cursor) Message() *Message { return c.msg }

// Err returns the error that stopped iteration, if any.
func (c *Cursor) Err() error { return c.err }

// Delete marks the message with uid deleted, failing with ErrNoSuchMessage
// when it does not exist. The message is physically removed on the next
// Expunge.
func (m *Mailbox) Delete(uid uint32) error {
	return m.Remove(uid)
}

// Set would replace the message stored under uid. IMAP has no in-place
// replacement, and a delete+append emulation would silently change the UID
// and flags under the caller, so Set always fails with ErrUnsupported.
func (m *Mailbox) Set(uid uint32, msg *Message) error {
	return fmt.Errorf("%w: messages cannot be replaced in place", ErrUnsupported)
}

// Add appends msg to the mailbox, flushes, and returns the highest UID
// afterwards. That is a best-effort identification of the appended message,
// not a guarantee: another client appending concurrently can take the top
// slot, and the server does not universally report the new UID.
func (m *Mailbox) Add(msg *Message) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.add(msg)
}

func (m *Mailbox) add(msg *Message) (uint32, error) {
	raw, err := msg.Bytes()
	if err != nil {
		return 0, err
	}
	date := msg.InternalDate
	if date.IsZero() {
		date = time.Now()
	}
	if err := m.backend.Append(m.name, appendFlags(msg.Flags), date, bytes.NewReader(raw)); err != nil {
		return 0, fmt.Errorf("%w: append: %v", ErrNotOK, err)
	}
	if err := m.expunge(); err != nil {
		return 0, err
	}
	uids, err := m.search("UNDELETED")
	if err != nil {
		return 0, err
	}
	if len(uids) == 0 {
		return 0, fmt.Errorf("%w: mailbox reports no messages after append", ErrMalformedResponse)
	}
	return uids[len(uids)-1], nil
}

// appendFlags strips \Recent, which the server owns and rejects on APPEND.
func appendFlags(flags []string) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		if f == imap.RecentFlag {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Pop returns the message with uid, then deletes and expunges it.
func (m *Mailbox) Pop(uid uint32) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg, err := m.getFull(uid)
	if err != nil {
		return nil, err
	}
	if err := m.remove(uid); err != nil {
		return nil, err
	}
	if err := m.expunge(); err != nil {
		return nil, err
	}
	return msg, nil
}

// PopOrDefault is Pop, except a missing uid yields def instead of
// ErrNoSuchMessage. Other failures still surface as errors.
func (m *Mailbox) PopOrDefault(uid uint32, def *Message) (*Message, error) {
	msg, err := m.Pop(uid)
	if errors.Is(err, ErrNoSuchMessage) {
		return def, nil
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// PopItem removes and returns the first message in UID order, failing with
// ErrEmptyMailbox when none remain. Leftover \Deleted ghosts are expunged
// first so the UID list is trustworthy.
func (m *Mailbox) PopItem() (uint32, *Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.expunge(); err != nil {
		return 0, nil, err
	}
	uids, err := m.search("ALL")
	if err != nil {
		return 0, nil, err
	}
	if len(uids) == 0 {
		return 0, nil, ErrEmptyMailbox
	}
	uid := uids[0]
	msg, err := m.getFull(uid)
	if err != nil {
		return 0, nil, err
	}
	if err := m.remove(uid); err != nil {
		return 0, nil, err
	}
	if err := m.expunge(); err != nil {
		return 0, nil, err
	}
	return uid, msg, nil
}
