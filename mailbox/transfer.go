package mailbox

import (
	"fmt"

	"github.com/emersion/go-imap"
)

// Sink is a message collection that can receive copies of messages from this
// mailbox: typically another *Mailbox bound to a different server, but
// anything implementing the add/flush lifecycle works. Lock and Unlock are
// advisory; this package's own implementation of them does nothing.
type Sink interface {
	Add(msg *Message) (uint32, error)
	Flush() error
	Lock()
	Unlock()
}

type targetKind int

const (
	targetInvalid targetKind = iota
	// targetSameServer: a folder on the same session. Copies happen server
	// side, the message is never downloaded.
	targetSameServer
	// targetForeign: a generic sink. No cross-store primitive exists, so
	// the message is fully materialized and handed over.
	targetForeign
)

// copyTarget is the resolved form of a copy/move destination.
type copyTarget struct {
	kind   targetKind
	folder string
	sink   Sink
}

// resolveTarget classifies target exactly once, up front. Accepted kinds: a
// folder name on the same server (string), another *Mailbox (same-session
// ones collapse to their folder name), or any Sink.
func (m *Mailbox) resolveTarget(target interface{}) (copyTarget, error) {
	switch t := target.(type) {
	case string:
		return copyTarget{kind: targetSameServer, folder: t}, nil
	case *Mailbox:
		if t.backend == m.backend {
			return copyTarget{kind: targetSameServer, folder: t.name}, nil
		}
		return copyTarget{kind: targetForeign, sink: t}, nil
	case Sink:
		return copyTarget{kind: targetForeign, sink: t}, nil
	default:
		return copyTarget{}, fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
	}
}

// Copy copies the message with uid to target. Copying a message onto its own
// folder is a no-op. Foreign targets receive the fully materialized message
// through their add/flush lifecycle; flags beyond the standard set may not
// survive the trip.
func (m *Mailbox) Copy(uid uint32, target interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ct, err := m.resolveTarget(target)
	if err != nil {
		return err
	}
	return m.copyResolved(uid, ct)
}

func (m *Mailbox) copyResolved(uid uint32, ct copyTarget) error {
	switch ct.kind {
	case targetSameServer:
		if ct.folder == m.name {
			return nil
		}
		seqset := new(imap.SeqSet)
		seqset.AddNum(uid)
		if err := m.backend.UidCopy(seqset, ct.folder); err != nil {
			return fmt.Errorf("%w: copy %d to %s: %v", ErrNotOK, uid, ct.folder, err)
		}
		return nil
	case targetForeign:
		msg, err := m.getFull(uid)
		if err != nil {
			return err
		}
		ct.sink.Lock()
		defer ct.sink.Unlock()
		if _, err := ct.sink.Add(msg); err != nil {
			return fmt.Errorf("adding %d to target: %w", uid, err)
		}
		return ct.sink.Flush()
	}
	return fmt.Errorf("%w", ErrUnsupportedTarget)
}

// Move copies uid to target and then marks the source message deleted. The
// two steps are not atomic: IMAP has no cross-folder move primitive, so a
// crash in between leaves the message visible in both places. No compensation
// is attempted; callers needing atomicity must layer it themselves.
func (m *Mailbox) Move(uid uint32, target interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.move(uid, target)
}

func (m *Mailbox) move(uid uint32, target interface{}) error {
	ct, err := m.resolveTarget(target)
	if err != nil {
		return err
	}
	if err := m.copyResolved(uid, ct); err != nil {
		return err
	}
	if ct.kind == targetSameServer && ct.folder == m.name {
		// Moved onto itself: nothing was copied, nothing to delete.
		return nil
	}
	if err := m.store(uid, imap.AddFlags, []string{imap.DeletedFlag}); err != nil {
		return fmt.Errorf("marking %d deleted after copy: %w", uid, err)
	}
	return nil
}

// Discard drops uid from this mailbox: a move into the configured trash
// target when one is set, otherwise an in-place \Deleted mark. Either way the
// message lingers until Expunge.
func (m *Mailbox) Discard(uid uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.discard(uid)
}

func (m *Mailbox) discard(uid uint32) error {
	if m.trash == nil {
		return m.store(uid, imap.AddFlags, []string{imap.DeletedFlag})
	}
	return m.move(uid, m.trash)
}

// Remove is Discard with an existence check first: it fails with
// ErrNoSuchMessage when uid is not currently in the mailbox.
func (m *Mailbox) Remove(uid uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remove(uid)
}

func (m *Mailbox) remove(uid uint32) error {
	uids, err := m.search("ALL")
	if err != nil {
		return err
	}
	if !containsUID(uids, uid) {
		return fmt.Errorf("%w: %d", ErrNoSuchMessage, uid)
	}
	return m.discard(uid)
}

// Expunge permanently removes every message marked \Deleted. Irreversible.
func (m *Mailbox) Expunge() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.expunge()
}

func (m *Mailbox) expunge() error {
	if err := m.backend.Expunge(nil); err != nil {
		return fmt.Errorf("%w: expunge: %v", ErrNotOK, err)
	}
	return nil
}

// Flush is Expunge under the name the Sink lifecycle uses.
func (m *Mailbox) Flush() error {
	return m.Expunge()
}

// Clear discards every undeleted message and expunges.
func (m *Mailbox) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	uids, err := m.search("UNDELETED")
	if err != nil {
		return err
	}
	for _, uid := range uids {
		if err := m.discard(uid); err != nil {
			return err
		}
	}
	return m.expunge()
}

// CopyAllTo copies every message in the mailbox to target and reports how
// many were copied. The source is left untouched. Handy for folder backups.
func (m *Mailbox) CopyAllTo(target interface{}) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ct, err := m.resolveTarget(target)
	if err != nil {
		return 0, err
	}
	uids, err := m.search("ALL")
	if err != nil {
		return 0, err
	}
	for i, uid := range uids {
		if err := m.copyResolved(uid, ct); err != nil {
			return i, err
		}
	}
	return len(uids), nil
}

func containsUID(uids []uint32, uid uint32) bool {
	for _, u := range uids {
		if u == uid {
			return true
		}
	}
	return false
}
