// Package mailbox presents a single IMAP folder as a keyed collection of
// messages addressed by UID. It hides the session protocol's sequence-number
// model, its SELECT-ed folder state and its ambiguous "no such message"
// signals behind a mapping-like API: membership, iteration, get/delete,
// pop, add, plus flag manipulation and copy/move/discard choreography.
//
// The package talks to the server exclusively through the Backend interface;
// connecting, authenticating and MIME decoding live elsewhere.
package mailbox

import (
	"fmt"
	"sync"
)

// Transform post-processes a freshly assembled message into whatever
// representation the caller wants. The default is the identity.
type Transform func(*Message) (*Message, error)

// Mailbox binds a Backend session to one folder on it and exposes the
// folder's UID space as a keyed collection.
//
// UIDs are stable for the lifetime of the folder and never reused; they are
// the only message identity this package exposes. Sequence numbers are never
// surfaced.
type Mailbox struct {
	mu      sync.Mutex
	backend Backend
	name    string

	// trash, when set, redirects Discard into a move instead of an
	// in-place \Deleted mark. Same kinds as a Copy target.
	trash interface{}

	transform Transform

	// Single-slot raw message cache. Owned by this Mailbox alone and
	// invalidated on folder switch and reconnect.
	cachedUID uint32
	cachedRaw []byte
}

// Open selects name on b and returns a Mailbox bound to it. When the folder
// does not exist it is created if create is true, otherwise Open fails with
// ErrNoSuchFolder.
func Open(b Backend, name string, create bool) (*Mailbox, error) {
	m := &Mailbox{backend: b, name: name}
	if err := m.selectFolder(name, create); err != nil {
		return nil, err
	}
	return m, nil
}

// selectFolder makes name the session's active folder, creating it on demand.
func (m *Mailbox) selectFolder(name string, create bool) error {
	_, err := m.backend.Select(name, false)
	if err == nil {
		return nil
	}
	if !create {
		return fmt.Errorf("%w: %s: %v", ErrNoSuchFolder, name, err)
	}
	if err := m.backend.Create(name); err != nil {
		return fmt.Errorf("create folder %s: %w", name, err)
	}
	if _, err := m.backend.Select(name, false); err != nil {
		return fmt.Errorf("select folder %s: %w", name, err)
	}
	return nil
}

// Name returns the folder this mailbox is bound to.
func (m *Mailbox) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}

// SetTrash configures a trash target for Discard: a folder name on the same
// server, another *Mailbox, or any Sink. Pass nil to go back to in-place
// \Deleted marks.
func (m *Mailbox) SetTrash(target interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trash = target
}

// SetTransform installs a message transform applied by Get, GetHeader and
// everything built on them. Pass nil for the identity.
func (m *Mailbox) SetTransform(f Transform) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transform = f
}

// Switch flushes the current folder, then binds this mailbox to a different
// folder on the same session. The raw message cache is dropped.
func (m *Mailbox) Switch(name string, create bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.expunge(); err != nil {
		return err
	}
	if err := m.selectFolder(name, create); err != nil {
		return err
	}
	m.name = name
	m.dropCache()
	return nil
}

// Reconnect re-establishes the session and re-selects the bound folder. It
// only works when the Backend implements Reconnector. A connection that died
// mid-request sometimes needs a second round before SELECT goes through
// again, so one retry of the whole sequence is built in.
func (m *Mailbox) Reconnect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.backend.(Reconnector)
	if !ok {
		return fmt.Errorf("%w: backend cannot reconnect", ErrUnsupported)
	}
	m.dropCache()
	if err := r.Reconnect(); err != nil {
		return fmt.Errorf("reconnect: %w", err)
	}
	if err := m.selectFolder(m.name, false); err == nil {
		return nil
	}
	if err := r.Reconnect(); err != nil {
		return fmt.Errorf("reconnect: %w", err)
	}
	return m.selectFolder(m.name, false)
}

// Close flushes the folder, closes it and logs out of the session.
func (m *Mailbox) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backend == nil {
		return nil
	}
	if err := m.expunge(); err != nil {
		return err
	}
	if err := m.backend.Close(); err != nil {
		return fmt.Errorf("close folder %s: %w", m.name, err)
	}
	return m.backend.Logout()
}

// Lock is a no-op: IMAP offers no server-side mailbox locking. It exists so
// a *Mailbox satisfies the Sink lifecycle; mutual exclusion between clients
// of the same folder has to be layered externally.
func (m *Mailbox) Lock() {}

// Unlock is a no-op, see Lock.
func (m *Mailbox) Unlock() {}

func (m *Mailbox) dropCache() {
	m.cachedUID = 0
	m.cachedRaw = nil
}
