package mailbox

import (
	"bytes"
	"fmt"
	"io"

	"github.com/emersion/go-imap"
)

// fetchOne issues a UID FETCH for a single message. A non-OK response maps to
// ErrNotOK; an OK response carrying no message means the UID does not exist
// and maps to ErrNoSuchMessage.
func (m *Mailbox) fetchOne(uid uint32, items []imap.FetchItem) (*imap.Message, error) {
	seqset := new(imap.SeqSet)
	seqset.AddNum(uid)

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- m.backend.UidFetch(seqset, items, messages)
	}()

	msg := <-messages
	if err := <-done; err != nil {
		return nil, fmt.Errorf("%w: fetch %d: %v", ErrNotOK, uid, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchMessage, uid)
	}
	return msg, nil
}

// fetchSection downloads one body section of uid and returns its bytes.
func (m *Mailbox) fetchSection(uid uint32, section *imap.BodySectionName) ([]byte, error) {
	msg, err := m.fetchOne(uid, []imap.FetchItem{section.FetchItem(), imap.FetchUid})
	if err != nil {
		return nil, err
	}
	for _, literal := range msg.Body {
		if literal == nil {
			continue
		}
		raw, err := io.ReadAll(literal)
		if err != nil {
			return nil, fmt.Errorf("%w: reading body of %d: %v", ErrMalformedResponse, uid, err)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("%w: fetch %d returned no body section", ErrMalformedResponse, uid)
}

// fetchRaw returns the full wire-format text for uid, consulting the
// single-slot cache first. The cache holds exactly one (UID, bytes) pair: the
// canonical access pattern it serves is a header read immediately followed by
// a full read of the same message. Anything else is a miss and refetches.
func (m *Mailbox) fetchRaw(uid uint32) ([]byte, error) {
	if m.cachedRaw != nil && m.cachedUID == uid {
		return m.cachedRaw, nil
	}
	raw, err := m.fetchSection(uid, &imap.BodySectionName{})
	if err != nil {
		return nil, err
	}
	m.cachedUID = uid
	m.cachedRaw = raw
	return raw, nil
}

// fetchHeader downloads only the header block of uid, bypassing the cache:
// headers are cheap, and caching one would evict a far more expensive full
// body for no benefit. BODY.PEEK keeps the server from setting \Seen on the
// way through.
func (m *Mailbox) fetchHeader(uid uint32) ([]byte, error) {
	section := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{Specifier: imap.HeaderSpecifier},
		Peek:         true,
	}
	return m.fetchSection(uid, section)
}

// RawString returns the wire-format text of the message with uid.
func (m *Mailbox) RawString(uid uint32) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := m.fetchRaw(uid)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// RawReader returns the same bytes as RawString wrapped in a reader.
func (m *Mailbox) RawReader(uid uint32) (io.Reader, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := m.fetchRaw(uid)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(raw), nil
}
