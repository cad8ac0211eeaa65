package mailbox

import "errors"

// Get returns the fully materialized message with uid: raw text, flags,
// internal date and size, each read from the server at call time. The raw
// fetch happens first, so a missing message short-circuits the rest.
func (m *Mailbox) Get(uid uint32) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getFull(uid)
}

func (m *Mailbox) getFull(uid uint32) (*Message, error) {
	raw, err := m.fetchRaw(uid)
	if err != nil {
		return nil, err
	}
	return m.assemble(uid, raw)
}

// GetHeader is Get without the body download. The header bytes skip the raw
// cache entirely.
func (m *Mailbox) GetHeader(uid uint32) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getHeaderOnly(uid)
}

func (m *Mailbox) getHeaderOnly(uid uint32) (*Message, error) {
	raw, err := m.fetchHeader(uid)
	if err != nil {
		return nil, err
	}
	return m.assemble(uid, raw)
}

// assemble combines raw bytes with the message's flags, internal date and
// size, then applies the configured transform.
func (m *Mailbox) assemble(uid uint32, raw []byte) (*Message, error) {
	flags, err := m.getFlags(uid)
	if err != nil {
		return nil, err
	}
	date, err := m.getInternalDate(uid)
	if err != nil {
		return nil, err
	}
	size, err := m.getSize(uid)
	if err != nil {
		return nil, err
	}
	entity, err := parseEntity(raw)
	if err != nil {
		return nil, err
	}
	msg := &Message{
		UID:          uid,
		Flags:        flags,
		InternalDate: date,
		Size:         size,
		Raw:          raw,
		Entity:       entity,
	}
	if m.transform != nil {
		return m.transform(msg)
	}
	return msg, nil
}

// GetOrDefault returns the message with uid, or def when no such message
// exists. Other failures still surface as errors.
func (m *Mailbox) GetOrDefault(uid uint32, def *Message) (*Message, error) {
	msg, err := m.Get(uid)
	if errors.Is(err, ErrNoSuchMessage) {
		return def, nil
	}
	if err != nil {
		return nil, err
	}
	return msg, nil
}
