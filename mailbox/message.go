package mailbox

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
)

// Message is one message materialized out of the mailbox: its raw wire-format
// text plus the flag set, internal date and size as they were at the moment
// of retrieval. Nothing keeps a Message in sync with the server afterwards.
type Message struct {
	UID          uint32
	Flags        []string
	InternalDate time.Time
	Size         uint32

	// Raw is the wire-format text this message was built from. For
	// header-only retrievals it contains just the header block.
	Raw []byte

	// Entity is the parsed MIME structure of Raw. The header is always
	// usable; the body is a read-once stream (BodyText reparses from Raw
	// instead of consuming it).
	Entity *message.Entity
}

// NewMessage parses raw wire-format bytes into a Message suitable for Add.
func NewMessage(raw []byte) (*Message, error) {
	e, err := parseEntity(raw)
	if err != nil {
		return nil, err
	}
	return &Message{Raw: raw, Entity: e}, nil
}

// parseEntity reads raw into a MIME entity. Unknown-charset errors are
// tolerated; the entity is still usable, headers included.
func parseEntity(raw []byte) (*message.Entity, error) {
	e, err := message.Read(bytes.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("%w: parsing message: %v", ErrMalformedResponse, err)
	}
	return e, nil
}

// HasFlag reports whether flag is set. Matching is exact; system flags carry
// their leading backslash ("\\Seen").
func (msg *Message) HasFlag(flag string) bool {
	for _, f := range msg.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// MailHeader exposes the header with mail-specific accessors (AddressList,
// Subject, Date).
func (msg *Message) MailHeader() mail.Header {
	if msg.Entity == nil {
		return mail.Header{}
	}
	return mail.Header{Header: msg.Entity.Header}
}

// BodyText returns the first text/plain part of the message, falling back to
// the first text/html part when no plain one exists. Header-only messages
// yield an empty string.
func (msg *Message) BodyText() (string, error) {
	if len(msg.Raw) == 0 {
		return "", nil
	}
	// Reparse so the Entity body stream stays untouched for WriteTo.
	e, err := parseEntity(msg.Raw)
	if err != nil {
		return "", err
	}
	mr := mail.NewReader(e)
	var html string
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("reading message part: %v", err)
		}
		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		ctype, _, _ := h.ContentType()
		body, err := io.ReadAll(part.Body)
		if err != nil {
			return "", fmt.Errorf("reading part body: %v", err)
		}
		switch {
		case strings.HasPrefix(ctype, "text/plain"):
			return string(body), nil
		case strings.HasPrefix(ctype, "text/html") && html == "":
			html = string(body)
		}
	}
	return html, nil
}

// Bytes returns the message in wire format. A Message-Id header is generated
// when none is present, since the server does not add one on APPEND.
func (msg *Message) Bytes() ([]byte, error) {
	if msg.Raw != nil && (msg.Entity == nil || msg.Entity.Header.Get("Message-Id") != "") {
		return msg.Raw, nil
	}
	if msg.Entity == nil {
		return nil, fmt.Errorf("message has no content")
	}
	if msg.Entity.Header.Get("Message-Id") == "" {
		msg.Entity.Header.Set("Message-Id", fmt.Sprintf("<%s@imapbox>", uuid.New().String()))
	}
	var buf bytes.Buffer
	if err := msg.Entity.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serializing message: %v", err)
	}
	msg.Raw = buf.Bytes()
	return msg.Raw, nil
}
