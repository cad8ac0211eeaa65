// Package session provides the IMAP connection behind a mailbox: dialing,
// authentication and explicit reconnection. It implements mailbox.Backend by
// delegating to github.com/emersion/go-imap/client, so the core never sees a
// concrete connection type.
package session

import (
	"fmt"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"github.com/mailkit/imapbox/mailbox"
)

// Session is an authenticated IMAP connection. It remembers its dial address
// and credentials so it can be re-established with Reconnect after the
// connection drops.
type Session struct {
	addr     string
	username string
	password string
	conn     *client.Client
}

var (
	_ mailbox.Backend     = (*Session)(nil)
	_ mailbox.Reconnector = (*Session)(nil)
)

// Dial connects to addr ("imap.example.com:993") over implicit TLS and
// authenticates with username and password.
func Dial(addr, username, password string) (*Session, error) {
	s := &Session{addr: addr, username: username, password: password}
	if err := s.connect(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) connect() error {
	c, err := client.DialTLS(s.addr, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", s.addr, err)
	}
	if err := c.Login(s.username, s.password); err != nil {
		c.Logout()
		return fmt.Errorf("login as %s: %w", s.username, err)
	}
	s.conn = c
	return nil
}

// Reconnect drops the current connection and establishes a fresh
// authenticated one. The caller is responsible for re-selecting its folder
// afterwards; mailbox.Mailbox.Reconnect does exactly that.
func (s *Session) Reconnect() error {
	if s.conn != nil {
		// Best effort; the connection may already be gone.
		_ = s.conn.Logout()
	}
	return s.connect()
}

// Username returns the authenticated user.
func (s *Session) Username() string {
	return s.username
}

func (s *Session) Select(name string, readOnly bool) (*imap.MailboxStatus, error) {
	return s.conn.Select(name, readOnly)
}

func (s *Session) Create(name string) error {
	return s.conn.Create(name)
}

func (s *Session) UidSearch(criteria *imap.SearchCriteria) ([]uint32, error) {
	return s.conn.UidSearch(criteria)
}

func (s *Session) UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error {
	return s.conn.UidFetch(seqset, items, ch)
}

func (s *Session) UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error {
	return s.conn.UidStore(seqset, item, value, ch)
}

func (s *Session) UidCopy(seqset *imap.SeqSet, dest string) error {
	return s.conn.UidCopy(seqset, dest)
}

func (s *Session) Append(mbox string, flags []string, date time.Time, msg imap.Literal) error {
	return s.conn.Append(mbox, flags, date, msg)
}

func (s *Session) Expunge(ch chan uint32) error {
	return s.conn.Expunge(ch)
}

func (s *Session) Close() error {
	return s.conn.Close()
}

func (s *Session) Logout() error {
	return s.conn.Logout()
}
