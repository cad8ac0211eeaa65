package tools

import (
	"github.com/mailkit/imapbox/mailbox"
)

// MailboxReader defines read-only mailbox operations.
type MailboxReader interface {
	Search(criteria string) ([]uint32, error)
	Keys() ([]uint32, error)
	Count() (int, error)
	Get(uid uint32) (*mailbox.Message, error)
	GetHeader(uid uint32) (*mailbox.Message, error)
	Summary(uids []uint32) []string
}

// MailboxWriter defines mutating mailbox operations.
type MailboxWriter interface {
	AddFlags(uid uint32, flags ...string) error
	RemoveFlags(uid uint32, flags ...string) error
	SetFlags(uid uint32, flags []string) error
	Delete(uid uint32) error
	Expunge() error
	Move(uid uint32, target interface{}) error
	Add(msg *mailbox.Message) (uint32, error)
	Pop(uid uint32) (*mailbox.Message, error)
}

// MailboxService combines all mailbox operations. The concrete
// *mailbox.Mailbox satisfies this.
type MailboxService interface {
	MailboxReader
	MailboxWriter
}
