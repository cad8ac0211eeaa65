package mailbox

import (
	"time"

	"github.com/emersion/go-imap"
)

// Backend is the narrow session capability this package needs from an IMAP
// connection. *client.Client from github.com/emersion/go-imap/client
// satisfies it as-is; tests substitute a mock.
//
// A Backend carries exactly one selected folder and handles one request at a
// time. The Mailbox serializes its own calls with an internal mutex; sharing
// one Backend between two Mailbox values is not supported.
type Backend interface {
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)
	Create(name string) error
	UidSearch(criteria *imap.SearchCriteria) ([]uint32, error)
	UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
	UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error
	UidCopy(seqset *imap.SeqSet, dest string) error
	Append(mbox string, flags []string, date time.Time, msg imap.Literal) error
	Expunge(ch chan uint32) error
	Close() error
	Logout() error
}

// Reconnector is optionally implemented by a Backend that can re-establish a
// dropped connection and authenticate again. Reconnection is always explicit
// and caller-invoked: a transport failure mid-operation surfaces as an error
// and is never retried here.
type Reconnector interface {
	Reconnect() error
}
