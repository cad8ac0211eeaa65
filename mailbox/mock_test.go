package mailbox

import (
	"bytes"
	"io"
	"time"

	"github.com/emersion/go-imap"
)

// MockBackend implements Backend for testing.
type MockBackend struct {
	// Return values. FetchQueue and SearchQueue are consumed one entry
	// per call; when exhausted, FetchMessages and SearchUIDs serve as
	// the defaults for every remaining call.
	Status        *imap.MailboxStatus
	FetchQueue    [][]*imap.Message
	FetchMessages []*imap.Message
	SearchQueue   [][]uint32
	SearchUIDs    []uint32

	// Error injection
	SelectErrs []error
	CreateErr  error
	FetchErr   error
	SearchErr  error
	StoreErrs  []error
	CopyErr    error
	AppendErr  error
	ExpungeErr error
	CloseErr   error
	LogoutErr  error

	// Call tracking
	Calls         []string
	SelectedNames []string
	CreatedNames  []string
	FetchedSets   []string
	FetchedItems  [][]imap.FetchItem
	SearchedCrit  []*imap.SearchCriteria
	StoredSets    []string
	StoredItems   []imap.StoreItem
	StoredValues  [][]interface{}
	CopiedSets    []string
	CopiedDests   []string
	AppendedMbox  string
	AppendedFlags []string
	AppendedDate  time.Time
	AppendedRaw   []byte
	ExpungeCount  int
	CloseCount    int
	LogoutCount   int
}

func (b *MockBackend) record(method string) {
	b.Calls = append(b.Calls, method)
}

func (b *MockBackend) Select(name string, readOnly bool) (*imap.MailboxStatus, error) {
	b.record("Select")
	b.SelectedNames = append(b.SelectedNames, name)
	if len(b.SelectErrs) > 0 {
		err := b.SelectErrs[0]
		b.SelectErrs = b.SelectErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	if b.Status != nil {
		return b.Status, nil
	}
	return &imap.MailboxStatus{Name: name}, nil
}

func (b *MockBackend) Create(name string) error {
	b.record("Create")
	b.CreatedNames = append(b.CreatedNames, name)
	return b.CreateErr
}

func (b *MockBackend) UidSearch(criteria *imap.SearchCriteria) ([]uint32, error) {
	b.record("UidSearch")
	b.SearchedCrit = append(b.SearchedCrit, criteria)
	if b.SearchErr != nil {
		return nil, b.SearchErr
	}
	if len(b.SearchQueue) > 0 {
		uids := b.SearchQueue[0]
		b.SearchQueue = b.SearchQueue[1:]
		return uids, nil
	}
	return b.SearchUIDs, nil
}

func (b *MockBackend) UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error {
	b.record("UidFetch")
	b.FetchedSets = append(b.FetchedSets, seqset.String())
	b.FetchedItems = append(b.FetchedItems, items)
	msgs := b.FetchMessages
	if len(b.FetchQueue) > 0 {
		msgs = b.FetchQueue[0]
		b.FetchQueue = b.FetchQueue[1:]
	}
	if b.FetchErr != nil {
		close(ch)
		return b.FetchErr
	}
	for _, msg := range msgs {
		ch <- msg
	}
	close(ch)
	return nil
}

func (b *MockBackend) UidStore(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error {
	b.record("UidStore")
	b.StoredSets = append(b.StoredSets, seqset.String())
	b.StoredItems = append(b.StoredItems, item)
	if flags, ok := value.([]interface{}); ok {
		b.StoredValues = append(b.StoredValues, flags)
	} else {
		b.StoredValues = append(b.StoredValues, nil)
	}
	if len(b.StoreErrs) > 0 {
		err := b.StoreErrs[0]
		b.StoreErrs = b.StoreErrs[1:]
		return err
	}
	return nil
}

func (b *MockBackend) UidCopy(seqset *imap.SeqSet, dest string) error {
	b.record("UidCopy")
	b.CopiedSets = append(b.CopiedSets, seqset.String())
	b.CopiedDests = append(b.CopiedDests, dest)
	return b.CopyErr
}

func (b *MockBackend) Append(mbox string, flags []string, date time.Time, msg imap.Literal) error {
	b.record("Append")
	b.AppendedMbox = mbox
	b.AppendedFlags = flags
	b.AppendedDate = date
	raw, err := io.ReadAll(msg)
	if err != nil {
		return err
	}
	b.AppendedRaw = raw
	return b.AppendErr
}

func (b *MockBackend) Expunge(ch chan uint32) error {
	b.record("Expunge")
	b.ExpungeCount++
	if ch != nil {
		close(ch)
	}
	return b.ExpungeErr
}

func (b *MockBackend) Close() error {
	b.record("Close")
	b.CloseCount++
	return b.CloseErr
}

func (b *MockBackend) Logout() error {
	b.record("Logout")
	b.LogoutCount++
	return b.LogoutErr
}

// countCalls returns how many times method appears in the call log.
func (b *MockBackend) countCalls(method string) int {
	n := 0
	for _, c := range b.Calls {
		if c == method {
			n++
		}
	}
	return n
}

// MockReconnectBackend is a MockBackend whose connection can be
// re-established.
type MockReconnectBackend struct {
	MockBackend
	ReconnectErrs  []error
	ReconnectCount int
}

func (b *MockReconnectBackend) Reconnect() error {
	b.record("Reconnect")
	b.ReconnectCount++
	if len(b.ReconnectErrs) > 0 {
		err := b.ReconnectErrs[0]
		b.ReconnectErrs = b.ReconnectErrs[1:]
		return err
	}
	return nil
}

const sampleRaw = "From: Alice Example <alice@example.org>\r\n" +
	"To: bob@example.org\r\n" +
	"Subject: lunch plans\r\n" +
	"Date: Mon, 02 Feb 2026 10:30:00 +0000\r\n" +
	"Message-Id: <sample-1@example.org>\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Meet at noon?\r\n"

var sampleDate = time.Date(2026, 2, 2, 10, 31, 0, 0, time.UTC)

// fullMessage builds a fetch response carrying everything Get assembles
// from: body literal, flags, internal date and size.
func fullMessage(uid uint32, raw string, flags []string) *imap.Message {
	return &imap.Message{
		Uid:          uid,
		Flags:        flags,
		InternalDate: sampleDate,
		Size:         uint32(len(raw)),
		Body: map[*imap.BodySectionName]imap.Literal{
			{}: bytes.NewBufferString(raw),
		},
	}
}

// openMailbox opens a Mailbox over b bound to INBOX, failing the test on
// error.
func openMailbox(t interface {
	Helper()
	Fatalf(format string, args ...interface{})
}, b Backend) *Mailbox {
	t.Helper()
	m, err := Open(b, "INBOX", false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return m
}
