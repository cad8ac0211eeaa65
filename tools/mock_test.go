package tools

import (
	"errors"

	"github.com/mailkit/imapbox/mailbox"
)

var _ MailboxService = (*MockMailboxService)(nil)

// MockMailboxService implements MailboxService for testing.
type MockMailboxService struct {
	// Return values
	UIDs  []uint32
	Msg   *mailbox.Message
	Total int
	NewID uint32
	Lines []string

	// Error injection
	Err error

	// Call tracking
	LastMethod   string
	LastCriteria string
	LastUID      uint32
	LastFlags    []string
	LastTarget   interface{}
	LastAdded    *mailbox.Message
	LastSummary  []uint32
	ExpungeCount int
	CallCount    int
}

func newErrMock(msg string) *MockMailboxService {
	return &MockMailboxService{Err: errors.New(msg)}
}

func (m *MockMailboxService) Search(criteria string) ([]uint32, error) {
	m.LastMethod = "Search"
	m.LastCriteria = criteria
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.UIDs, nil
}

func (m *MockMailboxService) Keys() ([]uint32, error) {
	m.LastMethod = "Keys"
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.UIDs, nil
}

func (m *MockMailboxService) Count() (int, error) {
	m.LastMethod = "Count"
	m.CallCount++
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Total, nil
}

func (m *MockMailboxService) Get(uid uint32) (*mailbox.Message, error) {
	m.LastMethod = "Get"
	m.LastUID = uid
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Msg, nil
}

func (m *MockMailboxService) GetHeader(uid uint32) (*mailbox.Message, error) {
	m.LastMethod = "GetHeader"
	m.LastUID = uid
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Msg, nil
}

func (m *MockMailboxService) Summary(uids []uint32) []string {
	m.LastMethod = "Summary"
	m.LastSummary = uids
	m.CallCount++
	return m.Lines
}

func (m *MockMailboxService) AddFlags(uid uint32, flags ...string) error {
	m.LastMethod = "AddFlags"
	m.LastUID = uid
	m.LastFlags = flags
	m.CallCount++
	return m.Err
}

func (m *MockMailboxService) RemoveFlags(uid uint32, flags ...string) error {
	m.LastMethod = "RemoveFlags"
	m.LastUID = uid
	m.LastFlags = flags
	m.CallCount++
	return m.Err
}

func (m *MockMailboxService) SetFlags(uid uint32, flags []string) error {
	m.LastMethod = "SetFlags"
	m.LastUID = uid
	m.LastFlags = flags
	m.CallCount++
	return m.Err
}

func (m *MockMailboxService) Delete(uid uint32) error {
	m.LastMethod = "Delete"
	m.LastUID = uid
	m.CallCount++
	return m.Err
}

func (m *MockMailboxService) Expunge() error {
	m.LastMethod = "Expunge"
	m.ExpungeCount++
	m.CallCount++
	return m.Err
}

func (m *MockMailboxService) Move(uid uint32, target interface{}) error {
	m.LastMethod = "Move"
	m.LastUID = uid
	m.LastTarget = target
	m.CallCount++
	return m.Err
}

func (m *MockMailboxService) Add(msg *mailbox.Message) (uint32, error) {
	m.LastMethod = "Add"
	m.LastAdded = msg
	m.CallCount++
	if m.Err != nil {
		return 0, m.Err
	}
	return m.NewID, nil
}

func (m *MockMailboxService) Pop(uid uint32) (*mailbox.Message, error) {
	m.LastMethod = "Pop"
	m.LastUID = uid
	m.CallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Msg, nil
}
