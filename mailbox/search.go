package mailbox

import (
	"fmt"
	"strings"

	"github.com/emersion/go-imap"
)

// Search returns the UIDs of all messages matching criteria, in mailbox
// order. criteria is an RFC 3501 search expression ("ALL",
// "UNSEEN SINCE 1-Feb-2024", `FROM "Smith"`, ...); an empty string means
// "ALL". The expression is tokenized here but its meaning is left to the
// protocol parser. Results are never cached; the message set can change
// under us at any time.
func (m *Mailbox) Search(criteria string) ([]uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.search(criteria)
}

func (m *Mailbox) search(criteria string) ([]uint32, error) {
	if strings.TrimSpace(criteria) == "" {
		criteria = "ALL"
	}
	fields, err := searchFields(criteria)
	if err != nil {
		return nil, fmt.Errorf("search criteria %q: %w", criteria, err)
	}
	sc := imap.NewSearchCriteria()
	if err := sc.ParseWithCharset(fields, nil); err != nil {
		return nil, fmt.Errorf("search criteria %q: %w", criteria, err)
	}
	uids, err := m.backend.UidSearch(sc)
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", ErrNotOK, criteria, err)
	}
	return uids, nil
}

// Unseen lists messages that are neither seen nor deleted.
func (m *Mailbox) Unseen() ([]uint32, error) {
	return m.Search("UNSEEN UNDELETED")
}

// AllUndeleted lists every message not marked for deletion.
func (m *Mailbox) AllUndeleted() ([]uint32, error) {
	return m.Search("UNDELETED")
}

// searchFields splits an RFC 3501 criteria string into fields for the
// criteria parser: atoms, double-quoted strings (quotes removed) and
// parenthesized groups (as nested field lists).
func searchFields(criteria string) ([]interface{}, error) {
	fields, rest, err := parseFields(criteria)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(rest) != "" {
		return nil, fmt.Errorf("unbalanced parenthesis")
	}
	return fields, nil
}

// parseFields consumes fields until end of input or an unmatched ')', which
// it leaves in rest for the caller.
func parseFields(s string) (fields []interface{}, rest string, err error) {
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return fields, "", nil
		}
		switch s[0] {
		case ')':
			return fields, s, nil
		case '(':
			inner, after, err := parseFields(s[1:])
			if err != nil {
				return nil, "", err
			}
			if after == "" || after[0] != ')' {
				return nil, "", fmt.Errorf("missing closing parenthesis")
			}
			fields = append(fields, inner)
			s = after[1:]
		case '"':
			end := strings.IndexByte(s[1:], '"')
			if end < 0 {
				return nil, "", fmt.Errorf("unterminated quoted string")
			}
			fields = append(fields, s[1:1+end])
			s = s[end+2:]
		default:
			end := strings.IndexAny(s, " \t()\"")
			if end < 0 {
				end = len(s)
			}
			fields = append(fields, s[:end])
			s = s[end:]
		}
	}
}
