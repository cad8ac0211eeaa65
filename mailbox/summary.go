package mailbox

import (
	"fmt"
	"log/slog"
)

// Summary returns one formatted line per UID: the UID, sender, date and
// subject, truncated to fit a 79-column terminal. UIDs that cannot be
// resolved are silently skipped, so the result may be shorter than uids.
func (m *Mailbox) Summary(uids []uint32) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, 0, len(uids))
	for _, uid := range uids {
		msg, err := m.getHeaderOnly(uid)
		if err != nil {
			slog.Debug("summary: skipping message", "uid", uid, "error", err)
			continue
		}
		lines = append(lines, summaryLine(uid, msg))
	}
	return lines
}

func summaryLine(uid uint32, msg *Message) string {
	hdr := msg.MailHeader()
	var from string
	if addrs, err := hdr.AddressList("From"); err == nil && len(addrs) > 0 {
		from = addrs[0].Name
		if from == "" {
			from = addrs[0].Address
		}
	}
	var date string
	if d, err := hdr.Date(); err == nil {
		date = d.Format("01/02/2006 15:04")
	}
	subject, _ := hdr.Subject()
	index := fmt.Sprintf("%2d", uid)
	fromWidth := 25 - len(index)
	return fmt.Sprintf("%s %-*.*s %16s %-35.35s", index, fromWidth, fromWidth, from, date, subject)
}
