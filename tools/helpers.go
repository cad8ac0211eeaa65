package tools

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mailkit/imapbox/mailbox"
)

// parseUID extracts a positive message UID from the "uid" argument, which may
// arrive as a JSON number or a numeric string.
func parseUID(args map[string]interface{}) (uint32, error) {
	val, ok := args["uid"]
	if !ok || val == nil {
		return 0, fmt.Errorf("uid is required")
	}
	switch v := val.(type) {
	case float64:
		if v < 1 || v > math.MaxUint32 || v != math.Trunc(v) {
			return 0, fmt.Errorf("uid must be a positive integer")
		}
		return uint32(v), nil
	case string:
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			return 0, fmt.Errorf("uid must be a positive integer")
		}
		return uint32(n), nil
	default:
		return 0, fmt.Errorf("uid must be a number or numeric string")
	}
}

// parseStringList extracts a string or []interface{} argument into a string
// slice. Returns nil when the key is absent.
func parseStringList(args map[string]interface{}, key string) ([]string, error) {
	val, ok := args[key]
	if !ok || val == nil {
		return nil, nil
	}

	var out []string
	switch v := val.(type) {
	case string:
		if v != "" {
			out = []string{v}
		}
	case []interface{}:
		for _, item := range v {
			if str, ok := item.(string); ok && str != "" {
				out = append(out, str)
			}
		}
	default:
		return nil, fmt.Errorf("%s must be a string or array of strings", key)
	}
	return out, nil
}

// messageJSON shapes a message for tool output.
func messageJSON(msg *mailbox.Message) map[string]interface{} {
	hdr := msg.MailHeader()
	subject, _ := hdr.Subject()
	out := map[string]interface{}{
		"uid":           msg.UID,
		"flags":         msg.Flags,
		"size":          msg.Size,
		"internal_date": msg.InternalDate.Format(time.RFC3339),
		"subject":       subject,
	}
	if addrs, err := hdr.AddressList("From"); err == nil && len(addrs) > 0 {
		out["from"] = addrs[0].String()
	}
	if d, err := hdr.Date(); err == nil {
		out["date"] = d.Format(time.RFC3339)
	}
	if body, err := msg.BodyText(); err == nil && body != "" {
		out["body"] = body
	}
	return out
}
