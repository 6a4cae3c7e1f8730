package discord

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Discord rejects component custom IDs longer than this.
const maxCustomIDLength = 100

// customID keys shared by the webhook buttons and the interaction handlers
const (
	CustomIDKey      = "customID"
	ApplicationIDKey = "applicationID"
)

// button actions carried under CustomIDKey
const (
	ActionAcceptApplication    = "application/accept"
	ActionRejectApplication    = "application/reject"
	ActionInterviewApplication = "application/interview"
)

// EncodeCustomID packs items as length-prefixed key/value pairs in key order,
// e.g. "8:customID18:application/accept".
func EncodeCustomID(items map[string]string) (string, error) {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb := strings.Builder{}
	for _, key := range keys {
		value := items[key]
		fmt.Fprintf(&sb, "%d:%s%d:%s", len(key), key, len(value), value)
	}

	result := sb.String()
	if len(result) > maxCustomIDLength {
		return "", fmt.Errorf("custom ID is size over: %s", result)
	}
	return result, nil
}

func DecodeCustomID(encodedStr string) (map[string]string, error) {
	data := make(map[string]string)
	i := 0

	for i < len(encodedStr) {
		key, next, err := readChunk(encodedStr, i)
		if err != nil {
			return nil, fmt.Errorf("invalid key: %w", err)
		}
		value, next, err := readChunk(encodedStr, next)
		if err != nil {
			return nil, fmt.Errorf("invalid value: %w", err)
		}
		data[key] = value
		i = next
	}

	return data, nil
}

// readChunk reads one "<len>:<text>" chunk starting at i.
func readChunk(s string, i int) (string, int, error) {
	colon := strings.Index(s[i:], ":")
	if colon == -1 {
		return "", 0, fmt.Errorf("missing colon for length")
	}
	n, err := strconv.Atoi(s[i : i+colon])
	if err != nil || n < 0 {
		return "", 0, fmt.Errorf("bad length %q", s[i:i+colon])
	}
	i += colon + 1

	if i+n > len(s) {
		return "", 0, fmt.Errorf("length exceeds string")
	}
	return s[i : i+n], i + n, nil
}
