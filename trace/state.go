package trace

import (
	"fmt"
	"strings"
)

const (
	// TraceStateMaxLen is the serialized length the wire format recommends
	// staying under. It is advisory: entries propagate as received and are
	// never truncated on output.
	TraceStateMaxLen = 512

	maxTraceStateEntries  = 32
	maxTraceStateKeyLen   = 256
	maxTraceStateValueLen = 256
)

// TraceStateEntry is one key=value pair of vendor-specific trace context.
type TraceStateEntry struct {
	Key   string
	Value string
}

// TraceState carries vendor-specific context alongside the identifiers.
// Entry order is significant and preserved end to end. The zero value is
// an empty, usable state.
type TraceState struct {
	entries []TraceStateEntry
}

// NewTraceState builds a TraceState from the given entries, preserving
// their order. The entries are copied.
func NewTraceState(entries ...TraceStateEntry) TraceState {
	if len(entries) == 0 {
		return TraceState{}
	}
	copied := make([]TraceStateEntry, len(entries))
	copy(copied, entries)
	return TraceState{entries: copied}
}

// ParseTraceState parses the comma-separated key=value form. The empty
// string yields an empty state. Entry order is preserved exactly and
// duplicate keys are kept as given.
func ParseTraceState(s string) (TraceState, error) {
	if s == "" {
		return TraceState{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) > maxTraceStateEntries {
		return TraceState{}, fmt.Errorf("%w: tracestate has %d entries, max %d", ErrInvalidFormat, len(parts), maxTraceStateEntries)
	}
	entries := make([]TraceStateEntry, 0, len(parts))
	for _, part := range parts {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return TraceState{}, fmt.Errorf("%w: tracestate entry %q is not key=value", ErrInvalidFormat, part)
		}
		if !isValidTraceStateKey(key) {
			return TraceState{}, fmt.Errorf("%w: tracestate key %q", ErrInvalidFormat, key)
		}
		if !isValidTraceStateValue(value) {
			return TraceState{}, fmt.Errorf("%w: tracestate value %q", ErrInvalidFormat, value)
		}
		entries = append(entries, TraceStateEntry{Key: key, Value: value})
	}
	return TraceState{entries: entries}, nil
}

// Len returns the number of entries.
func (ts TraceState) Len() int {
	return len(ts.entries)
}

// Entries returns a copy of the entries in order, or nil when empty.
func (ts TraceState) Entries() []TraceStateEntry {
	if len(ts.entries) == 0 {
		return nil
	}
	copied := make([]TraceStateEntry, len(ts.entries))
	copy(copied, ts.entries)
	return copied
}

// Get returns the value for the first entry with the given key.
func (ts TraceState) Get(key string) (string, bool) {
	for _, e := range ts.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// String serializes the state back to the comma-separated wire form.
func (ts TraceState) String() string {
	var b strings.Builder
	for i, e := range ts.entries {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(e.Key)
		b.WriteByte('=')
		b.WriteString(e.Value)
	}
	return b.String()
}

// Keys are lowercase alphanumerics plus _ - * /, optionally split into
// tenant@system where the tenant part may start with a digit.
func isValidTraceStateKey(key string) bool {
	if len(key) == 0 || len(key) > maxTraceStateKeyLen {
		return false
	}
	tenant, system, multi := strings.Cut(key, "@")
	if !multi {
		return isSimpleTraceStateKey(key, false)
	}
	return isSimpleTraceStateKey(tenant, true) && isSimpleTraceStateKey(system, false)
}

func isSimpleTraceStateKey(key string, digitStart bool) bool {
	if len(key) == 0 {
		return false
	}
	first := key[0]
	if !(first >= 'a' && first <= 'z') && !(digitStart && first >= '0' && first <= '9') {
		return false
	}
	for i := 1; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '*' || c == '/':
		default:
			return false
		}
	}
	return true
}

// Values are printable ASCII without comma or equals.
func isValidTraceStateValue(value string) bool {
	if len(value) == 0 || len(value) > maxTraceStateValueLen {
		return false
	}
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c < 0x20 || c > 0x7e || c == ',' || c == '=' {
			return false
		}
	}
	return true
}
