package tui

// History keeps submitted commands for Up/Down recall. While navigating, the
// line being typed before the first Up is kept as a draft and restored when
// the user steps past the newest entry.
type History struct {
	entries []string
	limit   int
	pos     int // len(entries) when not navigating
	draft   string
}

// NewHistory creates a history holding at most limit entries.
func NewHistory(limit int) *History {
	return &History{entries: make([]string, 0, limit), limit: limit}
}

// Push records a command and ends navigation. Blank lines and consecutive
// duplicates are not recorded.
func (h *History) Push(cmd string) {
	if cmd != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != cmd) {
		h.entries = append(h.entries, cmd)
		if len(h.entries) > h.limit {
			h.entries = h.entries[len(h.entries)-h.limit:]
		}
	}
	h.Reset()
}

// Prev steps to the older entry. current is the input line as it stands,
// saved as the draft when navigation starts. Returns false if there is no
// history.
func (h *History) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.pos == len(h.entries) {
		h.draft = current
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.entries[h.pos], true
}

// Next steps to the newer entry, returning the draft after the newest one.
// Returns false when not navigating.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return h.draft, true
	}
	return h.entries[h.pos], true
}

// Last returns the most recent entry.
func (h *History) Last() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

// Reset ends navigation and drops the draft.
func (h *History) Reset() {
	h.pos = len(h.entries)
	h.draft = ""
}
