// internal/domain/biorhythm/history.go
package biorhythm

// HistoryLimit is the number of recent lookups kept.
const HistoryLimit = 6

// History is an ordered list of recently looked-up dates, most recent first, without
// duplicates. The zero value is an empty history. It is owned by the caller.
type History []Date

// Push returns a new history with d at the front. An existing entry for d is moved rather
// than duplicated and the oldest entries beyond HistoryLimit are dropped.
func (h History) Push(d Date) History {
	out := make(History, 0, HistoryLimit)
	out = append(out, d)
	for _, existing := range h {
		if existing == d {
			continue
		}
		if len(out) == HistoryLimit {
			break
		}
		out = append(out, existing)
	}
	return out
}

// Strings formats the history as YYYY-MM-DD values.
func (h History) Strings() []string {
	out := make([]string, len(h))
	for i, d := range h {
		out[i] = d.String()
	}
	return out
}

// ParseHistory rebuilds a history from stored strings, skipping entries that no longer
// parse and re-applying the limit.
func ParseHistory(values []string) History {
	h := make(History, 0, len(values))
	for _, v := range values {
		d, err := ParseDate(v)
		if err != nil {
			continue
		}
		h = append(h, d)
		if len(h) == HistoryLimit {
			break
		}
	}
	return h
}
