package ingest

import (
	"sort"
	"strings"
)

// Fingerprint joins every canonical header of the row, sorted, with its
// trimmed value. Two rows with the same fingerprint are exact duplicates.
func Fingerprint(cells map[string]string) string {
	keys := make([]string, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strings.TrimSpace(cells[k]))
	}
	return b.String()
}

// Deduplicator remembers fingerprints per sheet. Identical rows in different
// sheets do not collide. Not safe for concurrent use.
type Deduplicator struct {
	seen map[string]map[string]struct{}
}

// NewDeduplicator creates an empty Deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]map[string]struct{})}
}

// Register records fingerprint for sheet and reports whether it was new.
func (d *Deduplicator) Register(sheet, fingerprint string) bool {
	fps, ok := d.seen[sheet]
	if !ok {
		fps = make(map[string]struct{})
		d.seen[sheet] = fps
	}
	if _, dup := fps[fingerprint]; dup {
		return false
	}
	fps[fingerprint] = struct{}{}
	return true
}
