package normalize

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparer wraps a collator for the locale-aware comparisons used on item
// names and group identity fields. Tag sorting and dependency tuples use
// plain byte-wise ordering instead; the two comparison families are kept
// deliberately distinct.
//
// A Comparer is not safe for concurrent use: the underlying collator reuses
// iterator buffers across calls. Give each goroutine its own.
type Comparer struct {
	col *collate.Collator
}

// NewComparer builds a Comparer for the given BCP 47 locale tag.
// Unparseable tags fall back to English.
func NewComparer(locale string) *Comparer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Comparer{col: collate.New(tag)}
}

// Less reports whether a sorts before b under the collation order.
func (c *Comparer) Less(a, b string) bool {
	return c.col.CompareString(a, b) < 0
}

// Compare returns -1, 0 or 1 under the collation order.
func (c *Comparer) Compare(a, b string) int {
	return c.col.CompareString(a, b)
}
