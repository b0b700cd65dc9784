package rewards

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Separator joins card ids inside one cell.
const Separator = " | "

var tokenSplit = regexp.MustCompile(`[|,;\s]+`)

// Collection is a set of owned card ids.
type Collection map[string]struct{}

// ParseCollection reads a delimited cell. Duplicates collapse.
func ParseCollection(raw string) Collection {
	c := make(Collection)
	for _, tok := range tokenSplit.Split(raw, -1) {
		if tok = strings.TrimSpace(tok); tok != "" {
			c[tok] = struct{}{}
		}
	}
	return c
}

func (c Collection) Has(id string) bool {
	_, ok := c[strings.TrimSpace(id)]
	return ok
}

// Add inserts id and reports whether it was new.
func (c Collection) Add(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" || c.Has(id) {
		return false
	}
	c[id] = struct{}{}
	return true
}

func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for id := range c {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the ids in display order.
func (c Collection) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	SortIDs(ids)
	return ids
}

func (c Collection) String() string {
	return strings.Join(c.IDs(), Separator)
}

// SortIDs orders numeric ids numerically, then the rest lexicographically.
func SortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, aErr := strconv.ParseInt(ids[i], 10, 64)
		b, bErr := strconv.ParseInt(ids[j], 10, 64)
		switch {
		case aErr == nil && bErr == nil:
			if a != b {
				return a < b
			}
			return ids[i] < ids[j]
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		}
		return ids[i] < ids[j]
	})
}
