package sheets

import (
	"strconv"
	"strings"
)

// Record maps upper-cased header names to raw cell values.
type Record map[string]string

func (r Record) String(name string) string {
	return strings.TrimSpace(r[strings.ToUpper(name)])
}

// Int parses a cell leniently: blanks and garbage read as 0, "3.0" reads as 3.
func (r Record) Int(name string) int {
	s := r.String(name)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return int(f)
	}
	return 0
}

// Flag reports whether a one-off flag cell is set.
func (r Record) Flag(name string) bool {
	switch strings.ToLower(r.String(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Set stores a value under the normalized name.
func (r Record) Set(name, value string) {
	r[strings.ToUpper(name)] = value
}

// Row is one located row with its index and decoded fields.
type Row struct {
	Index  int
	Record Record
}
