package repositories

import (
	"fmt"
	"strings"

	"guate-servicios/models"
)

// TechnicianFilter holds the optional directory filters. Both are
// case-insensitive substring matches and combine with AND.
type TechnicianFilter struct {
	Category string
	Query    string
}

// predicates accumulates WHERE clauses and their positional arguments so
// placeholder numbering always matches the argument slice.
type predicates struct {
	clauses []string
	args    []any
}

// add appends a clause; every "?" in clause is replaced by the next
// positional placeholder, consuming one value each.
func (p *predicates) add(clause string, values ...any) {
	var b strings.Builder
	i := 0
	for _, ch := range clause {
		if ch == '?' && i < len(values) {
			p.args = append(p.args, values[i])
			fmt.Fprintf(&b, "$%d", len(p.args))
			i++
			continue
		}
		b.WriteRune(ch)
	}
	p.clauses = append(p.clauses, b.String())
}

func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func (f TechnicianFilter) predicates() *predicates {
	p := &predicates{}

	if category := strings.TrimSpace(f.Category); category != "" && category != models.AllCategories {
		p.add("c.name ILIKE ?", likePattern(category))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		pattern := likePattern(q)
		p.add("(u.name ILIKE ? OR t.description ILIKE ?)", pattern, pattern)
	}
	return p
}
