package repository

import (
	"strconv"
	"strings"

	"github.com/UnknownOlympus/athena/internal/models"
)

// whereBuilder collects AND-ed conditions with numbered placeholders.
// Each "?" in a condition is rewritten to the next $n.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(cond string, args ...any) {
	var sb strings.Builder
	for _, ch := range cond {
		if ch == '?' {
			w.args = append(w.args, args[0])
			args = args[1:]
			sb.WriteString("$" + strconv.Itoa(len(w.args)))
			continue
		}
		sb.WriteRune(ch)
	}
	w.clauses = append(w.clauses, sb.String())
}

// search adds a case-insensitive match of term over the allowed keys.
// Keys not present in allowed are ignored; no keys means all of them.
func (w *whereBuilder) search(term string, keys []string, allowed map[string]string, order []string) {
	if term == "" {
		return
	}
	if len(keys) == 0 {
		keys = order
	}

	like := "%" + escapeLike(term) + "%"
	var ors []string
	for _, key := range keys {
		col, ok := allowed[key]
		if !ok {
			continue
		}
		w.args = append(w.args, like)
		ors = append(ors, col+" ILIKE $"+strconv.Itoa(len(w.args)))
	}
	if len(ors) > 0 {
		w.clauses = append(w.clauses, "("+strings.Join(ors, " OR ")+")")
	}
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// page appends ORDER BY/LIMIT/OFFSET for an already normalized query.
func (w *whereBuilder) page(q models.GetQuery, orderCols map[string]string, tieBreaker string) string {
	dir := "DESC"
	if q.Order == models.SortAsc {
		dir = "ASC"
	}
	w.args = append(w.args, q.Limit, q.Offset)
	n := len(w.args)

	return " ORDER BY " + orderCols[q.OrderBy] + " " + dir + ", " + tieBreaker + " ASC" +
		" LIMIT $" + strconv.Itoa(n-1) + " OFFSET $" + strconv.Itoa(n)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
