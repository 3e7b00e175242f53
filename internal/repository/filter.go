package repository

import (
	"fmt"
	"strings"
)

// whereBuilder accumulates AND-ed predicates with positional arguments.
type whereBuilder struct {
	clauses []string
	args    []any
}

// add appends a predicate. format must contain exactly one %d for the placeholder index.
func (b *whereBuilder) add(format string, arg any) {
	b.args = append(b.args, arg)
	b.clauses = append(b.clauses, fmt.Sprintf(format, len(b.args)))
}

// addRaw appends a predicate that takes no argument.
func (b *whereBuilder) addRaw(clause string) {
	b.clauses = append(b.clauses, clause)
}

// SQL renders the WHERE clause, or an empty string when no predicate was added.
func (b *whereBuilder) SQL() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// Args returns the positional arguments in placeholder order.
func (b *whereBuilder) Args() []any {
	return b.args
}

// next returns the index the next placeholder will get.
func (b *whereBuilder) next() int {
	return len(b.args) + 1
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s anywhere, with LIKE metacharacters escaped.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// pageClause appends LIMIT/OFFSET placeholders to the builder arguments.
func pageClause(b *whereBuilder, limit, offset int) (string, []any) {
	n := b.next()
	args := append(append([]any{}, b.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n, n+1), args
}
