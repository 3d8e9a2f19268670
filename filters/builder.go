// Package filters assembles the conjunctive WHERE clauses shared by the list
// endpoints. Values are always carried as bound parameters; no filter value
// ever reaches the SQL text itself.
package filters

import (
	"fmt"
	"strconv"
	"strings"
)

// Builder accumulates optional filter conditions with Postgres $N
// placeholders. Empty values are skipped, present values are ANDed. The same
// builder backs both the row query and its COUNT twin so pagination totals
// always match the filtered set.
type Builder struct {
	conds []string
	args  []any
}

func New() *Builder {
	return &Builder{}
}

// Eq adds an equality condition when value is non-empty.
func (b *Builder) Eq(column, value string) *Builder {
	if value == "" {
		return b
	}
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf("%s = $%d", column, len(b.args)))
	return b
}

// DateFrom adds `column::date >= value` when value is non-empty. The value is
// bound, not inlined; a malformed date surfaces as a store error.
func (b *Builder) DateFrom(column, value string) *Builder {
	return b.dateCmp(column, ">=", value)
}

// DateTo adds `column::date <= value` when value is non-empty.
func (b *Builder) DateTo(column, value string) *Builder {
	return b.dateCmp(column, "<=", value)
}

func (b *Builder) dateCmp(column, op, value string) *Builder {
	if value == "" {
		return b
	}
	b.args = append(b.args, value)
	b.conds = append(b.conds, fmt.Sprintf("%s::date %s $%d::date", column, op, len(b.args)))
	return b
}

// Min adds `column >= value` for a numeric value. Values that do not parse as
// a number are ignored, the same way absent values are.
func (b *Builder) Min(column, value string) *Builder {
	return b.numCmp(column, ">=", value)
}

// Max adds `column <= value` for a numeric value.
func (b *Builder) Max(column, value string) *Builder {
	return b.numCmp(column, "<=", value)
}

func (b *Builder) numCmp(column, op, value string) *Builder {
	if value == "" {
		return b
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return b
	}
	b.args = append(b.args, n)
	b.conds = append(b.conds, fmt.Sprintf("%s %s $%d", column, op, len(b.args)))
	return b
}

// Where returns the assembled clause with a leading " WHERE ", or the empty
// string when no filters were added.
func (b *Builder) Where() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// Args returns the bound parameters in placeholder order.
func (b *Builder) Args() []any {
	return b.args
}

// NextArg returns the placeholder index for the next parameter, letting
// callers append LIMIT/OFFSET after the filter arguments.
func (b *Builder) NextArg() int {
	return len(b.args) + 1
}
