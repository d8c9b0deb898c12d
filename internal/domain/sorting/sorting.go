package sorting

import (
	"strings"

	"github.com/labstack/gommon/log"
)

// Wire format: "prop[,DIR[,NULLHINT]];prop2[,DIR2[,NULLHINT2]];..."
const (
	PropSeparator   = ";"
	OptionSeparator = ","

	// DefaultQuery is applied by the transport layer when the client sends
	// no sort parameter.
	DefaultQuery = "createdAt" + OptionSeparator + "DESC" +
		PropSeparator +
		"modifiedAt" + OptionSeparator + "DESC"
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type NullHint string

const (
	NullsNative NullHint = "NATIVE"
	NullsFirst  NullHint = "NULLS_FIRST"
	NullsLast   NullHint = "NULLS_LAST"
)

// Directive is one (property, direction, null hint) ordering entry.
type Directive struct {
	Property  string
	Direction Direction
	NullHint  NullHint
}

// Parse converts a sort query into ordered directives. An empty query
// yields nil, meaning the caller falls back to the store's default order.
// Malformed entries are dropped without failing the rest of the query.
func Parse(query string) []Directive {
	if query == "" {
		return nil
	}

	var directives []Directive
	for _, raw := range strings.Split(query, PropSeparator) {
		d, ok := parseEntry(raw)
		if !ok {
			log.Debugf("invalid sort entry: %s", raw)
			continue
		}
		directives = append(directives, d)
	}
	return directives
}

func parseEntry(raw string) (Directive, bool) {
	opts := strings.Split(raw, OptionSeparator)

	d := Directive{Direction: Asc, NullHint: NullsNative}
	switch len(opts) {
	case 1:
		d.Property = opts[0]
	case 2:
		d.Property = opts[0]
		dir, ok := parseDirection(opts[1])
		if !ok {
			return Directive{}, false
		}
		d.Direction = dir
	case 3:
		d.Property = opts[0]
		dir, ok := parseDirection(opts[1])
		if !ok {
			return Directive{}, false
		}
		hint, ok := parseNullHint(opts[2])
		if !ok {
			return Directive{}, false
		}
		d.Direction = dir
		d.NullHint = hint
	default:
		return Directive{}, false
	}

	if d.Property == "" {
		return Directive{}, false
	}
	return d, true
}

func parseDirection(s string) (Direction, bool) {
	switch strings.ToUpper(s) {
	case "ASC":
		return Asc, true
	case "DESC":
		return Desc, true
	default:
		return "", false
	}
}

func parseNullHint(s string) (NullHint, bool) {
	switch strings.ToUpper(s) {
	case "NATIVE":
		return NullsNative, true
	case "NULLS_FIRST":
		return NullsFirst, true
	case "NULLS_LAST":
		return NullsLast, true
	default:
		return "", false
	}
}

// OrderClause renders the directives into a SQL ORDER BY body using the
// given property-to-column map. Properties missing from the map are
// dropped, which keeps arbitrary client input out of the statement.
// Returns "" when nothing usable remains.
func OrderClause(directives []Directive, columns map[string]string) string {
	var parts []string
	for _, d := range directives {
		col, ok := columns[d.Property]
		if !ok {
			log.Debugf("unsortable property: %s", d.Property)
			continue
		}

		expr := col + " " + string(d.Direction)
		switch d.NullHint {
		case NullsFirst:
			expr += " NULLS FIRST"
		case NullsLast:
			expr += " NULLS LAST"
		}
		parts = append(parts, expr)
	}
	return strings.Join(parts, ", ")
}
