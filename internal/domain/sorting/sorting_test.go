package sorting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyQuery(t *testing.T) {
	assert.Nil(t, Parse(""))
}

func TestParsePropertyOnly(t *testing.T) {
	directives := Parse("a")
	require.Len(t, directives, 1)
	assert.Equal(t, Directive{Property: "a", Direction: Asc, NullHint: NullsNative}, directives[0])
}

func TestParseWithDirection(t *testing.T) {
	directives := Parse("a,DESC")
	require.Len(t, directives, 1)
	assert.Equal(t, Desc, directives[0].Direction)
}

func TestParseDirectionCaseInsensitive(t *testing.T) {
	directives := Parse("a,desc,NULLS_LAST")
	require.Len(t, directives, 1)
	assert.Equal(t, Desc, directives[0].Direction)
	assert.Equal(t, NullsLast, directives[0].NullHint)
}

func TestParseDropsMalformedEntry(t *testing.T) {
	// "a,,," has four fields and must be dropped without aborting the
	// rest of the query.
	directives := Parse("a,,,;b,ASC")
	require.Len(t, directives, 1)
	assert.Equal(t, "b", directives[0].Property)
}

func TestParseDropsUnknownDirection(t *testing.T) {
	directives := Parse("a,SIDEWAYS;b")
	require.Len(t, directives, 1)
	assert.Equal(t, "b", directives[0].Property)
}

func TestParseDropsEmptyProperty(t *testing.T) {
	assert.Nil(t, Parse(";"))
}

func TestParseMultipleEntries(t *testing.T) {
	directives := Parse("createdAt,DESC;modifiedAt,DESC;username")
	require.Len(t, directives, 3)
	assert.Equal(t, "createdAt", directives[0].Property)
	assert.Equal(t, "modifiedAt", directives[1].Property)
	assert.Equal(t, Asc, directives[2].Direction)
}

func TestParseDefaultQuery(t *testing.T) {
	directives := Parse(DefaultQuery)
	require.Len(t, directives, 2)
	assert.Equal(t, Directive{Property: "createdAt", Direction: Desc, NullHint: NullsNative}, directives[0])
	assert.Equal(t, Directive{Property: "modifiedAt", Direction: Desc, NullHint: NullsNative}, directives[1])
}

func TestOrderClause(t *testing.T) {
	columns := map[string]string{"createdAt": "created_at", "username": "username"}

	clause := OrderClause(Parse("createdAt,DESC;username,asc,NULLS_LAST"), columns)
	assert.Equal(t, "created_at DESC, username ASC NULLS LAST", clause)
}

func TestOrderClauseDropsUnmappedProperty(t *testing.T) {
	columns := map[string]string{"username": "username"}

	clause := OrderClause(Parse("password;username"), columns)
	assert.Equal(t, "username ASC", clause)
}

func TestOrderClauseEmpty(t *testing.T) {
	assert.Empty(t, OrderClause(nil, map[string]string{"a": "a"}))
	assert.Empty(t, OrderClause(Parse("unknown"), map[string]string{"a": "a"}))
}
