package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	name       string
	fullName   string
	attributes []string
	inherits   []string
	flags      map[string]bool
}

func (i item) Name() string             { return i.name }
func (i item) FullName() string         { return i.fullName }
func (i item) AttributeNames() []string { return i.attributes }
func (i item) InheritedNames() []string { return i.inherits }

func lookup(it any, name string) (bool, bool) {
	v, ok := it.(item).flags[name]
	return v, ok
}

func names(items []item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.name)
	}
	return out
}

var fixture = []item{
	{
		name:       "UserModel",
		fullName:   "App.Models.UserModel",
		attributes: []string{"Table", "App.TableAttribute"},
		inherits:   []string{"Entity", "App.Entity"},
		flags:      map[string]bool{"IsPublic": true, "IsAbstract": false},
	},
	{
		name:     "OrderModel",
		fullName: "App.Models.OrderModel",
		inherits: []string{"Entity", "App.Entity"},
		flags:    map[string]bool{"IsPublic": true, "IsAbstract": true},
	},
	{
		name:       "Helper",
		fullName:   "App.Helper",
		attributes: []string{"Obsolete", "System.ObsoleteAttribute"},
		flags:      map[string]bool{"IsPublic": false},
	},
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{"empty keeps all", "", []string{"UserModel", "OrderModel", "Helper"}},
		{"exact name", "Helper", []string{"Helper"}},
		{"case insensitive", "helper", []string{"Helper"}},
		{"full name", "App.Helper", []string{"Helper"}},
		{"suffix glob", "*Model", []string{"UserModel", "OrderModel"}},
		{"prefix glob", "User*", []string{"UserModel"}},
		{"attribute", "[Table]", []string{"UserModel"}},
		{"attribute full name", "[System.ObsoleteAttribute]", []string{"Helper"}},
		{"attribute without suffix", "[App.Table]", []string{"UserModel"}},
		{"inherits", ":Entity", []string{"UserModel", "OrderModel"}},
		{"alternatives", "Helper|[Table]", []string{"UserModel", "Helper"}},
		{"negated", "!*Model", []string{"Helper"}},
		{"bool accessor", "IsPublic", []string{"UserModel", "OrderModel"}},
		{"negated bool accessor", "!IsAbstract", []string{"UserModel", "Helper"}},
		{"no match", "Missing", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched, err := Apply(fixture, tt.expr, lookup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
			assert.Equal(t, len(tt.want) > 0, matched)
		})
	}
}

func TestApplyKeepsOrder(t *testing.T) {
	got, _, err := Apply(fixture, "Helper|UserModel", lookup)
	require.NoError(t, err)
	assert.Equal(t, []string{"UserModel", "Helper"}, names(got))
}

func TestApplyWithoutLookup(t *testing.T) {
	// Without a lookup a bare identifier is a name pattern.
	got, matched, err := Apply(fixture, "IsPublic", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, matched)
}

func TestApplyToItemsWithoutNames(t *testing.T) {
	got, matched, err := Apply([]int{1, 2}, "Anything", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, matched)

	got, matched, err = Apply([]int{1, 2}, "", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)
	assert.True(t, matched)
}

func TestCompileErrors(t *testing.T) {
	for _, expr := range []string{"[Table", "A||B", "!", "[]", ":"} {
		t.Run(expr, func(t *testing.T) {
			_, err := Compile(expr)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidExpression)
		})
	}
}

func TestFilterString(t *testing.T) {
	f, err := Compile("*Model|[Table]")
	require.NoError(t, err)
	assert.Equal(t, "*Model|[Table]", f.String())
}
