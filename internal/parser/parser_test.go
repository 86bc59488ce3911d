package parser

import (
	"go/ast"
	"go/parser"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codewriter/internal/codemodel"
	"codewriter/internal/config"
	"codewriter/internal/metadata"
)

const shopDir = "testdata/shop"

func parseShop(t *testing.T) *metadata.Snapshot {
	t.Helper()
	snap, err := New().ParsePackage(shopDir)
	require.NoError(t, err)
	return snap
}

func shopFile(t *testing.T, name string, settings *config.Settings) *codemodel.File {
	t.Helper()
	facts, ok := parseShop(t).File(filepath.ToSlash(filepath.Join(shopDir, name)))
	require.True(t, ok, "missing file %s", name)
	return codemodel.NewFile(facts, settings)
}

func class(t *testing.T, f *codemodel.File, name string) *codemodel.Class {
	t.Helper()
	for _, c := range f.Classes().All() {
		if c.Name() == name {
			return c
		}
	}
	require.FailNowf(t, "missing class", "%s has no class %s", f.Name(), name)
	return nil
}

func typeNames(c *codemodel.Class) map[string]string {
	names := make(map[string]string)
	for _, p := range c.Properties().All() {
		names[p.Name()] = p.Type().Name()
	}
	return names
}

func TestParsePackageFiles(t *testing.T) {
	snap := parseShop(t)

	var paths []string
	for _, f := range snap.Files() {
		paths = append(paths, f.Name())
	}
	assert.Equal(t, []string{"access.go", "models.go", "order_methods.go"}, paths)

	models := shopFile(t, "models.go", nil)
	var classes []string
	for _, c := range models.Classes().All() {
		classes = append(classes, c.Name())
	}
	assert.Equal(t, []string{"User", "Timestamps", "Address", "Order", "OrderItem", "Page", "Catalog", "Product"}, classes)
}

func TestStructs(t *testing.T) {
	user := class(t, shopFile(t, "models.go", nil), "User")

	assert.Equal(t, "shop.User", user.FullName())
	assert.Equal(t, "shop", user.Namespace())
	assert.Equal(t, "User represents a user account in the system.", user.DocComment().Summary())

	assert.Equal(t, map[string]string{
		"ID":        "string",
		"Email":     "string",
		"Name":      "string",
		"Age":       "number",
		"CreatedAt": "Date",
		"UpdatedAt": "Date | null",
		"Metadata":  "Record<string, any>",
		"Tags":      "string[]",
		"Avatar":    "string",
		"Role":      "string",
	}, typeNames(user))

	id := user.Properties().At(0)
	assert.True(t, id.Type().IsGuid())
	assert.Equal(t, "ID is the unique identifier for the user", id.DocComment().Summary())
}

func TestStructTags(t *testing.T) {
	user := class(t, shopFile(t, "models.go", nil), "User")
	email := user.Properties().At(1)
	require.Equal(t, "Email", email.Name())

	attrs := email.Attributes().All()
	require.Len(t, attrs, 2)
	assert.Equal(t, "json", attrs[0].Name())
	assert.Equal(t, "email", attrs[0].Value())
	assert.Equal(t, "validate", attrs[1].Name())
	assert.Equal(t, "required,email", attrs[1].Value())
}

func TestTagKeys(t *testing.T) {
	tests := []struct {
		tag  string
		want []string
	}{
		{`json:"id"`, []string{"json"}},
		{`json:"id,omitempty" db:"user_id"  validate:"required"`, []string{"json", "db", "validate"}},
		{`json:"a\"b" xml:"c"`, []string{"json", "xml"}},
		{`json:"unterminated`, nil},
		{`legacy`, nil},
		{``, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tagKeys(tt.tag), tt.tag)
	}
}

func TestEmbeddingAndNamedTypes(t *testing.T) {
	models := shopFile(t, "models.go", nil)
	order := class(t, models, "Order")

	require.NotNil(t, order.BaseClass())
	assert.Equal(t, "Timestamps", order.BaseClass().Name())
	assert.Equal(t, map[string]string{
		"ID":       "string",
		"Status":   "OrderStatus",
		"Items":    "OrderItem[]",
		"Shipping": "Address | null",
		"Total":    "number",
		"Timeout":  "string",
	}, typeNames(order))

	status := order.Properties().At(1).Type()
	assert.True(t, status.IsEnum())
	assert.Equal(t, "OrderStatus.OrderPending", status.DefaultValue())

	catalog := class(t, models, "Catalog")
	assert.Equal(t, map[string]string{
		"Products": "Page<Product>",
		"Category": "string",
	}, typeNames(catalog))
}

func TestGenerics(t *testing.T) {
	page := class(t, shopFile(t, "models.go", nil), "Page")

	assert.True(t, page.IsGeneric())
	assert.Equal(t, "<T>", page.TypeParameters().DisplayString())
	assert.Equal(t, map[string]string{
		"Items": "T[]",
		"Next":  "string | null",
	}, typeNames(page))
}

func TestEnums(t *testing.T) {
	snap := parseShop(t)

	models := shopFile(t, "models.go", nil)
	require.Equal(t, 1, models.Enums().Len())
	status := models.Enums().At(0)
	assert.Equal(t, "OrderStatus", status.Name())
	assert.False(t, status.IsFlags())

	var values []int64
	for _, v := range status.Values().All() {
		values = append(values, v.Value())
	}
	assert.Equal(t, []int64{0, 1, 2}, values, "unexported constants are skipped")

	access := shopFile(t, "access.go", nil)
	require.Equal(t, 1, access.Enums().Len())
	perms := access.Enums().At(0)
	assert.True(t, perms.IsFlags())
	values = nil
	for _, v := range perms.Values().All() {
		values = append(values, v.Value())
	}
	assert.Equal(t, []int64{1, 2, 4}, values)

	_, ok := snap.Lookup("shop.Role")
	assert.False(t, ok, "a named string type is not a declaration")
}

func TestInterfacesAndDelegates(t *testing.T) {
	access := shopFile(t, "access.go", nil)

	var store *codemodel.Interface
	for _, i := range access.Interfaces().All() {
		if i.Name() == "Store" {
			store = i
		}
	}
	require.NotNil(t, store)
	require.Equal(t, 1, store.Interfaces().Len())
	assert.Equal(t, "Closer", store.Interfaces().At(0).Name())

	methods := store.Methods().All()
	require.Len(t, methods, 2)
	assert.Equal(t, "Get", methods[0].Name())
	assert.Equal(t, "Product | null", methods[0].Type().Name())
	assert.Equal(t, "Get returns one product.", methods[0].DocComment().Summary())
	assert.Equal(t, "Product[]", methods[1].Type().Name())
	params := methods[1].Parameters().All()
	require.Len(t, params, 2)
	assert.Equal(t, "tags", params[1].Name())
	assert.Equal(t, "string[]", params[1].Type().Name())

	require.Equal(t, 1, access.Delegates().Len())
	handler := access.Delegates().At(0)
	assert.Equal(t, "Handler", handler.Name())
	assert.Equal(t, "boolean", handler.Type().Name())
	assert.Equal(t, 2, handler.Parameters().Len())
	assert.Equal(t, "Order | null", handler.Parameters().At(0).Type().Name())
}

func TestMethodsAcrossFiles(t *testing.T) {
	split := shopFile(t, "order_methods.go", nil)
	order := class(t, split, "Order")

	assert.Equal(t, 0, order.Properties().Len(), "fields live in models.go")
	methods := order.Methods().All()
	require.Len(t, methods, 2)
	assert.Equal(t, "Ship", methods[0].Name())
	assert.Equal(t, "void", methods[0].Type().Name())
	assert.Equal(t, "Split", methods[1].Name())
	assert.Equal(t, "{ first: Order | null, rest: Order | null }", methods[1].Type().Name())

	models := class(t, shopFile(t, "models.go", nil), "Order")
	require.Equal(t, 1, models.Methods().Len())
	assert.Equal(t, "Sum", models.Methods().At(0).Name())

	combined := config.New()
	combined.PartialRenderingMode = config.Combined
	all := class(t, shopFile(t, "order_methods.go", combined), "Order")
	assert.Equal(t, 6, all.Properties().Len())
	assert.Equal(t, 3, all.Methods().Len())
}

func TestConstValue(t *testing.T) {
	tests := []struct {
		expr  string
		iota  int64
		want  int64
		shift bool
	}{
		{"iota", 3, 3, false},
		{"iota + 1", 2, 3, false},
		{"1 << iota", 3, 8, true},
		{"0x10", 0, 16, false},
		{"-(2 * 3)", 0, -6, false},
		{"1 | 4", 0, 5, false},
	}
	for _, tt := range tests {
		expr, err := parser.ParseExpr(tt.expr)
		require.NoError(t, err)
		got, shift, ok := constValue(expr, tt.iota)
		assert.True(t, ok, tt.expr)
		assert.Equal(t, tt.want, got, tt.expr)
		assert.Equal(t, tt.shift, shift, tt.expr)
	}

	_, _, ok := constValue(&ast.BasicLit{Value: `"text"`}, 0)
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := New().ParsePackage(dir)
	assert.ErrorContains(t, err, "no Go files")

	_, err = New().ParsePackage(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.go")
	require.NoError(t, os.WriteFile(bad, []byte("package bad\n\ntype X struct {"), 0o644))
	_, err = New().ParsePackage(dir)
	assert.ErrorContains(t, err, "parsing")
}
