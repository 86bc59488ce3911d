package extensions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codewriter/internal/codemodel"
	"codewriter/internal/config"
	"codewriter/internal/metadata"
	"codewriter/internal/render"
)

const snapshot = `
files:
  - path: shop/product.cs
    classes:
      - name: Product
        fullName: Shop.Product
        kind: class
        doc: |
          <summary>A product on sale.</summary>
        attributes:
          - {name: Table, fullName: Shop.TableAttribute}
        properties:
          - name: Price
            type:
              name: Nullable
              fullName: System.Nullable
              typeArguments: [{name: Double, fullName: System.Double}]
          - name: Labels
            type:
              name: Dictionary
              fullName: System.Collections.Generic.Dictionary
              dictionary: true
              typeArguments:
                - {name: String, fullName: System.String}
                - {name: String, fullName: System.String}
          - name: Extra
            type: {name: Object, fullName: System.Object, dynamic: true}
          - name: Tags
            type:
              name: List
              fullName: System.Collections.Generic.List
              enumerable: true
              typeArguments: [{name: String, fullName: System.String}]
          - name: OnSale
            type: {name: Boolean, fullName: System.Boolean}
          - name: Stock
            type: {name: Int32, fullName: System.Int32}
          - name: Id
            type: {name: Guid, fullName: System.Guid}
          - name: Added
            type: {name: DateTime, fullName: System.DateTime}
          - name: State
            type: {ref: Shop.State}
          - name: Ttl
            type: {name: TimeSpan, fullName: System.TimeSpan}
          - name: Title
            type: {name: String, fullName: System.String}
          - name: Maker
            type: {ref: Shop.Maker}
        methods:
          - name: Reload
            doc: |
              <summary>Reloads the product.</summary>
              <param name="deep">Reload children too.</param>
              <returns>Nothing.</returns>
            type: {name: Task, fullName: System.Threading.Tasks.Task}
      - name: Maker
        fullName: Shop.Maker
        kind: class
        defined: true
    enums:
      - name: State
        fullName: Shop.State
        kind: enum
        values:
          - {name: Listed, value: 0}
          - {name: Hidden, value: 1}
`

func product(t *testing.T, settings *config.Settings) *codemodel.Class {
	t.Helper()
	snap, err := metadata.ParseSnapshot([]byte(snapshot))
	require.NoError(t, err)
	files := codemodel.NewFiles(snap.Files(), settings)
	require.Len(t, files, 1)
	return files[0].Classes().At(0)
}

func propertyType(t *testing.T, c *codemodel.Class, name string) *codemodel.Type {
	t.Helper()
	for _, p := range c.Properties().All() {
		if p.Name() == name {
			return p.Type()
		}
	}
	require.FailNowf(t, "missing property", "%s has no property %s", c.Name(), name)
	return nil
}

func TestDefault(t *testing.T) {
	c := product(t, nil)

	tests := []struct {
		property string
		want     string
	}{
		{"Price", "null"},
		{"Labels", "{}"},
		{"Extra", "null"},
		{"Tags", "[]"},
		{"OnSale", "false"},
		{"Stock", "0"},
		{"Id", `"00000000-0000-0000-0000-000000000000"`},
		{"Added", "new Date(0)"},
		{"State", "State.Listed"},
		{"Ttl", `"00:00:00"`},
		{"Title", `""`},
		{"Maker", "new Maker()"},
	}

	for _, tt := range tests {
		t.Run(tt.property, func(t *testing.T) {
			assert.Equal(t, tt.want, Default(propertyType(t, c, tt.property)))
		})
	}

	assert.Equal(t, "void(0)", Default(c.Methods().At(0).Type()))
}

func TestDefaultLiteralCharacter(t *testing.T) {
	s := config.New()
	s.StringLiteralCharacter = '\''
	c := product(t, s)

	assert.Equal(t, "''", Default(propertyType(t, c, "Title")))
	assert.Equal(t, "'00:00:00'", Default(propertyType(t, c, "Ttl")))
	assert.Equal(t, "'00000000-0000-0000-0000-000000000000'", Default(propertyType(t, c, "Id")))
}

func TestClassNameAndUnwrap(t *testing.T) {
	c := product(t, nil)

	assert.Equal(t, "number", ClassName(propertyType(t, c, "Price")))
	assert.Equal(t, "string", ClassName(propertyType(t, c, "Tags")))
	assert.Equal(t, "Maker", ClassName(propertyType(t, c, "Maker")))

	tags := propertyType(t, c, "Tags")
	assert.Equal(t, "string", Unwrap(tags).Name())

	title := propertyType(t, c, "Title")
	assert.Same(t, title, Unwrap(title))
}

func TestCaseHelpers(t *testing.T) {
	tests := []struct {
		in, pascal, snake, kebab string
	}{
		{"userName", "UserName", "user_name", "user-name"},
		{"HTTPServer", "HttpServer", "http_server", "http-server"},
		{"order_id", "OrderId", "order_id", "order-id"},
		{"shop.product", "ShopProduct", "shop_product", "shop-product"},
		{"Version2Beta", "Version2Beta", "version2_beta", "version2-beta"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.pascal, PascalCase(tt.in))
			assert.Equal(t, tt.snake, SnakeCase(tt.in))
			assert.Equal(t, tt.kebab, KebabCase(tt.in))
		})
	}
}

func TestJSDoc(t *testing.T) {
	assert.Equal(t, "", JSDoc("  "))
	assert.Equal(t, "/** One line. */", JSDoc(" One line. "))
	assert.Equal(t, "/**\n * First.\n *\n * Second.\n */", JSDoc("First.\n\nSecond."))

	c := product(t, nil)
	assert.Equal(t, "/** A product on sale. */", DocCommentJSDoc(c.DocComment()))
	assert.Equal(t,
		"/**\n * Reloads the product.\n * @param deep Reload children too.\n * @returns Nothing.\n */",
		DocCommentJSDoc(c.Methods().At(0).DocComment()))
	assert.Equal(t, "", DocCommentJSDoc(nil))
}

func TestPredicates(t *testing.T) {
	c := product(t, nil)

	keep, err := IsDocumented(c)
	require.NoError(t, err)
	assert.True(t, keep)

	keep, err = IsDocumented(c.Properties().At(0))
	require.NoError(t, err)
	assert.False(t, keep)

	keep, err = HasAttribute("TableAttribute")(c)
	require.NoError(t, err)
	assert.True(t, keep)

	r := render.NewRegistry()
	require.NoError(t, RegisterFilter(r, "Numbers", "Stock|Price"))
	assert.Error(t, RegisterFilter(r, "Broken", "[Table"))
	_, ok := r.LookupPredicate("Broken")
	assert.False(t, ok)
}

func TestRenderWithExtensions(t *testing.T) {
	c := product(t, nil)
	reg := NewRegistry()
	require.NoError(t, RegisterFilter(reg, "Numbers", "Stock|Price"))
	e := render.New(render.WithRegistry(reg))

	out, ok := e.Render(c, "$Properties($Numbers)[$name: $Type[$ClassName] = $Type[$Default]][; ]")
	assert.True(t, ok)
	assert.Equal(t, "price: number = null; stock: number = 0", out)

	out, ok = e.Render(c, "$SnakeName $KebabName $Properties(Tags)[$Type[$Unwrap[$Name]]]")
	assert.True(t, ok)
	assert.Equal(t, "product product string", out)

	require.NoError(t, RegisterFilter(reg, "readable", "HasGetter"))
	named, ok := e.Render(c, "$Properties($readable)[$name][,]")
	assert.True(t, ok)
	inline, ok := e.Render(c, "$Properties(HasGetter)[$name][,]")
	assert.True(t, ok)
	assert.Equal(t, inline, named, "a named filter tests boolean members like an inline one")
	assert.Contains(t, named, "stock")

	out, ok = e.Render(c, "$DocComment[$JSDoc]\n$Methods($IsDocumented)[$PascalName]")
	assert.True(t, ok)
	assert.Equal(t, "/** A product on sale. */\nReload", out)
}
