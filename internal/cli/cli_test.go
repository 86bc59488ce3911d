package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codewriter/internal/metadata"
)

const shopDir = "../parser/testdata/shop"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "codewriter", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"version", "render", "watch", "inspect"} {
		assert.Contains(t, names, want)
	}
}

func TestVersion(t *testing.T) {
	Version = "1.2.3-test"
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "codewriter version: 1.2.3-test")
	assert.Contains(t, out, "Go version: go")
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "shop.tst")
	require.NoError(t, os.WriteFile(tmpl, []byte("$Enums[export enum $Name { $Values[$Name = $Value][, ] }][\n]"), 0o644))

	out, err := execute(t, "render", "-t", tmpl, "--no-bom", "--ext", ".g.ts", shopDir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 written, 0 unchanged, 0 deleted")

	data, err := os.ReadFile(filepath.Join(dir, "models.g.ts"))
	require.NoError(t, err)
	assert.Equal(t, "export enum OrderStatus { OrderPending = 0, OrderShipped = 1, OrderDelivered = 2 }", string(data))
	assert.FileExists(t, filepath.Join(dir, "access.g.ts"))
	assert.NoFileExists(t, filepath.Join(dir, "order_methods.g.ts"))

	out, err = execute(t, "render", "-t", tmpl, "--no-bom", "--ext", ".g.ts", shopDir)
	require.NoError(t, err)
	assert.Contains(t, out, "0 written, 2 unchanged, 0 deleted")
}

func TestRenderSingleFileWithFilter(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "shop.tst")
	require.NoError(t, os.WriteFile(tmpl, []byte("$Classes($orders)[$Name][,]"), 0o644))

	_, err := execute(t, "render", "-t", tmpl, "--no-bom", "--single-file", "all.ts", "--partial", "combined", "--filter", "orders=Order*", shopDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "all.ts"))
	require.NoError(t, err)
	// access.go has no match but precedes roots that do, so its separator stays
	assert.Equal(t, ",Order,OrderItem,Order", string(data))
}

func TestRenderErrors(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "shop.tst")
	require.NoError(t, os.WriteFile(tmpl, []byte("$Classes(A||B)[$Name]"), 0o644))

	out, err := execute(t, "render", "-t", tmpl, shopDir)
	assert.ErrorContains(t, err, "render failed")
	assert.Contains(t, out, "failed")

	_, err = execute(t, "render", shopDir)
	assert.ErrorContains(t, err, "template")

	_, err = execute(t, "render", "-t", tmpl, "--partial", "sideways", shopDir)
	assert.ErrorContains(t, err, "partialRenderingMode")

	_, err = execute(t, "render", "-t", tmpl, "--filter", "broken", shopDir)
	assert.ErrorContains(t, err, "name=expression")
}

func TestInspectTree(t *testing.T) {
	out, err := execute(t, "inspect", shopDir)
	require.NoError(t, err)

	assert.Contains(t, out, "class User\n    ID: string\n")
	assert.Contains(t, out, "class Order : Timestamps\n")
	assert.Contains(t, out, "class Page<T>\n")
	assert.Contains(t, out, "flags Permission\n    PermRead = 1\n")
	assert.Contains(t, out, "delegate Handler(order: Order | null, attempt: number): boolean\n")
	assert.Contains(t, out, "    Split(at: number): { first: Order | null, rest: Order | null }\n")
}

func TestInspectSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.yaml")
	_, err := execute(t, "inspect", "--snapshot", "-o", path, shopDir)
	require.NoError(t, err)

	snap, err := metadata.LoadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, snap.Files(), 3)

	models, ok := snap.File(filepath.ToSlash(filepath.Join(shopDir, "models.go")))
	require.True(t, ok)
	assert.NotEmpty(t, models.Classes())

	_, ok = snap.Lookup("shop.OrderStatus")
	assert.True(t, ok)
}

func TestRenderTypeScriptExample(t *testing.T) {
	out := t.TempDir()
	_, err := execute(t, "render", "-t", "../../examples/typescript/models.tst", "-o", out, shopDir)
	require.NoError(t, err)

	models, err := os.ReadFile(filepath.Join(out, "models.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(models), "// Generated by codewriter from models.go. Do not edit.\n")
	assert.Contains(t, string(models), "/** User represents a user account in the system. */\nexport interface User {\n    id: string;\n")
	assert.Contains(t, string(models), "export interface Page<T> {\n    items: T[];\n    next: string | null;\n}\n")
	assert.Contains(t, string(models), "export enum OrderStatus {\n    OrderPending = 0,\n    OrderShipped = 1,\n    OrderDelivered = 2\n}\n")

	access, err := os.ReadFile(filepath.Join(out, "access.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(access), "    get(id: string): Promise<Product | null>;\n")
	assert.Contains(t, string(access), "    list(limit: number, tags: string[]): Promise<Product[]>;\n")
}
