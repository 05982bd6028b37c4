package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chaisql/wire/cmd/wire/commands"
	"github.com/chaisql/wire/internal/testutil"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testManifest = `[
  {"type": "varint64", "value": -2368365495612416452},
  {"type": "string", "value": "abcdefáéíóú粟"},
  {"type": "int32s", "values": [1, 2, 3]}
]`

const testChunkedManifest = `[
  {"type": "chunk", "values": [{"type": "varint32", "value": 1}]},
  {"type": "chunk", "skip": true, "values": [{"type": "ascii", "value": "skipped"}]},
  {"type": "chunk", "values": [{"type": "bool", "value": true}]}
]`

// run runs the CLI with stdin as standard input and returns its standard
// output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := commands.NewApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr
	// Keep cli.Exit errors from terminating the test binary.
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"wire"}, args...))
	if stderr.Len() > 0 {
		t.Log(stderr.String())
	}
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEncodeDecode(t *testing.T) {
	dir := testutil.TempDir(t)
	m := writeFile(t, dir, "manifest.json", testManifest)
	data := filepath.Join(dir, "data.bin")

	_, err := run(t, "", "encode", "-o", data, m)
	require.NoError(t, err)

	b, err := os.ReadFile(data)
	require.NoError(t, err)
	require.Len(t, b, 9+20+12)

	out, err := run(t, "", "decode", "-m", m, data)
	require.NoError(t, err)
	require.Equal(t, `[
  {"type": "varint64", "value": -2368365495612416452},
  {"type": "string", "value": "abcdefáéíóú粟"},
  {"type": "int32s", "values": [1, 2, 3]}
]
`, out)

	// The manifest can come from the standard input.
	hexOut, err := run(t, testManifest, "encode", "--hex")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hexOut, "00000000  "))
}

func TestEncodeDecodeChunked(t *testing.T) {
	dir := testutil.TempDir(t)
	m := writeFile(t, dir, "manifest.json", testChunkedManifest)

	encoded, err := run(t, "", "encode", "-c", "--buffer-size", "4", m)
	require.NoError(t, err)

	out, err := run(t, encoded, "decode", "-c", "-m", m)
	require.NoError(t, err)
	require.Equal(t, `[
  {"type": "chunk", "values": [
    {"type": "varint32", "value": 1}
  ]},
  {"type": "chunk", "skip": true},
  {"type": "chunk", "values": [
    {"type": "bool", "value": true}
  ]}
]
`, out)

	chunks, err := run(t, encoded, "chunks")
	require.NoError(t, err)
	require.Equal(t, `chunk 0: 1 bytes in 1 pieces
chunk 1: 7 bytes in 2 pieces
chunk 2: 1 bytes in 1 pieces
`, chunks)
}

func TestEncodeErrors(t *testing.T) {
	_, err := run(t, `[{"type": "chunk"}]`, "encode")
	require.Error(t, err)

	_, err = run(t, `[{"type": "int32", "value": 1}]`, "encode", "-c")
	require.Error(t, err)

	_, err = run(t, `not json`, "encode")
	require.Error(t, err)
}

func TestVarInt(t *testing.T) {
	out, err := run(t, "", "varint", "1", "-1", "300")
	require.NoError(t, err)
	require.Equal(t, "1\t1\t02\n-1\t1\t01\n300\t2\td804\n", out)

	out, err = run(t, "", "varint", "--positive", "--flag", "64")
	require.NoError(t, err)
	require.Equal(t, "64\t2\tc001\n", out)

	_, err = run(t, "", "varint", "--long", "-2368365495612416452")
	require.Error(t, err)

	out, err = run(t, "", "varint", "--long", "--", "-2368365495612416452")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "-2368365495612416452\t9\t"))

	_, err = run(t, "", "varint", "4294967296")
	require.Error(t, err)
}

func TestVarIntDecode(t *testing.T) {
	out, err := run(t, "", "varint", "--decode", "d80402")
	require.NoError(t, err)
	require.Equal(t, "300\t2\td804\n1\t1\t02\n", out)

	out, err = run(t, "", "varint", "--decode", "--positive", "--flag", "c00101")
	require.NoError(t, err)
	require.Equal(t, "64\t2\tc001\ttrue\n1\t1\t01\tfalse\n", out)

	encoded, err := run(t, "", "varint", "--long", "--", "-2368365495612416452")
	require.NoError(t, err)
	fields := strings.Split(strings.TrimSpace(encoded), "\t")
	require.Len(t, fields, 3)
	out, err = run(t, "", "varint", "--decode", "--long", fields[2])
	require.NoError(t, err)
	require.Equal(t, encoded, out)

	_, err = run(t, "", "varint", "--decode", "d8")
	require.Error(t, err)

	_, err = run(t, "", "varint", "--decode", "zz")
	require.Error(t, err)
}

func TestPebble(t *testing.T) {
	dir := testutil.TempDir(t)
	db := filepath.Join(dir, "pebble")
	m := writeFile(t, dir, "manifest.json", testManifest)

	_, err := run(t, "", "encode", "--db", db, "-s", "values", m)
	require.NoError(t, err)

	_, err = run(t, "raw bytes", "pebble", "--db", db, "put", "--segment-size", "4", "raw")
	require.NoError(t, err)

	out, err := run(t, "", "pebble", "--db", db, "list")
	require.NoError(t, err)
	require.Equal(t, "raw\t9 bytes\t3 segments\nvalues\t41 bytes\t1 segments\n", out)

	out, err = run(t, "", "pebble", "--db", db, "get", "raw")
	require.NoError(t, err)
	require.Equal(t, "raw bytes", out)

	out, err = run(t, "", "decode", "--db", db, "-s", "values", "-m", m)
	require.NoError(t, err)
	require.Contains(t, out, "abcdefáéíóú粟")

	out, err = run(t, "", "pebble", "--db", db, "dump", "-k")
	require.NoError(t, err)
	require.Contains(t, out, `"__wire.stream\x1fraw"`)

	_, err = run(t, "", "pebble", "--db", db, "delete", "raw")
	require.NoError(t, err)
	_, err = run(t, "", "pebble", "--db", db, "get", "raw")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestUnknownCommand(t *testing.T) {
	_, err := run(t, "", "encod")
	require.EqualError(t, err, `unknown command "encod", did you mean "encode"?`)

	_, err = run(t, "", "xyz")
	require.EqualError(t, err, `unknown command "xyz"`)

	out, err := run(t, "")
	require.NoError(t, err)
	require.Contains(t, out, "varint")
}
