package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/paveg/tabula/internal/cell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peopleCSV = "name,age\nAlice,30\nBob,NA\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, tty bool, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr, tty)
	return code, stdout.String(), stderr.String()
}

func TestRun_Version(t *testing.T) {
	for _, flag := range []string{"-v", "--version"} {
		t.Run(flag, func(t *testing.T) {
			code, stdout, _ := runCLI(t, false, flag)
			assert.Equal(t, 0, code)
			assert.Contains(t, stdout, "tabula\n")
			assert.Contains(t, stdout, "Version:")
		})
	}
}

func TestRun_Usage(t *testing.T) {
	t.Run("no flags", func(t *testing.T) {
		code, _, stderr := runCLI(t, false)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "Usage: tabula-cli [options]")
	})

	t.Run("help", func(t *testing.T) {
		code, _, stderr := runCLI(t, false, "-h")
		assert.Equal(t, 0, code)
		assert.Contains(t, stderr, "--inspect FILE")
	})

	t.Run("unknown flag", func(t *testing.T) {
		code, _, _ := runCLI(t, false, "--bogus")
		assert.Equal(t, 2, code)
	})
}

func TestRun_Inspect(t *testing.T) {
	path := writeTemp(t, "people.csv", peopleCSV)

	t.Run("pipes CSV when not a terminal", func(t *testing.T) {
		code, stdout, _ := runCLI(t, false, "--inspect", path)
		require.Equal(t, 0, code)
		assert.Equal(t, peopleCSV, stdout)
	})

	t.Run("limits preview rows", func(t *testing.T) {
		code, stdout, _ := runCLI(t, false, "--inspect", path, "--rows", "1")
		require.Equal(t, 0, code)
		assert.Equal(t, "name,age\nAlice,30\n", stdout)
	})

	t.Run("prints schema on a terminal", func(t *testing.T) {
		code, stdout, _ := runCLI(t, true, "--inspect", path, "--rows", "1")
		require.Equal(t, 0, code)
		assert.Contains(t, stdout, "2 rows x 2 columns")
		assert.Contains(t, stdout, "uint")
		assert.Contains(t, stdout, "... 1 more rows")
	})

	t.Run("converts columns", func(t *testing.T) {
		code, stdout, _ := runCLI(t, false, "--inspect", path, "--convert", "age:float")
		require.Equal(t, 0, code)
		assert.Equal(t, "name,age\nAlice,30.0\nBob,NA\n", stdout)
	})

	t.Run("reads TSV", func(t *testing.T) {
		tsv := writeTemp(t, "people.tsv", "name\tage\nAlice\t30\n")
		code, stdout, _ := runCLI(t, false, "--inspect", tsv)
		require.Equal(t, 0, code)
		assert.Equal(t, "name,age\nAlice,30\n", stdout)
	})

	t.Run("reads JSON lines", func(t *testing.T) {
		jsonl := writeTemp(t, "people.jsonl", "{\"name\":\"Alice\",\"age\":30}\n{\"name\":\"Bob\",\"age\":null}\n")
		code, stdout, _ := runCLI(t, false, "--inspect", jsonl)
		require.Equal(t, 0, code)
		assert.Equal(t, peopleCSV, stdout)
	})

	t.Run("stats logs each step", func(t *testing.T) {
		code, _, stderr := runCLI(t, false, "--inspect", path, "--stats")
		require.Equal(t, 0, code)
		assert.Contains(t, stderr, "name=read")
		assert.Contains(t, stderr, "name=preview")
		assert.Contains(t, stderr, "msg=summary operations=2 failures=0")
	})

	t.Run("verbose logs the read", func(t *testing.T) {
		code, _, stderr := runCLI(t, false, "--inspect", path, "--verbose")
		require.Equal(t, 0, code)
		assert.Contains(t, stderr, "read file")
		assert.Contains(t, stderr, "rows=2")
	})
}

func TestRun_InspectWritesOutput(t *testing.T) {
	path := writeTemp(t, "people.csv", peopleCSV)

	for _, ext := range []string{".parquet", ".json", ".jsonl", ".csv"} {
		t.Run(ext, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out"+ext)

			code, _, stderr := runCLI(t, false, "--inspect", path, "--out", out)
			require.Equal(t, 0, code, stderr)
			assert.Contains(t, stderr, "wrote file")

			code, stdout, stderr := runCLI(t, false, "--inspect", out)
			require.Equal(t, 0, code, stderr)
			assert.Equal(t, peopleCSV, stdout)
		})
	}
}

func TestRun_Errors(t *testing.T) {
	path := writeTemp(t, "people.csv", peopleCSV)

	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"unsupported input format", []string{"--inspect", writeTemp(t, "people.xlsx", "")}, 1, "unsupported file format"},
		{"missing file", []string{"--inspect", filepath.Join(t.TempDir(), "absent.csv")}, 1, "inspect failed"},
		{"unknown column", []string{"--inspect", path, "--convert", "height:int"}, 1, "height"},
		{"invalid policy", []string{"--inspect", path, "--policy", "guess"}, 1, "invalid configuration"},
		{"negative rows", []string{"--inspect", path, "--rows", "-1"}, 1, "--rows"},
		{"malformed convert", []string{"--convert", "age"}, 2, "COL:KIND"},
		{"unknown kind", []string{"--convert", "age:decimal"}, 2, "decimal"},
		{"mixed kind", []string{"--convert", "age:mixed"}, 2, "cannot convert"},
		{"missing config file", []string{"--inspect", path, "--config", filepath.Join(t.TempDir(), "absent.yaml")}, 1, "tabula-cli:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, false, tt.args...)
			assert.Equal(t, tt.code, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	path := writeTemp(t, "people.csv", "name;age\nAlice;30\n")
	cfg := writeTemp(t, "tabula.yaml", "delimiter: \";\"\nna_token: \"-\"\n")

	code, stdout, stderr := runCLI(t, false, "--inspect", path, "--config", cfg)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "name;age\nAlice;30\n", stdout)
}

func TestRun_Demo(t *testing.T) {
	code, stdout, _ := runCLI(t, false, "--demo")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "== Parsing text ==")
	assert.Contains(t, stdout, "== Arithmetic ==")
	assert.Contains(t, stdout, "rejected")
	assert.Contains(t, stdout, "inferred")
}

func TestConversions(t *testing.T) {
	c := conversions{}
	require.NoError(t, c.Set("age:int"))
	require.NoError(t, c.Set("a:b:text"))
	assert.Equal(t, conversions{"age": cell.Int, "a:b": cell.Text}, c)
	assert.Equal(t, "a:b:text,age:int", c.String())

	assert.Error(t, c.Set(":int"))
	assert.Error(t, c.Set("age:"))
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want format
	}{
		{"a.csv", formatCSV},
		{"a.TSV", formatTSV},
		{"a.json", formatJSON},
		{"a.ndjson", formatJSONLines},
		{"dir/a.parquet", formatParquet},
	}
	for _, tt := range tests {
		got, err := formatOf(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := formatOf("a.txt")
	assert.Error(t, err)
}
