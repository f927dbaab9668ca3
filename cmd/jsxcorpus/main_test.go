package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/jsxcorpus"
	main "github.com/fwojciec/jsxcorpus/cmd/jsxcorpus"
	"github.com/fwojciec/jsxcorpus/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedRecords stores one record per title in a new fs record directory.
func seedRecords(t *testing.T, titles ...string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "records")
	store := fs.NewRecordStore(dir)
	for _, title := range titles {
		rec := &jsxcorpus.Record{
			Title: title,
			URL:   "https://example.com/" + strings.ToLower(title),
			HTML:  `<article><h1 class="t">` + title + `</h1><p>hi</p></article>`,
		}
		require.NoError(t, store.AppendRecord(context.Background(), rec))
	}
	return dir
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestMain_Run_HelpShowsCommands(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	for _, cmd := range []string{"run", "crawl", "export", "dataset", "estimate"} {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_Export(t *testing.T) {
	t.Parallel()

	t.Run("writes one unit for records within budget", func(t *testing.T) {
		t.Parallel()

		records := seedRecords(t, "Alpha", "Beta", "Gamma")
		out := t.TempDir()
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{
			"export", "--records", records, "--out", out,
			"--output-file-name", "docs", "--max-tokens", "1000000", "--max-file-size", "10",
		}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, []string{"docs-1"}, listDir(t, out))
		assert.Equal(t, []string{
			"alpha_input.jsx", "alpha_output.jsx",
			"beta_input.jsx", "beta_output.jsx",
			"gamma_input.jsx", "gamma_output.jsx",
		}, listDir(t, filepath.Join(out, "docs-1")))
		assert.Contains(t, stdout.String(), "Found 3 records")
		assert.Contains(t, stdout.String(), "Wrote 3 items to docs-1")
		assert.Contains(t, stdout.String(), "Exported 3 records to 1 units")
	})

	t.Run("reads settings from a config file with the crawler keys", func(t *testing.T) {
		t.Parallel()

		records := seedRecords(t, "Alpha", "Beta")
		out := t.TempDir()
		cfg := writeFile(t, filepath.Join(t.TempDir(), "config.json"), `{
			"url": "https://example.com/",
			"match": "https://example.com/**",
			"maxPagesToCrawl": 5,
			"outputFileName": "site.json",
			"maxTokens": 20000000
		}`)

		err := main.NewMain().Run(context.Background(), []string{
			"--config", cfg, "--records", records, "--out", out, "export",
		}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, []string{"site-1"}, listDir(t, out))
	})

	t.Run("flags override the config file", func(t *testing.T) {
		t.Parallel()

		records := seedRecords(t, "Alpha")
		out := t.TempDir()
		cfg := writeFile(t, filepath.Join(t.TempDir(), "config.json"), `{"outputFileName": "fromfile"}`)

		err := main.NewMain().Run(context.Background(), []string{
			"--config", cfg, "--records", records, "--out", out, "export", "--output-file-name", "fromflag",
		}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, []string{"fromflag-1"}, listDir(t, out))
	})

	t.Run("uses the sqlite store", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{
			"--store", "sqlite", "--db", filepath.Join(dir, "db", "records.db"), "--out", dir, "export",
		}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Found 0 records")
		assert.Contains(t, stdout.String(), "Exported 0 records to 0 units")
	})

	t.Run("rejects profiles with unknown keys", func(t *testing.T) {
		t.Parallel()

		records := seedRecords(t, "Alpha")
		profiles := writeFile(t, filepath.Join(t.TempDir(), "profiles.json"), `{"input": {"name": "a", "colour": "red"}}`)

		err := main.NewMain().Run(context.Background(), []string{
			"--records", records, "--out", t.TempDir(), "--profiles", profiles, "export",
		}, &bytes.Buffer{}, &bytes.Buffer{})

		assert.Equal(t, jsxcorpus.EINVALID, jsxcorpus.ErrorCode(err))
	})

	t.Run("applies profiles from a file", func(t *testing.T) {
		t.Parallel()

		records := seedRecords(t, "Alpha")
		out := t.TempDir()
		profiles := writeFile(t, filepath.Join(t.TempDir(), "profiles.json"), `{
			"input": {"name": "bare", "component": "Bare", "attributes": []},
			"output": {"name": "styled", "component": "Styled", "attributes": [{"name": "class"}]}
		}`)

		err := main.NewMain().Run(context.Background(), []string{
			"--records", records, "--out", out, "--profiles", profiles, "export", "--output-file-name", "p",
		}, &bytes.Buffer{}, &bytes.Buffer{})
		require.NoError(t, err)

		input, err := os.ReadFile(filepath.Join(out, "p-1", "alpha_input.jsx"))
		require.NoError(t, err)
		output, err := os.ReadFile(filepath.Join(out, "p-1", "alpha_output.jsx"))
		require.NoError(t, err)
		assert.Contains(t, string(input), "function Bare()")
		assert.NotContains(t, string(input), "className")
		assert.Contains(t, string(output), `className="t"`)
	})
}

func TestMain_Run_NoCrawl(t *testing.T) {
	t.Parallel()

	records := seedRecords(t, "Alpha")
	out := t.TempDir()
	stdout := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{
		"run", "--no-crawl", "--records", records, "--out", out, "--output-file-name", "site",
	}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.NotContains(t, stdout.String(), "Crawling")
	assert.Equal(t, []string{"site-1"}, listDir(t, out))
}

func TestMain_Run_Dataset(t *testing.T) {
	t.Parallel()

	t.Run("legacy argument writes output.jsonl into the unit", func(t *testing.T) {
		t.Parallel()

		unit := t.TempDir()
		writeFile(t, filepath.Join(unit, "a_input.jsx"), "<p>in</p>")
		writeFile(t, filepath.Join(unit, "a_output.jsx"), "<p>out</p>")
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"jsonl-" + unit}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(unit, jsxcorpus.DatasetFile))
		require.NoError(t, err)
		var ex jsxcorpus.Example
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &ex))
		assert.Equal(t, "<p>in</p>", ex.Messages[0].Content)
		assert.Equal(t, "<p>out</p>", ex.Messages[1].Content)
		assert.Equal(t, jsxcorpus.DefaultSystemPrompt, ex.Messages[2].Content)
		assert.Contains(t, stdout.String(), "Wrote 1 examples")
	})

	t.Run("uses the system prompt file", func(t *testing.T) {
		t.Parallel()

		unit := t.TempDir()
		writeFile(t, filepath.Join(unit, "a_input.jsx"), "in")
		writeFile(t, filepath.Join(unit, "a_output.jsx"), "out")
		prompt := writeFile(t, filepath.Join(t.TempDir(), "prompt.txt"), "Only JSX.\n")

		err := main.NewMain().Run(context.Background(), []string{
			"dataset", unit, "--system-prompt-file", prompt,
		}, &bytes.Buffer{}, &bytes.Buffer{})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(unit, jsxcorpus.DatasetFile))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"content":"Only JSX."`)
	})

	t.Run("reports missing pairs without failing", func(t *testing.T) {
		t.Parallel()

		unit := t.TempDir()
		writeFile(t, filepath.Join(unit, "orphan_output.jsx"), "out")
		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"dataset", unit}, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "orphan_input.jsx")
	})

	t.Run("rejects a negative token ceiling", func(t *testing.T) {
		t.Parallel()

		unit := t.TempDir()
		writeFile(t, filepath.Join(unit, "a_input.jsx"), "in")
		writeFile(t, filepath.Join(unit, "a_output.jsx"), "out")

		err := main.NewMain().Run(context.Background(), []string{
			"dataset", unit, "--token-ceiling=-1",
		}, &bytes.Buffer{}, &bytes.Buffer{})

		assert.Equal(t, jsxcorpus.EINVALID, jsxcorpus.ErrorCode(err))
		assert.NoFileExists(t, filepath.Join(unit, jsxcorpus.DatasetFile))
	})

	t.Run("reports the default ceiling when the flag is zero", func(t *testing.T) {
		t.Parallel()

		unit := t.TempDir()
		writeFile(t, filepath.Join(unit, "a_input.jsx"), strings.Repeat("word ", 8000))
		writeFile(t, filepath.Join(unit, "a_output.jsx"), "out")
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{
			"dataset", unit, "--token-ceiling=0",
		}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Excluded 1 pairs at or over 7168 tokens")
	})
}

func TestMain_Run_Estimate(t *testing.T) {
	t.Parallel()

	t.Run("estimates stdin", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Stdin = strings.NewReader("abcd")
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"estimate"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Regexp(t, `^\d+\n$`, stdout.String())
	})

	t.Run("estimates files with a total", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := writeFile(t, filepath.Join(dir, "a.jsx"), "<div>a</div>")
		b := writeFile(t, filepath.Join(dir, "b.jsx"), "<div>b</div>")
		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"estimate", a, b}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasSuffix(lines[0], "\t"+a))
		assert.True(t, strings.HasSuffix(lines[2], "\ttotal"))
	})
}
