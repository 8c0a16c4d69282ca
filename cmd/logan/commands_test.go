package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtures(t *testing.T) (cfgPath, logPath string) {
	t.Helper()
	dir := t.TempDir()

	cfgPath = filepath.Join(dir, "logan.yaml")
	cfg := "log_file: " + filepath.Join(dir, "logan.log") + "\n" +
		"rules:\n" +
		"  - logger: simple\n" +
		"    pattern: '^(\\w+) (\\S+): (.*)$'\n" +
		"    fields: [level, logger, message]\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	logPath = filepath.Join(dir, "app.log")
	data := "WARN auth: login failed\n\tat Foo.bar\nERROR db: down\n"
	require.NoError(t, os.WriteFile(logPath, []byte(data), 0o600))
	return
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestRenderHtml(t *testing.T) {
	cfgPath, logPath := writeFixtures(t)

	out := run(t, "render", "--html", "-c", cfgPath, logPath)

	for _, want := range []string{
		`<tr class="log warn">`,
		`<td class="message">login failed</td>`,
		`<tr class="text">`,
		`<tr class="log error">`,
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderTerminal(t *testing.T) {
	cfgPath, logPath := writeFixtures(t)

	out := run(t, "render", "-c", cfgPath, logPath)

	for _, want := range []string{"Logger", "login failed", "Foo.bar"} {
		assert.Contains(t, out, want)
	}
}

func TestFilters(t *testing.T) {
	cfgPath, logPath := writeFixtures(t)

	out := run(t, "filters", "-c", cfgPath, logPath)

	for _, want := range []string{"level (select)", "WARN", "ERROR", "message (like)"} {
		assert.Contains(t, out, want)
	}
}

func TestSampleToml(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "logan.toml")

	run(t, "sample", "-c", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "log4j")
}

func TestBadRule(t *testing.T) {
	cfgPath, logPath := writeFixtures(t)
	t.Chdir(filepath.Dir(cfgPath))
	require.NoError(t, os.WriteFile(cfgPath, []byte("rules:\n  - pattern: '('\n"), 0o600))

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "-c", cfgPath, logPath})

	assert.Error(t, cmd.Execute())
}

func TestFiltersWhere(t *testing.T) {
	cfgPath, logPath := writeFixtures(t)
	require.NoError(t, os.WriteFile(logPath, []byte(
		"WARN auth: login failed\nWARN db: slow\nERROR db: down\nWARN auth: locked out\n"), 0o600))

	out := run(t, "filters", "-c", cfgPath, "--where", "logger=db", logPath)

	assert.Contains(t, out, "rows: 2\n")
	assert.Contains(t, out, "       1  WARN\n")
	assert.Contains(t, out, "       1  ERROR\n")
	assert.NotContains(t, out, "auth")

	out = run(t, "filters", "-c", cfgPath, "-w", "message=o", "-w", "level=WARN", logPath)
	assert.Contains(t, out, "rows: 3\n")
	assert.Contains(t, out, "       2  auth\n")
}

func TestFiltersBadWhere(t *testing.T) {
	cfgPath, logPath := writeFixtures(t)

	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"filters", "-c", cfgPath, "--where", "nope=x", logPath})

	assert.Error(t, cmd.Execute())
}

func TestRenderKeepsRawText(t *testing.T) {
	cfgPath, logPath := writeFixtures(t)
	require.NoError(t, os.WriteFile(logPath, []byte(
		"WARN auth: a<b &amp; c\n\tat com.acme.Foo.<init>(Foo.java:10)\n"), 0o600))

	out := run(t, "render", "--html", "-c", cfgPath, logPath)

	assert.Contains(t, out, `<td class="message">a&lt;b &amp;amp; c</td>`)
	assert.Contains(t, out, `com.acme.Foo.&lt;init&gt;(Foo.java:10)`)
}

func TestRenderMarkupInput(t *testing.T) {
	cfgPath, logPath := writeFixtures(t)
	htmlPath := filepath.Join(filepath.Dir(logPath), "app.html")
	require.NoError(t, os.WriteFile(htmlPath, []byte("<b>WARN</b> auth: x &lt; y\n"), 0o600))

	out := run(t, "render", "--html", "-c", cfgPath, htmlPath)
	assert.Contains(t, out, `<td class="message">x &lt; y</td>`)

	out = run(t, "render", "--html", "--markup", "-c", cfgPath, logPath)
	assert.Contains(t, out, `<td class="message">login failed</td>`)
}
