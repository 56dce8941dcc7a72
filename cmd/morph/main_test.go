package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", filepath.Join(t.TempDir(), "absent.yaml"), "")
	cmd.Flags().String("log-level", "", "")
	cmd.Flags().String("format", "", "")
	cmd.Flags().String("input-format", "", "")
	cmd.Flags().String("schema", "", "")
	cmd.Flags().String("publish", "", "")
	cmd.Flags().String("redis-addr", "", "")
	cmd.Flags().String("store-dir", "", "")
	cmd.Flags().Bool("table", false, "")
	cmd.Flags().Bool("diff", false, "")

	require.NoError(t, cmd.Flags().Set("log-level", "error"))
	for name, v := range flags {
		require.NoError(t, cmd.Flags().Set(name, v))
	}
	return cmd
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunTransform_File(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"add": 5, "word": "error here"}`)
	cmd := newTestCommand(t, map[string]string{"format": "json"})

	var out bytes.Buffer
	require.NoError(t, runTransform(cmd, []string{path}, nil, &out))
	assert.JSONEq(t, `{"add": 15, "word": "ERROR HERE"}`, out.String())
}

func TestRunTransform_Stdin(t *testing.T) {
	cmd := newTestCommand(t, nil)

	var out bytes.Buffer
	require.NoError(t, runTransform(cmd, nil, strings.NewReader("multiply: 4\n"), &out))
	assert.Equal(t, "multiply: 12\n", out.String())
}

func TestRunTransform_Table(t *testing.T) {
	cmd := newTestCommand(t, map[string]string{"table": "true"})

	var out bytes.Buffer
	require.NoError(t, runTransform(cmd, []string{"-"}, strings.NewReader("multiply: 4\n"), &out))
	assert.Contains(t, out.String(), "| multiply | integer | 4 | 12 |")
}

func TestRunTransform_SchemaRejects(t *testing.T) {
	schemaPath := writeFile(t, "schema.yaml", "port: int\n")
	cmd := newTestCommand(t, map[string]string{"schema": schemaPath})

	err := runTransform(cmd, nil, strings.NewReader("port: eighty\n"), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunTransform_PublishToRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cmd := newTestCommand(t, map[string]string{
		"publish":    "nightly",
		"redis-addr": mr.Addr(),
	})

	require.NoError(t, runTransform(cmd, nil, strings.NewReader("add: 1\n"), &bytes.Buffer{}))
	assert.True(t, mr.Exists("morph:result:data:nightly"))
}

func TestRunTransform_PublishToDirectory(t *testing.T) {
	dir := t.TempDir()
	cmd := newTestCommand(t, map[string]string{
		"publish":   "local",
		"store-dir": dir,
	})

	require.NoError(t, runTransform(cmd, nil, strings.NewReader("add: 1\n"), &bytes.Buffer{}))
	assert.FileExists(t, filepath.Join(dir, "local.json"))
}

func TestRunTransform_PublishMasked(t *testing.T) {
	dir := t.TempDir()
	settings := writeFile(t, "morph.yaml", "store_dir: "+dir+"\nresults:\n  mask: [password]\n")
	cmd := newTestCommand(t, map[string]string{
		"config":  settings,
		"publish": "masked",
	})

	require.NoError(t, runTransform(cmd, nil, strings.NewReader("password: hunter2\nuser: bob\n"), &bytes.Buffer{}))

	data, err := os.ReadFile(filepath.Join(dir, "masked.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"password": "***", "user": "bob"}`, string(data))
}

func TestRunTransform_FormatAliases(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"yml", "add: 11\n"},
		{" yaml", "add: 11\n"},
		{"JSON", `{"add": 11}`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := t.TempDir()
			cmd := newTestCommand(t, map[string]string{
				"format":    tt.format,
				"publish":   "aliased",
				"store-dir": dir,
			})

			var out bytes.Buffer
			require.NoError(t, runTransform(cmd, nil, strings.NewReader("add: 1\n"), &out))
			if strings.HasPrefix(tt.want, "{") {
				assert.JSONEq(t, tt.want, out.String())
			} else {
				assert.Equal(t, tt.want, out.String())
			}
			assert.FileExists(t, filepath.Join(dir, "aliased.json"))
		})
	}
}

func TestRunTransform_UnencodableResultIsNotPublished(t *testing.T) {
	dir := t.TempDir()
	cmd := newTestCommand(t, map[string]string{
		"format":    "json",
		"publish":   "nan",
		"store-dir": dir,
	})

	var out bytes.Buffer
	err := runTransform(cmd, nil, strings.NewReader("ratio: .nan\n"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-finite float")
	assert.Empty(t, out.String())
	assert.NoFileExists(t, filepath.Join(dir, "nan.json"))
}

func TestRunTransform_BadFormatSetting(t *testing.T) {
	cmd := newTestCommand(t, map[string]string{"format": "toml"})
	assert.Error(t, runTransform(cmd, nil, strings.NewReader("a: 1\n"), &bytes.Buffer{}))
}

func TestRunValidate(t *testing.T) {
	schemaPath := writeFile(t, "schema.yaml", "port: int\nhosts: \"[text]\"\n")

	good := writeFile(t, "good.yaml", "port: 80\nhosts: [a, b]\n")
	cmd := newTestCommand(t, map[string]string{"schema": schemaPath})
	assert.NoError(t, runValidate(cmd, good, &bytes.Buffer{}))

	bad := writeFile(t, "bad.yaml", "port: eighty\n")
	var out bytes.Buffer
	assert.Error(t, runValidate(cmd, bad, &out))
	assert.Contains(t, out.String(), `field "hosts": required`)
	assert.Contains(t, out.String(), `field "port"`)
}

func TestRunValidate_NeedsSchema(t *testing.T) {
	path := writeFile(t, "doc.yaml", "a: 1\n")
	assert.Error(t, runValidate(newTestCommand(t, nil), path, &bytes.Buffer{}))
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch_PrintsDiffs(t *testing.T) {
	path := writeFile(t, "cfg.yaml", "add: 1\nword: hello\n")
	cmd := newTestCommand(t, map[string]string{"diff": "true"})

	ctx, cancel := context.WithCancel(context.Background())
	out := &lockedBuffer{}
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, cmd, path, out) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "add: 11")
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "word: olleh")

	require.NoError(t, os.WriteFile(path, []byte("add: 2\nword: hello\n"), 0o644))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "---\nadd: 12\n")
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}
