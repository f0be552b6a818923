package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

const validConfig = `
header:
  package: blog
declarations:
  - name: Post
    fields:
      - name: Title
        type: string
`

const invalidConfig = `
declarations:
  - name: Post
    fields:
      - name: Title
        type: string
      - name: Views
        type: int
        static: true
        directives:
          - kind: keyPath
            path: [views]
  - name: Draft
    fields:
      - name: Body
        type: string
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o666))
	return path
}

func TestRun(t *testing.T) {
	config := writeConfig(t, "keyed.yaml", validConfig)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", config}, &stdout, &stderr)
	assert.NilError(t, err)
	assert.Equal(t, stderr.String(), "")
	assert.Assert(t, is.Contains(stdout.String(), "package blog"))
	assert.Assert(t, is.Contains(stdout.String(), "func (v *Post) DecodeKeyed(d *keyed.Decoder) (err error) {"))
}

func TestRunOutputPath(t *testing.T) {
	config := writeConfig(t, "keyed.yaml", validConfig)
	output := filepath.Join(t.TempDir(), "post_keyed.go")

	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", config, "-package", "posts", "-o", output}, &stdout, &stderr)
	assert.NilError(t, err)
	assert.Equal(t, stdout.Len(), 0)

	data, err := os.ReadFile(output)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(data), "package posts"))
}

func TestRunDiagnostics(t *testing.T) {
	config := writeConfig(t, "keyed.yaml", invalidConfig)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", config, "-package", "blog"}, &stdout, &stderr)
	assert.ErrorIs(t, err, errFailed)
	assert.Assert(t, is.Contains(stderr.String(), "Post.Views: error:"))
	assert.Assert(t, is.Contains(stderr.String(), "\tfix: declare the member separately"))
	assert.Assert(t, is.Contains(stdout.String(), "func (v *Draft) DecodeKeyed"))
	assert.Assert(t, !bytes.Contains(stdout.Bytes(), []byte("func (v *Post) DecodeKeyed")))
}

func TestRunUnknownField(t *testing.T) {
	config := writeConfig(t, "keyed.json", `{"declarations": [], "unknown": true}`)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-config", config}, &stdout, &stderr)
	assert.ErrorContains(t, err, "unknown")
}
