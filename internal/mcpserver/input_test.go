package mcpserver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecInputResolve(t *testing.T) {
	t.Run("content", func(t *testing.T) {
		res, err := specInput{Content: testSpecYAML}.resolve()
		require.NoError(t, err)
		assert.Equal(t, "3.0.0", res.Version)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "api.yaml")
		require.NoError(t, os.WriteFile(path, []byte(testSpecYAML), 0o600))
		res, err := specInput{File: path}.resolve()
		require.NoError(t, err)
		assert.Equal(t, path, res.SourcePath)
	})

	t.Run("none", func(t *testing.T) {
		_, err := specInput{}.resolve()
		assert.ErrorContains(t, err, "got 0")
	})

	t.Run("both", func(t *testing.T) {
		_, err := specInput{File: "a.yml", Content: "openapi: 3.0.0"}.resolve()
		assert.ErrorContains(t, err, "got 2")
	})

	t.Run("too large", func(t *testing.T) {
		_, err := specInput{Content: strings.Repeat("x", maxInlineSize+1)}.resolve()
		assert.ErrorContains(t, err, "exceeds maximum")
	})
}
