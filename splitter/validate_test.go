package splitter

import (
	"context"
	"testing"

	"github.com/erraggy/oasplit/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDocument_DanglingReference(t *testing.T) {
	result := splitFixture(t, "mixed.yaml", DefaultConfig())
	admin := result.Category("Admin")

	data, err := Marshal(admin, FormatYAML)
	require.NoError(t, err)

	err = ValidateDocument(context.Background(), admin.FileName, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrValidation)
	assert.ErrorIs(t, err, oaserrors.ErrReference)
	assert.Contains(t, err.Error(), "#/components/schemas/Bar")
	assert.Contains(t, err.Error(), "admin.yml")
}

func TestValidateDocument_Invalid(t *testing.T) {
	doc := []byte(`openapi: 3.0.3
info:
  title: Broken
paths:
  /x:
    get:
      responses:
        "200":
          description: OK
`)
	err := ValidateDocument(context.Background(), "broken.yml", doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrValidation)
}

func TestValidateDocument_LaterVersionsCheckRefsOnly(t *testing.T) {
	doc := []byte(`openapi: 3.1.0
info:
  title: New
  version: "1"
paths:
  /x:
    get:
      responses:
        "200":
          description: OK
          content:
            application/json:
              schema:
                type: [string, "null"]
`)
	assert.NoError(t, ValidateDocument(context.Background(), "new.yml", doc))
}

func TestValidateDocument_Unparseable(t *testing.T) {
	err := ValidateDocument(context.Background(), "bad.yml", []byte("- not a mapping\n"))
	assert.ErrorIs(t, err, oaserrors.ErrValidation)
}

func TestWriteResult_ValidateOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ValidateOutput = true
	s := New(cfg)

	result, err := s.Split(loadFixture(t, "users-orders.yaml"))
	require.NoError(t, err)
	_, err = s.WriteResult(context.Background(), result, t.TempDir())
	assert.NoError(t, err)

	result, err = s.Split(loadFixture(t, "mixed.yaml"))
	require.NoError(t, err)
	_, err = s.WriteResult(context.Background(), result, t.TempDir())
	assert.ErrorIs(t, err, oaserrors.ErrValidation)
}
