package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"orgdir/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLFile_Records(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail.jsonl")
	content := `{"id":"m1","category":"hospitals","organization":"City Hospital"}

{"id":"m2","category":"news"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := JSONLFile{Path: path}.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Organization)
	assert.Equal(t, "City Hospital", *got[0].Organization)
	assert.Nil(t, got[1].Organization)
}

func TestJSONLFile_MissingFileIsEmpty(t *testing.T) {
	got, err := JSONLFile{Path: filepath.Join(t.TempDir(), "nope.jsonl")}.Records(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJSONLFile_BadLineReportsPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mail.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"id\":\"m1\"}\n{oops\n"), 0o644))

	_, err := JSONLFile{Path: path}.Records(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail.jsonl:2")
}

func TestStatic_ReturnsCopy(t *testing.T) {
	src := Static{{ID: "a"}}
	got, err := src.Records(context.Background())
	require.NoError(t, err)
	got[0] = model.MailRecord{ID: "changed"}
	assert.Equal(t, "a", src[0].ID)
}
