package userfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindReturnsRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"username": "alice", "display_name": "Alice", "news_source": "piapro"}
	]`), 0o644))

	r := NewReader(path)

	u, ok := r.Find("alice")
	require.True(t, ok)
	assert.Equal(t, "Alice", u.DisplayName)
	assert.Equal(t, "piapro", u.NewsSource)

	_, ok = r.Find("bob")
	assert.False(t, ok)
}

func TestFindMissingFileIsEmpty(t *testing.T) {
	r := NewReader(filepath.Join(t.TempDir(), "nope.json"))
	_, ok := r.Find("alice")
	assert.False(t, ok)
}

func TestFindPicksUpFileEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	r := NewReader(path)
	_, ok := r.Find("alice")
	require.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte(`[{"username": "alice"}]`), 0o644))
	// Force a visible mtime change on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	_, ok = r.Find("alice")
	assert.True(t, ok)
}

func TestFindKeepsLastGoodListOnBadJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"username": "alice"}]`), 0o644))

	r := NewReader(path)
	_, ok := r.Find("alice")
	require.True(t, ok)

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	_, ok = r.Find("alice")
	assert.True(t, ok)
}
