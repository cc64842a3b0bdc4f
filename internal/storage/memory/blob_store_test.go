package memory

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlobStorePutObjectCopiesData(t *testing.T) {
	t.Parallel()

	store := NewBlobStore()
	payload := []byte("content")
	uri, err := store.PutObject(context.Background(), "hot/page.html", "text/html", bytes.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, "memory://hot/page.html", uri)

	payload[0] = 'C'
	obj, ok := store.Get("hot/page.html")
	require.True(t, ok)
	require.Equal(t, "content", string(obj.Data))
	require.Equal(t, "text/html", obj.ContentType)

	obj.Data[0] = 'X'
	again, _ := store.Get("hot/page.html")
	require.Equal(t, "content", string(again.Data))
}

func TestBlobStorePaths(t *testing.T) {
	t.Parallel()

	store := NewBlobStore()
	for _, p := range []string{"b/2", "a/1", "b/1"} {
		_, err := store.PutObject(context.Background(), p, "", bytes.NewReader(nil))
		require.NoError(t, err)
	}
	require.Equal(t, []string{"a/1", "b/1", "b/2"}, store.Paths())

	_, ok := store.Get("missing")
	require.False(t, ok)
}

func TestBlobStoreRejectsBadInput(t *testing.T) {
	t.Parallel()

	store := NewBlobStore()
	_, err := store.PutObject(context.Background(), " ", "", bytes.NewReader(nil))
	require.Error(t, err)

	_, err = store.PutObject(context.Background(), "x", "", errReader{})
	require.Error(t, err)
	require.Empty(t, store.Paths())
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("read failed") }
