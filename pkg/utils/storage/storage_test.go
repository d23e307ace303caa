package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentapp_backend/pkg/config"
)

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	status  int
	code    string
}

func (f *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status != 0 {
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>`+f.code+`</Code><Message>nope</Message></Error>`)
		return
	}

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestClient(t *testing.T, bucket *fakeBucket) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), config.StorageConfig{
		AccessKey: "key",
		SecretKey: "secret",
		Region:    "auto",
		Bucket:    "photos",
		Endpoint:  srv.URL,
		PublicURL: "https://cdn.example.com",
	})
	require.NoError(t, err)
	return client, srv
}

func TestNew_NotConfigured(t *testing.T) {
	_, err := New(context.Background(), config.StorageConfig{Bucket: "photos"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_UploadAndDelete(t *testing.T) {
	bucket := &fakeBucket{objects: map[string][]byte{}}
	client, _ := newTestClient(t, bucket)
	ctx := context.Background()

	url, err := client.Upload(ctx, "uploads/alice/1-x.png", bytes.NewReader([]byte("png-bytes")), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/uploads/alice/1-x.png", url)
	assert.Equal(t, []byte("png-bytes"), bucket.objects["/photos/uploads/alice/1-x.png"])

	require.True(t, client.OwnsURL(url))
	require.NoError(t, client.Delete(ctx, url))
	assert.Empty(t, bucket.objects)
}

func TestClient_UploadAccessDenied(t *testing.T) {
	client, _ := newTestClient(t, &fakeBucket{objects: map[string][]byte{}, status: http.StatusForbidden, code: "AccessDenied"})

	_, err := client.Upload(context.Background(), "uploads/a/b.png", bytes.NewReader([]byte("x")), "image/png")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestClient_UploadUpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, &fakeBucket{objects: map[string][]byte{}, status: http.StatusInternalServerError, code: "InternalError"})

	_, err := client.Upload(context.Background(), "uploads/a/b.png", bytes.NewReader([]byte("x")), "image/png")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.NotErrorIs(t, err, ErrAccessDenied)
}

func TestClient_OwnsURL(t *testing.T) {
	client, _ := newTestClient(t, &fakeBucket{objects: map[string][]byte{}})

	assert.False(t, client.OwnsURL("https://elsewhere.example.com/uploads/a.png"))
	assert.False(t, client.OwnsURL("https://cdn.example.com/"))
	assert.Error(t, client.Delete(context.Background(), "https://elsewhere.example.com/a.png"))
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("Jane Doe", "webp")

	assert.True(t, strings.HasPrefix(key, "uploads/jane-doe/"), key)
	assert.True(t, strings.HasSuffix(key, ".webp"), key)
	assert.NotEqual(t, key, ObjectKey("Jane Doe", "webp"))
	assert.True(t, strings.HasPrefix(ObjectKey("!!!", "png"), "uploads/anonymous/"))
}

func TestPublicBase(t *testing.T) {
	assert.Equal(t, "https://photos.s3.eu-west-1.amazonaws.com",
		publicBase(config.StorageConfig{Bucket: "photos", Region: "eu-west-1"}))
	assert.Equal(t, "https://r2.example.com/photos",
		publicBase(config.StorageConfig{Bucket: "photos", Endpoint: "https://r2.example.com/"}))
}
