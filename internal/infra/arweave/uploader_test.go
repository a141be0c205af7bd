package arweave

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokencreator/internal/domain/token"
)

func TestHTTPUploader_Upload(t *testing.T) {
	var got token.MetadataDocument
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload/json", r.URL.Path)
		assert.Equal(t, "Bearer k1", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"uri":"https://gateway.irys.xyz/abc"}`))
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL+"/", "k1")
	uri, err := u.Upload(context.Background(), token.MetadataDocument{Name: "Test Token", Symbol: "TEST"})
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.irys.xyz/abc", uri)
	assert.Equal(t, "TEST", got.Symbol)
}

func TestHTTPUploader_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusBadGateway, `oops`},
		{"empty uri", http.StatusOK, `{"uri":""}`},
		{"bad json", http.StatusOK, `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPUploader(srv.URL, "").Upload(context.Background(), token.MetadataDocument{})
			assert.Error(t, err)
		})
	}

	_, err := NewHTTPUploader(" ", "").Upload(context.Background(), token.MetadataDocument{})
	assert.ErrorIs(t, err, ErrUploaderNotConfigured)
}
