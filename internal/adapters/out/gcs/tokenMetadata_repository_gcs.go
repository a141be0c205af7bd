// internal/adapters/out/gcs/tokenMetadata_repository_gcs.go
package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	gcscommon "tokencreator/internal/adapters/out/gcs/common"
	tokendom "tokencreator/internal/domain/token"
)

const tokenMetadataPrefix = "token-metadata"

// TokenMetadataRepositoryGCS hosts off-chain token metadata JSON in a public bucket.
type TokenMetadataRepositoryGCS struct {
	Client *storage.Client
	Bucket string

	// PublicBaseURL replaces https://storage.googleapis.com/<bucket> when set
	// (CDN or custom domain).
	PublicBaseURL string

	newName func() string
	write   func(ctx context.Context, object string, data []byte) error
}

var _ tokendom.MetadataUploader = (*TokenMetadataRepositoryGCS)(nil)

func NewTokenMetadataRepositoryGCS(client *storage.Client, bucket, publicBaseURL string) *TokenMetadataRepositoryGCS {
	r := &TokenMetadataRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: strings.TrimRight(strings.TrimSpace(publicBaseURL), "/"),
		newName:       uuid.NewString,
	}
	r.write = r.writeObject
	return r
}

// Upload writes <prefix>/<uuid>.json and returns its public URL.
func (r *TokenMetadataRepositoryGCS) Upload(ctx context.Context, doc tokendom.MetadataDocument) (string, error) {
	if r == nil || r.Bucket == "" {
		return "", errors.New("TokenMetadataRepositoryGCS: bucket is empty")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("TokenMetadataRepositoryGCS: encode: %w", err)
	}

	object := tokenMetadataPrefix + "/" + r.newName() + ".json"
	if err := r.write(ctx, object, data); err != nil {
		log.Printf("[gcs] token metadata upload FAILED bucket=%s object=%s err=%v", r.Bucket, object, err)
		return "", err
	}

	url := r.publicURL(object)
	log.Printf("[gcs] token metadata uploaded symbol=%s url=%s", doc.Symbol, url)
	return url, nil
}

func (r *TokenMetadataRepositoryGCS) publicURL(object string) string {
	if r.PublicBaseURL != "" {
		return r.PublicBaseURL + "/" + object
	}
	return gcscommon.GCSPublicURL(r.Bucket, object, r.Bucket)
}

func (r *TokenMetadataRepositoryGCS) writeObject(ctx context.Context, object string, data []byte) error {
	if r.Client == nil {
		return errors.New("TokenMetadataRepositoryGCS: nil storage client")
	}
	w := r.Client.Bucket(r.Bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/json"
	w.CacheControl = "public, max-age=31536000, immutable"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("TokenMetadataRepositoryGCS: write %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("TokenMetadataRepositoryGCS: close %s: %w", object, err)
	}
	return nil
}
