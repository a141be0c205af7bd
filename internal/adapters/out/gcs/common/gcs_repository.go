// internal/adapters/out/gcs/common/gcs_repository.go
package common

import (
	"fmt"
	"strings"
)

// GCSPublicURL builds https://storage.googleapis.com/<bucket>/<object>.
// An empty bucket falls back to defaultBucket; leading "/" on objectPath is dropped.
func GCSPublicURL(bucket, objectPath, defaultBucket string) string {
	b := strings.TrimSpace(bucket)
	if b == "" {
		b = strings.TrimSpace(defaultBucket)
	}
	obj := strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b, obj)
}
