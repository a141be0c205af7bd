// internal/infra/firestore/client.go
package firestoreinfra

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// ClientWrapper pairs a Firestore client with its project.
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
}

// NewClient uses Application Default Credentials when credentialsFile is empty.
func NewClient(ctx context.Context, projectID string, credentialsFile string) (*ClientWrapper, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore: project id is empty")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	log.Printf("[firestore] connected project=%s", projectID)
	return &ClientWrapper{Client: client, ProjectID: projectID}, nil
}

func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}
