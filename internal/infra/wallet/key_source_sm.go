package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretspb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/blocto/solana-go-sdk/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	walletdom "tokencreator/internal/domain/wallet"
)

const defaultWalletSecretPrefix = "wallet-keypair-"

var ErrSecretKeySourceNotConfigured = errors.New("secret key source: not configured")

// SecretManagerKeySource loads keypairs stored as
// projects/<ProjectID>/secrets/<Prefix><wallet>/versions/latest.
// A missing secret means the wallet is not installed.
type SecretManagerKeySource struct {
	ProjectID string
	Prefix    string

	access func(ctx context.Context, name string) ([]byte, error)
}

func NewSecretManagerKeySource(client *secretmanager.Client, projectID, prefix string) *SecretManagerKeySource {
	p := strings.TrimSpace(prefix)
	if p == "" {
		p = defaultWalletSecretPrefix
	}
	s := &SecretManagerKeySource{
		ProjectID: strings.TrimSpace(projectID),
		Prefix:    p,
	}
	if client != nil {
		s.access = func(ctx context.Context, name string) ([]byte, error) {
			res, err := client.AccessSecretVersion(ctx, &secretspb.AccessSecretVersionRequest{Name: name})
			if err != nil {
				return nil, err
			}
			if res == nil || res.Payload == nil {
				return nil, status.Error(codes.NotFound, "empty secret payload")
			}
			return res.Payload.Data, nil
		}
	}
	return s
}

// SecretName returns the secret version resource for t.
func (s *SecretManagerKeySource) SecretName(t walletdom.Type) string {
	return fmt.Sprintf("projects/%s/secrets/%s%s/versions/latest", s.ProjectID, s.Prefix, t)
}

func (s *SecretManagerKeySource) Load(ctx context.Context, t walletdom.Type) (types.Account, error) {
	if s == nil || s.access == nil || s.ProjectID == "" {
		return types.Account{}, ErrSecretKeySourceNotConfigured
	}

	name := s.SecretName(t)
	data, err := s.access(ctx, name)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return types.Account{}, walletdom.ErrKeyAbsent
		}
		return types.Account{}, fmt.Errorf("secret key source: access %s: %w", name, err)
	}

	acc, err := accountFromKeypairJSON([]byte(strings.TrimSpace(string(data))))
	if err != nil {
		return types.Account{}, fmt.Errorf("secret key source: %s: %w", name, err)
	}
	return acc, nil
}
