package wallet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/blocto/solana-go-sdk/types"

	walletdom "tokencreator/internal/domain/wallet"
)

// KeySource is the environment a wallet is "installed" in.
// Load MUST return walletdom.ErrKeyAbsent when the wallet is not present.
type KeySource interface {
	Load(ctx context.Context, t walletdom.Type) (types.Account, error)
}

// DirKeySource reads <Dir>/<wallet>.json solana-keygen files.
type DirKeySource struct {
	Dir string
}

func NewDirKeySource(dir string) *DirKeySource {
	return &DirKeySource{Dir: strings.TrimSpace(dir)}
}

// Path returns the keypair file location for t.
func (s *DirKeySource) Path(t walletdom.Type) string {
	return filepath.Join(s.Dir, string(t)+".json")
}

func (s *DirKeySource) Load(ctx context.Context, t walletdom.Type) (types.Account, error) {
	_ = ctx

	if s == nil || s.Dir == "" {
		return types.Account{}, walletdom.ErrKeyAbsent
	}
	data, err := os.ReadFile(s.Path(t))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Account{}, walletdom.ErrKeyAbsent
		}
		return types.Account{}, fmt.Errorf("dir key source: read %s: %w", s.Path(t), err)
	}
	acc, err := accountFromKeypairJSON(data)
	if err != nil {
		return types.Account{}, fmt.Errorf("dir key source: %s: %w", s.Path(t), err)
	}
	return acc, nil
}

// StaticKeySource serves accounts held in memory.
type StaticKeySource map[walletdom.Type]types.Account

func (s StaticKeySource) Load(ctx context.Context, t walletdom.Type) (types.Account, error) {
	_ = ctx

	acc, ok := s[t]
	if !ok {
		return types.Account{}, walletdom.ErrKeyAbsent
	}
	return acc, nil
}

// MultiKeySource tries each source in order; the first one holding the wallet wins.
type MultiKeySource []KeySource

func (m MultiKeySource) Load(ctx context.Context, t walletdom.Type) (types.Account, error) {
	for _, src := range m {
		if src == nil {
			continue
		}
		acc, err := src.Load(ctx, t)
		if errors.Is(err, walletdom.ErrKeyAbsent) {
			continue
		}
		return acc, err
	}
	return types.Account{}, walletdom.ErrKeyAbsent
}
