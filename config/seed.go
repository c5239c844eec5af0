package config

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"orbit/core/types"
	"orbit/crypto"
)

// GenesisSeed is the TOML bootstrap file cmd/orbitd reads on first start: the
// operator key, the bridge mappings BridgeOracle should carry from genesis,
// and the stablecoins Treasury should onboard. The Treasury, PegKeeper and
// BridgeOracle fields are decoded but cmd/orbitd does not read them; it
// derives each contract's address itself. The layout mirrors
// the host node's own TOML genesis config (validator key, bootstrap peers)
// adapted to Orbit's contract set.
type GenesisSeed struct {
	AdminKey     string           `toml:"AdminKey"`
	Treasury     string           `toml:"Treasury"`
	PegKeeper    string           `toml:"PegKeeper"`
	BridgeOracle string           `toml:"BridgeOracle"`
	Bridges      []BridgeSeed     `toml:"Bridges"`
	Stablecoins  []StablecoinSeed `toml:"Stablecoins"`
}

// BridgeSeed describes one BridgeOracle.add_asset genesis entry.
type BridgeSeed struct {
	From string `toml:"From"`
	To   string `toml:"To"`
}

// StablecoinSeed describes one admin.new_stablecoin genesis entry.
type StablecoinSeed struct {
	Token         string `toml:"Token"`
	PeggedTo      string `toml:"PeggedTo"`
	BlendPool     string `toml:"BlendPool"`
	InitialSupply string `toml:"InitialSupply"`
}

// LoadGenesisSeed loads path, generating a fresh admin keypair and a default
// seed file if path does not yet exist — matching the host node's
// create-default-config-on-first-run behavior.
func LoadGenesisSeed(path string) (*GenesisSeed, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefaultSeed(path)
	}
	seed := &GenesisSeed{}
	if _, err := toml.DecodeFile(path, seed); err != nil {
		return nil, fmt.Errorf("config: decode genesis seed: %w", err)
	}
	if strings.TrimSpace(seed.AdminKey) == "" {
		return nil, fmt.Errorf("config: genesis seed missing AdminKey")
	}
	return seed, nil
}

func createDefaultSeed(path string) (*GenesisSeed, error) {
	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("config: generate admin key: %w", err)
	}
	seed := &GenesisSeed{
		AdminKey:    hex.EncodeToString(key.Bytes()),
		Bridges:     []BridgeSeed{},
		Stablecoins: []StablecoinSeed{},
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("config: create genesis seed: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(seed); err != nil {
		return nil, fmt.Errorf("config: write genesis seed: %w", err)
	}
	return seed, nil
}

// AdminPrivateKey decodes the seed's hex-encoded admin scalar.
func (s *GenesisSeed) AdminPrivateKey() (*crypto.PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s.AdminKey))
	if err != nil {
		return nil, fmt.Errorf("config: decode admin key: %w", err)
	}
	return crypto.PrivateKeyFromBytes(raw)
}

// ParseAsset parses the "onchain:<bech32>" / "offchain:<symbol>" forms
// produced by types.Asset.String, the canonical descriptor format the TOML
// seed file also uses for From/To/PeggedTo.
func ParseAsset(raw string) (types.Asset, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == types.USDSymbol {
		return types.USD(), nil
	}
	kind, rest, found := strings.Cut(trimmed, ":")
	if !found {
		return types.Asset{}, fmt.Errorf("config: malformed asset descriptor %q", raw)
	}
	switch kind {
	case "onchain":
		addr, err := crypto.DecodeAddress(rest)
		if err != nil {
			return types.Asset{}, fmt.Errorf("config: decode onchain asset: %w", err)
		}
		return types.NewOnchainAsset(addr), nil
	case "offchain":
		return types.NewOffchainAsset(rest), nil
	default:
		return types.Asset{}, fmt.Errorf("config: unknown asset kind %q", kind)
	}
}

// ParseAmount parses a base-10 genesis-seed amount string.
func ParseAmount(raw string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok {
		return nil, fmt.Errorf("config: invalid amount %q", raw)
	}
	return amount, nil
}
