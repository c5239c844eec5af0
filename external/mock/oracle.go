package mock

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"orbit/core/types"
	"orbit/crypto"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// PriceProofDomain is the domain separator stamped into every signed price
// proof this oracle accepts.
const PriceProofDomain = "ORBIT_UPSTREAM_PRICE_V1"

var (
	errUnknownSigner  = errors.New("mock: price proof signer is not the registered oracle key")
	errStalePriceData = errors.New("mock: no price recorded for this asset")
)

// PriceProof is the signed payload a price feed submits to UpstreamOracle,
// structurally the same canonical-message/domain-separator/Keccak256 scheme
// as the upstream swap voucher oracle: domain, asset pair, and a fixed-point
// rate, hashed and signed by a registered key.
type PriceProof struct {
	Domain    string
	Asset     string
	Price     *big.Int
	Timestamp uint64
}

// CanonicalMessage renders the exact byte sequence UpstreamOracle hashes and
// verifies the signature over.
func (p *PriceProof) CanonicalMessage() string {
	builder := strings.Builder{}
	builder.WriteString(strings.ToUpper(p.Domain))
	builder.WriteString("|asset=")
	builder.WriteString(p.Asset)
	builder.WriteString("|price=")
	builder.WriteString(p.Price.String())
	builder.WriteString("|ts=")
	builder.WriteString(fmt.Sprintf("%d", p.Timestamp))
	return builder.String()
}

// Hash computes the proof's signing digest.
func (p *PriceProof) Hash() [32]byte {
	return [32]byte(ethcrypto.Keccak256([]byte(p.CanonicalMessage())))
}

// UpstreamOracle is a signed-proof price feed: SubmitPrice accepts a
// PriceProof signed by the registered feed key and, once verified, exposes
// it through LastPrice/Decimals for BridgeOracle to delegate to.
type UpstreamOracle struct {
	mu       sync.Mutex
	signer   crypto.Address
	decimals uint32
	prices   map[string]*types.PriceData
}

// NewUpstreamOracle constructs a feed that only accepts proofs signed by
// signer, quoting prices scaled by 10^decimals.
func NewUpstreamOracle(signer crypto.Address, decimals uint32) *UpstreamOracle {
	return &UpstreamOracle{signer: signer, decimals: decimals, prices: make(map[string]*types.PriceData)}
}

// Decimals implements external.UpstreamOracle.
func (o *UpstreamOracle) Decimals() (uint32, error) {
	return o.decimals, nil
}

// LastPrice implements external.UpstreamOracle.
func (o *UpstreamOracle) LastPrice(asset types.Asset) (*types.PriceData, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	price, ok := o.prices[asset.String()]
	if !ok {
		return nil, errStalePriceData
	}
	return price.Clone(), nil
}

// SubmitPrice verifies proof's signature against the registered signer and,
// on success, records it as asset's latest price.
func (o *UpstreamOracle) SubmitPrice(asset types.Asset, proof *PriceProof, signature []byte) error {
	digest := proof.Hash()
	recovered, err := crypto.RecoverAddress(digest, signature)
	if err != nil {
		return err
	}
	if !recovered.Equal(o.signer) {
		return errUnknownSigner
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.prices[asset.String()] = &types.PriceData{Price: new(big.Int).Set(proof.Price), Timestamp: proof.Timestamp}
	return nil
}
