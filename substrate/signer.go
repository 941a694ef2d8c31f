package substrate

import (
	"context"

	"go-unique-sdk/transaction"
	"go-unique-sdk/utils"

	"github.com/centrifuge/go-substrate-rpc-client/v4/signature"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
)

const substrateNetwork = 42

// KeyringSigner signs extrinsics with a locally held sr25519 key pair. Nonce, genesis hash
// and runtime versions are read from the node at signing time.
type KeyringSigner struct {
	client *Client
	pair   signature.KeyringPair
}

// NewKeyringSigner derives the key pair from a mnemonic, a hex seed or a dev uri such as //Alice.
// The address is rendered with the client's SS58 prefix.
func NewKeyringSigner(client *Client, secret string) (*KeyringSigner, error) {
	return newKeyringSigner(client, secret, client.SS58Prefix())
}

func newKeyringSigner(client *Client, secret string, network uint16) (*KeyringSigner, error) {
	// the derived address only supports one byte prefixes, it is re-encoded below
	pair, err := signature.KeyringPairFromSecret(secret, substrateNetwork)
	if err != nil {
		return nil, errors.Wrap(err, "derive key pair")
	}
	address, err := utils.EncodeSubstrateAddress(pair.PublicKey, network)
	if err != nil {
		return nil, errors.Wrap(err, "encode signer address")
	}
	pair.Address = address
	return &KeyringSigner{client: client, pair: pair}, nil
}

func (s *KeyringSigner) Address() string { return s.pair.Address }

func (s *KeyringSigner) PublicKey() []byte { return s.pair.PublicKey }

func (s *KeyringSigner) Sign(ctx context.Context, call transaction.Call) (transaction.Call, error) {
	xt, ok := call.(*Extrinsic)
	if !ok {
		return nil, &transaction.SigningError{Signer: s.Address(), Reason: transaction.ErrUnsupportedCall}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	options, err := s.signatureOptions()
	if err != nil {
		return nil, err
	}

	signed := xt.ext
	if err := signed.Sign(s.pair, options); err != nil {
		return nil, err
	}
	return &Extrinsic{ext: signed, name: xt.name}, nil
}

// signatureOptions builds immortal era options with the next account nonce
func (s *KeyringSigner) signatureOptions() (types.SignatureOptions, error) {
	api := s.client.api

	genesisHash, err := api.RPC.Chain.GetBlockHash(0)
	if err != nil {
		return types.SignatureOptions{}, errors.Wrap(err, "read genesis hash")
	}

	runtime, err := api.RPC.State.GetRuntimeVersionLatest()
	if err != nil {
		return types.SignatureOptions{}, errors.Wrap(err, "read runtime version")
	}

	key, err := types.CreateStorageKey(s.client.Metadata(), "System", "Account", s.pair.PublicKey)
	if err != nil {
		return types.SignatureOptions{}, errors.Wrap(err, "account storage key")
	}
	var account types.AccountInfo
	if _, err := api.RPC.State.GetStorageLatest(key, &account); err != nil {
		return types.SignatureOptions{}, errors.Wrap(err, "read account nonce")
	}

	return types.SignatureOptions{
		BlockHash:          genesisHash,
		Era:                types.ExtrinsicEra{IsMortalEra: false},
		GenesisHash:        genesisHash,
		Nonce:              types.NewUCompactFromUInt(uint64(account.Nonce)),
		SpecVersion:        runtime.SpecVersion,
		Tip:                types.NewUCompactFromUInt(0),
		TransactionVersion: runtime.TransactionVersion,
	}, nil
}
