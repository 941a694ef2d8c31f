package substrate

import (
	"go-unique-sdk/models"
	"go-unique-sdk/utils"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// crossAccountArg encodes the pallet's CrossAccountId enum:
// 0 = Substrate(AccountId32), 1 = Ethereum(H160)
type crossAccountArg struct {
	substrate []byte
	ethereum  []byte
}

func newCrossAccountArg(account models.CrossAccountID) (crossAccountArg, error) {
	if !utils.IsCrossAccountID(account) {
		return crossAccountArg{}, errors.Errorf("invalid cross account id %+v", account)
	}
	if account.Ethereum != "" {
		key, err := utils.HexToBytes(account.Ethereum)
		if err != nil {
			return crossAccountArg{}, err
		}
		return crossAccountArg{ethereum: key}, nil
	}
	key, _, err := utils.DecodeSubstrateAddress(account.Substrate)
	if err != nil {
		return crossAccountArg{}, err
	}
	if len(key) == 33 {
		// ecdsa public keys map to the account id through their hash
		id := blake2b.Sum256(key)
		key = id[:]
	}
	return crossAccountArg{substrate: key}, nil
}

func (a crossAccountArg) Encode(encoder scale.Encoder) error {
	if a.ethereum != nil {
		if err := encoder.PushByte(1); err != nil {
			return err
		}
		return encoder.Write(a.ethereum)
	}
	if err := encoder.PushByte(0); err != nil {
		return err
	}
	return encoder.Write(a.substrate)
}

// encodeArgs maps sdk model values onto their SCALE representation, other values are
// passed through to the call encoder
func encodeArgs(args []interface{}) ([]interface{}, error) {
	encoded := make([]interface{}, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case models.CollectionID:
			encoded[i] = types.NewU32(uint32(v))
		case models.TokenID:
			encoded[i] = types.NewU32(uint32(v))
		case models.CrossAccountID:
			account, err := newCrossAccountArg(v)
			if err != nil {
				return nil, err
			}
			encoded[i] = account
		default:
			encoded[i] = arg
		}
	}
	return encoded, nil
}
