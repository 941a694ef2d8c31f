package utils

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"regexp"

	"go-unique-sdk/models"

	"github.com/mr-tron/base58/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	ss58ChecksumLength = 2
	maxSS58Prefix      = 16383
)

var (
	ss58Prefix       = []byte("SS58PRE")
	ethereumAddrExpr = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
)

// DecodeSubstrateAddress decodes an SS58 address into its public key and network prefix,
// verifying the blake2b checksum
func DecodeSubstrateAddress(address string) ([]byte, uint16, error) {
	decoded, err := base58.Decode(address)
	if err != nil {
		return nil, 0, newEncodingError(address, "not a base58 string", err)
	}
	if len(decoded) < 3 {
		return nil, 0, newEncodingError(address, "ss58 address too short", nil)
	}

	var (
		prefixLength int
		network      uint16
	)
	switch first := decoded[0]; {
	case first < 64:
		prefixLength = 1
		network = uint16(first)
	case first < 128:
		prefixLength = 2
		second := decoded[1]
		network = uint16(first&0x3f)<<2 | uint16(second>>6) | uint16(second&0x3f)<<8
	default:
		return nil, 0, newEncodingError(address, "reserved ss58 prefix", nil)
	}

	publicKey := decoded[prefixLength : len(decoded)-ss58ChecksumLength]
	if len(publicKey) != 32 && len(publicKey) != 33 {
		return nil, 0, newEncodingError(address, fmt.Sprintf("unexpected public key length %d", len(publicKey)), nil)
	}

	checksum := ss58Checksum(decoded[:len(decoded)-ss58ChecksumLength])
	if !bytes.Equal(checksum[:ss58ChecksumLength], decoded[len(decoded)-ss58ChecksumLength:]) {
		return nil, 0, newEncodingError(address, "invalid ss58 checksum", nil)
	}

	key := make([]byte, len(publicKey))
	copy(key, publicKey)
	return key, network, nil
}

// EncodeSubstrateAddress renders a 32 or 33 byte public key as an SS58 address for the
// network prefix. Prefixes from 64 up take the two byte form.
func EncodeSubstrateAddress(publicKey []byte, network uint16) (string, error) {
	if len(publicKey) != 32 && len(publicKey) != 33 {
		return "", newEncodingError(hex.EncodeToString(publicKey), fmt.Sprintf("unexpected public key length %d", len(publicKey)), nil)
	}

	var payload []byte
	switch {
	case network < 64:
		payload = []byte{byte(network)}
	case network <= maxSS58Prefix:
		payload = []byte{
			byte((network&0xfc)>>2) | 0x40,
			byte(network>>8) | byte(network&0x03)<<6,
		}
	default:
		return "", newEncodingError(fmt.Sprint(network), "ss58 prefix out of range", nil)
	}
	payload = append(payload, publicKey...)

	checksum := ss58Checksum(payload)
	return base58.Encode(append(payload, checksum[:ss58ChecksumLength]...)), nil
}

func ss58Checksum(payload []byte) [64]byte {
	return blake2b.Sum512(append(append([]byte{}, ss58Prefix...), payload...))
}

// IsSubstrateAddress reports whether address is a valid SS58 encoded account
func IsSubstrateAddress(address string) bool {
	_, _, err := DecodeSubstrateAddress(address)
	return err == nil
}

// IsEthereumAddress reports whether address is a 0x prefixed 20 byte hex string
func IsEthereumAddress(address string) bool {
	return ethereumAddrExpr.MatchString(address)
}

// IsCrossAccountID reports whether exactly one of the address families is set and valid
func IsCrossAccountID(account models.CrossAccountID) bool {
	switch {
	case account.Substrate != "" && account.Ethereum == "":
		return IsSubstrateAddress(account.Substrate)
	case account.Ethereum != "" && account.Substrate == "":
		return IsEthereumAddress(account.Ethereum)
	}
	return false
}

// AddressToObject wraps a substrate or ethereum address into a CrossAccountID
func AddressToObject(address string) (models.CrossAccountID, error) {
	if IsEthereumAddress(address) {
		return models.CrossAccountID{Ethereum: address}, nil
	}
	if IsSubstrateAddress(address) {
		return models.CrossAccountID{Substrate: address}, nil
	}
	return models.CrossAccountID{}, newEncodingError(address, "not a valid ethereum or substrate address", nil)
}

// ValidateAndFixTokenOwner normalizes the owner of a token to a CrossAccountID
func ValidateAndFixTokenOwner(token models.TokenToMint) (models.TokenToMint, error) {
	switch owner := token.Owner.(type) {
	case models.CrossAccountID:
		if !IsCrossAccountID(owner) {
			return token, newEncodingError(fmt.Sprintf("%+v", owner), "token owner is not a valid account object", nil)
		}
		return token, nil
	case *models.CrossAccountID:
		if owner == nil || !IsCrossAccountID(*owner) {
			return token, newEncodingError(fmt.Sprintf("%+v", owner), "token owner is not a valid account object", nil)
		}
		token.Owner = *owner
		return token, nil
	case string:
		account, err := AddressToObject(owner)
		if err != nil {
			return token, err
		}
		token.Owner = account
		return token, nil
	default:
		return token, newEncodingError(fmt.Sprintf("%T", token.Owner), "token owner should be an account object or string", nil)
	}
}
