package utils

import (
	"encoding/hex"
	"testing"

	"go-unique-sdk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceAddress       = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
	aliceUniqueAddress = "unjKJQJrRd238pkUZZvzDQrfKuM39zBSnQ5zjAGAGcdRhaJTx"
	alicePublicKey     = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	ethereumAddress    = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"
)

func TestDecodeSubstrateAddress(t *testing.T) {
	key, network, err := DecodeSubstrateAddress(aliceAddress)
	require.NoError(t, err)
	assert.Equal(t, alicePublicKey, hex.EncodeToString(key))
	assert.Equal(t, uint16(42), network)

	key, network, err = DecodeSubstrateAddress(aliceUniqueAddress)
	require.NoError(t, err)
	assert.Equal(t, alicePublicKey, hex.EncodeToString(key))
	assert.Equal(t, uint16(7391), network)
}

func TestEncodeSubstrateAddress(t *testing.T) {
	key, err := hex.DecodeString(alicePublicKey)
	require.NoError(t, err)

	cases := []struct {
		network uint16
		want    string
	}{
		{42, aliceAddress},
		{7391, aliceUniqueAddress},
		{255, "yGHXkYLYqxijLKKfd9Q2CB9shRVu8rPNBS53wvwGTutYg4zTg"},
		{0, "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5"},
	}
	for _, c := range cases {
		address, err := EncodeSubstrateAddress(key, c.network)
		require.NoError(t, err)
		assert.Equal(t, c.want, address)

		decoded, network, err := DecodeSubstrateAddress(address)
		require.NoError(t, err)
		assert.Equal(t, key, decoded)
		assert.Equal(t, c.network, network)
	}
}

func TestEncodeSubstrateAddressRejects(t *testing.T) {
	_, err := EncodeSubstrateAddress(make([]byte, 20), 42)
	assert.ErrorIs(t, err, ErrEncoding)

	_, err = EncodeSubstrateAddress(make([]byte, 32), 16384)
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestAddressFamilies(t *testing.T) {
	cases := []struct {
		address   string
		substrate bool
		ethereum  bool
	}{
		{aliceAddress, true, false},
		{aliceUniqueAddress, true, false},
		{"5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQZ", false, false}, // broken checksum
		{"5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQ0", false, false}, // not base58
		{ethereumAddress, false, true},
		{"0x8ba1f109551bD432803012645Ac136ddd64DBA7", false, false},
		{"8ba1f109551bD432803012645Ac136ddd64DBA72", false, false},
		{"", false, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.substrate, IsSubstrateAddress(tc.address), "substrate %q", tc.address)
		assert.Equal(t, tc.ethereum, IsEthereumAddress(tc.address), "ethereum %q", tc.address)
	}
}

func TestAddressToObject(t *testing.T) {
	account, err := AddressToObject(aliceAddress)
	require.NoError(t, err)
	assert.Equal(t, models.CrossAccountID{Substrate: aliceAddress}, account)

	account, err = AddressToObject(ethereumAddress)
	require.NoError(t, err)
	assert.Equal(t, models.CrossAccountID{Ethereum: ethereumAddress}, account)

	_, err = AddressToObject("not an address")
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestIsCrossAccountID(t *testing.T) {
	assert.True(t, IsCrossAccountID(models.CrossAccountID{Substrate: aliceAddress}))
	assert.True(t, IsCrossAccountID(models.CrossAccountID{Ethereum: ethereumAddress}))
	assert.False(t, IsCrossAccountID(models.CrossAccountID{Substrate: aliceAddress, Ethereum: ethereumAddress}))
	assert.False(t, IsCrossAccountID(models.CrossAccountID{}))
	assert.False(t, IsCrossAccountID(models.CrossAccountID{Ethereum: aliceAddress}))
}

func TestValidateAndFixTokenOwner(t *testing.T) {
	token, err := ValidateAndFixTokenOwner(models.TokenToMint{Owner: ethereumAddress})
	require.NoError(t, err)
	assert.Equal(t, models.CrossAccountID{Ethereum: ethereumAddress}, token.Owner)

	token, err = ValidateAndFixTokenOwner(models.TokenToMint{Owner: &models.CrossAccountID{Substrate: aliceAddress}})
	require.NoError(t, err)
	assert.Equal(t, models.CrossAccountID{Substrate: aliceAddress}, token.Owner)

	_, err = ValidateAndFixTokenOwner(models.TokenToMint{Owner: 42})
	assert.ErrorIs(t, err, ErrEncoding)

	_, err = ValidateAndFixTokenOwner(models.TokenToMint{Owner: "nobody"})
	assert.ErrorIs(t, err, ErrEncoding)
}
