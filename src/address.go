package main

import (
	"go-unique-sdk/utils"

	"github.com/spf13/cobra"
)

type addressInfo struct {
	Address   string `json:"address"`
	Valid     bool   `json:"valid"`
	Family    string `json:"family,omitempty"`
	PublicKey string `json:"publicKey,omitempty"`
	Prefix    uint16 `json:"ss58Prefix,omitempty"`
}

func newAddressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Address utilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check ADDRESS...",
		Short: "Validate substrate and ethereum addresses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := make([]addressInfo, 0, len(args))
			for _, address := range args {
				infos = append(infos, checkAddress(address))
			}
			return printJSON(cmd, infos)
		},
	})
	return cmd
}

func checkAddress(address string) addressInfo {
	info := addressInfo{Address: address}
	switch {
	case utils.IsEthereumAddress(address):
		info.Valid = true
		info.Family = "ethereum"
	case utils.IsSubstrateAddress(address):
		pubKey, prefix, err := utils.DecodeSubstrateAddress(address)
		if err != nil {
			return info
		}
		info.Valid = true
		info.Family = "substrate"
		info.PublicKey = "0x" + utils.BytesToHex(pubKey)
		info.Prefix = prefix
	}
	return info
}
