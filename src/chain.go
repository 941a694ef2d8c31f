package main

import (
	"context"

	"go-unique-sdk/internal/clients"

	"github.com/spf13/cobra"
)

type chainInfo struct {
	Endpoint    string `json:"endpoint"`
	GenesisHash string `json:"genesisHash"`
	SpecVersion int    `json:"specVersion"`
	SS58Prefix  uint16 `json:"ss58Prefix"`
	Signer      string `json:"signer,omitempty"`
}

func newChainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Chain information",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Print genesis hash and runtime version of the configured node",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withOrchestrator(cmd, func(ctx context.Context, orchestrator *clients.Orchestrator) error {
				client := orchestrator.Client()

				genesisHash, err := client.GenesisHash(ctx)
				if err != nil {
					return err
				}
				specVersion, err := client.SpecVersion(ctx)
				if err != nil {
					return err
				}

				info := chainInfo{
					Endpoint:    client.Endpoint(),
					GenesisHash: genesisHash,
					SpecVersion: specVersion,
					SS58Prefix:  client.SS58Prefix(),
				}
				if signer := orchestrator.Signer(); signer != nil {
					info.Signer = signer.Address()
				}
				return printJSON(cmd, info)
			})
		},
	})
	return cmd
}
