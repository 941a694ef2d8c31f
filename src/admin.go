package main

import (
	"context"

	"go-unique-sdk/extrinsics/unique"
	"go-unique-sdk/internal/clients"
	"go-unique-sdk/models"
	"go-unique-sdk/transaction"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage collection admins",
	}
	cmd.AddCommand(newAdminAddCmd(), newAdminRemoveCmd())
	return cmd
}

type adminFlags struct {
	collectionID uint32
	address      string
}

func (f *adminFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint32Var(&f.collectionID, "collection", 0, "collection id")
	cmd.Flags().StringVar(&f.address, "address", "", "substrate or ethereum address of the admin")
	_ = cmd.MarkFlagRequired("collection")
	_ = cmd.MarkFlagRequired("address")
}

func newAdminAddCmd() *cobra.Command {
	var flags adminFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a collection admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withOrchestrator(cmd, func(ctx context.Context, orchestrator *clients.Orchestrator) error {
				tx, err := unique.NewAddCollectionAdmin(
					orchestrator.Client(),
					orchestrator.Client(),
					unique.AddCollectionAdminParams{
						CollectionID:    models.CollectionID(flags.collectionID),
						NewAdminAddress: flags.address,
					},
					orchestrator.Options(),
				)
				if err != nil {
					return err
				}
				return signAndPrint(ctx, cmd, tx, orchestrator.Signer())
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newAdminRemoveCmd() *cobra.Command {
	var flags adminFlags
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a collection admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withOrchestrator(cmd, func(ctx context.Context, orchestrator *clients.Orchestrator) error {
				tx, err := unique.NewRemoveCollectionAdmin(
					orchestrator.Client(),
					orchestrator.Client(),
					unique.RemoveCollectionAdminParams{
						CollectionID: models.CollectionID(flags.collectionID),
						AdminAddress: flags.address,
					},
					orchestrator.Options(),
				)
				if err != nil {
					return err
				}
				return signAndPrint(ctx, cmd, tx, orchestrator.Signer())
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func signAndPrint[P any](ctx context.Context, cmd *cobra.Command, tx transaction.Transaction[P, unique.AdminResult], signer transaction.Signer) error {
	result, err := tx.SignAndSend(ctx, signer)
	if err != nil {
		return err
	}
	return printJSON(cmd, result)
}
