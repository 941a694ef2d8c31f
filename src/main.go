package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"

	"go-unique-sdk/internal/clients"
	"go-unique-sdk/internal/config"
	"go-unique-sdk/internal/messages"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	configFilePath string
	jsonLogs       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "unique",
	Short:         "Build, sign and submit Unique Network extrinsics",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "", "path to config file (json or yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "write logs as json lines")
	rootCmd.PersistentPreRun = func(*cobra.Command, []string) {
		if !jsonLogs {
			messages.UseConsoleWriter()
		}
	}

	rootCmd.AddCommand(
		newAdminCmd(),
		newAddressCmd(),
		newChainCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		messages.NewSDKMessage(
			messages.LOG_LEVEL_ERROR,
			"",
			err,
			messages.CLI_COMMAND_FAILED,
		).ConsoleLog()
		stop()
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	var path *string
	if configFilePath != "" {
		path = &configFilePath
	}
	sdkConfig, msg := config.LoadConfig(path)
	if msg != nil {
		msg.ConsoleLog()
		return sdkConfig, errors.Wrap(msg.Error, "load config")
	}
	messages.SetLevel(messages.SDKLogLevel(sdkConfig.LogLevel))
	return sdkConfig, nil
}

// withOrchestrator loads the configuration, connects and runs fn
func withOrchestrator(cmd *cobra.Command, fn func(ctx context.Context, orchestrator *clients.Orchestrator) error) error {
	sdkConfig, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	orchestrator, err := clients.NewOrchestrator(ctx, sdkConfig)
	if err != nil {
		return err
	}
	defer orchestrator.Close()

	return fn(ctx, orchestrator)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
