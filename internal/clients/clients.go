package clients

import (
	"context"
	"net/http"
	"time"

	"go-unique-sdk/internal/config"
	"go-unique-sdk/internal/db/postgres"
	"go-unique-sdk/internal/journal"
	"go-unique-sdk/internal/messages"
	"go-unique-sdk/metrics"
	"go-unique-sdk/substrate"
	"go-unique-sdk/transaction"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type (
	// Orchestrator owns the node connection, the signer and the optional journal and
	// metrics endpoint configured for one process
	Orchestrator struct {
		configuration config.Config
		client        *substrate.Client
		signer        *substrate.KeyringSigner
		pgClient      *postgres.PostgresClient
		recorder      *journal.Recorder
		metricsServer *http.Server
		observers     transaction.Observers
	}
)

// NewOrchestrator connects to the node and initialises the services enabled in config
func NewOrchestrator(ctx context.Context, config config.Config) (*Orchestrator, error) {
	messages.NewSDKMessage(
		messages.LOG_LEVEL_INFO,
		"",
		nil,
		ORCHESTRATOR_INITIALIZING,
	).ConsoleLog()

	orchestrator := &Orchestrator{configuration: config}

	client, err := substrate.Connect(ctx, config.ChainConfig)
	if err != nil {
		return nil, err
	}
	orchestrator.client = client

	if config.SignerConfig.Secret != "" {
		signer, err := substrate.NewKeyringSigner(client, config.SignerConfig.Secret)
		if err != nil {
			orchestrator.Close()
			return nil, err
		}
		orchestrator.signer = signer
		messages.NewSDKMessage(
			messages.LOG_LEVEL_INFO,
			"",
			nil,
			ORCHESTRATOR_SIGNER,
			signer.Address(),
		).ConsoleLog()
	} else {
		messages.NewSDKMessage(
			messages.LOG_LEVEL_WARNING,
			"",
			nil,
			ORCHESTRATOR_NO_SIGNER,
		).ConsoleLog()
	}

	// METRICS - prometheus collector, served when a listen address is set
	registry := prometheus.NewRegistry()
	orchestrator.observers = append(orchestrator.observers, metrics.NewCollector(registry))
	if config.MetricsConfig.ListenAddress != "" {
		orchestrator.serveMetrics(config.MetricsConfig.ListenAddress, registry)
	}

	// JOURNAL - postgres record of every finished transaction
	if config.JournalConfig.Enabled {
		pgClient, err := postgres.Connect(ctx, config.PostgresConfig)
		if err != nil {
			orchestrator.Close()
			return nil, err
		}
		orchestrator.pgClient = pgClient
		if err := journal.EnsureSchema(ctx, pgClient.Pool); err != nil {
			orchestrator.Close()
			return nil, errors.Wrap(err, "create journal table")
		}
		orchestrator.recorder = journal.NewRecorder(pgClient.Pool)
		orchestrator.observers = append(orchestrator.observers, orchestrator.recorder)
		messages.NewSDKMessage(
			messages.LOG_LEVEL_INFO,
			"",
			nil,
			ORCHESTRATOR_JOURNAL,
		).ConsoleLog()
	}

	return orchestrator, nil
}

func (orchestrator *Orchestrator) serveMetrics(address string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	orchestrator.metricsServer = &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	messages.NewSDKMessage(
		messages.LOG_LEVEL_INFO,
		"",
		nil,
		ORCHESTRATOR_METRICS_SERVER,
		address,
	).ConsoleLog()
	go func() {
		if err := orchestrator.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			messages.NewSDKMessage(
				messages.LOG_LEVEL_ERROR,
				messages.GetComponent(orchestrator.serveMetrics),
				err,
				ORCHESTRATOR_METRICS_SERVER,
				address,
			).ConsoleLog()
		}
	}()
}

func (orchestrator *Orchestrator) Client() *substrate.Client { return orchestrator.client }

// Signer returns the configured signer, nil when no secret was configured
func (orchestrator *Orchestrator) Signer() transaction.Signer {
	if orchestrator.signer == nil {
		return nil
	}
	return orchestrator.signer
}

// Options are the transaction options derived from the configuration
func (orchestrator *Orchestrator) Options() transaction.Options {
	return transaction.Options{
		GetBlockNumber: orchestrator.configuration.TransactionConfig.GetBlockNumber,
		Observer:       orchestrator.observers,
	}
}

func (orchestrator *Orchestrator) Close() {
	messages.NewSDKMessage(
		messages.LOG_LEVEL_INFO,
		"",
		nil,
		ORCHESTRATOR_CLOSE,
	).ConsoleLog()

	if orchestrator.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = orchestrator.metricsServer.Shutdown(ctx)
	}
	if orchestrator.recorder != nil {
		orchestrator.recorder.Close()
	}
	if orchestrator.pgClient != nil {
		orchestrator.pgClient.Close()
	}
	if orchestrator.client != nil {
		orchestrator.client.Close()
	}
}
