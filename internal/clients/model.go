package clients

const (
	ORCHESTRATOR_INITIALIZING   = "The sdk orchestrator is initializing all the necessary services"
	ORCHESTRATOR_CLOSE          = "Closing sdk orchestrator"
	ORCHESTRATOR_NO_SIGNER      = "No signer secret configured, only unsigned calls can be sent"
	ORCHESTRATOR_SIGNER         = "Signing as %s"
	ORCHESTRATOR_JOURNAL        = "Recording transaction results in postgres"
	ORCHESTRATOR_METRICS_SERVER = "Serving metrics on %s"
)
