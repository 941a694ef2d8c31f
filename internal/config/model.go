package config

type PostgresConfig struct {
	User     string `json:"postgres_user" yaml:"postgres_user"`
	Password string `json:"postgres_password" yaml:"postgres_password"`
	Host     string `json:"postgres_host" yaml:"postgres_host"`
	Port     string `json:"postgres_port" yaml:"postgres_port"`
	Db       string `json:"postgres_db" yaml:"postgres_db"`
	Schema   string `json:"postgres_schema" yaml:"postgres_schema"`
	ConnPool int    `json:"postgres_conn_pool" yaml:"postgres_conn_pool"`
}

type ChainConfig struct {
	WsRpcEndpoint    string `json:"ws_rpc_endpoint" yaml:"ws_rpc_endpoint"`
	DecoderTypesFile string `json:"decoder_types_file" yaml:"decoder_types_file"`
	SS58Prefix       uint16 `json:"ss58_prefix" yaml:"ss58_prefix"`
}

type SignerConfig struct {
	// Secret is a mnemonic, a hex seed or a dev uri such as //Alice
	Secret string `json:"secret" yaml:"secret"`
}

type TransactionConfig struct {
	GetBlockNumber bool `json:"get_block_number" yaml:"get_block_number"`
}

type JournalConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

type MetricsConfig struct {
	ListenAddress string `json:"listen_address" yaml:"listen_address"`
}

type Config struct {
	LogLevel          string            `json:"log_level" yaml:"log_level"`
	ChainConfig       ChainConfig       `json:"chain_config" yaml:"chain_config"`
	SignerConfig      SignerConfig      `json:"signer_config" yaml:"signer_config"`
	TransactionConfig TransactionConfig `json:"transaction_config" yaml:"transaction_config"`
	PostgresConfig    PostgresConfig    `json:"postgres_config" yaml:"postgres_config"`
	JournalConfig     JournalConfig     `json:"journal_config" yaml:"journal_config"`
	MetricsConfig     MetricsConfig     `json:"metrics_config" yaml:"metrics_config"`
}
