package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go-unique-sdk/internal/messages"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFilePath = "config.json"
	defaultEnvFilePath    = ".env"

	EnvSignerSecret = "UNIQUE_SIGNER_SECRET"
	EnvWsEndpoint   = "UNIQUE_WS_ENDPOINT"
	EnvLogLevel     = "UNIQUE_LOG_LEVEL"

	defaultSS58Prefix = 42
)

// LoadConfig tries to load the sdk config from a config file given as a parameter. If the filename is a nil
// string pointer, it defaults to a constant file path "config.json". Files ending in .yaml or .yml are read as
// YAML, everything else as JSON. Variables from a .env file next to the working directory are loaded into the
// environment first and then override the file values.
func LoadConfig(configFilePath *string) (Config, *messages.SDKMessage) {
	var (
		configPath string
		sdkConfig  Config
	)

	configPath = defaultConfigFilePath
	if configFilePath != nil && *configFilePath != "" {
		configPath = *configFilePath
	} else {
		messages.NewSDKMessage(messages.LOG_LEVEL_INFO, "", nil, messages.CONFIG_NO_CUSTOM_PATH_SPECIFIED).ConsoleLog()
	}
	messages.NewSDKMessage(messages.LOG_LEVEL_INFO, "", nil, messages.CONFIG_STARTED_LOADING, configPath).ConsoleLog()

	if err := godotenv.Load(defaultEnvFilePath); err != nil {
		messages.NewSDKMessage(messages.LOG_LEVEL_DEBUG, "", nil, messages.CONFIG_NO_ENV_FILE).ConsoleLog()
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return sdkConfig, messages.NewSDKMessage(messages.LOG_LEVEL_ERROR, messages.GetComponent(LoadConfig), err, "")
	}

	if err := Parse(content, filepath.Ext(configPath), &sdkConfig); err != nil {
		return sdkConfig, messages.NewSDKMessage(messages.LOG_LEVEL_ERROR, messages.GetComponent(LoadConfig), err, "")
	}
	applyEnv(&sdkConfig)
	applyDefaults(&sdkConfig)

	messages.NewSDKMessage(messages.LOG_LEVEL_SUCCESS, "", nil, messages.CONFIG_FINISHED_LOADING).ConsoleLog()
	return sdkConfig, nil
}

// Parse decodes content in the format given by a file extension
func Parse(content []byte, ext string, sdkConfig *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(content, sdkConfig)
	case ".json", "":
		return json.Unmarshal(content, sdkConfig)
	}
	return &FormatError{Ext: ext}
}

type FormatError struct {
	Ext string
}

func (e *FormatError) Error() string {
	return messages.NewSDKMessage(messages.LOG_LEVEL_ERROR, "", nil, messages.CONFIG_UNKNOWN_FORMAT, e.Ext).Message()
}

func applyEnv(sdkConfig *Config) {
	if v, ok := os.LookupEnv(EnvSignerSecret); ok && v != "" {
		sdkConfig.SignerConfig.Secret = v
	}
	if v, ok := os.LookupEnv(EnvWsEndpoint); ok && v != "" {
		sdkConfig.ChainConfig.WsRpcEndpoint = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		sdkConfig.LogLevel = v
	}
}

func applyDefaults(sdkConfig *Config) {
	if sdkConfig.ChainConfig.SS58Prefix == 0 {
		sdkConfig.ChainConfig.SS58Prefix = defaultSS58Prefix
	}
	if sdkConfig.LogLevel == "" {
		sdkConfig.LogLevel = string(messages.LOG_LEVEL_INFO)
	}
}
