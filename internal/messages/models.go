package messages

import "github.com/rs/zerolog"

type SDKLogLevel string

var (
	// generics
	FAILED_ATOI           = "Failed to convert string to integer"
	FAILED_TYPE_ASSERTION = "Failed type assertion"

	// command line
	CLI_COMMAND_FAILED = "Failed to execute command"

	// configuration info messages
	CONFIG_NO_CUSTOM_PATH_SPECIFIED = "No config file path specified with -c, --config. Using default path."
	CONFIG_STARTED_LOADING          = "The sdk configuration is loaded from %s"
	CONFIG_FINISHED_LOADING         = "The sdk configuration successfully loaded"
	CONFIG_NO_ENV_FILE              = "No .env file found, using process environment"
	CONFIG_UNKNOWN_FORMAT           = "Unknown config file format %q"

	// connection
	CONNECTION_DIALING      = "Connecting to rpc endpoint %s"
	CONNECTION_CONNECTED    = "Successfully connected to rpc endpoint"
	CONNECTION_FAILED_DIAL  = "Failed to connect to rpc endpoint %s"
	CONNECTION_CLOSED       = "Rpc connection closed: %v"
	CONNECTION_RPC_ERROR    = "Rpc call %s failed"
	CONNECTION_FAILED_WRITE = "Failed to write rpc message"

	// postgres
	POSTGRES_CONNECTING                        = "Connecting to postgres database using '%s'"
	POSTGRES_CONNECTED                         = "Successfully connected to postgres instance"
	POSTGRES_FAILED_TO_PARSE_CONNECTION_STRING = "Failed to parse postgres connection string"
	POSTGRES_FAILED_TO_CONNECT                 = "Failed to connect to postgres database"
	POSTGRES_FAILED_TO_PING                    = "Failed to ping postgres database instance"
	POSTGRES_FAILED_TO_INSERT                  = "Failed to insert %s in postgres"

	// metadata / events
	META_FAILED_TO_DECODE   = "Failed to scale decode metadata for spec version %d"
	META_CACHED             = "Metadata cached for spec version %d"
	EVENTS_FAILED_TO_DECODE = "Failed to decode events for block %s"
	TYPES_REGISTERED        = "Registered custom decoder types from %s"

	// transaction lifecycle
	TX_SIGNING           = "Signing %s with %s"
	TX_SIGNED            = "%s signed"
	TX_SUBMITTING        = "Submitting %s"
	TX_STATUS            = "%s status %s"
	TX_INCLUDED          = "%s included in block %s at index %d"
	TX_REJECTED          = "%s rejected"
	TX_BLOCK_NUMBER      = "Resolved block %s to height %d"
	TX_RESULT            = "%s finished, success: %t"
	TX_UNKNOWN_EXTRINSIC = "Extrinsic %s not found in block %s"
)

const (
	// log levels used by the sdk
	LOG_LEVEL_DEBUG   SDKLogLevel = "DEBUG"
	LOG_LEVEL_INFO    SDKLogLevel = "INFO"
	LOG_LEVEL_ERROR   SDKLogLevel = "ERROR"
	LOG_LEVEL_WARNING SDKLogLevel = "WARNING"
	LOG_LEVEL_SUCCESS SDKLogLevel = "SUCCESS"
)

type SDKMessage struct {
	LogLevel       SDKLogLevel
	Component      string
	Error          error
	FormatString   string
	AdditionalInfo []interface{}
}

func (level SDKLogLevel) zerologLevel() zerolog.Level {
	switch level {
	case LOG_LEVEL_DEBUG:
		return zerolog.DebugLevel
	case LOG_LEVEL_WARNING:
		return zerolog.WarnLevel
	case LOG_LEVEL_ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
