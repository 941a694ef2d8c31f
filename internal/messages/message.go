package messages

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	loggerMu sync.RWMutex
	logger   = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// SetOutput replaces the sink used by ConsoleLog. A nil writer discards all messages.
func SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	loggerMu.Lock()
	logger = zerolog.New(w).With().Timestamp().Logger()
	loggerMu.Unlock()
}

// UseConsoleWriter switches the sink to a human readable console writer on stderr
func UseConsoleWriter() {
	loggerMu.Lock()
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	loggerMu.Unlock()
}

// SetLevel sets the minimum level written by ConsoleLog
func SetLevel(level SDKLogLevel) {
	loggerMu.Lock()
	logger = logger.Level(level.zerologLevel())
	loggerMu.Unlock()
}

func NewSDKMessage(level SDKLogLevel, component string, err error, formatString string, additionalInfo ...interface{}) *SDKMessage {
	return &SDKMessage{
		LogLevel:       level,
		Component:      component,
		Error:          err,
		FormatString:   formatString,
		AdditionalInfo: additionalInfo,
	}
}

// Message renders the format string with its arguments
func (sdkMsg *SDKMessage) Message() string {
	if len(sdkMsg.AdditionalInfo) == 0 {
		return sdkMsg.FormatString
	}
	return fmt.Sprintf(sdkMsg.FormatString, sdkMsg.AdditionalInfo...)
}

func (sdkMsg *SDKMessage) ConsoleLog() {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()

	event := l.WithLevel(sdkMsg.LogLevel.zerologLevel())
	if sdkMsg.Component != "" {
		event = event.Str("component", sdkMsg.Component)
	}
	if sdkMsg.LogLevel == LOG_LEVEL_SUCCESS {
		event = event.Bool("success", true)
	}
	if sdkMsg.Error != nil {
		event = event.Err(sdkMsg.Error)
	}
	event.Msg(sdkMsg.Message())
}
