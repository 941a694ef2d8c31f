package messages

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleComponent() {}

func TestConsoleLogWritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	NewSDKMessage(LOG_LEVEL_ERROR, "connection", errors.New("boom"), CONNECTION_FAILED_DIAL, "ws://node").ConsoleLog()

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "connection", line["component"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "Failed to connect to rpc endpoint ws://node", line["message"])
}

func TestConsoleLogRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)
	SetLevel(LOG_LEVEL_WARNING)

	NewSDKMessage(LOG_LEVEL_INFO, "", nil, TX_SUBMITTING, "unique.addCollectionAdmin").ConsoleLog()
	assert.Zero(t, buf.Len())

	NewSDKMessage(LOG_LEVEL_WARNING, "", nil, TX_REJECTED, "unique.addCollectionAdmin").ConsoleLog()
	assert.Contains(t, buf.String(), "unique.addCollectionAdmin rejected")
}

func TestMessageWithoutArguments(t *testing.T) {
	msg := NewSDKMessage(LOG_LEVEL_SUCCESS, "", nil, CONFIG_FINISHED_LOADING)
	assert.Equal(t, CONFIG_FINISHED_LOADING, msg.Message())
}

func TestGetComponent(t *testing.T) {
	assert.Equal(t, "messages", GetComponent(sampleComponent))
}
