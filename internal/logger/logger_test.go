package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storerating/internal/logger"
)

func TestNewWithWriter_ProdIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger.NewWithWriter("prod", &buf).Info("store created", "storeId", 3)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "store created", line["msg"])
	assert.Equal(t, float64(3), line["storeId"])
}

func TestNewWithWriter_DevIsTextWithDebug(t *testing.T) {
	var buf bytes.Buffer
	logger.NewWithWriter("dev", &buf).Debug("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=v")
}
