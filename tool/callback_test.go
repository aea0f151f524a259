package tool

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastReturnSelectionError(t *testing.T) {
	data, err := sonic.Marshal(FastReturnSelectionError("bad entry", 2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"bad entry","index":2}`, string(data))

	data, err = sonic.Marshal(FastReturnSelectionError("no files selected", -1))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"no files selected"}`, string(data))

	data, err = sonic.Marshal(FastReturnError("Forbidden"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Forbidden"}`, string(data))
}
