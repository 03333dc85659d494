package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

func TestMethodCallCodec(t *testing.T) {
	data, err := EncodeMethodCall(types.MethodCall{Method: "getStoragePaths"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"method":"getStoragePaths","args":null}`, string(data))

	call, err := DecodeMethodCall(data)
	require.NoError(t, err)
	assert.Equal(t, "getStoragePaths", call.Method)
	assert.Nil(t, call.Arguments)
}

func TestDecodeMethodCallWithArgs(t *testing.T) {
	call, err := DecodeMethodCall([]byte(`{"method":"echo","args":{"path":"/data"}}`))
	require.NoError(t, err)
	assert.Equal(t, "echo", call.Method)

	assert.Equal(t, map[string]interface{}{"path": "/data"}, call.Arguments)
}

func TestDecodeMethodCallRejects(t *testing.T) {
	tests := map[string]string{
		"not json":       `{method`,
		"missing method": `{"args":1}`,
		"empty method":   `{"method":""}`,
		"array":          `["getStoragePaths"]`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeMethodCall([]byte(input))
			assert.ErrorIs(t, err, ErrMalformedCall)
		})
	}

	_, err := EncodeMethodCall(types.MethodCall{})
	assert.ErrorIs(t, err, ErrMalformedCall)
}

func TestEncodeEnvelope(t *testing.T) {
	tests := []struct {
		name   string
		result *types.Result
		want   string
	}{
		{"success", types.Success([]string{"/storage/emulated/0", "/storage/1234-5678"}), `[["/storage/emulated/0","/storage/1234-5678"]]`},
		{"empty success", types.Success([]string{}), `[[]]`},
		{"null success", types.Success(nil), `[null]`},
		{"error", types.Failure("UNAVAILABLE", "statfs failed", map[string]string{"path": "/data"}), `["UNAVAILABLE","statfs failed",{"path":"/data"}]`},
		{"error without message", types.Failure("UNAVAILABLE", "", nil), `["UNAVAILABLE",null,null]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeEnvelope(tt.result)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestEncodeNotImplementedIsEmpty(t *testing.T) {
	data, err := EncodeEnvelope(types.NotImplemented())
	require.NoError(t, err)
	assert.Empty(t, data)

	result, err := DecodeEnvelope(data)
	require.NoError(t, err)
	assert.True(t, result.IsNotImplemented())
}

func TestDecodeEnvelope(t *testing.T) {
	result, err := DecodeEnvelope([]byte(`[["/storage/emulated/0"]]`))
	require.NoError(t, err)
	assert.True(t, result.IsSuccess())
	assert.Equal(t, []interface{}{"/storage/emulated/0"}, result.Value)

	result, err = DecodeEnvelope([]byte(`["UNAVAILABLE",null,null]`))
	require.NoError(t, err)
	require.True(t, result.IsError())
	assert.Equal(t, "UNAVAILABLE", result.Error.Code)
	assert.Empty(t, result.Error.Message)
}

func TestDecodeEnvelopeRejects(t *testing.T) {
	tests := map[string]string{
		"not json":     `[`,
		"object":       `{"result":1}`,
		"two elements": `["a","b"]`,
		"numeric code": `[1,"msg",null]`,
		"numeric msg":  `["CODE",2,null]`,
		"empty array":  `[]`,
		"null":         `null`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeEnvelope([]byte(input))
			assert.ErrorIs(t, err, ErrMalformedEnvelope)
		})
	}
}
