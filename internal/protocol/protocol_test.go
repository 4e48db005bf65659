package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeRequestEnvelope(t *testing.T) {
	t.Parallel()

	raw, err := EncodeRequest("Req-1", TypeStatisticsRequest, nil)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, APIName, decoded["apiName"])
	require.Equal(t, APIVersion, decoded["apiVersion"])
	require.Equal(t, "Req-1", decoded["requestID"])
	require.Equal(t, TypeStatisticsRequest, decoded["messageType"])
	// No data was supplied, so the field must be omitted entirely.
	_, hasData := decoded["data"]
	require.False(t, hasData)
}

func TestEncodeRequestWithData(t *testing.T) {
	t.Parallel()

	raw, err := EncodeRequest("Req-2", TypeModelLoadRequest, map[string]string{"modelID": "abc"})
	require.NoError(t, err)

	var decoded struct {
		Data struct {
			ModelID string `json:"modelID"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Equal(t, "abc", decoded.Data.ModelID)
}

func TestDecodeFrame(t *testing.T) {
	t.Parallel()

	env, err := DecodeFrame([]byte(`{"apiName":"VTubeStudioPublicAPI","apiVersion":"1.0","requestID":"r","messageType":"StatisticsResponse","data":{"framerate":60}}`))
	require.NoError(t, err)
	require.Equal(t, "StatisticsResponse", env.MessageType)
	require.False(t, env.IsError())

	var data struct {
		Framerate int `json:"framerate"`
	}
	require.NoError(t, env.DecodeData(&data))
	require.Equal(t, 60, data.Framerate)
}

func TestDecodeFrameRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := DecodeFrame([]byte("not json"))
	require.Error(t, err)

	_, err = DecodeFrame([]byte(`{"apiName":"VTubeStudioPublicAPI"}`))
	require.ErrorContains(t, err, "messageType")
}

func TestErrorPayload(t *testing.T) {
	t.Parallel()

	env, err := DecodeFrame([]byte(`{"messageType":"APIError","data":{"errorID":8,"message":"not authenticated"}}`))
	require.NoError(t, err)
	require.True(t, env.IsError())

	p, err := env.ErrorPayload()
	require.NoError(t, err)
	require.Equal(t, int64(8), p.ErrorID)
	require.Equal(t, "not authenticated", p.Message)

	ok := &Envelope{MessageType: "StatisticsResponse"}
	_, err = ok.ErrorPayload()
	require.Error(t, err)
}
