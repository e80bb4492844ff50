package openshock

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseControlType(t *testing.T) {
	tests := []struct {
		in   string
		want ControlType
	}{
		{"Shock", ControlShock},
		{"shock", ControlShock},
		{"VIBRATE", ControlVibrate},
		{"sound", ControlSound},
		{"beep", ControlSound},
		{"stop", ControlStop},
	}
	for _, tt := range tests {
		got, err := ParseControlType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseControlType("zap")
	assert.True(t, IsInvalidArgument(err))
}

func TestNewControlRequest_MarshalShape(t *testing.T) {
	body, err := json.Marshal(NewControlRequest("s1", ControlShock, 40, 1200, false))
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"shocks":[{"id":"s1","type":"Shock","intensity":40,"duration":1200,"exclusive":false}],"customName":null}`,
		string(body))
}

func TestClampHelpers(t *testing.T) {
	assert.Equal(t, 300, ClampDuration(-5))
	assert.Equal(t, 65535, ClampDuration(1_000_000))
	assert.Equal(t, 1200, ClampDuration(1200))
	assert.Equal(t, 0, ClampIntensity(-10))
	assert.Equal(t, 100, ClampIntensity(150))
	assert.Equal(t, 75, ClampIntensity(75))
}

func TestEnvelope_PreservesUnknownFields(t *testing.T) {
	var resp DeviceListResponse
	require.NoError(t, json.Unmarshal([]byte(`{"devices":[{"id":"d1"}],"message":"hi"}`), &resp))

	require.NotNil(t, resp.Message)
	assert.Equal(t, "hi", *resp.Message)
	assert.Nil(t, resp.Data)
	require.Contains(t, resp.Extra, "devices")
	assert.JSONEq(t, `[{"id":"d1"}]`, string(resp.Extra["devices"]))
}

func TestEnvelope_AbsentFieldsStayNil(t *testing.T) {
	var resp ShockerResponse
	require.NoError(t, json.Unmarshal([]byte(`{"data":{"id":"s1","isPaused":false}}`), &resp))

	assert.Nil(t, resp.Message)
	assert.Nil(t, resp.Extra)
	require.NotNil(t, resp.Data)
	require.NotNil(t, resp.Data.IsPaused)
	assert.False(t, *resp.Data.IsPaused)
	assert.Nil(t, resp.Data.Online)
	assert.Nil(t, resp.Data.Model)
}

func TestActionResponse_Decode(t *testing.T) {
	var resp ActionResponse
	require.NoError(t, json.Unmarshal([]byte(`{"message":"Successfully sent control messages","ok":true}`), &resp))

	require.NotNil(t, resp.Message)
	assert.Equal(t, "Successfully sent control messages", *resp.Message)
	assert.JSONEq(t, `true`, string(resp.Extra["ok"]))
}

func TestEnvelope_MarshalKeepsUnknownFields(t *testing.T) {
	tests := []struct {
		name string
		in   string
		dst  any
	}{
		{"device list", `{"devices":[{"id":"d1"}]}`, &DeviceListResponse{}},
		{"device", `{"message":"","data":{"id":"d1"},"traceId":"t-1"}`, &DeviceResponse{}},
		{"shocker list", `{"data":[{"id":"s1"}],"page":2}`, &ShockerListResponse{}},
		{"shocker", `{"data":{"id":"s1"},"warnings":["x"]}`, &ShockerResponse{}},
		{"action", `{"message":"ok","ok":true}`, &ActionResponse{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, json.Unmarshal([]byte(tt.in), tt.dst))
			out, err := json.Marshal(tt.dst)
			require.NoError(t, err)
			assert.JSONEq(t, tt.in, string(out))
		})
	}
}

func TestEnvelope_NamedFieldsWinOverExtra(t *testing.T) {
	msg := "named"
	resp := ActionResponse{
		Message: &msg,
		Extra:   map[string]json.RawMessage{"message": json.RawMessage(`"extra"`), "id": json.RawMessage(`7`)},
	}
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"named","id":7}`, string(out))
}
