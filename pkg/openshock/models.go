package openshock

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ControlType is the kind of action sent to a shocker
type ControlType string

const (
	ControlShock   ControlType = "Shock"
	ControlVibrate ControlType = "Vibrate"
	ControlSound   ControlType = "Sound"
	ControlStop    ControlType = "Stop"
)

// ControlTypes lists every control type in wire order
var ControlTypes = []ControlType{ControlShock, ControlVibrate, ControlSound, ControlStop}

// ParseControlType matches s case-insensitively against the known control types.
// "beep" is accepted as an alias for Sound.
func ParseControlType(s string) (ControlType, error) {
	if strings.EqualFold(s, "beep") {
		return ControlSound, nil
	}
	for _, ct := range ControlTypes {
		if strings.EqualFold(s, string(ct)) {
			return ct, nil
		}
	}
	return "", NewInvalidArgumentError(fmt.Sprintf("unknown control type %q (want Shock, Vibrate, Sound or Stop)", s))
}

// Shocker represents a shocker unit.
//
// Every field is optional: list and detail endpoints return different subsets.
type Shocker struct {
	ID        *string `json:"id,omitempty"`
	Name      *string `json:"name,omitempty"`
	RFID      *int    `json:"rfId,omitempty"`
	Model     *string `json:"model,omitempty"`
	CreatedOn *string `json:"createdOn,omitempty"`
	IsPaused  *bool   `json:"isPaused,omitempty"`
	Online    *bool   `json:"online,omitempty"`
}

// Device represents an OpenShock hub.
//
// Every field is optional: list and detail endpoints return different subsets.
type Device struct {
	ID              *string   `json:"id,omitempty"`
	Name            *string   `json:"name,omitempty"`
	CreatedOn       *string   `json:"createdOn,omitempty"`
	Online          *bool     `json:"online,omitempty"`
	FirmwareVersion *string   `json:"firmwareVersion,omitempty"`
	Shockers        []Shocker `json:"shockers,omitempty"`
}

// DeviceListResponse is returned by GET /1/devices
type DeviceListResponse struct {
	Message *string                    `json:"message,omitempty"`
	Data    []Device                   `json:"data,omitempty"`
	Extra   map[string]json.RawMessage `json:"-"`
}

// DeviceResponse is returned by GET /1/devices/{id}
type DeviceResponse struct {
	Message *string                    `json:"message,omitempty"`
	Data    *Device                    `json:"data,omitempty"`
	Extra   map[string]json.RawMessage `json:"-"`
}

// ShockerListResponse is returned by GET /1/shockers/own and GET /1/devices/{id}/shockers
type ShockerListResponse struct {
	Message *string                    `json:"message,omitempty"`
	Data    []Shocker                  `json:"data,omitempty"`
	Extra   map[string]json.RawMessage `json:"-"`
}

// ShockerResponse is returned by GET /1/shockers/{id}
type ShockerResponse struct {
	Message *string                    `json:"message,omitempty"`
	Data    *Shocker                   `json:"data,omitempty"`
	Extra   map[string]json.RawMessage `json:"-"`
}

// ActionResponse is returned by POST /2/shockers/control when the API sends a body
type ActionResponse struct {
	Message *string                    `json:"message,omitempty"`
	Extra   map[string]json.RawMessage `json:"-"`
}

// Control is a single action entry in a control request
type Control struct {
	ID        string      `json:"id"`
	Type      ControlType `json:"type"`
	Intensity int         `json:"intensity"`
	Duration  int         `json:"duration"`
	Exclusive bool        `json:"exclusive"`
}

// ControlRequest is the body of POST /2/shockers/control.
// CustomName is always serialized, as null when unset.
type ControlRequest struct {
	Shocks     []Control `json:"shocks"`
	CustomName *string   `json:"customName"`
}

// The envelopes keep fields the documented shape doesn't name in Extra
// and write them back out when marshalled.

func (r *DeviceListResponse) UnmarshalJSON(data []byte) error {
	type plain DeviceListResponse
	return decodeEnvelope(data, (*plain)(r), &r.Extra)
}

func (r *DeviceResponse) UnmarshalJSON(data []byte) error {
	type plain DeviceResponse
	return decodeEnvelope(data, (*plain)(r), &r.Extra)
}

func (r *ShockerListResponse) UnmarshalJSON(data []byte) error {
	type plain ShockerListResponse
	return decodeEnvelope(data, (*plain)(r), &r.Extra)
}

func (r *ShockerResponse) UnmarshalJSON(data []byte) error {
	type plain ShockerResponse
	return decodeEnvelope(data, (*plain)(r), &r.Extra)
}

func (r *ActionResponse) UnmarshalJSON(data []byte) error {
	type plain ActionResponse
	return decodeEnvelope(data, (*plain)(r), &r.Extra)
}

func (r DeviceListResponse) MarshalJSON() ([]byte, error) {
	type plain DeviceListResponse
	return encodeEnvelope(plain(r), r.Extra)
}

func (r DeviceResponse) MarshalJSON() ([]byte, error) {
	type plain DeviceResponse
	return encodeEnvelope(plain(r), r.Extra)
}

func (r ShockerListResponse) MarshalJSON() ([]byte, error) {
	type plain ShockerListResponse
	return encodeEnvelope(plain(r), r.Extra)
}

func (r ShockerResponse) MarshalJSON() ([]byte, error) {
	type plain ShockerResponse
	return encodeEnvelope(plain(r), r.Extra)
}

func (r ActionResponse) MarshalJSON() ([]byte, error) {
	type plain ActionResponse
	return encodeEnvelope(plain(r), r.Extra)
}

// decodeEnvelope decodes data into dst and collects every top-level key other
// than "message" and "data" into extra.
func decodeEnvelope(data []byte, dst any, extra *map[string]json.RawMessage) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	delete(fields, "message")
	delete(fields, "data")
	if len(fields) > 0 {
		*extra = fields
	}
	return nil
}

// encodeEnvelope marshals src and merges extra back in. Named fields win over
// an extra key of the same name.
func encodeEnvelope(src any, extra map[string]json.RawMessage) ([]byte, error) {
	data, err := json.Marshal(src)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := fields[k]; !ok {
			fields[k] = v
		}
	}
	return json.Marshal(fields)
}
