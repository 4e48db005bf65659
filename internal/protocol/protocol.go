// Package protocol implements the VTube Studio public API wire format: a
// JSON envelope carried over a single websocket, with a fixed error shape
// for failed requests.
package protocol

import (
	"encoding/json"
	"fmt"
)

const (
	// APIName identifies the host API in every envelope.
	APIName = "VTubeStudioPublicAPI"
	// APIVersion is the protocol version this client speaks.
	APIVersion = "1.0"
)

// Request message types understood by the host.
const (
	TypeAuthenticationTokenRequest = "AuthenticationTokenRequest"
	TypeAuthenticationRequest      = "AuthenticationRequest"
	TypeAPIStateRequest            = "APIStateRequest"
	TypeStatisticsRequest          = "StatisticsRequest"
	TypeFolderInfoRequest          = "VTSFolderInfoRequest"
	TypeCurrentModelRequest        = "CurrentModelRequest"
	TypeAvailableModelsRequest     = "AvailableModelsRequest"
	TypeModelLoadRequest           = "ModelLoadRequest"
	TypeMoveModelRequest           = "MoveModelRequest"
	TypeHotkeysRequest             = "HotkeysInCurrentModelRequest"
	TypeHotkeyTriggerRequest       = "HotkeyTriggerRequest"
	TypeExpressionStateRequest     = "ExpressionStateRequest"
	TypeExpressionActivationReq    = "ExpressionActivationRequest"
	TypeArtMeshListRequest         = "ArtMeshListRequest"
	TypeColorTintRequest           = "ColorTintRequest"
	TypeSceneColorOverlayRequest   = "SceneColorOverlayInfoRequest"
	TypeFaceFoundRequest           = "FaceFoundRequest"
	TypeInputParameterListRequest  = "InputParameterListRequest"
	TypeParameterValueRequest      = "ParameterValueRequest"
	TypeLive2DParameterListReq     = "Live2DParameterListRequest"
	TypeParameterCreationRequest   = "ParameterCreationRequest"
	TypeParameterDeletionRequest   = "ParameterDeletionRequest"
	TypeInjectParameterDataRequest = "InjectParameterDataRequest"
	TypeGetModelPhysicsRequest     = "GetCurrentModelPhysicsRequest"
	TypeSetModelPhysicsRequest     = "SetCurrentModelPhysicsRequest"
	TypeNDIConfigRequest           = "NDIConfigRequest"
	TypeItemListRequest            = "ItemListRequest"
	TypeItemLoadRequest            = "ItemLoadRequest"
	TypeItemUnloadRequest          = "ItemUnloadRequest"
	TypeItemAnimationControlReq    = "ItemAnimationControlRequest"
	TypeItemMoveRequest            = "ItemMoveRequest"
	TypeArtMeshSelectionRequest    = "ArtMeshSelectionRequest"
	TypeEventSubscriptionRequest   = "EventSubscriptionRequest"
)

// TypeAPIError is the distinguished message type carried by error responses.
const TypeAPIError = "APIError"

// Envelope is the fixed outer shape of every message in both directions.
type Envelope struct {
	APIName     string          `json:"apiName"`
	APIVersion  string          `json:"apiVersion"`
	RequestID   string          `json:"requestID"`
	MessageType string          `json:"messageType"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// ErrorPayload is the data shape of an APIError response.
type ErrorPayload struct {
	ErrorID int64  `json:"errorID"`
	Message string `json:"message"`
}

// EncodeRequest serializes one outbound request envelope.
func EncodeRequest(requestID, messageType string, data any) ([]byte, error) {
	env := struct {
		APIName     string `json:"apiName"`
		APIVersion  string `json:"apiVersion"`
		RequestID   string `json:"requestID"`
		MessageType string `json:"messageType"`
		Data        any    `json:"data,omitempty"`
	}{
		APIName:     APIName,
		APIVersion:  APIVersion,
		RequestID:   requestID,
		MessageType: messageType,
		Data:        data,
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", messageType, err)
	}
	return raw, nil
}

// DecodeFrame parses one inbound frame into an envelope. A frame that is not
// valid JSON or has no message type is a protocol violation, not something
// the caller can recover from.
func DecodeFrame(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}
	if env.MessageType == "" {
		return nil, fmt.Errorf("malformed frame: missing messageType")
	}
	return &env, nil
}

// IsError reports whether the envelope carries the error message type.
func (e *Envelope) IsError() bool {
	return e.MessageType == TypeAPIError
}

// ErrorPayload extracts the error code and message from an APIError envelope.
func (e *Envelope) ErrorPayload() (*ErrorPayload, error) {
	if !e.IsError() {
		return nil, fmt.Errorf("not an %s envelope: %s", TypeAPIError, e.MessageType)
	}
	var p ErrorPayload
	if err := json.Unmarshal(e.Data, &p); err != nil {
		return nil, fmt.Errorf("malformed %s payload: %w", TypeAPIError, err)
	}
	return &p, nil
}

// DecodeData unmarshals the envelope's data payload into out. A nil or absent
// payload leaves out untouched; some responses legitimately carry no data.
func (e *Envelope) DecodeData(out any) error {
	if out == nil || len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("decode %s data: %w", e.MessageType, err)
	}
	return nil
}
