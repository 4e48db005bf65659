package vtsgo

import (
	"context"

	"github.com/zliel/vtsgo/internal/protocol"
)

// CapturePart is the average color of one third of the capture area used for
// scene lighting.
type CapturePart struct {
	Active bool `json:"active"`
	ColorR int  `json:"colorR"`
	ColorG int  `json:"colorG"`
	ColorB int  `json:"colorB"`
}

// SceneColorOverlayData describes the scene lighting overlay configuration
// and the currently captured colors.
type SceneColorOverlayData struct {
	Active            bool        `json:"active"`
	ItemsIncluded     bool        `json:"itemsIncluded"`
	IsWindowCapture   bool        `json:"isWindowCapture"`
	BaseBrightness    int         `json:"baseBrightness"`
	ColorBoost        int         `json:"colorBoost"`
	Smoothing         int         `json:"smoothing"`
	ColorOverlayR     int         `json:"colorOverlayR"`
	ColorOverlayG     int         `json:"colorOverlayG"`
	ColorOverlayB     int         `json:"colorOverlayB"`
	ColorAvgR         int         `json:"colorAvgR"`
	ColorAvgG         int         `json:"colorAvgG"`
	ColorAvgB         int         `json:"colorAvgB"`
	LeftCapturePart   CapturePart `json:"leftCapturePart"`
	MiddleCapturePart CapturePart `json:"middleCapturePart"`
	RightCapturePart  CapturePart `json:"rightCapturePart"`
}

// FaceFoundData reports whether the tracker currently sees a face.
type FaceFoundData struct {
	Found bool `json:"found"`
}

// NDIConfigData is the host's NDI streaming configuration.
type NDIConfigData struct {
	SetNewConfig        bool `json:"setNewConfig"`
	NDIActive           bool `json:"ndiActive"`
	UseNDI5             bool `json:"useNDI5"`
	UseCustomResolution bool `json:"useCustomResolution"`
	CustomWidthNDI      int  `json:"customWidthNDI"`
	CustomHeightNDI     int  `json:"customHeightNDI"`
}

// NDISettings is the configuration applied by SetNDIConfig. Width and height
// only take effect with UseCustomResolution set; use -1 to leave them alone.
type NDISettings struct {
	NDIActive           bool `json:"ndiActive"`
	UseNDI5             bool `json:"useNDI5"`
	UseCustomResolution bool `json:"useCustomResolution"`
	CustomWidthNDI      int  `json:"customWidthNDI"`
	CustomHeightNDI     int  `json:"customHeightNDI"`
}

// SceneColorOverlayInfo returns the scene lighting overlay configuration.
func (c *Client) SceneColorOverlayInfo(ctx context.Context, opts ...CallOption) (*SceneColorOverlayData, error) {
	o := applyCallOptions(opts)
	var data SceneColorOverlayData
	if err := c.call(ctx, protocol.TypeSceneColorOverlayRequest, o.requestID, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// FaceFound reports whether the tracker currently sees the user's face.
func (c *Client) FaceFound(ctx context.Context, opts ...CallOption) (bool, error) {
	o := applyCallOptions(opts)
	var data FaceFoundData
	if err := c.call(ctx, protocol.TypeFaceFoundRequest, o.requestID, nil, &data); err != nil {
		return false, err
	}
	return data.Found, nil
}

// NDIConfig returns the current NDI configuration. The host rate-limits this
// endpoint to one call every three seconds.
func (c *Client) NDIConfig(ctx context.Context, opts ...CallOption) (*NDIConfigData, error) {
	o := applyCallOptions(opts)
	var data NDIConfigData
	err := c.call(ctx, protocol.TypeNDIConfigRequest, o.requestID, struct {
		SetNewConfig bool `json:"setNewConfig"`
	}{SetNewConfig: false}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// SetNDIConfig applies a new NDI configuration. The same three-second rate
// limit as NDIConfig applies.
func (c *Client) SetNDIConfig(ctx context.Context, settings NDISettings, opts ...CallOption) (*NDIConfigData, error) {
	o := applyCallOptions(opts)
	var data NDIConfigData
	err := c.call(ctx, protocol.TypeNDIConfigRequest, o.requestID, struct {
		SetNewConfig bool `json:"setNewConfig"`
		NDISettings
	}{SetNewConfig: true, NDISettings: settings}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}
