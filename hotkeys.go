package vtsgo

import (
	"context"

	"github.com/zliel/vtsgo/internal/protocol"
)

// Hotkey is one hotkey configured for a model.
type Hotkey struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Description      string   `json:"description"`
	File             string   `json:"file"`
	HotkeyID         string   `json:"hotkeyID"`
	KeyCombination   []string `json:"keyCombination"`
	OnScreenButtonID int      `json:"onScreenButtonID"`
}

// HotkeysData lists the hotkeys available in a model.
type HotkeysData struct {
	ModelLoaded      bool     `json:"modelLoaded"`
	ModelName        string   `json:"modelName"`
	ModelID          string   `json:"modelID"`
	AvailableHotkeys []Hotkey `json:"availableHotkeys"`
}

// HotkeyTriggerData confirms which hotkey was executed.
type HotkeyTriggerData struct {
	HotkeyID string `json:"hotkeyID"`
}

// Hotkeys lists the hotkeys of the currently loaded model.
func (c *Client) Hotkeys(ctx context.Context, opts ...CallOption) (*HotkeysData, error) {
	o := applyCallOptions(opts)
	var data HotkeysData
	if err := c.call(ctx, protocol.TypeHotkeysRequest, o.requestID, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ModelHotkeys lists the hotkeys of the model with the given ID.
func (c *Client) ModelHotkeys(ctx context.Context, modelID string, opts ...CallOption) (*HotkeysData, error) {
	o := applyCallOptions(opts)
	var data HotkeysData
	err := c.call(ctx, protocol.TypeHotkeysRequest, o.requestID, struct {
		ModelID string `json:"modelID"`
	}{ModelID: modelID}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// TriggerHotkey executes a hotkey in the currently loaded model.
func (c *Client) TriggerHotkey(ctx context.Context, hotkeyID string, opts ...CallOption) (*HotkeyTriggerData, error) {
	o := applyCallOptions(opts)
	var data HotkeyTriggerData
	err := c.call(ctx, protocol.TypeHotkeyTriggerRequest, o.requestID, struct {
		HotkeyID string `json:"hotkeyID"`
	}{HotkeyID: hotkeyID}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// TriggerItemHotkey executes a hotkey of a loaded Live2D item.
func (c *Client) TriggerItemHotkey(ctx context.Context, itemInstanceID, hotkeyID string, opts ...CallOption) (*HotkeyTriggerData, error) {
	o := applyCallOptions(opts)
	var data HotkeyTriggerData
	err := c.call(ctx, protocol.TypeHotkeyTriggerRequest, o.requestID, struct {
		ItemInstanceID string `json:"itemInstanceID"`
		HotkeyID       string `json:"hotkeyID"`
	}{ItemInstanceID: itemInstanceID, HotkeyID: hotkeyID}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}
