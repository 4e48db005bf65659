package vtsgo

import (
	"context"

	"github.com/zliel/vtsgo/internal/protocol"
)

// StatisticsData holds session statistics: uptime, framerate, plugin counts
// and window geometry.
type StatisticsData struct {
	Uptime             int64  `json:"uptime"`
	Framerate          int    `json:"framerate"`
	VTubeStudioVersion string `json:"vTubeStudioVersion"`
	AllowedPlugins     int    `json:"allowedPlugins"`
	ConnectedPlugins   int    `json:"connectedPlugins"`
	StartedWithSteam   bool   `json:"startedWithSteam"`
	WindowWidth        int    `json:"windowWidth"`
	WindowHeight       int    `json:"windowHeight"`
	WindowIsFullscreen bool   `json:"windowIsFullscreen"`
}

// FolderInfoData lists the folder names inside the StreamingAssets directory.
type FolderInfoData struct {
	Models      string `json:"models"`
	Backgrounds string `json:"backgrounds"`
	Items       string `json:"items"`
	Config      string `json:"config"`
	Logs        string `json:"logs"`
	Backup      string `json:"backup"`
}

// ModelPosition is a model's placement in the scene.
type ModelPosition struct {
	PositionX float64 `json:"positionX"`
	PositionY float64 `json:"positionY"`
	Rotation  float64 `json:"rotation"`
	Size      float64 `json:"size"`
}

// CurrentModelData describes the currently loaded model.
type CurrentModelData struct {
	ModelLoaded              bool          `json:"modelLoaded"`
	ModelName                string        `json:"modelName"`
	ModelID                  string        `json:"modelID"`
	VTSModelName             string        `json:"vtsModelName"`
	VTSModelIconName         string        `json:"vtsModelIconName"`
	Live2DModelName          string        `json:"live2DModelName"`
	ModelLoadTime            int64         `json:"modelLoadTime"`
	TimeSinceModelLoaded     int64         `json:"timeSinceModelLoaded"`
	NumberOfLive2DParameters int           `json:"numberOfLive2DParameters"`
	NumberOfLive2DArtmeshes  int           `json:"numberOfLive2DArtmeshes"`
	HasPhysicsFile           bool          `json:"hasPhysicsFile"`
	NumberOfTextures         int           `json:"numberOfTextures"`
	TextureResolution        int           `json:"textureResolution"`
	ModelPosition            ModelPosition `json:"modelPosition"`
}

// ModelInfo is one entry in the available-models listing.
type ModelInfo struct {
	ModelLoaded      bool   `json:"modelLoaded"`
	ModelName        string `json:"modelName"`
	ModelID          string `json:"modelID"`
	VTSModelName     string `json:"vtsModelName"`
	VTSModelIconName string `json:"vtsModelIconName"`
}

// AvailableModelsData lists every installed model.
type AvailableModelsData struct {
	NumberOfModels  int         `json:"numberOfModels"`
	AvailableModels []ModelInfo `json:"availableModels"`
}

// ModelLoadData confirms which model was loaded.
type ModelLoadData struct {
	ModelID string `json:"modelID"`
}

// MoveModelParams moves, rotates and/or resizes the current model. Nil
// pointer fields are left unchanged by the host. TimeInSeconds must be
// between 0 and 2; positions between -1000 and 1000; rotation between -360
// and 360; size between -100 and 100.
type MoveModelParams struct {
	TimeInSeconds            float64  `json:"timeInSeconds"`
	ValuesAreRelativeToModel bool     `json:"valuesAreRelativeToModel"`
	PositionX                *float64 `json:"positionX,omitempty"`
	PositionY                *float64 `json:"positionY,omitempty"`
	Rotation                 *float64 `json:"rotation,omitempty"`
	Size                     *float64 `json:"size,omitempty"`
}

// Statistics returns statistics about the current VTube Studio session.
func (c *Client) Statistics(ctx context.Context, opts ...CallOption) (*StatisticsData, error) {
	o := applyCallOptions(opts)
	var data StatisticsData
	if err := c.call(ctx, protocol.TypeStatisticsRequest, o.requestID, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// FolderInfo returns the names of the VTube Studio asset folders.
func (c *Client) FolderInfo(ctx context.Context, opts ...CallOption) (*FolderInfoData, error) {
	o := applyCallOptions(opts)
	var data FolderInfoData
	if err := c.call(ctx, protocol.TypeFolderInfoRequest, o.requestID, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// CurrentModel returns information about the currently loaded model.
func (c *Client) CurrentModel(ctx context.Context, opts ...CallOption) (*CurrentModelData, error) {
	o := applyCallOptions(opts)
	var data CurrentModelData
	if err := c.call(ctx, protocol.TypeCurrentModelRequest, o.requestID, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// AvailableModels lists every model installed in VTube Studio.
func (c *Client) AvailableModels(ctx context.Context, opts ...CallOption) (*AvailableModelsData, error) {
	o := applyCallOptions(opts)
	var data AvailableModelsData
	if err := c.call(ctx, protocol.TypeAvailableModelsRequest, o.requestID, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// LoadModel loads a model by its ID. The host enforces a global cooldown of
// two seconds between model loads.
func (c *Client) LoadModel(ctx context.Context, modelID string, opts ...CallOption) (*ModelLoadData, error) {
	o := applyCallOptions(opts)
	var data ModelLoadData
	err := c.call(ctx, protocol.TypeModelLoadRequest, o.requestID, struct {
		ModelID string `json:"modelID"`
	}{ModelID: modelID}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// MoveModel moves, rotates and/or resizes the current model.
func (c *Client) MoveModel(ctx context.Context, params MoveModelParams, opts ...CallOption) error {
	o := applyCallOptions(opts)
	return c.call(ctx, protocol.TypeMoveModelRequest, o.requestID, params, nil)
}
