package vtsgo

import (
	"context"

	"github.com/zliel/vtsgo/internal/protocol"
)

// ItemListFilter narrows an item listing. The zero value lists nothing
// useful; set at least one include flag.
type ItemListFilter struct {
	IncludeAvailableSpots       bool   `json:"includeAvailableSpots"`
	IncludeItemInstancesInScene bool   `json:"includeItemInstancesInScene"`
	IncludeAvailableItemFiles   bool   `json:"includeAvailableItemFiles"`
	OnlyItemsWithFileName       string `json:"onlyItemsWithFileName"`
	OnlyItemsWithInstanceID     string `json:"onlyItemsWithInstanceID"`
}

// ItemInstance is one item currently loaded in the scene.
type ItemInstance struct {
	FileName        string  `json:"fileName"`
	InstanceID      string  `json:"instanceID"`
	Order           int     `json:"order"`
	Type            string  `json:"type"`
	Censored        bool    `json:"censored"`
	Flipped         bool    `json:"flipped"`
	Locked          bool    `json:"locked"`
	Smoothing       float64 `json:"smoothing"`
	Framerate       float64 `json:"framerate"`
	FrameCount      int     `json:"frameCount"`
	CurrentFrame    int     `json:"currentFrame"`
	PinnedToModel   bool    `json:"pinnedToModel"`
	PinnedModelID   string  `json:"pinnedModelID"`
	PinnedArtMeshID string  `json:"pinnedArtMeshID"`
	GroupName       string  `json:"groupName"`
	SceneName       string  `json:"sceneName"`
	FromWorkshop    bool    `json:"fromWorkshop"`
}

// ItemFile is one loadable item file.
type ItemFile struct {
	FileName    string `json:"fileName"`
	Type        string `json:"type"`
	LoadedCount int    `json:"loadedCount"`
}

// ItemListData is the item listing produced by Items.
type ItemListData struct {
	ItemsInSceneCount      int            `json:"itemsInSceneCount"`
	TotalItemsAllowedCount int            `json:"totalItemsAllowedCount"`
	CanLoadItemsRightNow   bool           `json:"canLoadItemsRightNow"`
	AvailableSpots         []int          `json:"availableSpots"`
	ItemInstancesInScene   []ItemInstance `json:"itemInstancesInScene"`
	AvailableItemFiles     []ItemFile     `json:"availableItemFiles"`
}

// ItemLoadParams loads an item into the scene. Nil position fields let the
// host pick. With UnloadWhenPluginDisconnects set, the host removes the item
// when this plugin's connection closes.
type ItemLoadParams struct {
	FileName                    string   `json:"fileName"`
	PositionX                   *float64 `json:"positionX,omitempty"`
	PositionY                   *float64 `json:"positionY,omitempty"`
	Size                        *float64 `json:"size,omitempty"`
	Rotation                    *float64 `json:"rotation,omitempty"`
	FadeTime                    float64  `json:"fadeTime"`
	Order                       int      `json:"order"`
	FailIfOrderTaken            bool     `json:"failIfOrderTaken"`
	Smoothing                   float64  `json:"smoothing"`
	Censored                    bool     `json:"censored"`
	Flipped                     bool     `json:"flipped"`
	Locked                      bool     `json:"locked"`
	UnloadWhenPluginDisconnects bool     `json:"unloadWhenPluginDisconnects"`
}

// ItemLoadData confirms a loaded item's instance ID.
type ItemLoadData struct {
	InstanceID string `json:"instanceID"`
}

// UnloadedItem identifies one item removed from the scene.
type UnloadedItem struct {
	InstanceID string `json:"instanceID"`
	FileName   string `json:"fileName"`
}

// ItemUnloadData lists the items an unload request removed.
type ItemUnloadData struct {
	UnloadedItems []UnloadedItem `json:"unloadedItems"`
}

// ItemMoveTarget moves one item. FadeMode is one of the host's fade curve
// names (e.g. "linear", "easeIn", "easeOut", "easeBoth", "zip").
type ItemMoveTarget struct {
	ItemInstanceID string   `json:"itemInstanceID"`
	TimeInSeconds  float64  `json:"timeInSeconds"`
	FadeMode       string   `json:"fadeMode"`
	PositionX      *float64 `json:"positionX,omitempty"`
	PositionY      *float64 `json:"positionY,omitempty"`
	Size           *float64 `json:"size,omitempty"`
	Rotation       *float64 `json:"rotation,omitempty"`
	Order          int      `json:"order"`
	SetFlip        bool     `json:"setFlip"`
	Flip           bool     `json:"flip"`
	UserCanStop    bool     `json:"userCanStop"`
}

// MovedItem is the per-item outcome of a move request.
type MovedItem struct {
	ItemInstanceID string `json:"itemInstanceID"`
	Success        bool   `json:"success"`
	ErrorID        int    `json:"errorID"`
}

// ItemMoveData lists the per-item outcomes of a move request.
type ItemMoveData struct {
	MovedItems []MovedItem `json:"movedItems"`
}

// ItemAnimationControl adjusts a loaded item's animation. Numeric fields set
// to -1 are left unchanged; NewItemAnimationControl returns params with all
// of them at -1.
type ItemAnimationControl struct {
	ItemInstanceID        string  `json:"itemInstanceID"`
	Framerate             float64 `json:"framerate"`
	Frame                 int     `json:"frame"`
	Brightness            float64 `json:"brightness"`
	Opacity               float64 `json:"opacity"`
	SetAutoStopFrames     bool    `json:"setAutoStopFrames"`
	AutoStopFrames        []int   `json:"autoStopFrames"`
	SetAnimationPlayState bool    `json:"setAnimationPlayState"`
	AnimationPlayState    bool    `json:"animationPlayState"`
}

// NewItemAnimationControl returns animation params for the given item that
// leave everything unchanged until fields are set.
func NewItemAnimationControl(itemInstanceID string) ItemAnimationControl {
	return ItemAnimationControl{
		ItemInstanceID: itemInstanceID,
		Framerate:      -1,
		Frame:          -1,
		Brightness:     -1,
		Opacity:        -1,
		AutoStopFrames: []int{},
	}
}

// ItemAnimationControlData reports the item's animation state after a
// control request.
type ItemAnimationControlData struct {
	Frame            int  `json:"frame"`
	AnimationPlaying bool `json:"animationPlaying"`
}

// Items lists items according to the filter.
func (c *Client) Items(ctx context.Context, filter ItemListFilter, opts ...CallOption) (*ItemListData, error) {
	o := applyCallOptions(opts)
	var data ItemListData
	if err := c.call(ctx, protocol.TypeItemListRequest, o.requestID, filter, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// LoadItem loads an item into the scene.
func (c *Client) LoadItem(ctx context.Context, params ItemLoadParams, opts ...CallOption) (*ItemLoadData, error) {
	o := applyCallOptions(opts)
	var data ItemLoadData
	if err := c.call(ctx, protocol.TypeItemLoadRequest, o.requestID, params, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// itemUnloadPayload is the wire shape shared by the unload variants.
type itemUnloadPayload struct {
	UnloadAllInScene                              bool     `json:"unloadAllInScene"`
	UnloadAllLoadedByThisPlugin                   bool     `json:"unloadAllLoadedByThisPlugin"`
	AllowUnloadingItemsLoadedByUserOrOtherPlugins bool     `json:"allowUnloadingItemsLoadedByUserOrOtherPlugins,omitempty"`
	InstanceIDs                                   []string `json:"instanceIDs,omitempty"`
	FileNames                                     []string `json:"fileNames,omitempty"`
}

// UnloadAllItems removes every item from the scene, regardless of which
// plugin loaded it.
func (c *Client) UnloadAllItems(ctx context.Context, opts ...CallOption) (*ItemUnloadData, error) {
	o := applyCallOptions(opts)
	var data ItemUnloadData
	err := c.call(ctx, protocol.TypeItemUnloadRequest, o.requestID,
		itemUnloadPayload{UnloadAllInScene: true}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// UnloadPluginItems removes every item this plugin loaded, leaving the rest
// of the scene alone.
func (c *Client) UnloadPluginItems(ctx context.Context, opts ...CallOption) (*ItemUnloadData, error) {
	o := applyCallOptions(opts)
	var data ItemUnloadData
	err := c.call(ctx, protocol.TypeItemUnloadRequest, o.requestID,
		itemUnloadPayload{UnloadAllLoadedByThisPlugin: true}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// UnloadItems removes the items matching the given instance IDs or file
// names. With allowOtherPluginItems set, items loaded by the user or by
// other plugins may be removed as well.
func (c *Client) UnloadItems(ctx context.Context, allowOtherPluginItems bool, instanceIDs, fileNames []string, opts ...CallOption) (*ItemUnloadData, error) {
	o := applyCallOptions(opts)
	var data ItemUnloadData
	err := c.call(ctx, protocol.TypeItemUnloadRequest, o.requestID, itemUnloadPayload{
		AllowUnloadingItemsLoadedByUserOrOtherPlugins: allowOtherPluginItems,
		InstanceIDs: instanceIDs,
		FileNames:   fileNames,
	}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// MoveItems moves one or more items in the scene. Per-item failures are
// reported in the response, not as an error.
func (c *Client) MoveItems(ctx context.Context, targets []ItemMoveTarget, opts ...CallOption) (*ItemMoveData, error) {
	o := applyCallOptions(opts)
	var data ItemMoveData
	err := c.call(ctx, protocol.TypeItemMoveRequest, o.requestID, struct {
		ItemsToMove []ItemMoveTarget `json:"itemsToMove"`
	}{ItemsToMove: targets}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// ControlItemAnimation adjusts the animation of a loaded animated item.
// Brightness and opacity also work for still items.
func (c *Client) ControlItemAnimation(ctx context.Context, params ItemAnimationControl, opts ...CallOption) (*ItemAnimationControlData, error) {
	o := applyCallOptions(opts)
	var data ItemAnimationControlData
	if err := c.call(ctx, protocol.TypeItemAnimationControlReq, o.requestID, params, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
