package vtsgo

import (
	"context"

	"github.com/zliel/vtsgo/internal/protocol"
)

// ArtMeshListData lists the art mesh names and tags of the current model.
type ArtMeshListData struct {
	ModelLoaded          bool     `json:"modelLoaded"`
	NumberOfArtMeshNames int      `json:"numberOfArtMeshNames"`
	NumberOfArtMeshTags  int      `json:"numberOfArtMeshTags"`
	ArtMeshNames         []string `json:"artMeshNames"`
	ArtMeshTags          []string `json:"artMeshTags"`
}

// ColorTint is the color applied to matched art meshes. Channel values run 0
// to 255. Rainbow overrides the channel values with an animated rainbow.
type ColorTint struct {
	ColorR                    uint8    `json:"colorR"`
	ColorG                    uint8    `json:"colorG"`
	ColorB                    uint8    `json:"colorB"`
	ColorA                    uint8    `json:"colorA"`
	MixWithSceneLightingColor *float64 `json:"mixWithSceneLightingColor,omitempty"`
	Rainbow                   bool     `json:"jeb_"`
}

// DefaultColorTint is full white with full alpha; tinting with it resets any
// previous tint.
func DefaultColorTint() ColorTint {
	return ColorTint{ColorR: 255, ColorG: 255, ColorB: 255, ColorA: 255}
}

// ArtMeshMatcher selects which art meshes a tint applies to. With TintAll
// set the other fields are ignored.
type ArtMeshMatcher struct {
	TintAll       bool     `json:"tintAll"`
	ArtMeshNumber []int    `json:"artMeshNumber,omitempty"`
	NameExact     []string `json:"nameExact,omitempty"`
	NameContains  []string `json:"nameContains,omitempty"`
	TagExact      []string `json:"tagExact,omitempty"`
	TagContains   []string `json:"tagContains,omitempty"`
}

// ColorTintData reports how many art meshes a tint matched.
type ColorTintData struct {
	MatchedArtMeshes int `json:"matchedArtMeshes"`
}

// ArtMeshSelectionPrompt configures the mesh-selection dialog shown to the
// user. Empty text fields fall back to the host's defaults.
type ArtMeshSelectionPrompt struct {
	TextOverride          string   `json:"textOverride"`
	HelpOverride          string   `json:"helpOverride"`
	RequestedArtMeshCount int      `json:"requestedArtMeshCount"`
	ActiveArtMeshes       []string `json:"activeArtMeshes"`
}

// ArtMeshSelectionData is the outcome of the mesh-selection dialog.
type ArtMeshSelectionData struct {
	Success           bool     `json:"success"`
	ActiveArtMeshes   []string `json:"activeArtMeshes"`
	InactiveArtMeshes []string `json:"inactiveArtMeshes"`
}

// ArtMeshes lists all art meshes in the current model.
func (c *Client) ArtMeshes(ctx context.Context, opts ...CallOption) (*ArtMeshListData, error) {
	o := applyCallOptions(opts)
	var data ArtMeshListData
	if err := c.call(ctx, protocol.TypeArtMeshListRequest, o.requestID, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// TintArtMeshes tints the art meshes selected by matcher. Tinting with
// DefaultColorTint removes a previous tint.
func (c *Client) TintArtMeshes(ctx context.Context, tint ColorTint, matcher ArtMeshMatcher, opts ...CallOption) (*ColorTintData, error) {
	o := applyCallOptions(opts)
	var data ColorTintData
	err := c.call(ctx, protocol.TypeColorTintRequest, o.requestID, struct {
		ColorTint      ColorTint      `json:"colorTint"`
		ArtMeshMatcher ArtMeshMatcher `json:"artMeshMatcher"`
	}{ColorTint: tint, ArtMeshMatcher: matcher}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// SelectArtMeshes opens a dialog asking the user to pick art meshes. The
// call blocks until the user confirms or cancels the dialog, so callers
// should bound it with the context.
func (c *Client) SelectArtMeshes(ctx context.Context, prompt ArtMeshSelectionPrompt, opts ...CallOption) (*ArtMeshSelectionData, error) {
	o := applyCallOptions(opts)
	if prompt.ActiveArtMeshes == nil {
		prompt.ActiveArtMeshes = []string{}
	}
	var data ArtMeshSelectionData
	if err := c.call(ctx, protocol.TypeArtMeshSelectionRequest, o.requestID, prompt, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
