package vtsgo

import (
	"context"

	"github.com/zliel/vtsgo/internal/protocol"
)

// PhysicsGroup is one physics group in the current model.
type PhysicsGroup struct {
	GroupID            string  `json:"groupID"`
	GroupName          string  `json:"groupName"`
	StrengthMultiplier float64 `json:"strengthMultiplier"`
	WindMultiplier     float64 `json:"windMultiplier"`
}

// PhysicsData describes the physics state of the current model.
type PhysicsData struct {
	ModelLoaded                  bool           `json:"modelLoaded"`
	ModelName                    string         `json:"modelName"`
	ModelID                      string         `json:"modelID"`
	ModelHasPhysics              bool           `json:"modelHasPhysics"`
	PhysicsSwitchedOn            bool           `json:"physicsSwitchedOn"`
	UsingLegacyPhysics           bool           `json:"usingLegacyPhysics"`
	PhysicsFPSSetting            int            `json:"physicsFPSSetting"`
	BaseStrength                 int            `json:"baseStrength"`
	BaseWind                     int            `json:"baseWind"`
	APIPhysicsOverrideActive     bool           `json:"apiPhysicsOverrideActive"`
	APIPhysicsOverridePluginName string         `json:"apiPhysicsOverridePluginName"`
	PhysicsGroups                []PhysicsGroup `json:"physicsGroups"`
}

// PhysicsOverride overrides physics strength or wind for a while. An empty
// ID targets the base value; SetBaseValue makes the override the new base.
type PhysicsOverride struct {
	ID              string  `json:"id,omitempty"`
	Value           float64 `json:"value"`
	SetBaseValue    bool    `json:"setBaseValue"`
	OverrideSeconds float64 `json:"overrideSeconds"`
}

// Physics returns the physics settings of the currently loaded model.
func (c *Client) Physics(ctx context.Context, opts ...CallOption) (*PhysicsData, error) {
	o := applyCallOptions(opts)
	var data PhysicsData
	if err := c.call(ctx, protocol.TypeGetModelPhysicsRequest, o.requestID, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// SetPhysics overrides the physics configuration of the current model. Only
// one plugin may override physics at a time; the host rejects overlapping
// overrides from different plugins.
func (c *Client) SetPhysics(ctx context.Context, strengthOverrides, windOverrides []PhysicsOverride, opts ...CallOption) error {
	o := applyCallOptions(opts)
	return c.call(ctx, protocol.TypeSetModelPhysicsRequest, o.requestID, struct {
		StrengthOverrides []PhysicsOverride `json:"strengthOverrides"`
		WindOverrides     []PhysicsOverride `json:"windOverrides"`
	}{StrengthOverrides: strengthOverrides, WindOverrides: windOverrides}, nil)
}
