package vtsgo

import (
	"context"
	"fmt"

	"github.com/zliel/vtsgo/internal/protocol"
)

// InjectionMode controls how injected parameter data combines with other
// sources. Set gives this plugin exclusive control of the parameter; Add
// lets multiple plugins contribute to the same parameter.
type InjectionMode string

const (
	InjectAdd InjectionMode = "add"
	InjectSet InjectionMode = "set"
)

// ParameterInfo describes one tracking parameter.
type ParameterInfo struct {
	Name         string  `json:"name"`
	AddedBy      string  `json:"addedBy"`
	Value        float64 `json:"value"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	DefaultValue float64 `json:"defaultValue"`
}

// InputParameterListData lists the custom and default input parameters.
type InputParameterListData struct {
	ModelLoaded       bool            `json:"modelLoaded"`
	ModelName         string          `json:"modelName"`
	ModelID           string          `json:"modelID"`
	CustomParameters  []ParameterInfo `json:"customParameters"`
	DefaultParameters []ParameterInfo `json:"defaultParameters"`
}

// Live2DParameterListData lists the Live2D parameters of the current model.
type Live2DParameterListData struct {
	ModelLoaded bool            `json:"modelLoaded"`
	ModelName   string          `json:"modelName"`
	ModelID     string          `json:"modelID"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterDefinition declares a custom parameter. Names must be unique,
// alphanumeric, and 4 to 32 characters; values must stay within plus/minus
// one million.
type ParameterDefinition struct {
	ParameterName string  `json:"parameterName"`
	Explanation   string  `json:"explanation"`
	Min           float64 `json:"min"`
	Max           float64 `json:"max"`
	DefaultValue  float64 `json:"defaultValue"`
}

// ParameterCreationData confirms which parameter was created.
type ParameterCreationData struct {
	ParameterName string `json:"parameterName"`
}

// ParameterDeletionData confirms which parameter was deleted.
type ParameterDeletionData struct {
	ParameterName string `json:"parameterName"`
}

// ParameterInjection is one value fed into a parameter. A nil Weight means
// full weight.
type ParameterInjection struct {
	ID     string   `json:"id"`
	Value  float64  `json:"value"`
	Weight *float64 `json:"weight,omitempty"`
}

// InputParameters lists all available input parameters, custom and default.
func (c *Client) InputParameters(ctx context.Context, opts ...CallOption) (*InputParameterListData, error) {
	o := applyCallOptions(opts)
	var data InputParameterListData
	if err := c.call(ctx, protocol.TypeInputParameterListRequest, o.requestID, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ParameterValue returns the current value of one parameter.
func (c *Client) ParameterValue(ctx context.Context, name string, opts ...CallOption) (*ParameterInfo, error) {
	o := applyCallOptions(opts)
	var data ParameterInfo
	err := c.call(ctx, protocol.TypeParameterValueRequest, o.requestID, struct {
		Name string `json:"name"`
	}{Name: name}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// Live2DParameters returns all Live2D parameter values of the current model.
func (c *Client) Live2DParameters(ctx context.Context, opts ...CallOption) (*Live2DParameterListData, error) {
	o := applyCallOptions(opts)
	var data Live2DParameterListData
	if err := c.call(ctx, protocol.TypeLive2DParameterListReq, o.requestID, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// CreateParameter adds a custom parameter to the model. The host allows 100
// custom parameters per plugin and 300 in total.
func (c *Client) CreateParameter(ctx context.Context, def ParameterDefinition, opts ...CallOption) (*ParameterCreationData, error) {
	o := applyCallOptions(opts)
	var data ParameterCreationData
	if err := c.call(ctx, protocol.TypeParameterCreationRequest, o.requestID, def, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// DeleteParameter removes a custom parameter. Default parameters cannot be
// deleted.
func (c *Client) DeleteParameter(ctx context.Context, name string, opts ...CallOption) (*ParameterDeletionData, error) {
	o := applyCallOptions(opts)
	var data ParameterDeletionData
	err := c.call(ctx, protocol.TypeParameterDeletionRequest, o.requestID, struct {
		ParameterName string `json:"parameterName"`
	}{ParameterName: name}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// InjectParameters feeds values into default or custom parameters. The mode
// is validated before anything is sent. With faceFound set, the host
// considers the face tracked, letting the plugin control when the lost
// tracking animation plays.
func (c *Client) InjectParameters(ctx context.Context, mode InjectionMode, faceFound bool, values []ParameterInjection, opts ...CallOption) error {
	if mode != InjectAdd && mode != InjectSet {
		return fmt.Errorf("vtsgo: invalid injection mode %q (must be %q or %q)", mode, InjectAdd, InjectSet)
	}
	o := applyCallOptions(opts)
	return c.call(ctx, protocol.TypeInjectParameterDataRequest, o.requestID, struct {
		Mode            InjectionMode        `json:"mode"`
		FaceFound       bool                 `json:"faceFound"`
		ParameterValues []ParameterInjection `json:"parameterValues"`
	}{Mode: mode, FaceFound: faceFound, ParameterValues: values}, nil)
}
