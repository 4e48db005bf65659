package vtsgo

import (
	"context"

	"github.com/zliel/vtsgo/internal/protocol"
)

// ExpressionParameterRef is a parameter an expression drives.
type ExpressionParameterRef struct {
	Name        string  `json:"name"`
	TargetValue float64 `json:"target"`
}

// ExpressionHotkeyRef is a hotkey an expression is bound to.
type ExpressionHotkeyRef struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Expression is the state of one expression in the current model.
type Expression struct {
	Name                       string                   `json:"name"`
	File                       string                   `json:"file"`
	Active                     bool                     `json:"active"`
	DeactivateWhenKeyIsLetGo   bool                     `json:"deactivateWhenKeyIsLetGo"`
	AutoDeactivateAfterSeconds bool                     `json:"autoDeactivateAfterSeconds"`
	SecondsRemaining           float64                  `json:"secondsRemaining"`
	UsedInHotkeys              []ExpressionHotkeyRef    `json:"usedInHotkeys"`
	Parameters                 []ExpressionParameterRef `json:"parameters"`
}

// ExpressionStateData lists expression states for the current model.
type ExpressionStateData struct {
	ModelLoaded bool         `json:"modelLoaded"`
	ModelName   string       `json:"modelName"`
	ModelID     string       `json:"modelID"`
	Expressions []Expression `json:"expressions"`
}

// ExpressionState returns the state of one expression, or of all expressions
// when expressionFile is empty. With details set, the response includes the
// hotkeys and parameters each expression is used in.
func (c *Client) ExpressionState(ctx context.Context, details bool, expressionFile string, opts ...CallOption) (*ExpressionStateData, error) {
	o := applyCallOptions(opts)
	var data ExpressionStateData
	err := c.call(ctx, protocol.TypeExpressionStateRequest, o.requestID, struct {
		Details        bool   `json:"details"`
		ExpressionFile string `json:"expressionFile"`
	}{Details: details, ExpressionFile: expressionFile}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// SetExpression activates or deactivates an expression. Setting an
// expression to its current state is a no-op on the host side.
func (c *Client) SetExpression(ctx context.Context, expressionFile string, active bool, opts ...CallOption) error {
	o := applyCallOptions(opts)
	return c.call(ctx, protocol.TypeExpressionActivationReq, o.requestID, struct {
		ExpressionFile string `json:"expressionFile"`
		Active         bool   `json:"active"`
	}{ExpressionFile: expressionFile, Active: active}, nil)
}
