package vtsgo

import (
	"context"

	"github.com/zliel/vtsgo/internal/protocol"
)

// authenticationPayload is the wire shape shared by the token grant and the
// session authentication requests.
type authenticationPayload struct {
	PluginName          string `json:"pluginName"`
	PluginDeveloper     string `json:"pluginDeveloper"`
	PluginLogo          string `json:"pluginLogo"`
	AuthenticationToken string `json:"authenticationToken,omitempty"`
}

// AuthenticationTokenData is the token grant response payload.
type AuthenticationTokenData struct {
	AuthenticationToken string `json:"authenticationToken"`
}

// AuthenticationData reports whether the session was authenticated.
type AuthenticationData struct {
	Authenticated bool   `json:"authenticated"`
	Reason        string `json:"reason"`
}

// APIStateData describes the host API state.
type APIStateData struct {
	Active                      bool   `json:"active"`
	VTubeStudioVersion          string `json:"vTubeStudioVersion"`
	CurrentSessionAuthenticated bool   `json:"currentSessionAuthenticated"`
}

// Authenticate authenticates this session with the token acquired at
// construction. Most other requests fail with an APIError until the session
// is authenticated.
func (c *Client) Authenticate(ctx context.Context, opts ...CallOption) (*AuthenticationData, error) {
	o := applyCallOptions(opts)
	var data AuthenticationData
	err := c.call(ctx, protocol.TypeAuthenticationRequest, o.requestID, authenticationPayload{
		PluginName:          c.pluginName,
		PluginDeveloper:     c.pluginDeveloper,
		PluginLogo:          c.pluginLogo,
		AuthenticationToken: c.Token(),
	}, &data)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// APIState returns whether the API is active and whether this session is
// authenticated. It works before Authenticate.
func (c *Client) APIState(ctx context.Context, opts ...CallOption) (*APIStateData, error) {
	o := applyCallOptions(opts)
	var data APIStateData
	if err := c.call(ctx, protocol.TypeAPIStateRequest, o.requestID, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
