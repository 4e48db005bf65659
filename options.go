package vtsgo

import "github.com/rs/zerolog"

// Option configures a Client before it connects.
type Option func(*Client)

// WithURL overrides the VTube Studio endpoint (default ws://localhost:8001).
func WithURL(url string) Option {
	return func(c *Client) { c.url = url }
}

// WithLogo sets the base64-encoded plugin logo shown in VTube Studio's
// plugin list during the token grant.
func WithLogo(base64Logo string) Option {
	return func(c *Client) { c.pluginLogo = base64Logo }
}

// WithLogger sets the logger used by the client. The default logger
// discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithTokenStore replaces the default on-disk token store.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) { c.store = store }
}

// WithTransport supplies an already-established transport instead of dialing.
// The client takes ownership and closes it on shutdown.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithOnDisconnect registers a callback invoked once when the session dies
// from a transport or protocol error. It is not invoked on explicit Close.
func WithOnDisconnect(fn func(error)) Option {
	return func(c *Client) { c.onDisconnect = fn }
}

// callOptions carries per-call overrides.
type callOptions struct {
	requestID string
}

// CallOption adjusts a single request.
type CallOption func(*callOptions)

// WithRequestID overrides the generated request identifier for one call. The
// identifier is echoed by the host and useful in its logs; response
// correlation does not depend on it.
func WithRequestID(id string) CallOption {
	return func(o *callOptions) { o.requestID = id }
}

func applyCallOptions(opts []CallOption) callOptions {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
