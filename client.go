package vtsgo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zliel/vtsgo/internal/protocol"
	"github.com/zliel/vtsgo/internal/tokenstore"
	"github.com/zliel/vtsgo/internal/transport"
)

// DefaultURL is the endpoint VTube Studio listens on by default.
const DefaultURL = "ws://localhost:8001"

// Transport is a bidirectional message socket carrying one complete text
// frame per Send/Receive. The client issues Receive from a single reader
// goroutine; Send must be safe for concurrent use.
type Transport interface {
	Send(payload []byte) error
	Receive() ([]byte, error)
	Close() error
}

// TokenStore persists the long-lived authentication token per plugin
// identity. Load returns the empty string when no token has been granted yet.
type TokenStore interface {
	Load(pluginName, pluginDeveloper string) (string, error)
	Save(pluginName, pluginDeveloper, token string) error
}

type sessionState int

const (
	stateDisconnected sessionState = iota
	stateConnecting
	stateAuthenticating
	stateReady
	stateClosed
)

func (s sessionState) String() string {
	switch s {
	case stateDisconnected:
		return "disconnected"
	case stateConnecting:
		return "connecting"
	case stateAuthenticating:
		return "authenticating"
	case stateReady:
		return "ready"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Client is a session with one VTube Studio instance.
//
// Client owns:
// - the websocket connection and its single reader goroutine
// - the authentication token acquired at construction
// - per-event subscription state and listener goroutines
//
// Synchronous request methods are serialized internally, so at most one
// request is outstanding on the wire at any time. The reader goroutine
// routes every inbound frame either to the in-flight request's completion
// slot or to the matching event subscription; requests and subscriptions
// never steal each other's frames.
type Client struct {
	pluginName      string
	pluginDeveloper string
	pluginLogo      string
	requestIDPrefix string
	url             string
	log             zerolog.Logger
	onDisconnect    func(error)

	transport Transport
	store     TokenStore
	token     string

	// callMu serializes the synchronous request path.
	callMu sync.Mutex

	mu        sync.Mutex
	state     sessionState
	pending   chan *protocol.Envelope
	abandoned map[string]struct{}
	subs      map[string]*subscription
	closeErr  error

	readerDone chan struct{}
}

// Connect dials VTube Studio and performs the token handshake. When a token
// for this plugin identity is already on disk it is adopted without a host
// round-trip; otherwise a token grant is requested (the user approves the
// plugin in the VTube Studio UI) and persisted before Connect returns.
//
// The returned client still needs Authenticate before most requests succeed.
func Connect(ctx context.Context, pluginName, pluginDeveloper string, opts ...Option) (*Client, error) {
	if pluginName == "" || pluginDeveloper == "" {
		return nil, fmt.Errorf("vtsgo: plugin name and developer are required")
	}

	c := &Client{
		pluginName:      pluginName,
		pluginDeveloper: pluginDeveloper,
		requestIDPrefix: strings.ReplaceAll(pluginName, " ", "") + "Request",
		url:             DefaultURL,
		log:             zerolog.Nop(),
		state:           stateDisconnected,
		abandoned:       make(map[string]struct{}),
		subs:            make(map[string]*subscription),
		readerDone:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.store == nil {
		store, err := openDefaultStore()
		if err != nil {
			// A transport supplied via WithTransport is owned by the
			// client even when construction fails.
			if c.transport != nil {
				_ = c.transport.Close()
			}
			return nil, err
		}
		c.store = store
	}

	c.setState(stateConnecting)
	if c.transport == nil {
		conn, err := transport.Dial(ctx, c.url)
		if err != nil {
			return nil, fmt.Errorf("vtsgo: %w", err)
		}
		c.transport = conn
	}
	go c.readLoop()

	c.setState(stateAuthenticating)
	if err := c.ensureToken(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.setState(stateReady)
	return c, nil
}

func openDefaultStore() (*tokenstore.Store, error) {
	dir, err := tokenstore.DefaultDir()
	if err != nil {
		return nil, err
	}
	return tokenstore.New(dir)
}

// Token returns the authentication token in use by this session.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Close shuts the client down. It is idempotent; any in-flight request fails
// with ErrClosed and every event listener stops.
func (c *Client) Close() error {
	c.shutdown(nil)
	return nil
}

// ensureToken loads the persisted token for this plugin identity, or performs
// the one-time token grant exchange and persists the result.
func (c *Client) ensureToken(ctx context.Context) error {
	token, err := c.store.Load(c.pluginName, c.pluginDeveloper)
	if err != nil {
		return fmt.Errorf("vtsgo: %w", err)
	}
	if token != "" {
		// The token was accepted by this host before; adopt it without
		// another grant round-trip.
		c.log.Debug().Str("plugin", c.pluginName).Msg("reusing persisted token")
		c.setToken(token)
		return nil
	}

	var data AuthenticationTokenData
	err = c.call(ctx, protocol.TypeAuthenticationTokenRequest, "", authenticationPayload{
		PluginName:      c.pluginName,
		PluginDeveloper: c.pluginDeveloper,
		PluginLogo:      c.pluginLogo,
	}, &data)
	if err != nil {
		return err
	}
	if data.AuthenticationToken == "" {
		return fmt.Errorf("vtsgo: token grant returned an empty token")
	}
	if err := c.store.Save(c.pluginName, c.pluginDeveloper, data.AuthenticationToken); err != nil {
		return fmt.Errorf("vtsgo: %w", err)
	}
	c.log.Debug().Str("plugin", c.pluginName).Msg("token granted and persisted")
	c.setToken(data.AuthenticationToken)
	return nil
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) setState(next sessionState) {
	c.mu.Lock()
	if c.state == stateClosed {
		c.mu.Unlock()
		return
	}
	prev := c.state
	c.state = next
	c.mu.Unlock()
	c.log.Debug().Str("from", prev.String()).Str("to", next.String()).Msg("session state")
}

// call performs one request/response exchange and decodes the response data
// payload into out (which may be nil for responses without data).
func (c *Client) call(ctx context.Context, messageType, requestID string, data any, out any) error {
	env, err := c.roundTrip(ctx, messageType, requestID, data)
	if err != nil {
		return err
	}
	return env.DecodeData(out)
}

// roundTrip sends one request and blocks until its response arrives, the
// context is done, or the session dies. An APIError response is surfaced as
// *APIError and leaves the session open; everything else fatal to the
// exchange is fatal to the session.
func (c *Client) roundTrip(ctx context.Context, messageType, requestID string, data any) (*protocol.Envelope, error) {
	c.callMu.Lock()
	defer c.callMu.Unlock()

	if requestID == "" {
		requestID = c.requestIDPrefix + "-" + uuid.NewString()
	}
	payload, err := protocol.EncodeRequest(requestID, messageType, data)
	if err != nil {
		return nil, err
	}

	slot := make(chan *protocol.Envelope, 1)
	c.mu.Lock()
	if c.state == stateClosed {
		err := c.closeReasonLocked()
		c.mu.Unlock()
		return nil, err
	}
	c.pending = slot
	tr := c.transport
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		if c.pending == slot {
			c.pending = nil
		}
		c.mu.Unlock()
	}()

	if err := tr.Send(payload); err != nil {
		c.shutdown(err)
		return nil, fmt.Errorf("vtsgo: %w", err)
	}

	select {
	case env := <-slot:
		if env.IsError() {
			p, perr := env.ErrorPayload()
			if perr != nil {
				c.shutdown(perr)
				return nil, fmt.Errorf("vtsgo: %w", perr)
			}
			return nil, &APIError{ErrorID: p.ErrorID, Message: p.Message, RequestFor: messageType}
		}
		return env, nil
	case <-c.readerDone:
		c.mu.Lock()
		defer c.mu.Unlock()
		return nil, c.closeReasonLocked()
	case <-ctx.Done():
		c.mu.Lock()
		if c.pending == slot {
			// The response never arrived. Remember the request ID so the
			// reader drops the late response instead of handing it to the
			// next call's slot.
			c.pending = nil
			c.abandoned[requestID] = struct{}{}
		}
		c.mu.Unlock()
		c.log.Debug().Str("messageType", messageType).Msg("abandoning in-flight request")
		return nil, ctx.Err()
	}
}

// closeReasonLocked returns an error matching ErrClosed, annotated with the
// underlying cause when the session died from a transport or protocol error.
func (c *Client) closeReasonLocked() error {
	if c.closeErr != nil {
		return fmt.Errorf("%w: %s", ErrClosed, c.closeErr)
	}
	return ErrClosed
}

// readLoop is the single consumer of the transport. It fans every inbound
// frame out by message type: subscribed event frames go to that event's
// delivery channel, everything else resolves the in-flight request.
func (c *Client) readLoop() {
	defer close(c.readerDone)
	for {
		raw, err := c.transport.Receive()
		if err != nil {
			c.shutdown(err)
			return
		}
		env, err := protocol.DecodeFrame(raw)
		if err != nil {
			c.shutdown(err)
			return
		}

		if isEventName(env.MessageType) {
			c.deliverEvent(env)
			continue
		}

		c.mu.Lock()
		if _, stale := c.abandoned[env.RequestID]; stale {
			delete(c.abandoned, env.RequestID)
			c.mu.Unlock()
			c.log.Debug().
				Str("messageType", env.MessageType).
				Str("requestID", env.RequestID).
				Msg("dropping stale response for abandoned request")
			continue
		}
		slot := c.pending
		c.pending = nil
		c.mu.Unlock()
		if slot == nil {
			c.log.Warn().
				Str("messageType", env.MessageType).
				Str("requestID", env.RequestID).
				Msg("dropping response with no request in flight")
			continue
		}
		slot <- env
	}
}

// shutdown tears the session down once. cause is nil for an explicit Close
// and the fatal transport/protocol error otherwise.
func (c *Client) shutdown(cause error) {
	c.mu.Lock()
	if c.state == stateClosed {
		c.mu.Unlock()
		return
	}
	c.state = stateClosed
	c.closeErr = cause
	subs := make([]*subscription, 0, len(c.subs))
	for _, sub := range c.subs {
		subs = append(subs, sub)
	}
	c.subs = make(map[string]*subscription)
	tr := c.transport
	onDisconnect := c.onDisconnect
	c.mu.Unlock()

	if cause != nil {
		c.log.Error().Err(cause).Msg("session closed")
	} else {
		c.log.Debug().Msg("session closed")
	}

	for _, sub := range subs {
		sub.halt()
	}
	if tr != nil {
		_ = tr.Close()
	}
	if cause != nil && onDisconnect != nil {
		onDisconnect(cause)
	}
}
