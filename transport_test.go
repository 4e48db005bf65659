package vtsgo

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zliel/vtsgo/internal/protocol"
)

// fakeTransport is a scripted in-memory transport. Every frame the client
// sends is recorded and handed to the respond callback, whose returned
// frames are queued for Receive.
type fakeTransport struct {
	mu        sync.Mutex
	sent      []*protocol.Envelope
	inbox     chan []byte
	closed    chan struct{}
	closeOnce sync.Once
	respond   func(env *protocol.Envelope) [][]byte
}

func newFakeTransport(respond func(env *protocol.Envelope) [][]byte) *fakeTransport {
	return &fakeTransport{
		inbox:   make(chan []byte, 64),
		closed:  make(chan struct{}),
		respond: respond,
	}
}

func (f *fakeTransport) Send(payload []byte) error {
	select {
	case <-f.closed:
		return errors.New("transport closed")
	default:
	}
	env, err := protocol.DecodeFrame(payload)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.sent = append(f.sent, env)
	respond := f.respond
	f.mu.Unlock()
	if respond != nil {
		for _, frame := range respond(env) {
			f.push(frame)
		}
	}
	return nil
}

func (f *fakeTransport) Receive() ([]byte, error) {
	select {
	case frame := <-f.inbox:
		return frame, nil
	case <-f.closed:
		return nil, errors.New("transport closed")
	}
}

func (f *fakeTransport) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

// push queues a frame for delivery to the client, e.g. an unsolicited event.
func (f *fakeTransport) push(frame []byte) {
	select {
	case f.inbox <- frame:
	case <-f.closed:
	}
}

func (f *fakeTransport) countSent(messageType string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, env := range f.sent {
		if env.MessageType == messageType {
			n++
		}
	}
	return n
}

func (f *fakeTransport) lastSent(t *testing.T) *protocol.Envelope {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

// frame builds one host frame, echoing the request identifier.
func frame(t *testing.T, requestID, messageType string, data any) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	out, err := json.Marshal(protocol.Envelope{
		APIName:     protocol.APIName,
		APIVersion:  protocol.APIVersion,
		RequestID:   requestID,
		MessageType: messageType,
		Data:        raw,
	})
	require.NoError(t, err)
	return out
}

// apiErrorFrame builds an APIError response frame.
func apiErrorFrame(t *testing.T, requestID string, errorID int64, message string) []byte {
	t.Helper()
	return frame(t, requestID, protocol.TypeAPIError, protocol.ErrorPayload{
		ErrorID: errorID,
		Message: message,
	})
}

// grantToken answers token grant requests with the given token and ignores
// everything else.
func grantToken(t *testing.T, token string) func(env *protocol.Envelope) [][]byte {
	t.Helper()
	return func(env *protocol.Envelope) [][]byte {
		if env.MessageType != protocol.TypeAuthenticationTokenRequest {
			return nil
		}
		return [][]byte{frame(t, env.RequestID, "AuthenticationTokenResponse", map[string]string{
			"authenticationToken": token,
		})}
	}
}
