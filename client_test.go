package vtsgo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zliel/vtsgo/internal/protocol"
	"github.com/zliel/vtsgo/internal/tokenstore"
)

func newTestStore(t *testing.T) *tokenstore.Store {
	t.Helper()
	store, err := tokenstore.New(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestConnectGrantsAndPersistsToken(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	tr := newFakeTransport(grantToken(t, "abc123"))

	client, err := Connect(context.Background(), "Demo", "Dev",
		WithTransport(tr), WithTokenStore(store))
	require.NoError(t, err)
	defer client.Close()

	require.Equal(t, "abc123", client.Token())
	require.Equal(t, 1, tr.countSent(protocol.TypeAuthenticationTokenRequest))

	persisted, err := store.Load("Demo", "Dev")
	require.NoError(t, err)
	require.Equal(t, "abc123", persisted)
}

func TestConnectReusesPersistedToken(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save("Demo", "Dev", "abc123"))

	tr := newFakeTransport(nil)
	client, err := Connect(context.Background(), "Demo", "Dev",
		WithTransport(tr), WithTokenStore(store))
	require.NoError(t, err)
	defer client.Close()

	// The trust-on-read path performs no grant exchange at all.
	require.Equal(t, "abc123", client.Token())
	require.Equal(t, 0, tr.countSent(protocol.TypeAuthenticationTokenRequest))
}

func TestConnectAuthorizationDenied(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	tr := newFakeTransport(func(env *protocol.Envelope) [][]byte {
		return [][]byte{apiErrorFrame(t, env.RequestID, 50, "user declined plugin")}
	})

	_, err := Connect(context.Background(), "Demo", "Dev",
		WithTransport(tr), WithTokenStore(store))
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, int64(50), apiErr.ErrorID)
	require.Equal(t, "user declined plugin", apiErr.Message)

	// No token may be persisted after a denial.
	persisted, err := store.Load("Demo", "Dev")
	require.NoError(t, err)
	require.Empty(t, persisted)
}

func TestStatisticsRoundTrip(t *testing.T) {
	t.Parallel()

	tr := newFakeTransport(func(env *protocol.Envelope) [][]byte {
		switch env.MessageType {
		case protocol.TypeAuthenticationTokenRequest:
			return grantToken(t, "abc123")(env)
		case protocol.TypeStatisticsRequest:
			return [][]byte{frame(t, env.RequestID, "StatisticsResponse", map[string]any{
				"uptime":             1439384,
				"framerate":          60,
				"vTubeStudioVersion": "1.9.0",
				"allowedPlugins":     2,
				"connectedPlugins":   1,
			})}
		default:
			return nil
		}
	})

	client, err := Connect(context.Background(), "Demo", "Dev",
		WithTransport(tr), WithTokenStore(newTestStore(t)))
	require.NoError(t, err)
	defer client.Close()

	stats, err := client.Statistics(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1439384), stats.Uptime)
	require.Equal(t, 60, stats.Framerate)
	require.Equal(t, "1.9.0", stats.VTubeStudioVersion)
	require.Equal(t, 2, stats.AllowedPlugins)
	require.Equal(t, 1, stats.ConnectedPlugins)
}

func TestFIFOCorrelationIgnoresRequestIDs(t *testing.T) {
	t.Parallel()

	// The responder answers every frame strictly in arrival order with a
	// sequence number, regardless of the request identifier.
	var seq atomic.Int64
	tr := newFakeTransport(func(env *protocol.Envelope) [][]byte {
		if env.MessageType == protocol.TypeAuthenticationTokenRequest {
			return grantToken(t, "abc123")(env)
		}
		n := seq.Add(1)
		return [][]byte{frame(t, env.RequestID, "FaceFoundResponse", map[string]any{
			"found": n%2 == 1,
		})}
	})

	client, err := Connect(context.Background(), "Demo", "Dev",
		WithTransport(tr), WithTokenStore(newTestStore(t)))
	require.NoError(t, err)
	defer client.Close()

	// Duplicated and empty request identifiers cannot confuse delivery:
	// matching is by send order, not by id.
	found, err := client.FaceFound(context.Background(), WithRequestID("dup"))
	require.NoError(t, err)
	require.True(t, found)

	found, err = client.FaceFound(context.Background(), WithRequestID("dup"))
	require.NoError(t, err)
	require.False(t, found)

	found, err = client.FaceFound(context.Background())
	require.NoError(t, err)
	require.True(t, found)
}

func TestAPIErrorLeavesSessionOpen(t *testing.T) {
	t.Parallel()

	var failNext atomic.Bool
	failNext.Store(true)
	tr := newFakeTransport(func(env *protocol.Envelope) [][]byte {
		if env.MessageType == protocol.TypeAuthenticationTokenRequest {
			return grantToken(t, "abc123")(env)
		}
		if failNext.Swap(false) {
			return [][]byte{apiErrorFrame(t, env.RequestID, 8, "not authenticated")}
		}
		return [][]byte{frame(t, env.RequestID, "FaceFoundResponse", map[string]bool{"found": true})}
	})

	client, err := Connect(context.Background(), "Demo", "Dev",
		WithTransport(tr), WithTokenStore(newTestStore(t)))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.FaceFound(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, int64(8), apiErr.ErrorID)
	require.Equal(t, "not authenticated", apiErr.Message)
	require.Equal(t, protocol.TypeFaceFoundRequest, apiErr.RequestFor)

	// The error pertains to the failed request only; the session works.
	found, err := client.FaceFound(context.Background())
	require.NoError(t, err)
	require.True(t, found)
}

func TestAuthenticateSendsStoredToken(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save("Demo", "Dev", "abc123"))

	tr := newFakeTransport(func(env *protocol.Envelope) [][]byte {
		if env.MessageType != protocol.TypeAuthenticationRequest {
			return nil
		}
		return [][]byte{frame(t, env.RequestID, "AuthenticationResponse", map[string]any{
			"authenticated": true,
			"reason":        "Token valid",
		})}
	})

	client, err := Connect(context.Background(), "Demo", "Dev",
		WithTransport(tr), WithTokenStore(store))
	require.NoError(t, err)
	defer client.Close()

	auth, err := client.Authenticate(context.Background())
	require.NoError(t, err)
	require.True(t, auth.Authenticated)

	sent := tr.lastSent(t)
	require.Equal(t, protocol.TypeAuthenticationRequest, sent.MessageType)
	var payload struct {
		PluginName          string `json:"pluginName"`
		PluginDeveloper     string `json:"pluginDeveloper"`
		AuthenticationToken string `json:"authenticationToken"`
	}
	require.NoError(t, sent.DecodeData(&payload))
	require.Equal(t, "Demo", payload.PluginName)
	require.Equal(t, "Dev", payload.PluginDeveloper)
	require.Equal(t, "abc123", payload.AuthenticationToken)
}

func TestInjectParametersRejectsInvalidMode(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save("Demo", "Dev", "abc123"))
	tr := newFakeTransport(nil)

	client, err := Connect(context.Background(), "Demo", "Dev",
		WithTransport(tr), WithTokenStore(store))
	require.NoError(t, err)
	defer client.Close()

	err = client.InjectParameters(context.Background(), "merge", false, []ParameterInjection{
		{ID: "FaceAngleX", Value: 12.5},
	})
	require.Error(t, err)
	require.ErrorContains(t, err, "merge")

	// The invalid mode was rejected before anything hit the wire.
	require.Equal(t, 0, tr.countSent(protocol.TypeInjectParameterDataRequest))
}

func TestMalformedFrameClosesSession(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save("Demo", "Dev", "abc123"))

	var disconnects atomic.Int64
	tr := newFakeTransport(func(env *protocol.Envelope) [][]byte {
		return [][]byte{[]byte("definitely not json")}
	})

	client, err := Connect(context.Background(), "Demo", "Dev",
		WithTransport(tr), WithTokenStore(store),
		WithOnDisconnect(func(error) { disconnects.Add(1) }))
	require.NoError(t, err)

	_, err = client.FaceFound(context.Background())
	require.ErrorIs(t, err, ErrClosed)

	// The session is dead; later calls fail immediately.
	_, err = client.Statistics(context.Background())
	require.ErrorIs(t, err, ErrClosed)

	require.Eventually(t, func() bool { return disconnects.Load() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestCloseFailsPendingCall(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save("Demo", "Dev", "abc123"))
	tr := newFakeTransport(nil) // never responds

	client, err := Connect(context.Background(), "Demo", "Dev",
		WithTransport(tr), WithTokenStore(store))
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := client.Statistics(context.Background())
		errCh <- err
	}()

	// Give the call a moment to get in flight, then tear down.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, client.Close())

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("pending call did not fail after Close")
	}

	// Close is idempotent.
	require.NoError(t, client.Close())
}

func TestCallContextCancellation(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save("Demo", "Dev", "abc123"))
	tr := newFakeTransport(nil) // never responds

	client, err := Connect(context.Background(), "Demo", "Dev",
		WithTransport(tr), WithTokenStore(store))
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = client.Statistics(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, errors.Is(err, ErrClosed))
}

func TestCancelledCallResponseNotDeliveredToNextCall(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save("Demo", "Dev", "abc123"))

	// FaceFound is never answered; its response arrives late, while the
	// Statistics call is already in flight.
	tr := newFakeTransport(func(env *protocol.Envelope) [][]byte {
		switch env.MessageType {
		case protocol.TypeStatisticsRequest:
			return [][]byte{
				frame(t, "stale-1", "FaceFoundResponse", map[string]bool{"found": true}),
				frame(t, env.RequestID, "StatisticsResponse", map[string]any{
					"framerate":          60,
					"vTubeStudioVersion": "1.9.0",
				}),
			}
		default:
			return nil
		}
	})

	client, err := Connect(context.Background(), "Demo", "Dev",
		WithTransport(tr), WithTokenStore(store))
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.FaceFound(ctx, WithRequestID("stale-1"))
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The abandoned call's response must be dropped, not decoded as the
	// next call's result.
	stats, err := client.Statistics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 60, stats.Framerate)
	require.Equal(t, "1.9.0", stats.VTubeStudioVersion)
}

func TestConnectClosesTransportOnStoreError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	t.Setenv("VTSGO_HOME_DIR", filepath.Join(blocker, "vtsgo"))

	tr := newFakeTransport(nil)
	_, err := Connect(context.Background(), "Demo", "Dev", WithTransport(tr))
	require.Error(t, err)

	select {
	case <-tr.closed:
	default:
		t.Fatal("supplied transport was not closed")
	}
}

func TestConnectRequiresIdentity(t *testing.T) {
	t.Parallel()

	_, err := Connect(context.Background(), "", "Dev")
	require.Error(t, err)

	_, err = Connect(context.Background(), "Demo", "")
	require.Error(t, err)
}
