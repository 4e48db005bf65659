// Package vtsgo is a client for the VTube Studio public API.
//
// A Client owns one websocket connection to a local VTube Studio instance.
// Construction dials the host and acquires an authentication token, reusing a
// previously granted token from disk when one exists for the plugin identity:
//
//	client, err := vtsgo.Connect(ctx, "MyPlugin", "MyName")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	if _, err := client.Authenticate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	stats, err := client.Statistics(ctx)
//
// All request methods are synchronous: one request, one response, in order.
// Failed requests return *APIError carrying the host's error code and
// message; the connection stays usable afterward. Transport failures and
// malformed frames close the client.
//
// Event subscriptions run alongside requests on the same connection. A
// single reader goroutine routes every inbound frame either to the in-flight
// request or to the subscribed event's handler, so calls and subscriptions
// can be used concurrently:
//
//	_, err = client.Subscribe(ctx, vtsgo.EventTest, func(ev vtsgo.Event) {
//	    fmt.Println(ev.Name, string(ev.Data))
//	}, nil)
package vtsgo
