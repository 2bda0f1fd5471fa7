// Package remote provides an HTTP client for the desktop control server API.
//
// # Overview
//
// The control server exposes a handful of JSON endpoints for reading system
// telemetry and adjusting the desktop. This package turns them into typed
// calls and normalizes every failure into a single *Error value.
//
// # Architecture
//
//   - client.go: Client, the API interface, base URL parsing
//   - types.go: request/response payloads and ActionKind
//   - errors.go: Error, ErrorKind and the sentinel values used with errors.Is
//   - mock_api.go: generated gomock implementation of API
//
// # Client Usage
//
//	client, err := remote.NewClient("192.168.1.20") // -> http://192.168.1.20:5001
//	if err != nil {
//		return err
//	}
//	info, err := client.FetchInfo(ctx)
//
// # API Endpoints
//
//   - GET /status: liveness probe ({ok, message})
//   - GET /info: battery, CPU and memory telemetry
//   - GET/POST /volume: output volume 0-100
//   - GET/POST /brightness: display brightness 0.0-1.0
//   - POST /action: sleep, restart or shutdown
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Content-Type and Accept to application/json
//   - Include User-Agent: deskremote/0.1 and a fresh X-Request-ID
//   - Have a 5-second timeout unless WithTimeout says otherwise
//
// # Error Handling
//
// Every failure is an *Error with one of these kinds:
//
//   - KindNetwork: connection refused, DNS failure, timeout (ErrNetworkUnreachable)
//   - KindHTTP: non-2xx status; Message carries the server's "message" or
//     "error" field when present (ErrHTTP)
//   - KindMalformed: body did not decode (ErrMalformedResponse)
//   - KindConfig: base URL missing or unusable (ErrInvalidConfiguration)
//   - KindRejected: the server answered {success: false} (ErrRejected)
//
// Message(err) returns the text meant for the operator and StatusCode(err)
// the HTTP status, if any.
//
// # Thread Safety
//
// Client is safe for concurrent use. It holds no mutable state besides the
// underlying http.Client.
package remote
