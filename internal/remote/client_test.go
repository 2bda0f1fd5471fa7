package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := ParseBaseURL("192.168.1.20")
	if err != nil {
		t.Fatalf("ParseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != "192.168.1.20:"+DefaultPort {
		t.Fatalf("host = %q, want default port appended", u.Host)
	}

	u, err = ParseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("ParseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
	if u.Host != "example.com:1234" {
		t.Fatalf("host = %q, want explicit port kept", u.Host)
	}
}

func TestParseBaseURL_Invalid(t *testing.T) {
	cases := []string{"", "   ", "ftp://host", "http://"}
	for _, raw := range cases {
		_, err := ParseBaseURL(raw)
		if err == nil {
			t.Fatalf("ParseBaseURL(%q) returned nil error", raw)
		}
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("ParseBaseURL(%q) error = %v, want ErrInvalidConfiguration", raw, err)
		}
	}
}

func TestClient_FetchesEndpointsAndSendsHeaders(t *testing.T) {
	t.Parallel()

	var (
		mu          sync.Mutex
		contentType []string
		requestIDs  = map[string]bool{}
		gotVolume   VolumeBody
		gotBright   BrightnessBody
		gotAction   ActionRequest
		userAgent   string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		contentType = append(contentType, r.Header.Get("Content-Type"))
		requestIDs[r.Header.Get("X-Request-ID")] = true
		userAgent = r.Header.Get("User-Agent")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		switch r.Method + " " + r.URL.Path {
		case "GET /status":
			_ = json.NewEncoder(w).Encode(StatusResponse{OK: true, Message: "running"})
		case "GET /info":
			_ = json.NewEncoder(w).Encode(SystemInfo{
				Battery: BatteryInfo{HasBattery: true, Percent: 81, Charging: true},
				CPU:     CPUInfo{AvgLoad: 12.5, CurrentLoad: 30},
				Mem:     MemInfo{Total: 16 << 30, Used: 8 << 30, Free: 8 << 30},
			})
		case "GET /volume":
			_ = json.NewEncoder(w).Encode(VolumeBody{Volume: 40})
		case "POST /volume":
			_ = json.NewDecoder(r.Body).Decode(&gotVolume)
			_ = json.NewEncoder(w).Encode(SuccessResponse{Success: true})
		case "GET /brightness":
			_ = json.NewEncoder(w).Encode(BrightnessBody{Brightness: 0.25})
		case "POST /brightness":
			_ = json.NewDecoder(r.Body).Decode(&gotBright)
			_ = json.NewEncoder(w).Encode(SuccessResponse{Success: true})
		case "POST /action":
			_ = json.NewDecoder(r.Body).Decode(&gotAction)
			_ = json.NewEncoder(w).Encode(ActionResult{Success: true})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	status, err := c.FetchStatus(ctx)
	if err != nil {
		t.Fatalf("FetchStatus returned error: %v", err)
	}
	if !status.OK || status.Message != "running" {
		t.Fatalf("FetchStatus payload = %#v, want ok", status)
	}

	info, err := c.FetchInfo(ctx)
	if err != nil {
		t.Fatalf("FetchInfo returned error: %v", err)
	}
	if !info.Battery.HasBattery || info.Battery.Percent != 81 || info.CPU.CurrentLoad != 30 || info.Mem.Used != 8<<30 {
		t.Fatalf("FetchInfo payload = %#v, want decoded telemetry", info)
	}

	vol, err := c.FetchVolume(ctx)
	if err != nil || vol != 40 {
		t.Fatalf("FetchVolume = %d, %v; want 40, nil", vol, err)
	}
	if err := c.SetVolume(ctx, 65); err != nil {
		t.Fatalf("SetVolume returned error: %v", err)
	}
	bright, err := c.FetchBrightness(ctx)
	if err != nil || bright != 0.25 {
		t.Fatalf("FetchBrightness = %v, %v; want 0.25, nil", bright, err)
	}
	if err := c.SetBrightness(ctx, 0.7); err != nil {
		t.Fatalf("SetBrightness returned error: %v", err)
	}
	result, err := c.PerformAction(ctx, ActionSleep)
	if err != nil || !result.Success {
		t.Fatalf("PerformAction = %#v, %v; want success", result, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotVolume.Volume != 65 {
		t.Fatalf("POST /volume body = %#v, want 65", gotVolume)
	}
	if gotBright.Brightness != 0.7 {
		t.Fatalf("POST /brightness body = %#v, want 0.7", gotBright)
	}
	if gotAction.Type != ActionSleep {
		t.Fatalf("POST /action body = %#v, want sleep", gotAction)
	}
	for i, ct := range contentType {
		if ct != "application/json" {
			t.Fatalf("request %d Content-Type = %q, want application/json", i, ct)
		}
	}
	if len(requestIDs) != len(contentType) {
		t.Fatalf("got %d distinct request IDs for %d requests", len(requestIDs), len(contentType))
	}
	if !strings.HasPrefix(userAgent, "deskremote/") {
		t.Fatalf("User-Agent = %q, want deskremote/*", userAgent)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/status":
			_, _ = w.Write([]byte("{not-json"))
		case "/info":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"sensor read failed"}`))
		case "/action":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Invalid action"}`))
		case "/volume":
			_ = json.NewEncoder(w).Encode(SuccessResponse{Success: false})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	_, err = c.FetchStatus(ctx)
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchStatus error = %v, want decode response error", err)
	}
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("FetchStatus error = %v, want ErrMalformedResponse", err)
	}

	_, err = c.FetchInfo(ctx)
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchInfo error = %v, want status 500 error", err)
	}
	if !errors.Is(err, ErrHTTP) || StatusCode(err) != 500 {
		t.Fatalf("FetchInfo error = %v, want ErrHTTP with status 500", err)
	}
	if Message(err) != "sensor read failed" {
		t.Fatalf("Message = %q, want server text", Message(err))
	}

	_, err = c.PerformAction(ctx, ActionKind("hibernate"))
	if StatusCode(err) != http.StatusBadRequest || Message(err) != "Invalid action" {
		t.Fatalf("PerformAction error = %v, want 400 Invalid action", err)
	}

	err = c.SetVolume(ctx, 10)
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("SetVolume error = %v, want ErrRejected", err)
	}
}

func TestClient_NetworkErrorAndTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	c, err := NewClient(server.URL, WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchInfo(context.Background())
	if !errors.Is(err, ErrNetworkUnreachable) {
		t.Fatalf("FetchInfo error = %v, want ErrNetworkUnreachable", err)
	}
	if Message(err) != "request timed out" {
		t.Fatalf("Message = %q, want timeout text", Message(err))
	}

	closed := httptest.NewServer(http.NotFoundHandler())
	addr := closed.URL
	closed.Close()
	c, err = NewClient(addr)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchStatus(context.Background()); !errors.Is(err, ErrNetworkUnreachable) {
		t.Fatalf("FetchStatus error = %v, want ErrNetworkUnreachable", err)
	}
}

func TestClient_NilClientIsInvalidConfiguration(t *testing.T) {
	var c *Client
	_, err := c.FetchStatus(context.Background())
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("FetchStatus on nil client error = %v, want ErrInvalidConfiguration", err)
	}
}
