package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lightbulb/internal/led"
	"lightbulb/internal/service"
)

func doJSON(r http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestStripHandlers_StateAndScenes(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	strip := &mockStrip{
		state:  led.StripState{LEDCount: 8, Brightness: 200, ActiveScene: "dreamy", Animating: true},
		scenes: []string{"off", "rainbow", "dreamy"},
	}
	s := &service.Service{Authorization: auth, Strip: strip}
	r := newTestRouter(s)

	// GET state requires auth → 401 without header
	w := doJSON(r, http.MethodGet, "/api/v1/strip/state", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	// With auth → 200 and state body
	w = doJSON(r, http.MethodGet, "/api/v1/strip/state", "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("state status=%d, body=%s", w.Code, w.Body.String())
	}
	var stResp struct {
		State led.StripState `json:"state"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stResp); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if stResp.State.LEDCount != 8 || stResp.State.ActiveScene != "dreamy" || !stResp.State.Animating {
		t.Fatalf("unexpected state: %+v", stResp.State)
	}

	// GET scenes → 200 with count
	w = doJSON(r, http.MethodGet, "/api/v1/strip/scenes", "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("scenes status=%d, body=%s", w.Code, w.Body.String())
	}
	var scResp struct {
		Count  int      `json:"count"`
		Scenes []string `json:"scenes"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &scResp)
	if scResp.Count != 3 || len(scResp.Scenes) != 3 {
		t.Fatalf("unexpected scenes response: %+v", scResp)
	}
}

func TestStripHandlers_ApplySceneAndClear(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	strip := &mockStrip{state: led.StripState{LEDCount: 8}}
	s := &service.Service{Authorization: auth, Strip: strip}
	r := newTestRouter(s)

	// POST scene → 200, passes name through
	w := doJSON(r, http.MethodPost, "/api/v1/strip/scene", `{"name":"rainbow"}`, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("scene status=%d, body=%s", w.Code, w.Body.String())
	}
	if strip.lastScene != "rainbow" {
		t.Fatalf("expected ApplyScene(rainbow), got %q", strip.lastScene)
	}
	var resp struct {
		Status string         `json:"status"`
		Scene  string         `json:"scene"`
		State  led.StripState `json:"state"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusApplied || resp.Scene != "rainbow" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.State.LEDCount != 8 {
		t.Fatalf("state missing in response: %+v", resp.State)
	}

	// Missing name → 400
	w = doJSON(r, http.MethodPost, "/api/v1/strip/scene", `{}`, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", w.Code)
	}

	// Unknown scene → 404
	strip.sceneErr = led.ErrSceneNotFound
	w = doJSON(r, http.MethodPost, "/api/v1/strip/scene", `{"name":"nope"}`, "valid")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown scene, got %d", w.Code)
	}
	strip.sceneErr = nil

	// POST clear → 200
	w = doJSON(r, http.MethodPost, "/api/v1/strip/clear", "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("clear status=%d, body=%s", w.Code, w.Body.String())
	}
	if strip.clearCalls != 1 {
		t.Fatalf("expected Clear once, got %d", strip.clearCalls)
	}
}

func TestStripHandlers_Pixels(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	strip := &mockStrip{pixel: led.Color{R: 255, G: 136}}
	s := &service.Service{Authorization: auth, Strip: strip}
	r := newTestRouter(s)

	// PUT pixel → 200 with parsed color
	w := doJSON(r, http.MethodPut, "/api/v1/strip/pixel/3", `{"color":"#ff8800"}`, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("set pixel status=%d, body=%s", w.Code, w.Body.String())
	}
	if strip.lastPixelIndex != 3 || strip.lastPixelColor.Hex() != "#FF8800" {
		t.Fatalf("unexpected controller call: index=%d color=%s", strip.lastPixelIndex, strip.lastPixelColor.Hex())
	}

	// non-numeric index → 400
	w = doJSON(r, http.MethodPut, "/api/v1/strip/pixel/abc", `{"color":"ff8800"}`, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad index, got %d", w.Code)
	}

	// bad color → 400
	w = doJSON(r, http.MethodPut, "/api/v1/strip/pixel/3", `{"color":"xyz"}`, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad color, got %d", w.Code)
	}

	// out-of-range index from controller → 400
	strip.pixelErr = led.ErrIndexOutOfRange
	w = doJSON(r, http.MethodPut, "/api/v1/strip/pixel/99", `{"color":"ff8800"}`, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for OOR index, got %d", w.Code)
	}
	strip.pixelErr = nil

	// GET pixel → 200 with hex
	w = doJSON(r, http.MethodGet, "/api/v1/strip/pixel/3", "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("get pixel status=%d, body=%s", w.Code, w.Body.String())
	}
	var pxResp struct {
		Index int    `json:"index"`
		Hex   string `json:"hex"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &pxResp)
	if pxResp.Index != 3 || pxResp.Hex != "#FF8800" {
		t.Fatalf("unexpected pixel response: %+v", pxResp)
	}

	// PUT all → 200
	w = doJSON(r, http.MethodPut, "/api/v1/strip/all", `{"color":"00ff00"}`, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("set all status=%d, body=%s", w.Code, w.Body.String())
	}
	if strip.lastAllColor.Hex() != "#00FF00" {
		t.Fatalf("unexpected all color: %s", strip.lastAllColor.Hex())
	}
}

func TestStripHandlers_Brightness(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	strip := &mockStrip{}
	s := &service.Service{Authorization: auth, Strip: strip}
	r := newTestRouter(s)

	// PUT brightness → 200, explicit zero allowed
	w := doJSON(r, http.MethodPut, "/api/v1/strip/brightness", `{"level":0}`, "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("brightness status=%d, body=%s", w.Code, w.Body.String())
	}
	if strip.lastBrightness != 0 {
		t.Fatalf("expected level 0, got %d", strip.lastBrightness)
	}

	// missing level → 400
	w = doJSON(r, http.MethodPut, "/api/v1/strip/brightness", `{}`, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing level, got %d", w.Code)
	}

	// out of range from controller → 400
	strip.brightnessErr = led.ErrBrightnessOutOfRange
	w = doJSON(r, http.MethodPut, "/api/v1/strip/brightness", `{"level":300}`, "valid")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for OOR level, got %d", w.Code)
	}
}

func TestWakeWordStatusHandler(t *testing.T) {
	auth := &mockAuth{parseID: 7}
	ww := &mockWakeWord{status: service.WakeWordStatus{
		Running:         true,
		ModelPath:       "models/hey_lightbulb.onnx",
		Threshold:       0.5,
		CooldownSeconds: 3,
	}}
	s := &service.Service{Authorization: auth, WakeWord: ww}
	r := newTestRouter(s)

	w := doJSON(r, http.MethodGet, "/api/v1/wakeword/status", "", "valid")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Status service.WakeWordStatus `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Status.Running || resp.Status.Threshold != 0.5 {
		t.Fatalf("unexpected status: %+v", resp.Status)
	}
}
