package handlers

import (
	"context"
	"net/http"
	"time"

	"lightbulb/internal/led"
	"lightbulb/internal/models"
	"lightbulb/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockStrip struct {
	state  led.StripState
	pixel  led.Color
	scenes []string

	pixelErr      error
	sceneErr      error
	clearErr      error
	brightnessErr error

	lastPixelIndex int
	lastPixelColor led.Color
	lastAllColor   led.Color
	lastScene      string
	lastBrightness int
	clearCalls     int
}

func (m *mockStrip) SetPixel(ctx context.Context, index int, c led.Color) error {
	m.lastPixelIndex = index
	m.lastPixelColor = c
	return m.pixelErr
}
func (m *mockStrip) SetAll(ctx context.Context, c led.Color) error {
	m.lastAllColor = c
	return m.pixelErr
}
func (m *mockStrip) GetPixel(ctx context.Context, index int) (led.Color, error) {
	m.lastPixelIndex = index
	return m.pixel, m.pixelErr
}
func (m *mockStrip) ApplyScene(ctx context.Context, name string) error {
	m.lastScene = name
	return m.sceneErr
}
func (m *mockStrip) Clear(ctx context.Context) error {
	m.clearCalls++
	return m.clearErr
}
func (m *mockStrip) SetBrightness(ctx context.Context, level int) error {
	m.lastBrightness = level
	return m.brightnessErr
}
func (m *mockStrip) GetState(ctx context.Context) led.StripState { return m.state }
func (m *mockStrip) Scenes(ctx context.Context) []string         { return m.scenes }

type mockEventLog struct {
	resp     []models.StripEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.StripEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

type mockWakeWord struct {
	status service.WakeWordStatus
}

func (m *mockWakeWord) Status(ctx context.Context) service.WakeWordStatus { return m.status }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
