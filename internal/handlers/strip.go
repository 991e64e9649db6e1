package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lightbulb/internal/led"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusApplied = "applied"
	statusCleared = "cleared"
	statusSet     = "set"

	errApplyScene   = "failed to apply scene"
	errClearStrip   = "failed to clear strip"
	errSetPixel     = "failed to set pixel"
	errSetAll       = "failed to set strip color"
	errSetBright    = "failed to set brightness"
	errInvalidIndex = "invalid pixel index"
	errInvalidColor = "invalid color: expected hex like ff8800"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include the current strip state (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	resp["state"] = h.services.Strip.GetState(c.Request.Context())
	c.JSON(http.StatusOK, resp)
}

// stripErrorStatus maps controller errors onto HTTP codes.
func stripErrorStatus(err error) int {
	switch {
	case errors.Is(err, led.ErrSceneNotFound):
		return http.StatusNotFound
	case errors.Is(err, led.ErrIndexOutOfRange), errors.Is(err, led.ErrBrightnessOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Request DTO for applying a scene.
type sceneRequest struct {
	Name string `json:"name" binding:"required"` // e.g. "rainbow", "dreamy"
}

// Request DTO for coloring pixels. Color is a hex string, "#" optional.
type colorRequest struct {
	Color string `json:"color" binding:"required"` // e.g. "ff8800"
}

// Request DTO for brightness. Pointer so an explicit 0 passes validation.
type brightnessRequest struct {
	Level *int `json:"level" binding:"required"` // 0..255
}

// SceneRequest is an exported model for Swagger docs of the scene payload.
type SceneRequest struct {
	// Scene name from GET /api/v1/strip/scenes
	Name string `json:"name" example:"rainbow"`
}

// ColorRequest is an exported model for Swagger docs of the color payload.
type ColorRequest struct {
	// Hex RGB color, leading # optional
	Color string `json:"color" example:"ff8800"`
}

// BrightnessRequest is an exported model for Swagger docs of the brightness payload.
type BrightnessRequest struct {
	// Brightness level 0..255
	Level int `json:"level" example:"128"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get strip state
// @Tags         strip
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "state"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/strip/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.services.Strip.GetState(c.Request.Context())})
}

// @Summary      List scenes
// @Tags         strip
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, scenes"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/strip/scenes [get]
// @Security     BearerAuth
func (h *Handler) getScenes(c *gin.Context) {
	scenes := h.services.Strip.Scenes(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"count":  len(scenes),
		"scenes": scenes,
	})
}

// @Summary      Apply scene
// @Tags         strip
// @Accept       json
// @Produce      json
// @Param        body  body   SceneRequest  true  "Scene payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/strip/scene [post]
// @Security     BearerAuth
func (h *Handler) applyScene(c *gin.Context) {
	var input sceneRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.Strip.ApplyScene(c.Request.Context(), input.Name); err != nil {
		h.logAndJSONError(c, stripErrorStatus(err), errApplyScene, "scene_apply_failed", err, "scene", input.Name)
		return
	}
	h.respondWithStatusAndState(c, statusApplied, gin.H{"scene": input.Name})
}

// @Summary      Clear strip
// @Tags         strip
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/strip/clear [post]
// @Security     BearerAuth
func (h *Handler) clearStrip(c *gin.Context) {
	if err := h.services.Strip.Clear(c.Request.Context()); err != nil {
		h.logAndJSONError(c, stripErrorStatus(err), errClearStrip, "strip_clear_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusCleared, gin.H{})
}

// @Summary      Get pixel color
// @Tags         strip
// @Produce      json
// @Param        index  path  int  true  "LED index"
// @Success      200  {object}  map[string]interface{}  "index, color"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/strip/pixel/{index} [get]
// @Security     BearerAuth
func (h *Handler) getPixel(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidIndex})
		return
	}

	color, err := h.services.Strip.GetPixel(c.Request.Context(), index)
	if err != nil {
		h.logAndJSONError(c, stripErrorStatus(err), errInvalidIndex, "pixel_get_failed", err, "index", index)
		return
	}
	c.JSON(http.StatusOK, gin.H{"index": index, "color": color, "hex": color.Hex()})
}

// @Summary      Set pixel color
// @Tags         strip
// @Accept       json
// @Produce      json
// @Param        index  path  int           true  "LED index"
// @Param        body   body  ColorRequest  true  "Color payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/strip/pixel/{index} [put]
// @Security     BearerAuth
func (h *Handler) setPixel(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidIndex})
		return
	}

	var input colorRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	color, err := led.ParseHex(input.Color)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidColor})
		return
	}

	if err := h.services.Strip.SetPixel(c.Request.Context(), index, color); err != nil {
		h.logAndJSONError(c, stripErrorStatus(err), errSetPixel, "pixel_set_failed", err, "index", index)
		return
	}
	h.respondWithStatusAndState(c, statusSet, gin.H{"index": index, "color": color.Hex()})
}

// @Summary      Set all pixels
// @Tags         strip
// @Accept       json
// @Produce      json
// @Param        body  body  ColorRequest  true  "Color payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/strip/all [put]
// @Security     BearerAuth
func (h *Handler) setAll(c *gin.Context) {
	var input colorRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	color, err := led.ParseHex(input.Color)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidColor})
		return
	}

	if err := h.services.Strip.SetAll(c.Request.Context(), color); err != nil {
		h.logAndJSONError(c, stripErrorStatus(err), errSetAll, "strip_set_all_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusSet, gin.H{"color": color.Hex()})
}

// @Summary      Set brightness
// @Tags         strip
// @Accept       json
// @Produce      json
// @Param        body  body  BrightnessRequest  true  "Brightness payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/strip/brightness [put]
// @Security     BearerAuth
func (h *Handler) setBrightness(c *gin.Context) {
	var input brightnessRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	if err := h.services.Strip.SetBrightness(c.Request.Context(), *input.Level); err != nil {
		h.logAndJSONError(c, stripErrorStatus(err), errSetBright, "brightness_set_failed", err, "level", *input.Level)
		return
	}
	h.respondWithStatusAndState(c, statusSet, gin.H{"level": *input.Level})
}

// @Summary      Wake word status
// @Tags         wakeword
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/wakeword/status [get]
// @Security     BearerAuth
func (h *Handler) wakeWordStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": h.services.WakeWord.Status(c.Request.Context())})
}
