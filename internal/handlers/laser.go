package handlers

import (
	"net/http"

	"dlccontrol/internal/models"
	"dlccontrol/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errGetParameters = "failed to read laser parameters"
	errGetEmission   = "failed to read emission status"
	errSetLaser      = "failed to update laser"
)

// WavelengthRequest sets the wavelength setpoint in nm.
type WavelengthRequest struct {
	Wavelength *float64 `json:"wavelength" binding:"required" example:"1550.2"`
}

// TemperatureRequest sets the diode temperature setpoint in degrees Celsius.
type TemperatureRequest struct {
	Temperature *float64 `json:"temperature" binding:"required" example:"25.5"`
}

// CurrentRequest switches the laser current on or off.
type CurrentRequest struct {
	Enabled *bool `json:"enabled" binding:"required" example:"true"`
}

// ScanRequest is a partial scan update; omitted fields are left unchanged.
type ScanRequest struct {
	Enabled *bool `json:"enabled,omitempty" example:"true"`
	// One of PC, CC, OutA, OutB
	OutputChannel *string  `json:"output_channel,omitempty" example:"PC"`
	Frequency     *float64 `json:"frequency,omitempty" example:"20"`
	Offset        *float64 `json:"offset,omitempty" example:"70"`
	Amplitude     *float64 `json:"amplitude,omitempty" example:"10"`
	Start         *float64 `json:"start,omitempty"`
	End           *float64 `json:"end,omitempty"`
}

// RemoteRequest is a partial update of one analogue remote control unit.
type RemoteRequest struct {
	Enabled *bool    `json:"enabled,omitempty" example:"true"`
	Factor  *float64 `json:"factor,omitempty" example:"10"`
	// One of Fine1, Fine2, Fast3, Fast4
	Signal *string `json:"signal,omitempty" example:"Fine1"`
}

// UserLevelRequest changes the controller privilege level.
type UserLevelRequest struct {
	// Level name or number: internal(0), service(1), maintenance(2), normal(3), readonly(4)
	Level    string `json:"level" binding:"required" example:"maintenance"`
	Password string `json:"password,omitempty"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Get laser parameters
// @Description  Scan, analogue remote, wavelength and temperature settings read in sequence.
// @Tags         laser
// @Produce      json
// @Success      200  {object}  models.Parameters
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/laser/parameters [get]
// @Security     BearerAuth
func (h *Handler) getParameters(c *gin.Context) {
	p, err := h.services.Laser.Parameters(c.Request.Context())
	if err != nil {
		h.respondError(c, errGetParameters, "laser_get_parameters_failed", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Get validation limits
// @Tags         laser
// @Produce      json
// @Success      200  {object}  models.Limits
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/laser/limits [get]
// @Security     BearerAuth
func (h *Handler) getLimits(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Laser.Limits())
}

// @Summary      Get emission status
// @Tags         laser
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, summary"
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/laser/emission [get]
// @Security     BearerAuth
func (h *Handler) getEmission(c *gin.Context) {
	st, err := h.services.Laser.EmissionStatus(c.Request.Context())
	if err != nil {
		h.respondError(c, errGetEmission, "laser_get_emission_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": st, "summary": st.String()})
}

// @Summary      Enable or disable the laser current
// @Tags         laser
// @Accept       json
// @Produce      json
// @Param        body  body      CurrentRequest  true  "Current payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/laser/current [put]
// @Security     BearerAuth
func (h *Handler) setCurrent(c *gin.Context) {
	var req CurrentRequest
	if !h.bindJSON(c, &req, "laser_current_bad_body") {
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Laser.SetCurrentEnabled(ctx, *req.Enabled); err != nil {
		h.respondError(c, errSetLaser, "laser_set_current_failed", err, "enabled", *req.Enabled)
		return
	}
	st, err := h.services.Laser.EmissionStatus(ctx)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"enabled": *req.Enabled})
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": *req.Enabled, "status": st})
}

// @Summary      Set wavelength setpoint
// @Tags         laser
// @Accept       json
// @Produce      json
// @Param        body  body      WavelengthRequest  true  "Wavelength in nm"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}  "error, parameter, value, range"
// @Failure      409   {object}  map[string]string  "laser has no wavelength setting"
// @Router       /api/v1/laser/wavelength [put]
// @Security     BearerAuth
func (h *Handler) setWavelength(c *gin.Context) {
	var req WavelengthRequest
	if !h.bindJSON(c, &req, "laser_wavelength_bad_body") {
		return
	}
	if err := h.services.Laser.SetWavelength(c.Request.Context(), *req.Wavelength); err != nil {
		h.respondError(c, errSetLaser, "laser_set_wavelength_failed", err, "wavelength", *req.Wavelength)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wavelength": *req.Wavelength})
}

// @Summary      Set diode temperature setpoint
// @Tags         laser
// @Accept       json
// @Produce      json
// @Param        body  body      TemperatureRequest  true  "Temperature in degrees Celsius"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}  "error, parameter, value, range"
// @Failure      409   {object}  map[string]string  "laser has no temperature setting"
// @Router       /api/v1/laser/temperature [put]
// @Security     BearerAuth
func (h *Handler) setTemperature(c *gin.Context) {
	var req TemperatureRequest
	if !h.bindJSON(c, &req, "laser_temperature_bad_body") {
		return
	}
	if err := h.services.Laser.SetTemperature(c.Request.Context(), *req.Temperature); err != nil {
		h.respondError(c, errSetLaser, "laser_set_temperature_failed", err, "temperature", *req.Temperature)
		return
	}
	c.JSON(http.StatusOK, gin.H{"temperature": *req.Temperature})
}

// @Summary      Update internal scan
// @Description  Fields are applied in order: output channel, frequency, offset/amplitude, start, end, enabled. The first rejected field stops the update.
// @Tags         laser
// @Accept       json
// @Produce      json
// @Param        body  body      ScanRequest  true  "Scan payload"
// @Success      200   {object}  models.ScanParameters
// @Failure      400   {object}  map[string]interface{}  "error, parameter, value or window, range"
// @Router       /api/v1/laser/scan [put]
// @Security     BearerAuth
func (h *Handler) setScan(c *gin.Context) {
	var req ScanRequest
	if !h.bindJSON(c, &req, "laser_scan_bad_body") {
		return
	}
	p := service.ScanParams{
		Enabled:   req.Enabled,
		Frequency: req.Frequency,
		Offset:    req.Offset,
		Amplitude: req.Amplitude,
		Start:     req.Start,
		End:       req.End,
	}
	if req.OutputChannel != nil {
		ch, err := models.ParseOutputChannel(*req.OutputChannel)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p.OutputChannel = &ch
	}
	scan, err := h.services.Laser.SetScan(c.Request.Context(), p)
	if err != nil {
		h.respondError(c, errSetLaser, "laser_set_scan_failed", err)
		return
	}
	c.JSON(http.StatusOK, scan)
}

// @Summary      Update analogue remote control
// @Tags         laser
// @Accept       json
// @Produce      json
// @Param        unit  path      string         true  "Remote unit"  Enums(cc,pc)
// @Param        body  body      RemoteRequest  true  "Remote payload"
// @Success      200   {object}  models.RemoteParameters
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/laser/remote/{unit} [put]
// @Security     BearerAuth
func (h *Handler) setRemote(c *gin.Context) {
	unit, err := models.ParseRemoteUnit(c.Param("unit"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req RemoteRequest
	if !h.bindJSON(c, &req, "laser_remote_bad_body") {
		return
	}
	p := service.RemoteParams{Enabled: req.Enabled, Factor: req.Factor}
	if req.Signal != nil {
		sig, err := models.ParseInputChannel(*req.Signal)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		p.Signal = &sig
	}
	rp, err := h.services.Laser.SetRemote(c.Request.Context(), unit, p)
	if err != nil {
		h.respondError(c, errSetLaser, "laser_set_remote_failed", err, "unit", string(unit))
		return
	}
	c.JSON(http.StatusOK, rp)
}

// @Summary      Change user level
// @Description  An empty password uses the default for maintenance or the configured service password. A refused change leaves the level unchanged; the response reports the level the controller is now at.
// @Tags         laser
// @Accept       json
// @Produce      json
// @Param        body  body      UserLevelRequest  true  "User level payload"
// @Success      200   {object}  map[string]interface{}  "requested, level, granted"
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/laser/user-level [post]
// @Security     BearerAuth
func (h *Handler) setUserLevel(c *gin.Context) {
	var req UserLevelRequest
	if !h.bindJSON(c, &req, "laser_user_level_bad_body") {
		return
	}
	level, err := models.ParseUserLevel(req.Level)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	got, err := h.services.Laser.SetUserLevel(c.Request.Context(), level, req.Password)
	if err != nil {
		h.respondError(c, errSetLaser, "laser_set_user_level_failed", err, "level", level.String())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"requested": level.String(),
		"level":     got.String(),
		"granted":   got == level,
	})
}
