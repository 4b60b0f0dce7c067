// Package api implements the REST transport: the three multipart
// steganography endpoints over the codec, plus health and capacity
// endpoints.
package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stegowave/wav16/internal/stego"
	"github.com/stegowave/wav16/models"
	"github.com/stegowave/wav16/service"
)

// Handlers holds the injected service dependencies the route
// handlers share.
type Handlers struct {
	steganographyService service.SteganographyService
	audioService         service.AudioService
	defaultLsbDeep       int
}

// NewHandlers constructs a Handlers instance with injected services.
func NewHandlers(steganographyService service.SteganographyService, audioService service.AudioService, defaultLsbDeep int) *Handlers {
	return &Handlers{
		steganographyService: steganographyService,
		audioService:         audioService,
		defaultLsbDeep:       defaultLsbDeep,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// HealthHandler handles the health check endpoint.
//
//	@Summary		Health Check
//	@Description	Returns the health status of the API service
//	@Tags			System
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"Service is healthy"
//	@Router			/api/health [get]
func (h *Handlers) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
	})
}

// CapacityHandler reports usable payload bits for every supported LSB
// depth against an uploaded WAV file.
//
//	@Summary		Calculate audio embedding capacity
//	@Description	Calculates usable payload bits at every LSB depth (1-16) for an uploaded WAV file.
//	@Tags			Steganography
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file					true	"16-bit PCM WAV file"
//	@Param			format	formData	string					false	"Format tag, currently only wav16"
//	@Success		200		{object}	models.CapacityResponse
//	@Failure		400		{object}	models.ErrorResponse
//	@Failure		500		{object}	models.ErrorResponse
//	@Router			/api/capacity [post]
func (h *Handlers) CapacityHandler(c *gin.Context) {
	requestID := requestIDFrom(c)
	log.Printf("[INFO] [%s] CapacityHandler: request from %s", requestID, c.ClientIP())

	fileData, _, err := readFormFile(c, "file")
	if err != nil {
		log.Printf("[ERROR] [%s] CapacityHandler: %v", requestID, err)
		sendClientError(c, "MISSING_FILE", err.Error())
		return
	}

	format := c.DefaultPostForm("format", "wav16")
	result, err := h.steganographyService.Capacity(fileData, format)
	if err != nil {
		sendStegoError(c, requestID, "CapacityHandler", err)
		return
	}

	c.JSON(http.StatusOK, models.CapacityResponse{
		SampleCount:       result.SampleCount,
		UsableBitsByDepth: result.UsableBitsByDepth,
	})
}

// HideHandler handles POST /api/hide_message.
//
//	@Summary		Hide a secret message in a WAV file
//	@Description	Embeds message into file at the given LSB depth, authenticated by password.
//	@Tags			Steganography
//	@Accept			multipart/form-data
//	@Produce		audio/wav
//	@Param			file		formData	file	true	"16-bit PCM WAV file"
//	@Param			message		formData	string	true	"Secret message"
//	@Param			password	formData	string	true	"Password"
//	@Param			format		formData	string	false	"Format tag, currently only wav16"
//	@Param			lsb_deep	formData	int		false	"LSB depth (1-16), default 1"
//	@Success		200			{file}		binary	"Stego WAV file"
//	@Header			200			{number}	X-PSNR-Value	"Peak signal-to-noise ratio in dB"
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/api/hide_message [post]
func (h *Handlers) HideHandler(c *gin.Context) {
	startTime := time.Now()
	requestID := requestIDFrom(c)
	log.Printf("[INFO] [%s] HideHandler: request from %s", requestID, c.ClientIP())

	req, err := h.parseHideRequest(c)
	if err != nil {
		log.Printf("[ERROR] [%s] HideHandler: %v", requestID, err)
		sendClientError(c, "INVALID_REQUEST", err.Error())
		return
	}

	stegoAudio, err := h.steganographyService.Hide(req.File, req.Format, req.LsbDeep, req.Message, req.Password)
	if err != nil {
		sendStegoError(c, requestID, "HideHandler", err)
		return
	}

	psnr, err := h.audioService.PSNR(req.File, stegoAudio)
	if err != nil {
		log.Printf("[WARN] [%s] HideHandler: PSNR calculation failed: %v", requestID, err)
	}

	processingTime := time.Since(startTime).Milliseconds()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", stego.DefaultFilename))
	c.Header("X-PSNR-Value", fmt.Sprintf("%.2f", psnr))
	c.Header("X-Processing-Time", strconv.FormatInt(processingTime, 10))
	c.Data(http.StatusOK, "audio/wav", stegoAudio)
}

// ExtractHandler handles POST /api/extract_message.
//
//	@Summary		Extract a secret message from a WAV file
//	@Description	Recovers a message previously hidden in file, authenticated by password.
//	@Tags			Steganography
//	@Accept			multipart/form-data
//	@Produce		text/plain
//	@Param			file		formData	file	true	"16-bit PCM WAV file"
//	@Param			password	formData	string	true	"Password"
//	@Param			format		formData	string	false	"Format tag, currently only wav16"
//	@Param			lsb_deep	formData	int		false	"LSB depth (1-16), default 1"
//	@Success		200			{string}	string	"Recovered message"
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/api/extract_message [post]
func (h *Handlers) ExtractHandler(c *gin.Context) {
	startTime := time.Now()
	requestID := requestIDFrom(c)
	log.Printf("[INFO] [%s] ExtractHandler: request from %s", requestID, c.ClientIP())

	req, err := h.parseExtractRequest(c)
	if err != nil {
		log.Printf("[ERROR] [%s] ExtractHandler: %v", requestID, err)
		sendClientError(c, "INVALID_REQUEST", err.Error())
		return
	}

	message, err := h.steganographyService.Extract(req.File, req.Format, req.LsbDeep, req.Password)
	if err != nil {
		sendStegoError(c, requestID, "ExtractHandler", err)
		return
	}

	processingTime := time.Since(startTime).Milliseconds()
	c.Header("X-Processing-Time", strconv.FormatInt(processingTime, 10))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(message))
}

// ClearHandler handles POST /api/clear_message.
//
//	@Summary		Erase a secret message from a WAV file
//	@Description	Validates password then destroys any hidden message in file, returning the cleaned WAV.
//	@Tags			Steganography
//	@Accept			multipart/form-data
//	@Produce		audio/wav
//	@Param			file		formData	file	true	"16-bit PCM WAV file"
//	@Param			password	formData	string	true	"Password"
//	@Param			format		formData	string	false	"Format tag, currently only wav16"
//	@Param			lsb_deep	formData	int		false	"LSB depth (1-16), default 1"
//	@Success		200			{file}		binary	"Cleaned WAV file"
//	@Failure		400			{object}	models.ErrorResponse
//	@Failure		500			{object}	models.ErrorResponse
//	@Router			/api/clear_message [post]
func (h *Handlers) ClearHandler(c *gin.Context) {
	startTime := time.Now()
	requestID := requestIDFrom(c)
	log.Printf("[INFO] [%s] ClearHandler: request from %s", requestID, c.ClientIP())

	req, err := h.parseExtractRequest(c)
	if err != nil {
		log.Printf("[ERROR] [%s] ClearHandler: %v", requestID, err)
		sendClientError(c, "INVALID_REQUEST", err.Error())
		return
	}

	cleaned, err := h.steganographyService.Clear(req.File, req.Format, req.LsbDeep, req.Password)
	if err != nil {
		sendStegoError(c, requestID, "ClearHandler", err)
		return
	}

	processingTime := time.Since(startTime).Milliseconds()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", stego.DefaultFilename))
	c.Header("X-Processing-Time", strconv.FormatInt(processingTime, 10))
	c.Data(http.StatusOK, "audio/wav", cleaned)
}

func (h *Handlers) parseHideRequest(c *gin.Context) (models.HideRequest, error) {
	fileData, _, err := readFormFile(c, "file")
	if err != nil {
		return models.HideRequest{}, err
	}
	// An empty message is a legal payload; only an absent field is a
	// client error.
	message, ok := c.GetPostForm("message")
	if !ok {
		return models.HideRequest{}, models.ErrMissingMessage
	}
	password := c.PostForm("password")
	if password == "" {
		return models.HideRequest{}, models.ErrMissingPassword
	}
	format, err := h.parseFormat(c)
	if err != nil {
		return models.HideRequest{}, err
	}
	depth, err := h.parseLsbDeep(c)
	if err != nil {
		return models.HideRequest{}, err
	}

	return models.HideRequest{File: fileData, Message: message, Password: password, Format: format, LsbDeep: depth}, nil
}

func (h *Handlers) parseExtractRequest(c *gin.Context) (models.ExtractRequest, error) {
	fileData, _, err := readFormFile(c, "file")
	if err != nil {
		return models.ExtractRequest{}, err
	}
	password := c.PostForm("password")
	if password == "" {
		return models.ExtractRequest{}, models.ErrMissingPassword
	}
	format, err := h.parseFormat(c)
	if err != nil {
		return models.ExtractRequest{}, err
	}
	depth, err := h.parseLsbDeep(c)
	if err != nil {
		return models.ExtractRequest{}, err
	}

	return models.ExtractRequest{File: fileData, Password: password, Format: format, LsbDeep: depth}, nil
}

// parseFormat rejects any format tag other than "wav16" up front with
// a 400, before the codec is constructed; GetCodec's UnsupportedFormat
// error (also a 400 in sendStegoError) is only the backstop.
func (h *Handlers) parseFormat(c *gin.Context) (string, error) {
	format := c.DefaultPostForm("format", "wav16")
	if format != "wav16" {
		return "", fmt.Errorf("unsupported format %q: %w", format, models.ErrUnsupportedFormat)
	}
	return format, nil
}

// parseLsbDeep falls back to the configured default for an absent or
// unparsable value, but an explicitly supplied out-of-range depth is
// a client error rather than a silent fallback.
func (h *Handlers) parseLsbDeep(c *gin.Context) (int, error) {
	raw := c.PostForm("lsb_deep")
	if raw == "" {
		return h.defaultLsbDeep, nil
	}
	depth, err := strconv.Atoi(raw)
	if err != nil {
		return h.defaultLsbDeep, nil
	}
	if depth < 1 || depth > 16 {
		return 0, models.ErrInvalidLsbDeep
	}
	return depth, nil
}

func readFormFile(c *gin.Context, field string) ([]byte, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("%s field is required: %w", field, models.ErrMissingFile)
	}
	if fileHeader.Size > 100*1024*1024 {
		return nil, "", models.ErrFileTooLarge
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return data, fileHeader.Filename, nil
}

func requestIDFrom(c *gin.Context) string {
	if id, ok := c.Get("trace_id"); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return "unknown"
}

// sendStegoError maps a codec error (or plain Go error) onto HTTP
// status codes. IncorrectPassword and UnsupportedFormat are client
// errors (400) at this layer; missing fields and invalid depth are
// rejected earlier by the request parsers. WAV decode failure and
// capacity exceeded are both internal (500).
func sendStegoError(c *gin.Context, requestID, handler string, err error) {
	var serr *stego.Error
	if errors.As(err, &serr) {
		log.Printf("[ERROR] [%s] %s: %s: %s", requestID, handler, serr.Kind, serr.Error())
		switch serr.Kind {
		case stego.KindIncorrectPassword:
			sendError(c, http.StatusBadRequest, "INCORRECT_PASSWORD", serr.Error())
		case stego.KindUnsupportedFormat:
			sendError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", serr.Error())
		case stego.KindNotEnoughSamples:
			sendErrorDetails(c, http.StatusInternalServerError, "NOT_ENOUGH_SAMPLES", serr.Error(), map[string]interface{}{
				"required_samples": serr.Required,
			})
		default:
			sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", serr.Error())
		}
		return
	}
	log.Printf("[ERROR] [%s] %s: %v", requestID, handler, err)
	sendError(c, http.StatusInternalServerError, "PROCESSING_ERROR", err.Error())
}

func sendClientError(c *gin.Context, code, message string) {
	sendError(c, http.StatusBadRequest, code, message)
}

func sendError(c *gin.Context, statusCode int, code, message string) {
	sendErrorDetails(c, statusCode, code, message, nil)
}

func sendErrorDetails(c *gin.Context, statusCode int, code, message string, extra map[string]interface{}) {
	details := map[string]interface{}{"code": code}
	for k, v := range extra {
		details[k] = v
	}
	c.JSON(statusCode, models.ErrorResponse{
		Success: false,
		Error: models.ErrorDetail{
			Message: message,
			Details: details,
		},
	})
}
