package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tts-batch-api/application/ports/inbound"
	"tts-batch-api/application/ports/outbound"
	"tts-batch-api/domain"
	"tts-batch-api/infrastructure/gin_interface/dto"
)

type SynthesizeController interface {
	SynthesizeSpeech(c *gin.Context)
	Health(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type synthesizeController struct {
	logger      outbound.LoggerPort
	synthesizer inbound.SpeechSynthesizerPort
}

func NewSynthesizeController(logger outbound.LoggerPort, synthesizer inbound.SpeechSynthesizerPort) SynthesizeController {
	return &synthesizeController{
		logger:      logger,
		synthesizer: synthesizer,
	}
}

func (s *synthesizeController) SynthesizeSpeech(c *gin.Context) {
	var request dto.SynthesizeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := request.Normalize(); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.synthesizer.Synthesize(c.Request.Context(), inbound.SynthesizeParams{
		Text:             request.Text,
		TargetSampleRate: request.SampleRate,
		Model:            request.Model,
		RequestID:        uuid.NewString(),
	})
	if err != nil {
		s.abortWithPipelineError(c, err)
		return
	}

	c.Header("Content-Length", strconv.Itoa(len(result.Audio)))
	c.Header("X-Model", result.Model)
	c.Header("X-Sample-Rate", strconv.Itoa(result.SampleRate))
	c.Header("X-Cache", string(result.CacheStatus))
	c.Header("X-Resampling", string(result.ResampleStatus))
	c.Header("X-Synthesis-Time", formatMillis(result.SynthesisTime))
	c.Header("X-Resample-Time", formatMillis(result.ResampleTime))
	c.Header("X-Total-Time", formatMillis(result.TotalTime))

	c.Data(http.StatusOK, "audio/x-raw", result.Audio)
}

func (s *synthesizeController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// abortWithPipelineError maps the pipeline error taxonomy onto HTTP codes:
// unknown models are client errors carrying the available names, synthesis
// and resample failures are server errors with the detail kept out of the
// response body.
func (s *synthesizeController) abortWithPipelineError(c *gin.Context, err error) {
	var unknownModel *domain.UnknownModelError
	if errors.As(err, &unknownModel) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":            unknownModel.Error(),
			"available_models": unknownModel.Available,
		})
		return
	}

	detail := "internal server error"
	switch {
	case errors.Is(err, domain.ErrSynthesisFailed):
		detail = "Audio synthesis failed"
	case errors.Is(err, domain.ErrResampleFailed):
		detail = "Audio resampling failed"
	}

	s.logger.Error(err, "synthesis pipeline failed")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": detail})
}

func (s *synthesizeController) RegisterRoutes(g *gin.Engine) {
	g.POST("/synthesizeSpeech", s.SynthesizeSpeech)
	g.GET("/health", s.Health)
}

func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
