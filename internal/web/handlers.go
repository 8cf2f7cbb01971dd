package web

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/kapu/roastmaster-go/internal/domain"
	"go.uber.org/zap"
)

// RoastService is the single core operation the web layer depends on.
type RoastService interface {
	ResolveAndRoast(ctx context.Context, query domain.ProfileQuery) *domain.RoastResult
}

// Handlers contains the HTTP handlers for the roast API.
type Handlers struct {
	roaster RoastService
	logger  *zap.Logger
}

func NewHandlers(roaster RoastService, logger *zap.Logger) *Handlers {
	return &Handlers{
		roaster: roaster,
		logger:  logger,
	}
}

type roastRequest struct {
	Handle   string `json:"handle" form:"handle"`
	Platform string `json:"platform" form:"platform"`
	Source   string `json:"source" form:"source"`
}

type audioPayload struct {
	Src      string `json:"src"`
	MimeType string `json:"mime_type"`
	VoiceID  string `json:"voice_id"`
}

type roastResponse struct {
	Status        domain.RoastStatus    `json:"status"`
	Handle        string                `json:"handle,omitempty"`
	Profile       *domain.ProfileRecord `json:"profile,omitempty"`
	Post          *domain.PostSample    `json:"post,omitempty"`
	RoastText     string                `json:"roast_text,omitempty"`
	ImageCritique string                `json:"image_critique,omitempty"`
	Audio         *audioPayload         `json:"audio,omitempty"`
	Error         string                `json:"error,omitempty"`
	ElapsedMS     int64                 `json:"elapsed_ms"`
}

// Roast handles POST /api/roast.
func (h *Handlers) Roast(c *fiber.Ctx) error {
	var req roastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(roastResponse{
			Status: domain.StatusError,
			Error:  "Could not read the request body.",
		})
	}

	if domain.NormalizeHandle(req.Handle) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(roastResponse{
			Status: domain.StatusError,
			Error:  "Please enter a handle.",
		})
	}

	if req.Platform != "" && req.Platform != "x" {
		return c.Status(fiber.StatusBadRequest).JSON(roastResponse{
			Status: domain.StatusError,
			Error:  "Only X handles are supported right now.",
		})
	}

	query := domain.ProfileQuery{
		Handle:     req.Handle,
		Preference: domain.SourcePrimary,
	}
	if req.Source == domain.SourceFallback.String() {
		query.Preference = domain.SourceFallback
	}

	result := h.roaster.ResolveAndRoast(c.UserContext(), query)
	if result.Status == domain.StatusError {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(toResponse(result))
	}

	return c.JSON(toResponse(result))
}

// Health handles GET /healthz.
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func toResponse(result *domain.RoastResult) roastResponse {
	resp := roastResponse{
		Status:        result.Status,
		Handle:        result.Handle,
		Profile:       result.Profile,
		Post:          result.Post,
		RoastText:     result.RoastText,
		ImageCritique: result.ImageCritique,
		Error:         result.ErrorMessage,
		ElapsedMS:     result.ElapsedMS,
	}

	if result.Audio != nil {
		resp.Audio = &audioPayload{
			Src: fmt.Sprintf("data:%s;base64,%s",
				result.Audio.MimeType,
				base64.StdEncoding.EncodeToString(result.Audio.Bytes),
			),
			MimeType: result.Audio.MimeType,
			VoiceID:  result.Audio.VoiceID,
		}
	}

	return resp
}
