package server

import (
	"fmt"
	"math"
	"strconv"

	"thaichat/internal/models"
	"thaichat/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// GetTheme handles GET /theme
func (s *Server) GetTheme(c *fiber.Ctx) error {
	current, err := s.themeRepo.Active(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	themes, err := s.themeRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"currentTheme":    current,
		"availableThemes": themes,
	})
}

// ChangeTheme handles POST and PUT /theme. themeId may be a number or a
// theme name string; ids are tried before names. An unknown theme leaves
// the active selection untouched.
func (s *Server) ChangeTheme(c *fiber.Ctx) error {
	var req struct {
		ThemeID any `json:"themeId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body", nil))
	}

	var id int64
	var name string
	switch v := req.ThemeID.(type) {
	case float64:
		// JSON numbers arrive as float64; a fractional value is not an id.
		if v != math.Trunc(v) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("themeId must be a whole number or a theme name", nil))
		}
		id = int64(v)
	case string:
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			id = parsed
		} else {
			name = v
		}
	default:
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("themeId is required", nil))
	}

	theme, err := s.themeRepo.Find(c.Context(), id, name)
	if err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	if err := s.themeRepo.SetActive(c.Context(), theme.ID); err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	themes, err := s.themeRepo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	observability.ThemeChangesTotal.WithLabelValues(theme.Name).Inc()

	return c.JSON(fiber.Map{
		"success":         true,
		"message":         fmt.Sprintf("Theme changed to %s", theme.Name),
		"currentTheme":    theme,
		"availableThemes": themes,
	})
}
