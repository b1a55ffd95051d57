package server

import (
	"fmt"
	"time"

	"thaichat/internal/cache"
	"thaichat/internal/models"
	"thaichat/internal/observability"
	"thaichat/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Signup handles POST /auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body", nil))
	}

	// Collect per-field validation errors
	fields := map[string]string{}
	if err := validation.ValidateUsername(req.Username); err != nil {
		fields["username"] = err.Error()
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		fields["email"] = err.Error()
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		fields["password"] = err.Error()
	}
	if req.FirstName == "" {
		fields["firstName"] = "firstName is required"
	}
	if req.LastName == "" {
		fields["lastName"] = "lastName is required"
	}
	if len(fields) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Validation failed", fields))
	}

	// Check for duplicate username or email (exact match)
	existing, err := s.userRepo.FindByUsernameOrEmail(c.Context(), req.Username, req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewConflictError("Username or email already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	now := time.Now().UTC()
	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		Password:     string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Avatar:       fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", req.Username),
		IsOnline:     true,
		LastActivity: now,
		CreatedAt:    now,
	}

	// Create re-checks uniqueness atomically (write lock in memory, unique
	// index under gorm); a concurrent signup that slipped past the check
	// above still conflicts here.
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithError(c, models.StatusCode(createErr), createErr)
	}

	observability.SignupsTotal.Inc()

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Signin handles POST /auth/signin
func (s *Server) Signin(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body", nil))
	}

	if req.Password == "" || (req.Username == "" && req.Email == "") {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username or email and password are required", nil))
	}

	user, err := s.userRepo.FindByUsernameOrEmail(c.Context(), req.Username, req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		observability.SigninsTotal.WithLabelValues("failure").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		observability.SigninsTotal.WithLabelValues("failure").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	user.IsOnline = true
	user.LastActivity = time.Now().UTC()
	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	cache.Invalidate(c.Context(), userCacheKey(user.ID))
	observability.SigninsTotal.WithLabelValues("success").Inc()

	return c.JSON(user)
}
