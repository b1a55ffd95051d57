package server

import (
	"fmt"
	"strconv"
	"time"

	"thaichat/internal/cache"
	"thaichat/internal/models"

	"github.com/gofiber/fiber/v2"
)

const profileCacheTTL = 5 * time.Minute

func userCacheKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

// userWithNote decorates a user with the confirmation text the profile
// update endpoint returns alongside the record.
type userWithNote struct {
	models.User
	Note string `json:"message"`
}

// GetProfile handles GET /users/:id/profile. Reads go through the Redis
// cache when available; a non-numeric id behaves like an unknown user.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	idParam := c.Params("id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", idParam))
	}

	var user models.User
	err = cache.CacheAside(c.Context(), userCacheKey(id), &user, profileCacheTTL, func() error {
		found, err := s.userRepo.GetByID(c.Context(), id)
		if err != nil {
			return err
		}
		user = *found
		return nil
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	return c.JSON(user)
}

// UpdateProfile handles PUT /users/:id/profile. Provided fields are
// shallow-merged over the stored record; id and createdAt never change.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", c.Params("id")))
	}

	var req struct {
		Username    *string `json:"username"`
		Email       *string `json:"email"`
		FirstName   *string `json:"firstName"`
		LastName    *string `json:"lastName"`
		Avatar      *string `json:"avatar"`
		Bio         *string `json:"bio"`
		Location    *string `json:"location"`
		Website     *string `json:"website"`
		DateOfBirth *string `json:"dateOfBirth"`
		IsOnline    *bool   `json:"isOnline"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body", nil))
	}

	user, err := s.userRepo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.Website != nil {
		user.Website = req.Website
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.IsOnline != nil {
		user.IsOnline = *req.IsOnline
	}
	user.LastActivity = time.Now().UTC()

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithError(c, models.StatusCode(err), err)
	}

	cache.Invalidate(c.Context(), userCacheKey(id))

	return c.JSON(userWithNote{
		User: *user,
		Note: "Profile updated successfully",
	})
}

// CountUsers handles GET /users/count
func (s *Server) CountUsers(c *fiber.Ctx) error {
	count, err := s.userRepo.Count(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"count": count})
}
