package server

import (
	"microblog/internal/models"
	"microblog/internal/service"
	"microblog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Signup handles POST /api/auth/signup
//
// A new account starts out pending: it holds a one-time activation token and
// a confirmation mail is dispatched best-effort. The response carries the
// created user; a session token is only issued once the email is confirmed.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Name                 string `json:"name"`
		Email                string `json:"email"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name, email, and password are required"))
	}

	if err := validation.ValidateName(req.Name); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password, req.PasswordConfirmation); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	// Check uniqueness up front for a friendly error; the unique constraints
	// still back this up under concurrency.
	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return respondServiceError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("Email already taken"))
	}
	existing, err = s.userRepo.GetByName(c.Context(), req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("Name already taken"))
	}

	user, err := s.accountService.Register(c.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":    user,
		"message": "Confirmation mail sent, please check your inbox",
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Find user by email
	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return respondServiceError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	// Compare password
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if !user.Activated {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Account not activated, please confirm your email"))
	}

	// Generate JWT token
	token, err := s.generateToken(user.ID, user.Name)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// ConfirmEmail handles GET /api/auth/confirm/:token
//
// The token is single-use: confirming clears it, so a replay reads as 404.
// A successful confirmation establishes an authenticated session.
func (s *Server) ConfirmEmail(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Activation token is required"))
	}

	user, err := s.accountService.ConfirmEmail(c.Context(), token)
	if err != nil {
		return respondServiceError(c, err)
	}

	sessionToken, err := s.generateToken(user.ID, user.Name)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": sessionToken,
		"user":  user,
	})
}
