package server

import (
	"errors"
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"jotter/internal/apperrors"
	"jotter/internal/auth"
	"jotter/internal/database/dto"
	"jotter/internal/database/models"
)

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Post("/register", s.registerUser)
	s.App.Post("/login", s.login)
	s.App.Get("/health", s.healthHandler)

	s.App.Use(jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(s.cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// absent, malformed and expired tokens all read the same
			return apperrors.ErrUnauthenticated
		},
	}))
	s.App.Use(s.resolveUser)

	s.App.Post("/notes", s.createNote)
	s.App.Get("/notes", s.getAllNotes)
	s.App.Get("/notes/search", s.searchNotes)
	s.App.Get("/notes/:id", s.getSingleNote)
	s.App.Put("/notes/:id", s.updateNote)
	s.App.Delete("/notes/:id", s.deleteNote)
}

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	return c.JSON(s.db.Health())
}

func (s *FiberServer) registerUser(c *fiber.Ctx) error {
	req := dto.RegisterRequest{}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}
	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
	}
	if err := s.users.Create(c.Context(), &user); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

func (s *FiberServer) login(c *fiber.Ctx) error {
	credentials := dto.LoginCredentials{}
	if err := c.BodyParser(&credentials); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := credentials.Validate(); err != nil {
		return err
	}
	// unknown username and wrong password answer identically so usernames
	// cannot be enumerated
	user, err := s.users.GetByUsername(c.Context(), credentials.Username)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")
	}
	if err != nil {
		return err
	}
	if !auth.CheckPasswordHash(credentials.Password, user.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid username or password")
	}

	t, err := s.tokens.Issue(user.ID.String())
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{AccessToken: t, TokenType: "bearer"})
}

func (s *FiberServer) createNote(c *fiber.Ctx) error {
	input := dto.NoteInput{}
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := input.Validate(); err != nil {
		return err
	}
	note, err := s.notes.Create(c.Context(), currentUser(c), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(note)
}

func (s *FiberServer) getAllNotes(c *fiber.Ctx) error {
	result, err := s.notes.List(c.Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (s *FiberServer) getSingleNote(c *fiber.Ctx) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	note, err := s.notes.Get(c.Context(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *FiberServer) updateNote(c *fiber.Ctx) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	input := dto.NoteInput{}
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := input.Validate(); err != nil {
		return err
	}
	note, err := s.notes.Update(c.Context(), currentUser(c), id, input)
	if err != nil {
		return err
	}
	return c.JSON(note)
}

func (s *FiberServer) deleteNote(c *fiber.Ctx) error {
	id, err := noteID(c)
	if err != nil {
		return err
	}
	if err := s.notes.Delete(c.Context(), currentUser(c), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "note deleted successfully", "id": id})
}

func (s *FiberServer) searchNotes(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter q is required")
	}
	result, err := s.notes.Search(c.Context(), currentUser(c), query)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// noteID parses the :id path segment. A value that is not a uuid cannot
// name an existing note, so it maps to not found rather than bad request.
func noteID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperrors.ErrNotFound
	}
	return id, nil
}
