package catalog

import (
	"errors"
	"strconv"

	"game-catalog/core/logger"
	"game-catalog/feature/catalog/fetch"
	"game-catalog/feature/catalog/models"
	"game-catalog/feature/catalog/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GameList is the paged response of GET /games.
type GameList struct {
	Games  []models.Game `json:"games"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// Handler handles HTTP requests for games.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the game routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/games")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Post("/:id/ingest", h.HandleIngest)
	group.Delete("/:id", h.HandleTombstone)
}

// HandleList returns a page of active games.
// @Summary List Games
// @Description List active games ordered by id.
// @Tags games
// @Produce json
// @Param limit query int false "Page size (max 100)" default(25)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} GameList "Games"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /games [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	limit, offset := store.Page(c.QueryInt("limit", store.DefaultPageSize), c.QueryInt("offset", 0))

	games, total, err := h.service.List(c.UserContext(), limit, offset)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(GameList{Games: games, Total: total, Limit: limit, Offset: offset})
}

// HandleGet returns a single active game.
// @Summary Get Game
// @Description Get the canonical record of an active game.
// @Tags games
// @Produce json
// @Param id path int true "Provider app id"
// @Success 200 {object} models.Game "Game"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /games/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	game, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(game)
}

// HandleIngest runs the ingestion pipeline for a game.
// @Summary Ingest Game
// @Description Fetch provider documents, store the canonical record and publish asset events.
// @Tags games
// @Produce json
// @Param id path int true "Provider app id"
// @Success 201 {object} models.Game "Stored game"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 502 {object} map[string]string "Provider unavailable"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /games/{id}/ingest [post]
func (h *Handler) HandleIngest(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	game, err := h.service.Ingest(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

// HandleTombstone soft-deletes a game.
// @Summary Tombstone Game
// @Description Soft-delete a game. A later ingest resurrects it.
// @Tags games
// @Param id path int true "Provider app id"
// @Success 204 "Tombstoned"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /games/{id} [delete]
func (h *Handler) HandleTombstone(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.service.Tombstone(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidAppID
	}
	return id, nil
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidAppID):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, fetch.ErrProviderUnavailable):
		status = fiber.StatusBadGateway
	}

	l := logger.WithRayID(h.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error("Game request failed", zap.String("path", c.Path()), zap.Error(err))
	} else {
		l.Debug("Game request rejected", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
