package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/middleware"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
	queue_publisher "github.com/iliyamo/movie-catalog/internal/service"
)

// MoviesRoute is the public listing route; mutating handlers use it to drop
// the cached response after a write.
const MoviesRoute = "/api/movies"

// MovieStore is the slice of the catalog repository the movie endpoints
// need. *repository.MovieRepo satisfies it; tests provide an in-memory fake.
type MovieStore interface {
	Create(ctx context.Context, m *model.Movie) error
	List(ctx context.Context) ([]model.Movie, error)
	Update(ctx context.Context, id uint64, p repository.MoviePatch) (model.Movie, error)
	Delete(ctx context.Context, id uint64) (bool, error)
}

// MovieHandler bundles dependencies for catalog endpoints. Cache and
// Publish are optional: a nil Redis client skips invalidation and a nil
// Publish skips event emission, so tests and broker-less deployments work
// unchanged.
type MovieHandler struct {
	Movies   MovieStore
	Cache    *redis.Client
	CacheCfg config.CacheConfig
	Publish  func(ctx context.Context, ev queue.CatalogEvent) error
}

func NewMovieHandler(movies MovieStore, rdb *redis.Client, cacheCfg config.CacheConfig) *MovieHandler {
	return &MovieHandler{
		Movies:   movies,
		Cache:    rdb,
		CacheCfg: cacheCfg,
		Publish:  queue_publisher.PublishCatalogEvent,
	}
}

// List handles GET /api/movies. Public, no auth.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, movies)
}

// Create handles POST /api/movies. The payload is stored as-is; the id is
// assigned by the store and returned with the document.
func (h *MovieHandler) Create(c echo.Context) error {
	var m model.Movie
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m.ID = 0 // store-assigned
	if m.Episodes == nil {
		m.Episodes = make([]model.Episode, 0)
	}
	if m.Ads == nil {
		m.Ads = make([]model.Ad, 0)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Movies.Create(ctx, &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create movie"})
	}
	h.afterMutation(queue.ActionMovieCreated, m.ID, m.Title)
	return c.JSON(http.StatusOK, m)
}

// moviePatchReq binds a partial movie payload. Pointer fields distinguish
// "absent" from "set to the zero value".
type moviePatchReq struct {
	Title    *string          `json:"title"`
	Poster   *string          `json:"poster"`
	Video    *string          `json:"video"`
	Category *string          `json:"category"`
	Rating   *string          `json:"rating"`
	Episodes *[]model.Episode `json:"episodes"`
	Ads      *[]model.Ad      `json:"ads"`
}

// Update handles PUT /api/movies/:id. Fields present in the payload replace
// the stored ones; absent fields are untouched.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req moviePatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Movies.Update(ctx, id, repository.MoviePatch{
		Title:    req.Title,
		Poster:   req.Poster,
		Video:    req.Video,
		Category: req.Category,
		Rating:   req.Rating,
		Episodes: req.Episodes,
		Ads:      req.Ads,
	})
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.afterMutation(queue.ActionMovieUpdated, updated.ID, updated.Title)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/movies/:id. Deleting an id that does not exist
// still reports success; the operation is idempotent.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	matched, err := h.Movies.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if matched {
		h.afterMutation(queue.ActionMovieDeleted, id, "")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// afterMutation drops the cached listing and emits a catalog event.  Both
// are best-effort: a cold cache or a lost event never fails the request
// that already committed to the store.
func (h *MovieHandler) afterMutation(action string, movieID uint64, title string) {
	middleware.InvalidateCache(context.Background(), h.Cache, h.CacheCfg, http.MethodGet, MoviesRoute)
	if h.Publish == nil {
		return
	}
	ev := queue.CatalogEvent{
		Action:  action,
		MovieID: movieID,
		Title:   title,
		At:      time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = h.Publish(context.Background(), ev) }()
}
