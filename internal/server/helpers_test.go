package server

import (
	"net/http/httptest"
	"testing"

	"fameboard/internal/models"
	"fameboard/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHumanizeParam(t *testing.T) {
	t.Parallel()
	tests := []struct {
		param string
		want  string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"postId", "post ID"},
		{"areaId", "area ID"},
		{"slug", "slug"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeParam(tt.param))
	}
}

func TestParseWindow(t *testing.T) {
	t.Parallel()
	app := fiber.New()

	var got repository.Window
	app.Get("/", func(c *fiber.Ctx) error {
		got = parseWindow(c)
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name  string
		query string
		want  repository.Window
	}{
		{"defaults", "", repository.Window{Start: 0, End: maxWindowSpan - 1}},
		{"explicit range", "?start=5&end=14", repository.Window{Start: 5, End: 14}},
		{"negative start clamped", "?start=-3&end=4", repository.Window{Start: 0, End: 4}},
		{"span capped", "?start=0&end=5000", repository.Window{Start: 0, End: maxWindowSpan - 1}},
		{"end before start", "?start=10&end=2", repository.Window{Start: 10, End: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/"+tt.query, nil)
			_, err := app.Test(req, -1)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusForError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want int
	}{
		{models.NewNotFoundError("Post", 1), fiber.StatusNotFound},
		{models.NewValidationError("bad"), fiber.StatusBadRequest},
		{models.NewPermissionError("no"), fiber.StatusForbidden},
		{models.NewUnauthorizedError("no"), fiber.StatusUnauthorized},
		{models.NewConflictError("race"), fiber.StatusConflict},
		{models.NewInternalError(assert.AnError), fiber.StatusInternalServerError},
		{assert.AnError, fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err))
	}
}
