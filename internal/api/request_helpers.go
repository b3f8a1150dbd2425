package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/kioku-api/internal/domain"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, fmt.Errorf("%s is required", paramName)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a valid UUID", paramName)
	}
	return id, nil
}

// getQueryLevel extracts the required JLPT level query parameter.
func getQueryLevel(r *http.Request) (domain.JLPTLevel, error) {
	raw := r.URL.Query().Get("level")
	if raw == "" {
		return "", fmt.Errorf("level query parameter is required")
	}
	level := domain.JLPTLevel(raw)
	if !level.IsValid() {
		return "", fmt.Errorf("level must be one of N5, N4, N3, N2, N1")
	}
	return level, nil
}

// getQueryItemType extracts the required item_type query parameter.
func getQueryItemType(r *http.Request) (domain.ItemType, error) {
	raw := r.URL.Query().Get("item_type")
	if raw == "" {
		return "", fmt.Errorf("item_type query parameter is required")
	}
	itemType := domain.ItemType(raw)
	if !itemType.IsValid() {
		return "", fmt.Errorf("item_type must be vocab or kanji")
	}
	return itemType, nil
}

// getQueryLimit extracts the optional limit query parameter, bounded to
// 1-100, falling back to def when absent.
func getQueryLimit(r *http.Request, def int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > 100 {
		return 0, fmt.Errorf("limit must be an integer between 1 and 100")
	}
	return limit, nil
}
