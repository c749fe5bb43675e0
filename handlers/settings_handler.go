package handlers

import (
	"net/http"

	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/services"
)

type SettingsHandler struct {
	settingsService services.SettingsService
}

func NewSettingsHandler(ss services.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: ss}
}

// Указатели нужны, чтобы отличить отсутствующее поле от нуля
type settingsRequest struct {
	MinRating      *float64 `json:"min_rating" validate:"required"`
	MaxRating      *float64 `json:"max_rating" validate:"required"`
	ExcludeNations *bool    `json:"exclude_nations" validate:"required"`
}

// GetSettings godoc
// @Summary      Session generator settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  map[string]models.Settings
// @Router       /settings [get]
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}

	s, err := h.settingsService.Load(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"settings": s}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SaveSettings godoc
// @Summary      Save session generator settings
// @Description  Ratings must lie in [0,5] and min must not exceed max.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  settingsRequest  true  "settings"
// @Success      200  {object}  map[string]models.Settings
// @Failure      422  {object}  map[string]map[string]string
// @Router       /settings [put]
func (h *SettingsHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}

	var input settingsRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		failedValidationResponse(w, r, validationErrors(err))
		return
	}

	saved, err := h.settingsService.Save(r.Context(), sessionID, models.Settings{
		MinRating:      *input.MinRating,
		MaxRating:      *input.MaxRating,
		ExcludeNations: *input.ExcludeNations,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"settings": saved}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
