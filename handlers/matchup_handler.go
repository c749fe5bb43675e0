package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dosada05/matchup-generator/models"
	"github.com/Dosada05/matchup-generator/services"
)

type MatchupHandler struct {
	matchupService services.MatchupService
}

func NewMatchupHandler(ms services.MatchupService) *MatchupHandler {
	return &MatchupHandler{matchupService: ms}
}

type editSideRequest struct {
	TeamID string `json:"team_id" validate:"required_without=Random,excluded_with=Random"`
	Random bool   `json:"random"`
}

// GetMatchup godoc
// @Summary      Current matchup of the session
// @Description  Re-validates the displayed pair against the filter and today's history, drawing a new one if needed.
// @Tags         matchup
// @Produce      json
// @Success      200  {object}  map[string]services.MatchupView
// @Failure      502  {object}  map[string]string
// @Router       /matchup [get]
func (h *MatchupHandler) GetMatchup(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.matchupService.Current(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"view": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateMatchup godoc
// @Summary      Draw a new matchup
// @Tags         matchup
// @Produce      json
// @Success      200  {object}  map[string]services.MatchupView
// @Failure      409  {object}  map[string]string  "not enough unplayed teams"
// @Router       /matchup/generate [post]
func (h *MatchupHandler) GenerateMatchup(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.matchupService.Generate(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"view": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// EditSide godoc
// @Summary      Replace one side of the matchup
// @Description  Pass team_id to choose a team or random=true to draw one from the eligible unplayed teams.
// @Tags         matchup
// @Accept       json
// @Produce      json
// @Param        side  path  int              true  "1 or 2"
// @Param        body  body  editSideRequest  true  "team choice"
// @Success      200  {object}  map[string]services.MatchupView
// @Failure      404  {object}  map[string]string
// @Router       /matchup/sides/{side} [put]
func (h *MatchupHandler) EditSide(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}

	raw, err := getStringParam(r, "side")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	n, err := strconv.Atoi(raw)
	side := models.Side(n)
	if err != nil || !side.Valid() {
		badRequestResponse(w, r, services.ErrInvalidSide)
		return
	}

	var input editSideRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		failedValidationResponse(w, r, validationErrors(err))
		return
	}

	var view *services.MatchupView
	if input.Random {
		view, err = h.matchupService.RandomizeSide(r.Context(), sessionID, side)
	} else {
		view, err = h.matchupService.EditSide(r.Context(), sessionID, side, input.TeamID)
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"view": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
