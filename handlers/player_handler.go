package handlers

import (
	"net/http"

	"github.com/Dosada05/matchup-generator/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

type playerNameRequest struct {
	Name string `json:"name" validate:"max=64"`
}

// ListPlayers godoc
// @Summary      List players by name
// @Tags         players
// @Produce      json
// @Success      200  {object}  map[string][]models.Player
// @Router       /players [get]
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreatePlayer godoc
// @Summary      Create a player
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        body  body  playerNameRequest  true  "player name"
// @Success      201  {object}  map[string]models.Player
// @Failure      409  {object}  map[string]string
// @Router       /players [post]
func (h *PlayerHandler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var input playerNameRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		failedValidationResponse(w, r, validationErrors(err))
		return
	}

	player, err := h.playerService.Create(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RenamePlayer godoc
// @Summary      Rename a player
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        playerID  path  string             true  "player id"
// @Param        body      body  playerNameRequest  true  "new name"
// @Success      200  {object}  map[string]models.Player
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /players/{playerID} [patch]
func (h *PlayerHandler) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := getStringParam(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input playerNameRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		failedValidationResponse(w, r, validationErrors(err))
		return
	}

	player, err := h.playerService.Rename(r.Context(), playerID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
