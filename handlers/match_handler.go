package handlers

import (
	"net/http"

	"github.com/Dosada05/matchup-generator/services"
)

type MatchHandler struct {
	matchService services.MatchService
	board        services.TodayBoard
}

func NewMatchHandler(ms services.MatchService, board services.TodayBoard) *MatchHandler {
	return &MatchHandler{
		matchService: ms,
		board:        board,
	}
}

// Правила состава (до 4 игроков, без повторов) проверяет сервис,
// здесь только форма запроса
type recordMatchRequest struct {
	Team1ID        string   `json:"team1_id" validate:"required"`
	Team2ID        string   `json:"team2_id" validate:"required"`
	Team1PlayerIDs []string `json:"team1_player_ids" validate:"omitempty,dive,required"`
	Team2PlayerIDs []string `json:"team2_player_ids" validate:"omitempty,dive,required"`
}

type scoreRequest struct {
	Team1Score *int `json:"team1_score" validate:"required"`
	Team2Score *int `json:"team2_score" validate:"required"`
}

// TodayMatches godoc
// @Summary      Today's match history
// @Description  Newest first; highlighted marks the biggest wins.
// @Tags         matches
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Router       /matches/today [get]
func (h *MatchHandler) TodayMatches(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.board.Snapshot(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"generation": snapshot.Generation,
		"day":        snapshot.Day,
		"matches":    snapshot.Matches,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecordMatch godoc
// @Summary      Record a match with both rosters
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        body  body  recordMatchRequest  true  "teams and players"
// @Success      201  {object}  map[string]models.Match
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string  "failed to save match"
// @Router       /matches [post]
func (h *MatchHandler) RecordMatch(w http.ResponseWriter, r *http.Request) {
	var input recordMatchRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		failedValidationResponse(w, r, validationErrors(err))
		return
	}

	match, err := h.matchService.RecordMatch(r.Context(), services.RecordMatchInput{
		Team1ID:        input.Team1ID,
		Team2ID:        input.Team2ID,
		Team1PlayerIDs: input.Team1PlayerIDs,
		Team2PlayerIDs: input.Team2PlayerIDs,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateScore godoc
// @Summary      Set the final score
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        matchID  path  string        true  "match id"
// @Param        body     body  scoreRequest  true  "scores"
// @Success      200  {object}  map[string]models.Match
// @Failure      404  {object}  map[string]string
// @Router       /matches/{matchID}/score [put]
func (h *MatchHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := getStringParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input scoreRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := validate.Struct(input); err != nil {
		failedValidationResponse(w, r, validationErrors(err))
		return
	}

	match, err := h.matchService.UpdateScore(r.Context(), matchID, *input.Team1Score, *input.Team2Score)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteMatch godoc
// @Summary      Delete a match and its roster
// @Tags         matches
// @Param        matchID  path  string  true  "match id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /matches/{matchID} [delete]
func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := getStringParam(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.DeleteMatch(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RefreshHistory godoc
// @Summary      Ask every client to reload today's board
// @Tags         matches
// @Produce      json
// @Success      202  {object}  map[string]uint64
// @Router       /matches/refresh [post]
func (h *MatchHandler) RefreshHistory(w http.ResponseWriter, r *http.Request) {
	gen := h.matchService.RefreshHistory(r.Context())

	if err := writeJSON(w, http.StatusAccepted, jsonResponse{"generation": gen}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// TodayStandings godoc
// @Summary      Today's player leaderboard
// @Tags         standings
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Router       /standings/today [get]
func (h *MatchHandler) TodayStandings(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.board.Snapshot(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"generation": snapshot.Generation,
		"day":        snapshot.Day,
		"standings":  snapshot.Standings,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
