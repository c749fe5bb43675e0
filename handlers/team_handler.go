package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/matchup-generator/services"
)

const maxLogoSize = 5 << 20 // 5MB

type TeamHandler struct {
	teamService    services.TeamService
	matchupService services.MatchupService
}

func NewTeamHandler(ts services.TeamService, ms services.MatchupService) *TeamHandler {
	return &TeamHandler{
		teamService:    ts,
		matchupService: ms,
	}
}

// ListTeams godoc
// @Summary      List all teams
// @Tags         teams
// @Produce      json
// @Success      200  {object}  map[string][]models.Team
// @Failure      502  {object}  map[string]string
// @Router       /teams [get]
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SearchTeams godoc
// @Summary      Fuzzy team search
// @Description  With eligible=true only teams that pass the session filter and have not played today are searched.
// @Tags         teams
// @Produce      json
// @Param        q         query  string  false  "search text"
// @Param        eligible  query  bool    false  "restrict to side editor choices"
// @Param        league    query  string  false  "league filter (eligible only)"
// @Param        limit     query  int     false  "max results"
// @Success      200  {object}  map[string][]models.Team
// @Router       /teams/search [get]
func (h *TeamHandler) SearchTeams(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			failedValidationResponse(w, r, map[string]string{"limit": "must be a positive integer"})
			return
		}
		limit = n
	}

	eligible := false
	if raw := r.URL.Query().Get("eligible"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			failedValidationResponse(w, r, map[string]string{"eligible": "must be true or false"})
			return
		}
		eligible = b
	}

	if !eligible {
		teams, err := h.teamService.Search(r.Context(), query, limit)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}
	opts, err := h.matchupService.SideOptions(r.Context(), sessionID, r.URL.Query().Get("league"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	teams := services.RankTeams(opts.Teams, query, limit)
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListLeagues godoc
// @Summary      Leagues available to the side editor
// @Tags         teams
// @Produce      json
// @Success      200  {object}  map[string][]string
// @Router       /teams/leagues [get]
func (h *TeamHandler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionID(w, r)
	if !ok {
		return
	}
	opts, err := h.matchupService.SideOptions(r.Context(), sessionID, "")
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leagues": opts.Leagues}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadLogo godoc
// @Summary      Upload a team logo
// @Tags         teams
// @Accept       multipart/form-data
// @Produce      json
// @Param        teamID  path      string  true  "team id"
// @Param        logo    formData  file    true  "logo image"
// @Success      200  {object}  map[string]models.Team
// @Failure      415  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /teams/{teamID}/logo [put]
func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	teamID, err := getStringParam(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLogoSize+1024)
	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("logo") // "logo" - имя поля в форме
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get logo file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for logo"))
		return
	}

	team, err := h.teamService.UploadLogo(r.Context(), teamID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
