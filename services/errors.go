package services

import (
	"errors"

	"github.com/Dosada05/matchup-generator/matchup"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Чтение из хранилища не удалось; логика подбора пары не выполняется
	ErrFetch = errors.New("failed to load data")

	// Матч записан не полностью: строка матча откатана вместе с составом
	ErrPartialWrite = errors.New("failed to save match")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed    = errors.New("validation failed")
	ErrRosterEmpty         = errors.New("Please add at least one player to the match.")
	ErrRosterTooLarge      = errors.New("Maximum 4 players per team.")
	ErrRosterDuplicate     = errors.New("Player already selected for the other team.")
	ErrRosterRepeated      = errors.New("Player already added to this team.")
	ErrTeamRequired        = errors.New("Cannot save match, teams not available.")
	ErrScoreInvalid        = errors.New("Please enter valid non-negative scores.")
	ErrPlayerNameRequired  = errors.New("Name cannot be empty.")
	ErrInvalidSide         = matchup.ErrInvalidSide
	ErrNoMatchup           = matchup.ErrNoMatchup
	ErrSessionRequired     = errors.New("session id is required")
	ErrUnsupportedLogoType = errors.New("unsupported logo content type")
	ErrLogoStorageDisabled = errors.New("logo storage is not configured")

	// Ошибки конфликтов
	ErrPlayerNameConflict = errors.New("Another player already has this name.")

	// Ошибки, специфичные для сущностей
	ErrTeamNotFound   = errors.New("team not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrMatchNotFound  = errors.New("match not found")
)

// NotEnoughCandidatesError is re-exported for handlers.
type NotEnoughCandidatesError = matchup.NotEnoughCandidatesError
