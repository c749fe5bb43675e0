package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/Dosada05/matchup-generator/middleware"
	"github.com/Dosada05/matchup-generator/services"
	"github.com/Dosada05/matchup-generator/settings"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type jsonResponse map[string]interface{}

// validate is shared by all handlers; validator.Validate caches struct info
// and is safe for concurrent use.
var validate = newValidator()

// newValidator reports field names by their json tags.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576 // 1MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		case errors.As(err, &invalidUnmarshalError):
			panic(err) // ошибка программиста: передан не указатель
		default:
			return err
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	if err != nil {
		return err
	}

	return nil
}

// validationErrors переводит ошибки validator в карту поле -> сообщение.
// Ключи берутся из json-тегов DTO.
func validationErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": err.Error()}
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := jsonFieldName(fe)
		switch fe.Tag() {
		case "required", "required_without":
			fields[name] = "must be provided"
		case "min", "gte":
			fields[name] = fmt.Sprintf("must be at least %s", fe.Param())
		case "max", "lte":
			fields[name] = fmt.Sprintf("must be at most %s", fe.Param())
		case "oneof":
			fields[name] = fmt.Sprintf("must be one of: %s", fe.Param())
		case "uuid4", "uuid":
			fields[name] = "must be a valid id"
		case "unique":
			fields[name] = "must not contain duplicates"
		case "excluded_with":
			fields[name] = "must not be combined with " + strings.ToLower(fe.Param())
		default:
			fields[name] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		}
	}
	return fields
}

func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "body"
	}
	return name
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	err := writeJSON(w, status, env, nil)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response",
			slog.String("path", r.URL.Path), slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.ErrorContext(r.Context(), "internal server error",
		slog.String("method", r.Method), slog.String("path", r.URL.Path), slog.Any("error", err))
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	errorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	errorResponse(w, r, http.StatusNotFound, message)
}

func conflictResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusConflict, message)
}

func unavailableResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.WarnContext(r.Context(), "dependency unavailable", slog.String("path", r.URL.Path), slog.Any("error", err))
	errorResponse(w, r, http.StatusServiceUnavailable, "the service is temporarily unavailable, please try again later")
}

// ruleErrors are validation failures whose text is shown to the user as is.
var ruleErrors = []error{
	services.ErrRosterEmpty,
	services.ErrRosterTooLarge,
	services.ErrRosterDuplicate,
	services.ErrRosterRepeated,
	services.ErrTeamRequired,
	services.ErrScoreInvalid,
	services.ErrPlayerNameRequired,
	services.ErrInvalidSide,
	services.ErrSessionRequired,
}

// mapServiceErrorToHTTP преобразует ошибки сервисного слоя в HTTP-ответы
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	var notEnough *services.NotEnoughCandidatesError
	var fieldErrs *services.ValidationError

	switch {
	// Подбор пары невозможен: сообщение показывается пользователю
	case errors.As(err, &notEnough):
		conflictResponse(w, r, notEnough.Error())

	case errors.As(err, &fieldErrs):
		failedValidationResponse(w, r, fieldErrs.Fields)

	// Невалидные данные / бизнес-правила
	case errors.Is(err, services.ErrValidationFailed):
		for _, rule := range ruleErrors {
			if errors.Is(err, rule) {
				badRequestResponse(w, r, rule)
				return
			}
		}
		badRequestResponse(w, r, err)
	case errors.Is(err, services.ErrScoreInvalid),
		errors.Is(err, services.ErrPlayerNameRequired),
		errors.Is(err, services.ErrInvalidSide),
		errors.Is(err, services.ErrSessionRequired):
		badRequestResponse(w, r, err)
	case errors.Is(err, services.ErrUnsupportedLogoType):
		errorResponse(w, r, http.StatusUnsupportedMediaType, err.Error())

	// Общие ошибки
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrMatchNotFound):
		notFoundResponse(w, r)

	// Конфликты
	case errors.Is(err, services.ErrPlayerNameConflict),
		errors.Is(err, services.ErrNoMatchup):
		conflictResponse(w, r, err.Error())

	// Матч откатан целиком, причину пишем только в лог
	case errors.Is(err, services.ErrPartialWrite):
		slog.ErrorContext(r.Context(), "match was not saved", slog.Any("error", err))
		errorResponse(w, r, http.StatusInternalServerError, services.ErrPartialWrite.Error())

	case errors.Is(err, services.ErrFetch):
		slog.ErrorContext(r.Context(), "data fetch failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		errorResponse(w, r, http.StatusBadGateway, "Failed to load teams or match history. Please refresh the page.")

	case errors.Is(err, services.ErrLogoStorageDisabled),
		errors.Is(err, settings.ErrStoreUnavailable):
		unavailableResponse(w, r, err)

	// Непредвиденные ошибки / ошибки по умолчанию
	default:
		serverErrorResponse(w, r, err)
	}
}

func getStringParam(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if value == "" {
		return "", fmt.Errorf("missing URL parameter %q", name)
	}
	return value, nil
}

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := middleware.GetSessionIDFromContext(r.Context())
	if err != nil {
		badRequestResponse(w, r, services.ErrSessionRequired)
		return "", false
	}
	return id, true
}
