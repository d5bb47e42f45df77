package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"foodforall/pkg/types"

	"github.com/go-playground/validator/v10"
)

type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Pagination is the listing envelope. Pages is ceil(total/limit).
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}

	return Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}

func (s *Service) respondSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	s.writeJSON(w, statusCode, apiResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func (s *Service) respondError(w http.ResponseWriter, statusCode int, message, errorLabel string) {
	s.writeJSON(w, statusCode, apiResponse{
		Status:  "error",
		Message: message,
		Error:   errorLabel,
	})
}

// respondFromError maps a taxonomy error onto its HTTP status and error
// label. Anything outside the taxonomy is treated as a storage failure: it
// is logged and surfaced as a 500 with the fallback message.
func (s *Service) respondFromError(w http.ResponseWriter, err error, fallback string) {
	var apiErr *types.Error
	if !errors.As(err, &apiErr) {
		s.logger.WithError(err).Error(fallback)
		s.respondError(w, http.StatusInternalServerError, fallback, "Internal server error")
		return
	}

	statusCode, errorLabel := statusForKind(apiErr.Kind)
	if statusCode == http.StatusInternalServerError {
		s.logger.WithError(err).Error(fallback)
	}

	s.respondError(w, statusCode, apiErr.Message, errorLabel)
}

func statusForKind(kind types.ErrorKind) (int, string) {
	switch kind {
	case types.ErrorKindValidation:
		return http.StatusBadRequest, "Validation error"
	case types.ErrorKindNotFound:
		return http.StatusNotFound, "Not found"
	case types.ErrorKindAuthorization:
		return http.StatusForbidden, "Forbidden"
	case types.ErrorKindInvalidState:
		return http.StatusBadRequest, "Invalid status"
	case types.ErrorKindAuthentication:
		return http.StatusUnauthorized, "Unauthorized"
	case types.ErrorKindDuplicate:
		return http.StatusConflict, "Duplicate entry"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func (s *Service) writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("failed to encode response body")
	}
}

// decodeJSON parses the request body into dst and runs struct validation.
// Failures come back as taxonomy validation errors ready for
// respondFromError.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return types.NewValidationError("Invalid JSON body")
	}

	if err := validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return types.NewValidationError("Invalid request body")
		}

		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return types.NewValidationErrorf("%s is invalid", strings.ToLower(fieldErrs[0].Field()))
		}

		return types.NewValidationError("Invalid request body")
	}

	return nil
}

type pageParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

func paginationParams(r *http.Request) (page, limit int) {
	var params pageParams
	_ = decoder.Decode(&params, r.URL.Query())

	page = params.Page
	if page < 1 {
		page = 1
	}

	limit = params.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return page, limit
}
