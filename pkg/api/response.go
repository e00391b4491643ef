package api

import (
	"bytes"
	"encoding/json"
	"net/http"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes returned in the response envelope
const (
	codeInvalidRequest  = "invalid_request"
	codeInvalidID       = "invalid_id"
	codeValidation      = "validation_error"
	codeNotFound        = "employee_not_found"
	codeNoEmployees     = "no_employees"
	codeInvalidEmployee = "invalid_employee_data"
	codeZeroPriority    = "zero_priority"
	codeInternal        = "internal_error"
)

// respondJSON encodes before writing the header so an unencodable payload becomes a 500
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(resp); err != nil {
		s.logger.Sugar().Errorw("failed to encode response", "error", err)
		s.respondError(w, http.StatusInternalServerError, codeInternal, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Sugar().Errorw("failed to write response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Sugar().Errorw("failed to encode error response", "error", err)
	}
}
