package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jakechorley/staffhours/pkg/core/allocator"
	"github.com/jakechorley/staffhours/pkg/core/model"
	"github.com/jakechorley/staffhours/pkg/core/services"
	"github.com/jakechorley/staffhours/pkg/db"
	"github.com/jakechorley/staffhours/pkg/metrics"
)

type preferenceRequest struct {
	Preferences string `json:"preferences"`
}

type employeePreferenceResponse struct {
	Employee    *model.Employee `json:"employee"`
	Preferences string          `json:"preferences"`
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Employee handlers

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := services.ListEmployees(r.Context(), s.employees, s.logger)
	if err != nil {
		s.internalError(w, "failed to list employees", err)
		return
	}

	s.respondJSON(w, http.StatusOK, employees)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var input model.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, codeInvalidRequest, "invalid JSON body")
		return
	}

	employee, err := services.AddEmployee(r.Context(), s.employees, s.logger, input)
	if err != nil {
		s.respondEmployeeError(w, err, "failed to add employee")
		return
	}

	s.respondJSON(w, http.StatusCreated, employee)
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := s.employeeID(w, r)
	if !ok {
		return
	}

	employee, err := services.GetEmployee(r.Context(), s.employees, s.logger, id)
	if err != nil {
		s.respondEmployeeError(w, err, "failed to get employee")
		return
	}

	s.respondJSON(w, http.StatusOK, employee)
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := s.employeeID(w, r)
	if !ok {
		return
	}

	var input model.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, codeInvalidRequest, "invalid JSON body")
		return
	}

	employee, err := services.EditEmployee(r.Context(), s.employees, s.logger, id, input)
	if err != nil {
		s.respondEmployeeError(w, err, "failed to update employee")
		return
	}

	s.respondJSON(w, http.StatusOK, employee)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := s.employeeID(w, r)
	if !ok {
		return
	}

	if err := services.DeleteEmployee(r.Context(), s.employees, s.preferences, s.logger, id); err != nil {
		s.respondEmployeeError(w, err, "failed to delete employee")
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}

// Preference handlers

func (s *Server) handleListPreferences(w http.ResponseWriter, r *http.Request) {
	views, err := services.ShowPreferences(r.Context(), s.employees, s.preferences, s.logger)
	if err != nil {
		s.internalError(w, "failed to list preferences", err)
		return
	}

	s.respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetEmployeePreference(w http.ResponseWriter, r *http.Request) {
	id, ok := s.employeeID(w, r)
	if !ok {
		return
	}

	pref, err := services.GetEmployeePreference(r.Context(), s.employees, s.preferences, s.logger, id)
	if err != nil {
		s.respondEmployeeError(w, err, "failed to get preference")
		return
	}

	s.respondJSON(w, http.StatusOK, employeePreferenceResponse{
		Employee:    pref.Employee,
		Preferences: pref.Preference,
	})
}

func (s *Server) handleSubmitPreference(w http.ResponseWriter, r *http.Request) {
	id, ok := s.employeeID(w, r)
	if !ok {
		return
	}

	var req preferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, codeInvalidRequest, "invalid JSON body")
		return
	}

	if err := services.SubmitPreference(r.Context(), s.employees, s.preferences, s.logger, id, req.Preferences); err != nil {
		s.respondEmployeeError(w, err, "failed to submit preference")
		return
	}

	s.respondJSON(w, http.StatusOK, model.Preference{EmployeeID: id, Value: req.Preferences})
}

// Schedule handler

func (s *Server) handleGenerateSchedule(w http.ResponseWriter, r *http.Request) {
	result, err := services.GenerateSchedule(r.Context(), s.employees, s.logger)
	if err != nil {
		var invalid *allocator.InvalidEmployeeDataError
		switch {
		case errors.Is(err, allocator.ErrNoEmployees):
			s.metrics.RecordSchedule(metrics.OutcomeNoEmployees, 0)
			s.respondError(w, http.StatusBadRequest, codeNoEmployees, err.Error())
		case errors.As(err, &invalid):
			s.metrics.RecordSchedule(metrics.OutcomeInvalidData, 0)
			s.respondError(w, http.StatusBadRequest, codeInvalidEmployee, err.Error())
		case errors.Is(err, allocator.ErrZeroPriority):
			s.metrics.RecordSchedule(metrics.OutcomeZeroPriority, 0)
			s.respondError(w, http.StatusBadRequest, codeZeroPriority, err.Error())
		default:
			s.metrics.RecordSchedule(metrics.OutcomeError, 0)
			s.internalError(w, "failed to generate schedule", err)
		}
		return
	}

	s.metrics.RecordSchedule(metrics.OutcomeSuccess, len(result.Entries))
	s.respondJSON(w, http.StatusOK, result)
}

// Helpers

// employeeID parses the {id} URL parameter, writing a 400 if it is not an integer
func (s *Server) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		s.respondError(w, http.StatusBadRequest, codeInvalidID, "employee id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (s *Server) respondEmployeeError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		s.respondError(w, http.StatusNotFound, codeNotFound, "employee not found")
	case errors.Is(err, services.ErrValidation):
		s.respondError(w, http.StatusBadRequest, codeValidation, err.Error())
	default:
		s.internalError(w, msg, err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	s.respondError(w, http.StatusInternalServerError, codeInternal, msg)
}
