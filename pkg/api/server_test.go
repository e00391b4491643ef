package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/staffhours/internal/config"
	"github.com/jakechorley/staffhours/pkg/core/model"
	"github.com/jakechorley/staffhours/pkg/memstore"
	"github.com/jakechorley/staffhours/pkg/metrics"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	s, _ := newTestServerWithStore(t)
	return s
}

func newTestServerWithStore(t *testing.T) (*Server, *memstore.Store) {
	t.Helper()

	store, err := memstore.New()
	require.NoError(t, err)

	return NewServer(config.ServerConfig{}, store, store, metrics.NewManager(), zap.NewNop()), store
}

func do(t *testing.T, s *Server, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func addEmployee(t *testing.T, s *Server, name, skill string, experience int, availability string) int64 {
	t.Helper()

	rec, env := do(t, s, http.MethodPost, "/api/v1/employees", map[string]any{
		"name":         name,
		"skill_level":  skill,
		"experience":   experience,
		"availability": availability,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	return created.ID
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec, env := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRequestID_Propagated(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestEmployeeLifecycle(t *testing.T) {
	s := newTestServer(t)

	id := addEmployee(t, s, "Alice", "2.0", 5, "20 hours")
	assert.Equal(t, int64(1), id)

	rec, env := do(t, s, http.MethodGet, "/api/v1/employees/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"name":"Alice"`)

	rec, _ = do(t, s, http.MethodPut, "/api/v1/employees/1", map[string]any{
		"name": "Alice B", "skill_level": "3", "experience": 6, "availability": "25 hours",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, s, http.MethodGet, "/api/v1/employees", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Alice B", list[0]["name"])

	rec, _ = do(t, s, http.MethodDelete, "/api/v1/employees/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = do(t, s, http.MethodGet, "/api/v1/employees/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, codeNotFound, env.Error.Code)
}

func TestCreateEmployee_Validation(t *testing.T) {
	s := newTestServer(t)

	rec, env := do(t, s, http.MethodPost, "/api/v1/employees", map[string]any{
		"name": "Bob", "skill_level": "high", "experience": 2, "availability": "10",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, codeValidation, env.Error.Code)

	rec, env = do(t, s, http.MethodPost, "/api/v1/employees", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, codeInvalidRequest, env.Error.Code)
}

func TestEmployeeID_Malformed(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/v1/employees/abc", "/api/v1/employees/0", "/api/v1/employees/-3"} {
		rec, env := do(t, s, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, codeInvalidID, env.Error.Code, path)
	}
}

func TestUpdateAndDelete_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec, _ := do(t, s, http.MethodPut, "/api/v1/employees/7", map[string]any{
		"name": "Zed", "skill_level": "1", "experience": 1, "availability": "5",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, s, http.MethodDelete, "/api/v1/employees/7", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPreferences(t *testing.T) {
	s := newTestServer(t)
	addEmployee(t, s, "Alice", "2", 5, "20")
	addEmployee(t, s, "Bob", "1", 1, "10")

	rec, _ := do(t, s, http.MethodPut, "/api/v1/employees/2/preferences", preferenceRequest{Preferences: "No weekends"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := do(t, s, http.MethodGet, "/api/v1/employees/2/preferences", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got employeePreferenceResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Bob", got.Employee.Name)
	assert.Equal(t, "No weekends", got.Preferences)

	rec, env = do(t, s, http.MethodGet, "/api/v1/preferences", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`[{"employee_id":1,"name":"Alice","preferences":""},{"employee_id":2,"name":"Bob","preferences":"No weekends"}]`,
		string(env.Data))

	rec, _ = do(t, s, http.MethodPut, "/api/v1/employees/9/preferences", preferenceRequest{Preferences: "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGenerateSchedule(t *testing.T) {
	s := newTestServer(t)
	addEmployee(t, s, "Alice", "2.0", 5, "20 hours")
	addEmployee(t, s, "Bob", "1.0", 1, "10 hours")

	rec, env := do(t, s, http.MethodGet, "/api/v1/schedule", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Entries []struct {
			Name          string  `json:"name"`
			Priority      float64 `json:"priority"`
			AssignedHours float64 `json:"assigned_hours"`
		} `json:"entries"`
		TotalAvailability int `json:"total_availability"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "Alice", result.Entries[0].Name)
	assert.InDelta(t, 18.2, result.Entries[0].AssignedHours, 1e-9)
	assert.InDelta(t, 0.9, result.Entries[1].AssignedHours, 1e-9)
	assert.Equal(t, 30, result.TotalAvailability)
}

func TestGenerateSchedule_Errors(t *testing.T) {
	t.Run("no employees", func(t *testing.T) {
		s := newTestServer(t)

		rec, env := do(t, s, http.MethodGet, "/api/v1/schedule", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, codeNoEmployees, env.Error.Code)
	})

	t.Run("zero priority", func(t *testing.T) {
		s := newTestServer(t)
		addEmployee(t, s, "Carol", "3", 0, "10")

		rec, env := do(t, s, http.MethodGet, "/api/v1/schedule", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, codeZeroPriority, env.Error.Code)
	})

	t.Run("unparseable stored record", func(t *testing.T) {
		s, store := newTestServerWithStore(t)
		addEmployee(t, s, "Alice", "2", 5, "20")
		require.NoError(t, store.InsertEmployee(context.Background(), &model.Employee{
			Name: "Broken", SkillLevel: "abc", Experience: 3, Availability: "10",
		}))

		rec, env := do(t, s, http.MethodGet, "/api/v1/schedule", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, codeInvalidEmployee, env.Error.Code)
		assert.Contains(t, env.Error.Message, "Broken")
	})

	t.Run("priority overflow", func(t *testing.T) {
		s := newTestServer(t)
		addEmployee(t, s, "First", "1e308", 1, "40")
		addEmployee(t, s, "Second", "1e308", 1, "40")

		rec, env := do(t, s, http.MethodGet, "/api/v1/schedule", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, codeInvalidEmployee, env.Error.Code)
	})
}

func TestCreateEmployee_PriorityOverflowRejected(t *testing.T) {
	s := newTestServer(t)

	rec, env := do(t, s, http.MethodPost, "/api/v1/employees", map[string]any{
		"name":         "Big",
		"skill_level":  "1e308",
		"experience":   2,
		"availability": "40",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, codeValidation, env.Error.Code)
}

func TestCreateEmployee_LongFields(t *testing.T) {
	s := newTestServer(t)
	availability := "Can work 40 hours per week except on public holidays and school breaks"

	id := addEmployee(t, s, "Alice", "2", 5, availability)

	rec, env := do(t, s, http.MethodGet, fmt.Sprintf("/api/v1/employees/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Employee
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, availability, got.Availability)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodGet, "/api/v1/schedule", nil)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `staffhours_schedule_generations_total{outcome="no_employees"} 1`)
}

func TestRespondJSON_UnencodablePayload(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()

	s.respondJSON(rec, http.StatusOK, map[string]float64{"hours": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Error)
	assert.Equal(t, codeInternal, env.Error.Code)
}
