package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/swaggo/swag"

	_ "github.com/firstresponse-ai/firstresponse-core/internal/adapters/driving/http/docs"
	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
	"github.com/firstresponse-ai/firstresponse-core/internal/worker"
)

// DefaultLanguage is used when a question arrives without lang
const DefaultLanguage = "English"

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"people and days must be greater than 0"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"healthy"`
}

// MessageResponse is returned by the root endpoint
type MessageResponse struct {
	Message string `json:"message" example:"FirstResponse Backend is running!"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// ReadyResponse reports readiness with the runtime flags
type ReadyResponse struct {
	Status  string               `json:"status" example:"ready"`
	Error   string               `json:"error,omitempty"`
	Runtime domain.RuntimeStatus `json:"runtime"`
}

// RationAllResponse is the allocation table for a population
type RationAllResponse struct {
	People     int                   `json:"people" example:"5"`
	Days       int                   `json:"days" example:"2"`
	Allocation []domain.RationResult `json:"allocation"`
}

// RationExplainedRequest is the body of POST /ration_all_explained
type RationExplainedRequest struct {
	WaterLiters    float64 `json:"water_liters" example:"10"`
	FoodItems      string  `json:"food_items" example:"rice, lentils"`
	MedicinesUnits int     `json:"medicines_units" example:"20"`
	PeopleCount    int     `json:"people_count" example:"5"`
	DaysCount      int     `json:"days_count" example:"2"`
	Lang           string  `json:"lang" example:"English"`
}

// toExplainRequest keeps water and medicine even at zero; food items only
// when named
func (r RationExplainedRequest) toExplainRequest() domain.ExplainRequest {
	res := domain.Resources{
		WaterLiters:   domain.Float64(r.WaterLiters),
		MedicineUnits: domain.Int(r.MedicinesUnits),
	}
	if items := strings.TrimSpace(r.FoodItems); items != "" {
		res.FoodItems = domain.String(items)
	}
	lang := r.Lang
	if lang == "" {
		lang = DefaultLanguage
	}
	return domain.ExplainRequest{
		RationRequest: domain.RationRequest{
			Resources: res,
			People:    r.PeopleCount,
			Days:      r.DaysCount,
		},
		Language: lang,
	}
}

// Health endpoints

// handleRoot godoc
// @Summary      Service banner
// @Tags         Health
// @Produce      json
// @Success      200  {object}  MessageResponse
// @Router       / [get]
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "FirstResponse Backend is running!"})
}

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "healthy"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Ready once the passage index is loaded and the answer cache answers
// @Tags         Health
// @Produce      json
// @Success      200  {object}  ReadyResponse
// @Failure      503  {object}  ReadyResponse
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.readiness == nil {
		writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{Status: "not_ready", Error: "runtime not configured"})
		return
	}

	resp := ReadyResponse{Status: "ready"}
	if cfg := s.readiness.Config(); cfg != nil {
		resp.Runtime = cfg.Snapshot()
	}
	if err := s.readiness.CheckReady(r.Context()); err != nil {
		resp.Status = "not_ready"
		resp.Error = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

func (s *Server) handleSwagger(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusNotFound, "api documentation not available")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// Login stub

// handleLogin godoc
// @Summary      Login
// @Description  Any non-empty username and password yield a preliminary token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Router       /token [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		s.writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleVerifyOTP godoc
// @Summary      Verify OTP
// @Description  Exchanges a preliminary token and the demo OTP for a final token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.OTPRequest  true  "OTP and preliminary token"
// @Success      200      {object}  domain.OTPResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid OTP or token"
// @Router       /verify_otp [post]
func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.OTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.VerifyOTP(r.Context(), req)
	if err != nil {
		s.writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "otp and preliminary_token are required")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "token expired")
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "invalid token")
	default:
		s.logger.Error("authentication failed", "error", err)
		writeError(w, http.StatusInternalServerError, "authentication failed")
	}
}

// Question endpoint

// handleFirstAid godoc
// @Summary      Ask a first-aid question
// @Description  Safety gate, retrieval over the manuals, generation and checklist extraction
// @Tags         FirstAid
// @Produce      json
// @Security     BearerAuth
// @Param        question  query     string  true   "Question"
// @Param        lang      query     string  false  "Language display name or code"  default(English)
// @Success      200       {object}  domain.Answer
// @Failure      400       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Failure      503       {object}  ErrorResponse
// @Router       /first_aid [get]
func (s *Server) handleFirstAid(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	question := strings.TrimSpace(query.Get("question"))
	if question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	lang := query.Get("lang")
	if lang == "" {
		lang = DefaultLanguage
	}

	q := domain.Question{Text: question, Language: lang}
	answer, err := run(r.Context(), s.pool, func(ctx context.Context) (*domain.Answer, error) {
		return s.firstAidService.Ask(ctx, q)
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// Rationing endpoints

// handleRationAll godoc
// @Summary      Allocate resources
// @Description  Per-person-per-day allocation. Quantities that are zero or negative are treated as absent.
// @Tags         Rationing
// @Produce      json
// @Security     BearerAuth
// @Param        water_l         query     number   false  "Water in liters"
// @Param        food_kcal       query     number   false  "Food in kcal"
// @Param        medicine_units  query     integer  false  "Medicine units"
// @Param        people          query     integer  false  "People"  default(1)
// @Param        days            query     integer  false  "Days"    default(1)
// @Success      200             {object}  RationAllResponse
// @Failure      400             {object}  ErrorResponse
// @Router       /ration_all [get]
func (s *Server) handleRationAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	water, err := floatParam(query.Get("water_l"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "water_l must be a number")
		return
	}
	kcal, err := floatParam(query.Get("food_kcal"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "food_kcal must be a number")
		return
	}
	medicine, err := intParam(query.Get("medicine_units"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "medicine_units must be an integer")
		return
	}
	people, err := intParam(query.Get("people"), 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "people must be an integer")
		return
	}
	days, err := intParam(query.Get("days"), 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "days must be an integer")
		return
	}

	var res domain.Resources
	if water > 0 {
		res.WaterLiters = domain.Float64(water)
	}
	if kcal > 0 {
		res.FoodKcal = domain.Float64(kcal)
	}
	if medicine > 0 {
		res.MedicineUnits = domain.Int(medicine)
	}

	allocation, err := s.rationingService.Allocate(r.Context(), domain.RationRequest{
		Resources: res,
		People:    people,
		Days:      days,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RationAllResponse{People: people, Days: days, Allocation: allocation})
}

// handleRationExplained godoc
// @Summary      Explain an allocation
// @Description  Allocation plus a generated explanation and a resource status block
// @Tags         Rationing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      RationExplainedRequest  true  "Resources, people and days"
// @Success      200      {object}  domain.RationExplanation
// @Failure      400      {object}  ErrorResponse
// @Router       /ration_all_explained [post]
func (s *Server) handleRationExplained(w http.ResponseWriter, r *http.Request) {
	var req RationExplainedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	explainReq := req.toExplainRequest()
	explanation, err := run(r.Context(), s.pool, func(ctx context.Context) (*domain.RationExplanation, error) {
		return s.rationingService.Explain(ctx, explainReq)
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, explanation)
}

// writeServiceError maps domain sentinels to status codes
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": "))
	case errors.Is(err, domain.ErrIntegrity):
		s.logger.Error("integrity fault", "error", err)
		writeError(w, http.StatusInternalServerError, "passage index integrity fault")
	case errors.Is(err, domain.ErrServiceUnavailable), errors.Is(err, worker.ErrPoolStopped):
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		s.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// run executes fn on the worker pool, or inline when no pool is configured
func run[T any](ctx context.Context, pool *worker.Pool, fn func(ctx context.Context) (T, error)) (T, error) {
	if pool == nil {
		return fn(ctx)
	}
	return worker.Do(ctx, pool, fn)
}

func floatParam(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// writeJSON encodes before writing the header, so a value json rejects
// becomes a 500 instead of an empty success
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{Error: "response encoding failed"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
