package api

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/OilBro/api-510-inspection-manager/internal/models"
)

// InspectionService defines the service operations the HTTP surface exposes.
type InspectionService interface {
	Aggregate(ctx context.Context, inspectionID string) ([]models.CalculationResult, error)
	ResolveStress(ctx context.Context, material string, tempF float64) (float64, bool, error)
	Evaluate(component models.Component, in models.CalculationInput) models.CalculationResult
}

// Handler serves the calculation API.
type Handler struct {
	logger  *slog.Logger
	service InspectionService
}

// NewHandler constructs the API handler.
func NewHandler(logger *slog.Logger, service InspectionService) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// Routes registers all API routes on a new router.
func (h *Handler) Routes() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/inspections/{id}/aggregate", h.AggregateInspection).Methods(http.MethodPost)
	api.HandleFunc("/materials/stress", h.ResolveStress).Methods(http.MethodGet)
	api.HandleFunc("/calc/component", h.CalculateComponent).Methods(http.MethodPost)
	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	return router
}

// componentResult is the wire form of one calculation result. An unbounded
// minimum thickness (the +Inf sentinel) is carried as a null value with
// achievable set to false, since JSON has no infinity literal.
type componentResult struct {
	Component          string   `json:"component"`
	Kind               string   `json:"kind"`
	MinimumThicknessIn *float64 `json:"minimum_thickness_in"`
	Achievable         bool     `json:"achievable"`
	MAWPPSI            float64  `json:"mawp_psi"`
	LongTermRate       float64  `json:"long_term_rate"`
	ShortTermRate      float64  `json:"short_term_rate"`
	GoverningRate      float64  `json:"governing_rate"`
	RateTag            string   `json:"governing_rate_tag"`
	RateRationale      string   `json:"rate_rationale"`
	RemainingLifeYears float64  `json:"remaining_life_years"`
	IntervalYears      float64  `json:"next_interval_years"`
	NextInspectionDate string   `json:"next_inspection_date"`
	BelowMinimum       bool     `json:"below_minimum"`
	Status             string   `json:"status"`
	StatusDetail       string   `json:"status_detail"`
}

func toComponentResult(res models.CalculationResult) componentResult {
	out := componentResult{
		Component:          res.Component.Name,
		Kind:               string(res.Component.Kind),
		Achievable:         !math.IsInf(res.MinimumThickness, 1),
		MAWPPSI:            res.MAWP,
		LongTermRate:       res.LongTermRate,
		ShortTermRate:      res.ShortTermRate,
		GoverningRate:      res.GoverningRate,
		RateTag:            string(res.RateTag),
		RateRationale:      res.RateRationale,
		RemainingLifeYears: res.RemainingLifeYears,
		IntervalYears:      res.IntervalYears,
		NextInspectionDate: res.NextInspectionDate.Format("2006-01-02"),
		BelowMinimum:       res.BelowMinimum,
		Status:             string(res.Status),
		StatusDetail:       res.StatusDetail,
	}
	if out.Achievable {
		min := res.MinimumThickness
		out.MinimumThicknessIn = &min
	}
	return out
}

// AggregateInspection runs the aggregation pipeline for one inspection and
// returns the ratified result set.
func (h *Handler) AggregateInspection(w http.ResponseWriter, r *http.Request) {
	inspectionID := mux.Vars(r)["id"]

	results, err := h.service.Aggregate(r.Context(), inspectionID)
	if err != nil {
		h.logger.Error("aggregation request failed",
			slog.String("inspection_id", inspectionID),
			slog.Any("error", err),
		)
		http.Error(w, "aggregation failed", http.StatusUnprocessableEntity)
		return
	}

	payload := struct {
		InspectionID string            `json:"inspection_id"`
		Results      []componentResult `json:"results"`
	}{InspectionID: inspectionID}
	for _, res := range results {
		payload.Results = append(payload.Results, toComponentResult(res))
	}
	writeJSON(w, http.StatusOK, payload)
}

// ResolveStress answers an allowable-stress lookup. Unknown materials return
// 404 so callers can surface the unresolved lookup instead of defaulting.
func (h *Handler) ResolveStress(w http.ResponseWriter, r *http.Request) {
	material := r.URL.Query().Get("material")
	tempRaw := r.URL.Query().Get("temperature")
	if material == "" || tempRaw == "" {
		http.Error(w, "material and temperature are required", http.StatusBadRequest)
		return
	}
	tempF, err := strconv.ParseFloat(tempRaw, 64)
	if err != nil {
		http.Error(w, "temperature must be numeric", http.StatusBadRequest)
		return
	}

	stress, found, err := h.service.ResolveStress(r.Context(), material, tempF)
	if err != nil {
		h.logger.Error("stress lookup failed", slog.Any("error", err))
		http.Error(w, "stress lookup failed", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "no tabulated stress for material", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Material           string  `json:"material"`
		TemperatureF       float64 `json:"temperature_f"`
		AllowableStressPSI float64 `json:"allowable_stress_psi"`
	}{material, tempF, stress})
}

// calcRequest is the stateless single-component calculation payload.
type calcRequest struct {
	Kind              string  `json:"kind"`
	HeadType          string  `json:"head_type"`
	DesignPressurePSI float64 `json:"design_pressure_psi"`
	InsideDiameterIn  float64 `json:"inside_diameter_in"`
	AllowableStress   float64 `json:"allowable_stress_psi"`
	JointEfficiency   float64 `json:"joint_efficiency"`
	ActualThickness   float64 `json:"actual_thickness_in"`
	PreviousThickness float64 `json:"previous_thickness_in"`
	NominalThickness  float64 `json:"nominal_thickness_in"`
	InitialThickness  float64 `json:"initial_thickness_in"`
	RecentSpanYears   float64 `json:"recent_span_years"`
	TotalSpanYears    float64 `json:"total_span_years"`
}

// CalculateComponent evaluates a single component from the request payload
// without touching stored inspection data.
func (h *Handler) CalculateComponent(w http.ResponseWriter, r *http.Request) {
	var req calcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	kind := models.ComponentKind(req.Kind)
	if kind == "" {
		kind = models.KindShell
	}
	component := models.Component{Kind: kind, Name: string(kind)}
	in := models.CalculationInput{
		DesignPressurePSI: req.DesignPressurePSI,
		InsideDiameterIn:  req.InsideDiameterIn,
		AllowableStress:   req.AllowableStress,
		JointEfficiency:   req.JointEfficiency,
		ActualThickness:   req.ActualThickness,
		PreviousThickness: req.PreviousThickness,
		NominalThickness:  req.NominalThickness,
		InitialThickness:  req.InitialThickness,
		RecentSpanYears:   req.RecentSpanYears,
		TotalSpanYears:    req.TotalSpanYears,
		Kind:              kind,
		HeadType:          models.HeadType(req.HeadType),
	}

	result := h.service.Evaluate(component, in)
	writeJSON(w, http.StatusOK, toComponentResult(result))
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string    `json:"status"`
		Time   time.Time `json:"time"`
	}{"ok", time.Now().UTC()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
