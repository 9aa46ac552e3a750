package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/brunovl/leadbridge/internal/entity"
	"github.com/brunovl/leadbridge/internal/usecase"
)

type TestLeadHandler struct {
	Processor *usecase.ProcessLeadUseCase
}

func NewTestLeadHandler(processor *usecase.ProcessLeadUseCase) *TestLeadHandler {
	return &TestLeadHandler{Processor: processor}
}

type TestLeadRequest struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
}

type TestLeadResponse struct {
	Success bool               `json:"success"`
	Results []TestEffectResult `json:"results"`
}

type TestEffectResult struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// Handle runs the full side-effect pipeline on a synthetic lead so the
// wiring can be exercised without waiting for a real Facebook submission.
func (h *TestLeadHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req TestLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	lead := entity.Lead{
		ID:           "test-" + time.Now().Format("20060102150405"),
		CreatedTime:  time.Now().UTC().Format(time.RFC3339),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Email:        req.Email,
		CompanyName:  req.CompanyName,
		Platform:     "Test",
		CampaignName: "Manual Test",
	}
	if lead.FullName == "" {
		lead.FullName = "Test Lead"
	}

	results := h.Processor.Execute(r.Context(), lead)

	resp := TestLeadResponse{Success: true}
	for _, res := range results {
		out := TestEffectResult{Service: res.Service, Status: res.Status()}
		if res.Err != nil {
			out.Error = res.Err.Error()
			resp.Success = false
		}
		resp.Results = append(resp.Results, out)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
