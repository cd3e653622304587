package http

import (
	"net/http"

	"recruitment-tracker/internal/domain"
	"recruitment-tracker/internal/service"
)

type RecruitmentHandler struct {
	recruitmentService service.RecruitmentService
}

func NewRecruitmentHandler(recruitmentService service.RecruitmentService) *RecruitmentHandler {
	return &RecruitmentHandler{recruitmentService: recruitmentService}
}

type createResponse struct {
	Message     string              `json:"message"`
	Recruitment *domain.Recruitment `json:"recruitment"`
}

type updateRequest struct {
	ID      string `json:"id"`
	PaidOut string `json:"paidOut"`
	Status  string `json:"status"` // older clients send the status under this name
}

type deleteRequest struct {
	ID string `json:"id"`
}

// List handles GET /recruitments
func (h *RecruitmentHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.recruitmentService.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if records == nil {
		records = []domain.Recruitment{}
	}
	JSONResponse(w, http.StatusOK, records)
}

// Create handles POST /recruitments
func (h *RecruitmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.NewRecruitment
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}

	rec, err := h.recruitmentService.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSONResponse(w, http.StatusCreated, createResponse{
		Message:     "Recruitment created successfully",
		Recruitment: rec,
	})
}

// Update handles PUT /recruitments
func (h *RecruitmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		writeServiceError(w, r, err)
		return
	}
	status := req.PaidOut
	if status == "" {
		status = req.Status
	}

	if err := h.recruitmentService.UpdatePayout(r.Context(), req.ID, status); err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, MessageBody{Message: "Recruitment updated successfully"})
}

// Delete handles DELETE /recruitments. The id may come in the body or as ?id=.
func (h *RecruitmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if req.ID == "" {
		req.ID = r.URL.Query().Get("id")
	}

	if err := h.recruitmentService.Delete(r.Context(), req.ID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, MessageBody{Message: "Recruitment deleted successfully"})
}

// Summary handles GET /recruitments/summary
func (h *RecruitmentHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.recruitmentService.Summary(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	JSONResponse(w, http.StatusOK, summary)
}
