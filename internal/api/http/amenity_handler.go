package http

import (
	"net/http"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/service"
)

type AmenityHandler struct {
	amenitySvc service.AmenityService
}

func NewAmenityHandler(amenitySvc service.AmenityService) *AmenityHandler {
	return &AmenityHandler{amenitySvc: amenitySvc}
}

type amenityRequest struct {
	Name                   string `json:"name"`
	Description            string `json:"description"`
	Capacity               int32  `json:"capacity"`
	ReservationFeeCents    int32  `json:"reservation_fee_cents"`
	DepositCents           int32  `json:"deposit_cents"`
	OperatingDays          string `json:"operating_days"`
	OpensAt                string `json:"opens_at"`
	ClosesAt               string `json:"closes_at"`
	JanitorialRequired     bool   `json:"janitorial_required"`
	ApprovalRequired       bool   `json:"approval_required"`
	CancellationFeeEnabled bool   `json:"cancellation_fee_enabled"`
	ModificationFeeEnabled bool   `json:"modification_fee_enabled"`
}

func (r amenityRequest) toDomain(id, communityID int32) *domain.Amenity {
	return &domain.Amenity{
		ID:                     id,
		CommunityID:            communityID,
		Name:                   r.Name,
		Description:            r.Description,
		Capacity:               r.Capacity,
		ReservationFeeCents:    r.ReservationFeeCents,
		DepositCents:           r.DepositCents,
		OperatingDays:          r.OperatingDays,
		OpensAt:                r.OpensAt,
		ClosesAt:               r.ClosesAt,
		JanitorialRequired:     r.JanitorialRequired,
		ApprovalRequired:       r.ApprovalRequired,
		CancellationFeeEnabled: r.CancellationFeeEnabled,
		ModificationFeeEnabled: r.ModificationFeeEnabled,
	}
}

func (h *AmenityHandler) Create(w http.ResponseWriter, r *http.Request) {
	communityID, err := pathID(r, "communityID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req amenityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	amenity := req.toDomain(0, communityID)
	if err := h.amenitySvc.CreateAmenity(r.Context(), userIDFrom(r), amenity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, amenity)
}

func (h *AmenityHandler) Get(w http.ResponseWriter, r *http.Request) {
	amenityID, err := pathID(r, "amenityID")
	if err != nil {
		writeError(w, err)
		return
	}
	amenity, err := h.amenitySvc.GetAmenity(r.Context(), userIDFrom(r), amenityID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, amenity)
}

func (h *AmenityHandler) List(w http.ResponseWriter, r *http.Request) {
	communityID, err := pathID(r, "communityID")
	if err != nil {
		writeError(w, err)
		return
	}
	amenities, err := h.amenitySvc.ListAmenities(r.Context(), userIDFrom(r), communityID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"amenities": amenities})
}

func (h *AmenityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	communityID, err := pathID(r, "communityID")
	if err != nil {
		writeError(w, err)
		return
	}
	amenityID, err := pathID(r, "amenityID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.amenitySvc.DeleteAmenity(r.Context(), userIDFrom(r), communityID, amenityID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Update applies the amenity edit and reports how many in-flight
// reservations the policy change moved.
func (h *AmenityHandler) Update(w http.ResponseWriter, r *http.Request) {
	communityID, err := pathID(r, "communityID")
	if err != nil {
		writeError(w, err)
		return
	}
	amenityID, err := pathID(r, "amenityID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req amenityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	summary, err := h.amenitySvc.UpdateAmenity(r.Context(), userIDFrom(r), req.toDomain(amenityID, communityID))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
