package http

import (
	"net/http"
	"time"

	"amenibook-backend/internal/service"
	"amenibook-backend/internal/utils"
)

type ReservationHandler struct {
	reservationSvc service.ReservationService
	damageSvc      service.DamageService
}

func NewReservationHandler(reservationSvc service.ReservationService, damageSvc service.DamageService) *ReservationHandler {
	return &ReservationHandler{
		reservationSvc: reservationSvc,
		damageSvc:      damageSvc,
	}
}

type windowPayload struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (p windowPayload) toWindow() utils.TimeWindow {
	return utils.TimeWindow{Start: p.Start, End: p.End}
}

type createReservationRequest struct {
	AmenityID  int32         `json:"amenity_id"`
	Setup      windowPayload `json:"setup"`
	Party      windowPayload `json:"party"`
	GuestCount int32         `json:"guest_count"`
}

type modifyReservationRequest struct {
	Setup      windowPayload `json:"setup"`
	Party      windowPayload `json:"party"`
	GuestCount int32         `json:"guest_count"`
}

type proposeModificationRequest struct {
	Party  windowPayload `json:"party"`
	Reason string        `json:"reason"`
}

type approveRequest struct {
	Cleaning *windowPayload `json:"cleaning,omitempty"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type completeRequest struct {
	DamagesFound bool `json:"damages_found"`
}

type assessDamagesRequest struct {
	AmountCents int32  `json:"amount_cents"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

type reviewDamagesRequest struct {
	Action              string `json:"action"`
	AdjustedAmountCents *int32 `json:"adjusted_amount_cents,omitempty"`
	AdminNotes          string `json:"admin_notes"`
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	communityID, err := pathID(r, "communityID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req createReservationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rv, err := h.reservationSvc.Create(r.Context(), userIDFrom(r), communityID, service.CreateReservationInput{
		AmenityID:  req.AmenityID,
		Setup:      req.Setup.toWindow(),
		Party:      req.Party.toWindow(),
		GuestCount: req.GuestCount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathID(r, "reservationID")
	if err != nil {
		writeError(w, err)
		return
	}
	rv, err := h.reservationSvc.Get(r.Context(), userIDFrom(r), reservationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	communityID, err := pathID(r, "communityID")
	if err != nil {
		writeError(w, err)
		return
	}
	rvs, total, err := h.reservationSvc.ListByResident(r.Context(), userIDFrom(r), communityID,
		r.URL.Query().Get("status"), queryInt32(r, "page", 1), queryInt32(r, "page_size", 20))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": rvs, "total": total})
}

func (h *ReservationHandler) ListCommunity(w http.ResponseWriter, r *http.Request) {
	communityID, err := pathID(r, "communityID")
	if err != nil {
		writeError(w, err)
		return
	}
	rvs, total, err := h.reservationSvc.ListByCommunity(r.Context(), userIDFrom(r), communityID,
		r.URL.Query().Get("status"), queryInt32(r, "page", 1), queryInt32(r, "page_size", 20))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": rvs, "total": total})
}

func (h *ReservationHandler) Modify(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathID(r, "reservationID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req modifyReservationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rv, fee, err := h.reservationSvc.Modify(r.Context(), userIDFrom(r), reservationID, service.ModifyReservationInput{
		Setup:      req.Setup.toWindow(),
		Party:      req.Party.toWindow(),
		GuestCount: req.GuestCount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservation": rv, "fee": fee})
}

func (h *ReservationHandler) PreviewModificationFee(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathID(r, "reservationID")
	if err != nil {
		writeError(w, err)
		return
	}
	fee, err := h.reservationSvc.PreviewModificationFee(r.Context(), userIDFrom(r), reservationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fee)
}

func (h *ReservationHandler) ProposeModification(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathID(r, "reservationID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req proposeModificationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rv, err := h.reservationSvc.ProposeModification(r.Context(), userIDFrom(r), reservationID, service.ProposeModificationInput{
		Party:  req.Party.toWindow(),
		Reason: req.Reason,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *ReservationHandler) AcceptModification(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathID(r, "reservationID")
	if err != nil {
		writeError(w, err)
		return
	}
	rv, err := h.reservationSvc.AcceptModification(r.Context(), userIDFrom(r), reservationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *ReservationHandler) RejectModification(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathID(r, "reservationID")
	if err != nil {
		writeError(w, err)
		return
	}
	rv, err := h.reservationSvc.RejectModification(r.Context(), userIDFrom(r), reservationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *ReservationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathID(r, "reservationID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req approveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var cleaning *utils.TimeWindow
	if req.Cleaning != nil {
		cw := req.Cleaning.toWindow()
		cleaning = &cw
	}
	rv, err := h.reservationSvc.Approve(r.Context(), userIDFrom(r), reservationID, cleaning)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *ReservationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathID(r, "reservationID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req rejectRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rv, err := h.reservationSvc.Reject(r.Context(), userIDFrom(r), reservationID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathID(r, "reservationID")
	if err != nil {
		writeError(w, err)
		return
	}
	rv, fee, err := h.reservationSvc.Cancel(r.Context(), userIDFrom(r), reservationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservation": rv, "fee": fee})
}

func (h *ReservationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathID(r, "reservationID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req completeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rv, err := h.reservationSvc.Complete(r.Context(), userIDFrom(r), reservationID, req.DamagesFound)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *ReservationHandler) AssessDamages(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathID(r, "reservationID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req assessDamagesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rv, err := h.damageSvc.AssessDamages(r.Context(), userIDFrom(r), reservationID, req.AmountCents, req.Description, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

func (h *ReservationHandler) ReviewDamages(w http.ResponseWriter, r *http.Request) {
	reservationID, err := pathID(r, "reservationID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req reviewDamagesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	rv, err := h.damageSvc.ReviewDamageAssessment(r.Context(), userIDFrom(r), reservationID,
		service.DamageReviewAction(req.Action), req.AdjustedAmountCents, req.AdminNotes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}
