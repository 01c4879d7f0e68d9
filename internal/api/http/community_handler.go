package http

import (
	"net/http"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/service"
)

type CommunityHandler struct {
	communitySvc service.CommunityService
}

func NewCommunityHandler(communitySvc service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communitySvc: communitySvc}
}

type createCommunityRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
}

type addMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCommunityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	community := &domain.Community{
		Name:         req.Name,
		Address:      req.Address,
		ContactEmail: req.ContactEmail,
	}
	if err := h.communitySvc.CreateCommunity(r.Context(), userIDFrom(r), community); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, community)
}

func (h *CommunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	communityID, err := pathID(r, "communityID")
	if err != nil {
		writeError(w, err)
		return
	}
	community, err := h.communitySvc.GetCommunity(r.Context(), userIDFrom(r), communityID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, community)
}

func (h *CommunityHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	communityID, err := pathID(r, "communityID")
	if err != nil {
		writeError(w, err)
		return
	}
	var req addMemberRequest
	if !decodeBody(w, r, &req) {
		return
	}
	role, err := domain.ParseCommunityRole(req.Role)
	if err != nil {
		writeError(w, err)
		return
	}
	membership, err := h.communitySvc.AddMember(r.Context(), userIDFrom(r), communityID, req.Email, role)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, membership)
}

func (h *CommunityHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	communityID, err := pathID(r, "communityID")
	if err != nil {
		writeError(w, err)
		return
	}
	users, memberships, err := h.communitySvc.ListMembers(r.Context(), userIDFrom(r), communityID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"members":     users,
		"memberships": memberships,
	})
}

func (h *CommunityHandler) DeactivateMember(w http.ResponseWriter, r *http.Request) {
	communityID, err := pathID(r, "communityID")
	if err != nil {
		writeError(w, err)
		return
	}
	memberID, err := pathID(r, "userID")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.communitySvc.DeactivateMember(r.Context(), userIDFrom(r), communityID, memberID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
