package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"amenibook-backend/internal/security"
	"amenibook-backend/internal/service"
)

// NewRouter wires every handler under /api/v1. Auth endpoints are public;
// everything else requires a valid access token.
func NewRouter(
	tokens security.TokenManager,
	authSvc service.AuthService,
	communitySvc service.CommunityService,
	amenitySvc service.AmenityService,
	reservationSvc service.ReservationService,
	damageSvc service.DamageService,
	notificationSvc service.NotificationService,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(authSvc)
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)

	secured := api.NewRoute().Subrouter()
	secured.Use(AuthMiddleware(tokens))

	communityHandler := NewCommunityHandler(communitySvc)
	secured.HandleFunc("/communities", communityHandler.Create).Methods(http.MethodPost)
	secured.HandleFunc("/communities/{communityID}", communityHandler.Get).Methods(http.MethodGet)
	secured.HandleFunc("/communities/{communityID}/members", communityHandler.AddMember).Methods(http.MethodPost)
	secured.HandleFunc("/communities/{communityID}/members", communityHandler.ListMembers).Methods(http.MethodGet)
	secured.HandleFunc("/communities/{communityID}/members/{userID}", communityHandler.DeactivateMember).Methods(http.MethodDelete)

	amenityHandler := NewAmenityHandler(amenitySvc)
	secured.HandleFunc("/communities/{communityID}/amenities", amenityHandler.Create).Methods(http.MethodPost)
	secured.HandleFunc("/communities/{communityID}/amenities", amenityHandler.List).Methods(http.MethodGet)
	secured.HandleFunc("/amenities/{amenityID}", amenityHandler.Get).Methods(http.MethodGet)
	secured.HandleFunc("/communities/{communityID}/amenities/{amenityID}", amenityHandler.Update).Methods(http.MethodPut)
	secured.HandleFunc("/communities/{communityID}/amenities/{amenityID}", amenityHandler.Delete).Methods(http.MethodDelete)

	reservationHandler := NewReservationHandler(reservationSvc, damageSvc)
	secured.HandleFunc("/communities/{communityID}/reservations", reservationHandler.Create).Methods(http.MethodPost)
	secured.HandleFunc("/communities/{communityID}/reservations/mine", reservationHandler.ListMine).Methods(http.MethodGet)
	secured.HandleFunc("/communities/{communityID}/reservations", reservationHandler.ListCommunity).Methods(http.MethodGet)
	secured.HandleFunc("/reservations/{reservationID}", reservationHandler.Get).Methods(http.MethodGet)
	secured.HandleFunc("/reservations/{reservationID}", reservationHandler.Modify).Methods(http.MethodPut)
	secured.HandleFunc("/reservations/{reservationID}/modification-fee", reservationHandler.PreviewModificationFee).Methods(http.MethodGet)
	secured.HandleFunc("/reservations/{reservationID}/proposals", reservationHandler.ProposeModification).Methods(http.MethodPost)
	secured.HandleFunc("/reservations/{reservationID}/proposals/accept", reservationHandler.AcceptModification).Methods(http.MethodPost)
	secured.HandleFunc("/reservations/{reservationID}/proposals/reject", reservationHandler.RejectModification).Methods(http.MethodPost)
	secured.HandleFunc("/reservations/{reservationID}/approve", reservationHandler.Approve).Methods(http.MethodPost)
	secured.HandleFunc("/reservations/{reservationID}/reject", reservationHandler.Reject).Methods(http.MethodPost)
	secured.HandleFunc("/reservations/{reservationID}/cancel", reservationHandler.Cancel).Methods(http.MethodPost)
	secured.HandleFunc("/reservations/{reservationID}/complete", reservationHandler.Complete).Methods(http.MethodPost)
	secured.HandleFunc("/reservations/{reservationID}/damages", reservationHandler.AssessDamages).Methods(http.MethodPost)
	secured.HandleFunc("/reservations/{reservationID}/damages/review", reservationHandler.ReviewDamages).Methods(http.MethodPost)

	notificationHandler := NewNotificationHandler(notificationSvc)
	secured.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	secured.HandleFunc("/notifications/{notificationID}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)

	return r
}
