package main

import (
	"net/http"

	"github.com/gorilla/mux"

	createBookingHandler "github.com/m04kA/PrismCRM/internal/api/handlers/create_booking"
	dashboardHandler "github.com/m04kA/PrismCRM/internal/api/handlers/dashboard"
	exportLeadsHandler "github.com/m04kA/PrismCRM/internal/api/handlers/export_leads"
	getAvailableSlotsHandler "github.com/m04kA/PrismCRM/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/PrismCRM/internal/api/handlers/get_booking"
	healthHandler "github.com/m04kA/PrismCRM/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/PrismCRM/internal/api/handlers/list_bookings"
	listLeadsHandler "github.com/m04kA/PrismCRM/internal/api/handlers/list_leads"
	loginHandler "github.com/m04kA/PrismCRM/internal/api/handlers/login"
	logoutHandler "github.com/m04kA/PrismCRM/internal/api/handlers/logout"
	meHandler "github.com/m04kA/PrismCRM/internal/api/handlers/me"
	rentSyncHandler "github.com/m04kA/PrismCRM/internal/api/handlers/rentsync_webhook"
	updateBookingStatusHandler "github.com/m04kA/PrismCRM/internal/api/handlers/update_booking_status"
	updateLeadStatusHandler "github.com/m04kA/PrismCRM/internal/api/handlers/update_lead_status"
)

// routeHandlers все обработчики API
type routeHandlers struct {
	health              *healthHandler.Handler
	slots               *getAvailableSlotsHandler.Handler
	createBooking       *createBookingHandler.Handler
	getBooking          *getBookingHandler.Handler
	listBookings        *listBookingsHandler.Handler
	updateBookingStatus *updateBookingStatusHandler.Handler
	listLeads           *listLeadsHandler.Handler
	exportLeads         *exportLeadsHandler.Handler
	updateLeadStatus    *updateLeadStatusHandler.Handler
	rentSync            *rentSyncHandler.Handler
	login               *loginHandler.Handler
	logout              *logoutHandler.Handler
	me                  *meHandler.Handler
	dashboard           *dashboardHandler.Handler
}

// routeMiddlewares middleware, навешиваемые на группы маршрутов
type routeMiddlewares struct {
	auth         mux.MiddlewareFunc
	loginLimit   mux.MiddlewareFunc
	webhookLimit mux.MiddlewareFunc
	metrics      mux.MiddlewareFunc // nil, если метрики выключены
	metricsPath  string
	metricsView  http.Handler
}

func newRouter(h *routeHandlers, mw *routeMiddlewares) *mux.Router {
	r := mux.NewRouter()

	if mw.metrics != nil {
		r.Use(mw.metrics)
	}

	// Metrics endpoint (публичный, без аутентификации)
	if mw.metricsView != nil {
		r.Handle(mw.metricsPath, mw.metricsView).Methods(http.MethodGet)
	}

	r.HandleFunc("/", h.health.Handle).Methods(http.MethodGet)

	// Вебхук RentSync со своим лимитом
	r.Handle("/webhooks/rentsync", mw.webhookLimit(http.HandlerFunc(h.rentSync.Handle))).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/buildings", h.slots.HandleBuildings).Methods(http.MethodGet)
	api.HandleFunc("/bookings/taken", h.slots.HandleTaken).Methods(http.MethodGet)
	api.HandleFunc("/bookings/availability", h.slots.HandleAvailability).Methods(http.MethodGet)
	api.HandleFunc("/bookings/dates", h.slots.HandleDates).Methods(http.MethodGet)

	// Запись на тур с сайта
	api.HandleFunc("/bookings", h.createBooking.Handle).Methods(http.MethodPost)

	api.Handle("/auth/login", mw.loginLimit(http.HandlerFunc(h.login.Handle))).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <token>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(mw.auth)

	// --- Сессия ---
	protected.HandleFunc("/auth/me", h.me.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/auth/logout", h.logout.Handle).Methods(http.MethodPost)

	// --- Туры ---
	protected.HandleFunc("/bookings", h.listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", h.getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", h.updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Лиды ---
	protected.HandleFunc("/leads", h.listLeads.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/leads/export", h.exportLeads.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/leads/{leadId:[0-9]+}/status", h.updateLeadStatus.Handle).Methods(http.MethodPatch)

	// --- Дашборд ---
	protected.HandleFunc("/admin/dashboard", h.dashboard.Handle).Methods(http.MethodGet)

	return r
}
