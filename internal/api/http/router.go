package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the full REST surface. Three tiers: public routes, routes
// behind optional authentication (the portal), and routes that require a
// bearer token. Fine-grained authorization lives in the services.
func NewRouter(
	mw *Middleware,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	projectHandler *ProjectHandler,
	fileHandler *ProjectFileHandler,
	notificationHandler *NotificationHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(RequestID)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, http.StatusOK, "ok")
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// Public.
	api.HandleFunc("/auth/register-admin", authHandler.RegisterAdmin).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/login-code", authHandler.LoginWithCode).Methods(http.MethodPost)
	api.HandleFunc("/projects/portal/{code}", projectHandler.GetByPortalCode).Methods(http.MethodGet)
	api.HandleFunc("/notifications/unsubscribe", notificationHandler.Unsubscribe).Methods(http.MethodPost)

	// Portal clients may create modifications and exchange files without a
	// token.
	portal := api.NewRoute().Subrouter()
	portal.Use(mw.OptionalAuthenticate)
	portal.HandleFunc("/projects/{id}/modifications", projectHandler.CreateModification).Methods(http.MethodPost)
	portal.HandleFunc("/projects/{id}/files", fileHandler.Create).Methods(http.MethodPost)
	portal.HandleFunc("/projects/{id}/files", fileHandler.List).Methods(http.MethodGet)

	// Authenticated.
	protected := api.NewRoute().Subrouter()
	protected.Use(mw.Authenticate)

	protected.HandleFunc("/auth/profile", authHandler.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/auth/profile", authHandler.UpdateProfile).Methods(http.MethodPatch)
	protected.HandleFunc("/auth/change-password", authHandler.ChangePassword).Methods(http.MethodPost)

	protected.HandleFunc("/users", userHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/users", userHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}", userHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id}", userHandler.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{id}", userHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/users/{id}/regenerate-login-code", userHandler.RegenerateLoginCode).Methods(http.MethodPost)

	protected.HandleFunc("/projects", projectHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/projects", projectHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{id}", projectHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/projects/{id}", projectHandler.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/projects/{id}", projectHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/projects/{id}/generate-portal-code", projectHandler.GeneratePortalCode).Methods(http.MethodPost)

	protected.HandleFunc("/projects/{id}/payments", projectHandler.CreatePayment).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{id}", projectHandler.UpdatePayment).Methods(http.MethodPatch)
	protected.HandleFunc("/payments/{id}", projectHandler.DeletePayment).Methods(http.MethodDelete)

	protected.HandleFunc("/modifications/{id}", projectHandler.UpdateModification).Methods(http.MethodPatch)
	protected.HandleFunc("/modifications/{id}", projectHandler.DeleteModification).Methods(http.MethodDelete)

	protected.HandleFunc("/files/{id}", fileHandler.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/files/{id}", fileHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/notifications/subscribe", notificationHandler.Subscribe).Methods(http.MethodPost)
	protected.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", notificationHandler.MarkAllRead).Methods(http.MethodPatch)
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkRead).Methods(http.MethodPatch)
	protected.HandleFunc("/notifications", notificationHandler.Clear).Methods(http.MethodDelete)

	return router
}
