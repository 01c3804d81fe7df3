package api

import (
	"net/http"

	"github.com/garnizeh/careerpages/internal/auth"
	"github.com/garnizeh/careerpages/internal/careers"
	"github.com/garnizeh/careerpages/internal/config"
	"github.com/garnizeh/careerpages/internal/render"
	"github.com/gorilla/mux"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, svc *careers.Service, issuer *auth.Issuer, pages *render.Renderer) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(svc, issuer, cfg.Cookie)
	companyHandler := NewCompanyHandler(svc, authHandler)
	jobsHandler := NewJobsHandler(svc)
	sectionsHandler := NewSectionsHandler(svc)
	dashboardHandler := NewDashboardHandler(svc)
	publicHandler := NewPublicHandler(svc, pages)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/logout", authHandler.Logout).Methods("POST")

	// Protected routes
	apiR := r.PathPrefix("/api").Subrouter()
	apiR.Use(SessionMiddleware(issuer, cfg.Cookie.Name))

	apiR.HandleFunc("/auth/session", authHandler.Session).Methods("GET")

	apiR.HandleFunc("/company/{companyId}", companyHandler.GetCompany).Methods("GET")
	apiR.HandleFunc("/company/{companyId}", companyHandler.UpdateCompany).Methods("PUT")

	apiR.HandleFunc("/jobs", jobsHandler.ListJobs).Methods("GET")
	apiR.HandleFunc("/jobs", jobsHandler.CreateJob).Methods("POST")
	apiR.HandleFunc("/jobs/{jobId}", jobsHandler.GetJob).Methods("GET")
	apiR.HandleFunc("/jobs/{jobId}", jobsHandler.UpdateJob).Methods("PUT")
	apiR.HandleFunc("/jobs/{jobId}", jobsHandler.DeleteJob).Methods("DELETE")

	apiR.HandleFunc("/page-sections", sectionsHandler.ListSections).Methods("GET")
	apiR.HandleFunc("/page-sections", sectionsHandler.CreateSection).Methods("POST")
	apiR.HandleFunc("/page-sections/{sectionId}", sectionsHandler.GetSection).Methods("GET")
	apiR.HandleFunc("/page-sections/{sectionId}", sectionsHandler.UpdateSection).Methods("PUT")
	apiR.HandleFunc("/page-sections/{sectionId}", sectionsHandler.DeleteSection).Methods("DELETE")

	apiR.HandleFunc("/dashboard", dashboardHandler.Summary).Methods("GET")
	apiR.HandleFunc("/dashboard/jobs", dashboardHandler.Jobs).Methods("GET")

	// Public careers pages
	pub := r.PathPrefix("/{companySlug}/careers").Subrouter()
	pub.Use(OptionalSessionMiddleware(issuer, cfg.Cookie.Name))
	pub.HandleFunc("", publicHandler.CareersPage).Methods("GET")
	pub.HandleFunc("/jobs/{jobId}", publicHandler.JobPage).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErrorMessage(w, http.StatusNotFound, "Not found")
	})

	return r
}
