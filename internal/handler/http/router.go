package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/paylane-hq/payroll-backend-go/internal/handler/http/middleware"
)

func NewRouter(
	tokenAuth *jwtauth.JWTAuth,
	catalogHandler CatalogHandler,
	employeeHandler EmployeeHandler,
	compensationHandler CompensationHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "paylane-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/orgs/{orgID}", func(r chi.Router) {
				r.Route("/components", func(r chi.Router) {
					r.Get("/", catalogHandler.List)
					r.Post("/", catalogHandler.Create)
					r.Post("/canonicalize", catalogHandler.Canonicalize)
					r.Post("/seed-defaults", catalogHandler.SeedDefaults)
					r.Route("/{code}", func(r chi.Router) {
						r.Get("/", catalogHandler.Get)
						r.Put("/", catalogHandler.Update)
						r.Delete("/", catalogHandler.Delete)
					})
				})

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", employeeHandler.List)
					r.Post("/", employeeHandler.Create)
					r.Route("/{employeeID}", func(r chi.Router) {
						r.Get("/", employeeHandler.Get)

						r.Route("/compensation", func(r chi.Router) {
							r.Get("/", compensationHandler.ListByEmployee)
							r.Post("/", compensationHandler.Upsert)
							r.Post("/intake-draft", compensationHandler.IntakeDraft)
						})

						r.Route("/attendance", func(r chi.Router) {
							r.Post("/", attendanceHandler.RecordFact)
							r.Get("/summary", attendanceHandler.Summary)
						})
					})
				})

				r.Route("/payroll-periods", func(r chi.Router) {
					r.Get("/", payrollHandler.ListPeriods)
					r.Post("/", payrollHandler.EnsurePeriod)

					r.Route("/{periodID}", func(r chi.Router) {
						r.Get("/summary", payrollHandler.GetPeriodSummary)
						r.Post("/lock", payrollHandler.LockPeriod)
						r.Post("/reopen", payrollHandler.ReopenPeriod)
						r.Post("/post", payrollHandler.PostPeriod)
						r.Post("/challan", payrollHandler.MarkChallanGenerated)

						r.Post("/recalc-all", payrollHandler.RecalcAll)
						r.Post("/finalize-all", payrollHandler.FinalizeAll)
						r.Post("/unfinalize-all", payrollHandler.UnfinalizeAll)

						r.Route("/runs", func(r chi.Router) {
							r.Get("/", payrollHandler.ListRuns)
							r.Route("/{employeeID}", func(r chi.Router) {
								r.Get("/", payrollHandler.GetRun)
								r.Post("/compute", payrollHandler.ComputeRun)
								r.Post("/finalize", payrollHandler.FinalizeRun)
								r.Post("/unfinalize", payrollHandler.UnfinalizeRun)
							})
						})

						r.Route("/filings", func(r chi.Router) {
							r.Get("/", payrollHandler.ListFilings)
							r.Post("/", payrollHandler.GenerateFiling)
						})
					})
				})

				r.Post("/filings/{filingID}/file", payrollHandler.MarkFilingFiled)
				r.Get("/filings/{filingID}/document", payrollHandler.DownloadFiling)
			})
		})
	})

	return r
}
