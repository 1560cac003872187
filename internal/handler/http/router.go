package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	env string,
	attendanceHandler AttendanceHandler,
	scheduleHandler ScheduleHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shiftpay"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
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

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/overview", attendanceHandler.GetOverview)
			r.Route("/{employeeID}", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/daily", attendanceHandler.GetDailyAttendance)
				r.Get("/summary", attendanceHandler.GetPeriodSummary)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Post("/", scheduleHandler.CreateShift)
			r.Get("/", scheduleHandler.ListShiftsForDate)
			r.Route("/{shiftID}", func(r chi.Router) {
				r.Get("/", scheduleHandler.GetShift)
				r.Put("/", scheduleHandler.UpdateShift)
				r.Delete("/", scheduleHandler.DeleteShift)
			})
		})

		r.Route("/employees/{employeeID}", func(r chi.Router) {
			r.Get("/shifts", scheduleHandler.ListShiftsForEmployee)
			r.Get("/compensation", payrollHandler.GetCompensation)
			r.Put("/compensation", payrollHandler.UpsertCompensation)
			r.Get("/components", payrollHandler.GetEmployeeComponents)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Route("/periods", func(r chi.Router) {
				r.Post("/", payrollHandler.CreatePeriod)
				r.Get("/", payrollHandler.ListPeriods)
				r.Route("/{periodID}", func(r chi.Router) {
					r.Post("/generate", payrollHandler.GeneratePayroll)
					r.Post("/apply-fixed-pay", payrollHandler.ApplyFixedPay)
					r.Get("/entries", payrollHandler.ListEntriesForPeriod)
				})
			})

			r.Route("/entries/{entryID}", func(r chi.Router) {
				r.Get("/", payrollHandler.GetEntry)
				r.Post("/adjustments", payrollHandler.AddAdjustment)
			})
			r.Delete("/lines/{lineID}", payrollHandler.RemoveAdjustment)

			r.Route("/components", func(r chi.Router) {
				r.Post("/", payrollHandler.CreateComponent)
				r.Get("/", payrollHandler.ListComponents)
				r.Put("/{componentID}", payrollHandler.UpdateComponent)
				r.Post("/assign", payrollHandler.BulkAssignComponents)
				r.Delete("/assignments/{assignmentID}", payrollHandler.RemoveEmployeeComponent)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", payrollHandler.GetPenaltySettings)
				r.Put("/", payrollHandler.UpdatePenaltySettings)
			})
		})
	})

	return r
}
