package webservice

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/ohowland/cgc_sizing/internal/lib/webservice/models"
	"github.com/ohowland/cgc_sizing/internal/pkg/catalog"
	"github.com/ohowland/cgc_sizing/internal/pkg/demand"
	"github.com/ohowland/cgc_sizing/internal/pkg/study"
)

const contentType = "application/json; charset=UTF-8"

type Config struct {
	URL  string
	Port string
}

// App serves a loaded study and its catalog.
type App struct {
	Config  Config
	Study   study.Config
	Catalog catalog.Catalog
	Logger  *zap.Logger
}

func (app *App) logger() *zap.Logger {
	if app.Logger == nil {
		return zap.NewNop()
	}
	return app.Logger
}

func (app *App) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", app.BaseHandler)
	r.HandleFunc("/study", app.StudyHandler).Methods("GET", "POST")
	r.HandleFunc("/demand", app.DemandHandler).Methods("GET")
	r.HandleFunc("/demand/{month}", app.DemandHandler).Methods("GET")
	r.HandleFunc("/demand/{month}/{day:[0-9]+}", app.DemandHandler).Methods("GET")
	return r
}

// ListenAndServe serves the router on Config.URL:Config.Port until ctx is done.
func (app *App) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              app.Config.URL + ":" + app.Config.Port,
		Handler:           app.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		app.logger().Info("[Webservice] listening", zap.String("addr", srv.Addr))
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (app *App) BaseHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
}

// StudyHandler runs the loaded study on GET. A POST body is decoded over a
// copy of the loaded study, so a request only names what it changes.
func (app *App) StudyHandler(w http.ResponseWriter, r *http.Request) {
	cfg := app.Study
	switch r.Method {
	case "GET":
	case "POST":
		body, err := io.ReadAll(r.Body)
		if err != nil {
			app.fail(w, http.StatusBadRequest, err)
			return
		}
		// fields named in the body replace the loaded ones wholesale
		cfg.Loads = nil
		cfg.DailyShape = nil
		cfg.SeasonFactors = nil
		if err := json.Unmarshal(body, &cfg); err != nil {
			app.fail(w, http.StatusBadRequest, err)
			return
		}
		if cfg.Loads == nil {
			cfg.Loads = app.Study.Loads
		}
		if cfg.DailyShape == nil {
			cfg.DailyShape = app.Study.DailyShape
		}
		if cfg.SeasonFactors == nil {
			cfg.SeasonFactors = app.Study.SeasonFactors
		}
	}

	report, err := study.Run(cfg, app.Catalog)
	if err != nil {
		app.fail(w, http.StatusUnprocessableEntity, err)
		return
	}

	app.logger().Info("[Webservice] study run",
		zap.String("method", r.Method),
		zap.String("pid", report.PID().String()),
		zap.Float64("required_ah", report.Storage.RequiredAh))

	status := http.StatusOK
	if r.Method == "POST" {
		status = http.StatusCreated
	}
	app.respond(w, status, report)
}

// DemandHandler returns the year, a month or a day of the study demand.
func (app *App) DemandHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	_, series, err := study.Demand(app.Study)
	if err != nil {
		app.fail(w, http.StatusUnprocessableEntity, err)
		return
	}

	monthName, ok := vars["month"]
	if !ok {
		app.respond(w, http.StatusOK, models.AnnualDemand{
			PeakKW:    series.PeakKW(),
			EnergyKWh: series.EnergyKWh(),
			Leap:      series.Leap(),
			Monthly:   demand.MonthlyStats(series),
		})
		return
	}

	m, err := parseMonth(monthName)
	if err != nil {
		app.fail(w, http.StatusNotFound, err)
		return
	}

	profile := models.DemandProfile{Month: m.String()}
	if dayVar, ok := vars["day"]; ok {
		day, _ := strconv.Atoi(dayVar)
		profile.Day = day
		profile.Hours, err = series.Daily(m, day)
	} else {
		profile.Hours, err = series.Monthly(m)
	}
	if err != nil {
		app.fail(w, http.StatusNotFound, err)
		return
	}

	for _, kw := range profile.Hours {
		profile.EnergyKWh += kw
		if kw > profile.PeakKW {
			profile.PeakKW = kw
		}
	}
	app.respond(w, http.StatusOK, profile)
}

// parseMonth accepts a month name or its number.
func parseMonth(v string) (time.Month, error) {
	if n, err := strconv.Atoi(v); err == nil {
		if n < 1 || n > 12 {
			return 0, errors.New("month number must be in 1..12")
		}
		return time.Month(n), nil
	}
	return demand.ParseMonth(v)
}

func (app *App) respond(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		app.logger().Error("[Webservice] malformed JSON", zap.Error(err))
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		app.logger().Warn("[Webservice] write failed", zap.Error(err))
	}
}

func (app *App) fail(w http.ResponseWriter, status int, err error) {
	app.logger().Info("[Webservice] request failed", zap.Int("status", status), zap.Error(err))
	app.respond(w, status, models.Error{Error: err.Error()})
}
