package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orbit/observability/metrics"
)

// server wires app's contract engines to a chi-routed HTTP API, following
// the same RequestID/RealIP/Logger/Recoverer middleware stack and
// route-group-with-guard idiom the host codebase's reverse-proxy gateway
// and OTC server both use, collapsed onto one direct router since orbitd
// has no upstream service to proxy to.
type server struct {
	app   *app
	auth  *adminAuth
	hub   *eventHub
	audit *auditLog

	router http.Handler
}

func newServer(a *app, auth *adminAuth, hub *eventHub, audit *auditLog) *server {
	s := &server{app: a, auth: auth, hub: hub, audit: audit}
	s.router = s.buildRouter()
	return s
}

func (s *server) Handler() http.Handler { return s.router }

func (s *server) buildRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(s.instrument)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/v1/events/stream", s.hub.ServeHTTP)
	r.Get("/v1/events/log", s.audit.ServeHTTP)
	r.Post("/v1/admin/login", s.handleAdminIssueToken)

	r.Route("/v1/treasury", func(tr chi.Router) {
		tr.Post("/keep_peg", s.handleKeepPeg)
		tr.Group(func(gov chi.Router) {
			gov.Use(s.auth.Require)
			gov.Post("/supply", s.handleSupply)
			gov.Post("/withdraw", s.handleWithdraw)
			gov.Post("/claim", s.handleClaim)
		})
	})

	r.Route("/v1/bridgeoracle", func(br chi.Router) {
		br.Get("/decimals", s.handleOracleDecimals)
		br.Get("/last_price", s.handleOracleLastPrice)
	})

	r.Route("/v1/pegkeeper", func(pk chi.Router) {
		pk.Use(s.auth.Require)
		pk.Post("/set_treasury", s.handlePegkeeperSetTreasury)
		pk.Post("/set_admin", s.handlePegkeeperSetAdmin)
	})

	r.Route("/v1/admin", func(ad chi.Router) {
		ad.Use(s.auth.Require)
		ad.Post("/new_stablecoin", s.handleAdminNewStablecoin)
		ad.Post("/update_pegkeeper", s.handleAdminUpdatePegkeeper)
		ad.Post("/update_oracle", s.handleAdminUpdateOracle)
		ad.Post("/update_supply", s.handleAdminUpdateSupply)
		ad.Post("/update_pool", s.handleAdminUpdatePool)
		ad.Post("/set_status", s.handleAdminSetStatus)
		ad.Post("/set_admin", s.handleAdminSetAdmin)
	})

	return r
}

// instrument records per-(contract,method) metrics by reading the route
// pattern chi matched, after the handler runs. It sits outside
// chimw.Recoverer, so a recovered panic's 500 still counts as an error;
// any status of 400 or above is recorded with the status code as errCode.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		contract, method := routeLabels(r)
		errCode := ""
		if rec.status >= 400 {
			errCode = strconv.Itoa(rec.status)
		}
		metrics.Registry().Observe(contract, method, errCode, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func routeLabels(r *http.Request) (contract, method string) {
	ctx := chi.RouteContext(r.Context())
	if ctx == nil {
		return "unknown", r.URL.Path
	}
	pattern := ctx.RoutePattern()
	if pattern == "" {
		pattern = r.URL.Path
	}
	return "orbitd", pattern
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
