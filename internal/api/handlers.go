package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/gorilla/mux"

	"github.com/paw-chain/pawswap/x/swap/simulation"
	"github.com/paw-chain/pawswap/x/swap/types"
)

const defaultSnapshotLimit = 100

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// ComponentHealth is the outcome of one registered health check.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status     string                     `json:"status"`
	Height     int64                      `json:"height"`
	Time       string                     `json:"time"`
	Pools      int                        `json:"pools"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// QuoteResponse prices a hypothetical swap.
type QuoteResponse struct {
	Input string              `json:"input"`
	Price types.PriceResponse `json:"price"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps module errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusUnprocessableEntity
	switch {
	case errorsmod.IsOf(err, simulation.ErrUnknownPool, types.ErrNotInstantiated):
		status = http.StatusNotFound
	case errorsmod.IsOf(err, types.ErrInvalidAmount, types.ErrInvalidAsset):
		status = http.StatusBadRequest
	}
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: fmt.Sprintf("%s/%d", codespace, code)})
}

func badRequest(w http.ResponseWriter, format string, args ...any) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf(format, args...), Code: "BAD_REQUEST"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	ctx := s.exec.Context()
	pools := len(s.exec.Registry().Names())
	s.mu.Unlock()

	resp := HealthResponse{
		Status: StatusHealthy,
		Height: ctx.BlockHeight(),
		Time:   ctx.BlockTime().UTC().Format(time.RFC3339),
		Pools:  pools,
	}
	if len(s.checks) > 0 {
		resp.Components = make(map[string]ComponentHealth, len(s.checks))
	}
	for name, check := range s.checks {
		component := ComponentHealth{Status: StatusHealthy}
		if err := check.HealthCheck(); err != nil {
			component = ComponentHealth{Status: StatusDegraded, Message: err.Error()}
			resp.Status = StatusDegraded
		}
		resp.Components[name] = component
	}

	// a degraded server still answers queries
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReceipts(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	receipts := append([]simulation.Receipt(nil), s.exec.Receipts()...)
	s.mu.Unlock()

	if receipts == nil {
		receipts = []simulation.Receipt{}
	}
	writeJSON(w, http.StatusOK, receipts)
}

func (s *Server) handlePools(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	state := s.exec.State()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	info, err := s.exec.Info(mux.Vars(r)["name"])
	s.mu.Unlock()

	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := q.Get("input")
	if input == "" {
		input = types.Asset1.String()
	}
	sel, err := types.ParseTokenSelect(input)
	if err != nil {
		writeError(w, err)
		return
	}
	amount, err := math.ParseUint(q.Get("amount"))
	if err != nil {
		badRequest(w, "invalid amount %q", q.Get("amount"))
		return
	}

	s.mu.Lock()
	price, err := s.exec.Quote(mux.Vars(r)["name"], sel, amount)
	s.mu.Unlock()

	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, QuoteResponse{Input: sel.String(), Price: price})
}

func (s *Server) handleTWAP(w http.ResponseWriter, r *http.Request) {
	var window uint64
	if raw := r.URL.Query().Get("window"); raw != "" {
		var err error
		if window, err = strconv.ParseUint(raw, 10, 64); err != nil {
			badRequest(w, "invalid window %q", raw)
			return
		}
	}

	s.mu.Lock()
	twap, err := s.exec.TWAP(mux.Vars(r)["name"], window)
	s.mu.Unlock()

	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, twap)
}

func (s *Server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := uint64(defaultSnapshotLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		var err error
		if limit, err = strconv.ParseUint(raw, 10, 32); err != nil {
			badRequest(w, "invalid limit %q", raw)
			return
		}
	}

	s.mu.Lock()
	snaps, err := s.exec.Snapshots(mux.Vars(r)["name"], uint32(limit))
	s.mu.Unlock()

	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snaps)
}
