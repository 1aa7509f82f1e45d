// Package server exposes the quoting engine over a minimal JSON HTTP
// boundary. Routing and the surrounding storefront API live elsewhere;
// this surface exists for that layer to call.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/telarmoda/shipping/internal/engine"
	"github.com/telarmoda/shipping/pkg/parcel"
	"github.com/telarmoda/shipping/pkg/quoter"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Server is the HTTP server for the shipping-quote service.
type Server struct {
	port   int
	engine *engine.Engine
	carts  engine.CartSource
	logger *otelzap.Logger
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance.
func New(cfg Config, eng *engine.Engine, carts engine.CartSource, logger *otelzap.Logger) *Server {
	return &Server{
		port:   cfg.Port,
		engine: eng,
		carts:  carts,
		logger: logger,
	}
}

// Handler returns the service's HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/quote", s.handleQuote)
	return mux
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// quoteRequest is the wire shape of a quote call. Either cart_id or an
// inline items list must be present.
type quoteRequest struct {
	CartID                string          `json:"cart_id,omitempty"`
	Items                 []lineItemInput `json:"items,omitempty"`
	DestinationPostalCode string          `json:"destination_postal_code"`
	CountryHint           *string         `json:"country_hint,omitempty"`
}

type lineItemInput struct {
	ProductName  string  `json:"product_name"`
	CategoryName string  `json:"category_name"`
	HSCode       string  `json:"hs_code,omitempty"`
	UnitPrice    float64 `json:"unit_price"`
	Quantity     int     `json:"quantity"`
	UnitWeightKg float64 `json:"unit_weight_kg"`
	LengthCm     float64 `json:"length_cm"`
	WidthCm      float64 `json:"width_cm"`
	HeightCm     float64 `json:"height_cm"`
	Compression  string  `json:"compression_level,omitempty"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed, use POST")
		return
	}

	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	ctx := r.Context()

	items := itemsToModel(req.Items)
	if req.CartID != "" {
		cartItems, err := s.carts.Items(ctx, req.CartID)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		items = cartItems
	}

	result, err := s.engine.Quote(ctx, items, req.DestinationPostalCode, req.CountryHint)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, quoter.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		s.logger.Error("quote request failed", zap.Error(err))
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(quoter.Result{Success: false, Error: err.Error()})
		return
	}

	json.NewEncoder(w).Encode(result)
}

func itemsToModel(inputs []lineItemInput) []parcel.LineItem {
	items := make([]parcel.LineItem, len(inputs))
	for i, in := range inputs {
		items[i] = parcel.LineItem{
			ProductName:  in.ProductName,
			CategoryName: in.CategoryName,
			HSCode:       in.HSCode,
			UnitPrice:    in.UnitPrice,
			Quantity:     in.Quantity,
			UnitWeightKg: in.UnitWeightKg,
			LengthCm:     in.LengthCm,
			WidthCm:      in.WidthCm,
			HeightCm:     in.HeightCm,
			Compression:  in.Compression,
		}
	}
	return items
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(quoter.Result{Success: false, Error: msg})
}
