// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"hotel_pricer/internal/adapters/csvio"
	"hotel_pricer/internal/app"
	"hotel_pricer/internal/domain"
)

// Handlers serves live best-plan lookups and, when Prices is set, stored results.
type Handlers struct {
	Q      *app.PriceQueryService
	Prices domain.PriceRepository

	sf singleflight.Group
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type bestPlanResponse struct {
	HotelNo   string `json:"hotel_no"`
	HotelName string `json:"hotel_name"`
	Date      string `json:"date"`
	Adults    int    `json:"adults"`
	Category  string `json:"category"`
	Found     bool   `json:"found"`
	Price     int    `json:"price"`
	PlanName  string `json:"plan_name,omitempty"`
	RoomName  string `json:"room_name,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/hotels/{hotelNo}/best-plan", h.bestPlan)
	if h.Prices != nil {
		s.mux.Get("/v1/hotels/{hotelNo}/prices", h.listPrices)
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) bestPlan(w http.ResponseWriter, r *http.Request) {
	hotelNo := chi.URLParam(r, "hotelNo")
	q := r.URL.Query()

	date, ok := csvio.ParseDate(q.Get("date"))
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Invalid date", "date must be YYYY-MM-DD")
		return
	}
	adults := 2
	if as := q.Get("adults"); as != "" {
		n, err := strconv.Atoi(as)
		if err != nil || (n != 1 && n != 2) {
			writeProblem(w, http.StatusBadRequest, "Invalid adults", "adults must be 1 or 2")
			return
		}
		adults = n
	}
	cat, err := domain.ParseRoomCategory(q.Get("category"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid category", err.Error())
		return
	}

	// identical concurrent lookups share one upstream query
	key := fmt.Sprintf("%s|%s|%d|%s", hotelNo, date.Format(time.DateOnly), adults, cat)
	ctx := context.WithoutCancel(r.Context())
	v, _, _ := h.sf.Do(key, func() (any, error) {
		hotel := h.Q.ResolveHotel(ctx, hotelNo)
		return h.Q.BestPlan(ctx, hotel, date, adults, cat), nil
	})
	cell := v.(domain.PriceCell)

	writeJSON(w, bestPlanResponse{
		HotelNo:   cell.Hotel.HotelNo,
		HotelName: cell.Hotel.HotelName,
		Date:      cell.StayDate.Format(time.DateOnly),
		Adults:    cell.Adults,
		Category:  cell.Category.String(),
		Found:     cell.Found,
		Price:     cell.Price(),
		PlanName:  cell.Plan.PlanName,
		RoomName:  cell.Plan.RoomName,
	})
}

func (h *Handlers) listPrices(w http.ResponseWriter, r *http.Request) {
	hotelNo := chi.URLParam(r, "hotelNo")
	if !domain.IsHotelNo(hotelNo) {
		writeProblem(w, http.StatusBadRequest, "Invalid hotel number", "hotelNo must be numeric")
		return
	}

	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 500 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 500")
			return
		}
		limit = l
	}

	out, err := h.Prices.ListPrices(r.Context(), hotelNo, limit)
	if err != nil {
		log.Error().Err(err).Str("hotel_no", hotelNo).Msg("list prices failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not load prices")
		return
	}
	if out == nil {
		out = []domain.StoredPrice{}
	}
	writeJSON(w, struct {
		Items []domain.StoredPrice `json:"items"`
	}{Items: out})
}
