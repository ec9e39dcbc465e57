package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpserver "hotel_pricer/internal/adapters/http_server"
	"hotel_pricer/internal/app"
	"hotel_pricer/internal/domain"
)

// ---- fakes ----

type fakeResolver struct{}

func (fakeResolver) GetHotel(ctx context.Context, hotelNo string) (domain.HotelRef, error) {
	return domain.HotelRef{HotelNo: hotelNo, HotelName: "テストホテル"}, nil
}

type fakeSearcher struct{ calls int }

func (f *fakeSearcher) SearchPlans(ctx context.Context, q domain.PlanQuery) ([]domain.PlanRecord, error) {
	f.calls++
	return []domain.PlanRecord{
		{PlanName: "素泊まり", RoomName: "ダブル", TotalCharge: 6000},
		{PlanName: "素泊まり", RoomName: "ツイン・禁煙", TotalCharge: 8000},
	}, nil
}

type fakePrices struct {
	items []domain.StoredPrice
	err   error
}

func (f *fakePrices) SaveCells(ctx context.Context, runID string, cells []domain.PriceCell) error {
	return nil
}

func (f *fakePrices) ListPrices(ctx context.Context, hotelNo string, limit int) ([]domain.StoredPrice, error) {
	return f.items, f.err
}

func newServer(s *fakeSearcher, prices domain.PriceRepository) *httptest.Server {
	q := app.NewPriceQueryService(fakeResolver{}, s, domain.DefaultAvoidWords)
	srv := httpserver.New(5 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{Q: q, Prices: prices})
	return httptest.NewServer(srv.Mux())
}

type bestPlanBody struct {
	HotelNo  string `json:"hotel_no"`
	Date     string `json:"date"`
	Adults   int    `json:"adults"`
	Found    bool   `json:"found"`
	Price    int    `json:"price"`
	RoomName string `json:"room_name"`
}

func getJSON(t *testing.T, url string, wantStatus int, dst any) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d; want %d", url, res.StatusCode, wantStatus)
	}
	if dst != nil {
		if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
}

// ---- tests ----

func TestBestPlan_TwoAdultsSkipsDouble(t *testing.T) {
	s := &fakeSearcher{}
	ts := newServer(s, nil)
	defer ts.Close()

	var body bestPlanBody
	getJSON(t, ts.URL+"/v1/hotels/1217/best-plan?date=2024-05-01&adults=2", http.StatusOK, &body)
	if !body.Found || body.Price != 8000 || body.RoomName != "ツイン・禁煙" || body.Date != "2024-05-01" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestBestPlan_NonNumericHotelIsAbsent(t *testing.T) {
	s := &fakeSearcher{}
	ts := newServer(s, nil)
	defer ts.Close()

	var body bestPlanBody
	getJSON(t, ts.URL+"/v1/hotels/abc/best-plan?date=2024-05-01", http.StatusOK, &body)
	if body.Found || body.Price != 0 || body.HotelNo != "---" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if s.calls != 0 {
		t.Fatalf("expected no searches, got %d", s.calls)
	}
}

func TestBestPlan_BadInput(t *testing.T) {
	ts := newServer(&fakeSearcher{}, nil)
	defer ts.Close()

	for _, q := range []string{
		"?date=tomorrow",
		"?date=2024-05-01&adults=3",
		"?date=2024-05-01&category=suite",
	} {
		getJSON(t, ts.URL+"/v1/hotels/1217/best-plan"+q, http.StatusBadRequest, nil)
	}
}

func TestPrices_RouteOnlyWithRepository(t *testing.T) {
	ts := newServer(&fakeSearcher{}, nil)
	defer ts.Close()
	getJSON(t, ts.URL+"/v1/hotels/1217/prices", http.StatusNotFound, nil)
}

func TestPrices_List(t *testing.T) {
	repo := &fakePrices{items: []domain.StoredPrice{{HotelNo: "1217", TotalCharge: 5000, Found: true}}}
	ts := newServer(&fakeSearcher{}, repo)
	defer ts.Close()

	var body struct {
		Items []domain.StoredPrice `json:"items"`
	}
	getJSON(t, ts.URL+"/v1/hotels/1217/prices?limit=10", http.StatusOK, &body)
	if len(body.Items) != 1 || body.Items[0].TotalCharge != 5000 {
		t.Fatalf("unexpected items: %+v", body.Items)
	}

	getJSON(t, ts.URL+"/v1/hotels/1217/prices?limit=0", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/v1/hotels/x1/prices", http.StatusBadRequest, nil)

	repo.err = errors.New("db down")
	getJSON(t, ts.URL+"/v1/hotels/1217/prices", http.StatusInternalServerError, nil)
}

func TestHealthz(t *testing.T) {
	ts := newServer(&fakeSearcher{}, nil)
	defer ts.Close()
	getJSON(t, ts.URL+"/healthz", http.StatusOK, nil)
}
