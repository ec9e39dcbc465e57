// internal/adapters/rakuten/client.go
package rakuten

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"hotel_pricer/internal/adapters/observability"
	"hotel_pricer/internal/domain"
)

const (
	DefaultBaseURL = "https://app.rakuten.co.jp/services/api/Travel"

	hotelDetailPath = "HotelDetailSearch/20170426"
	vacantHotelPath = "VacantHotelSearch/20170426"
)

type Client struct {
	base  string
	hc    *http.Client
	appID string
	rl    *rate.Limiter
}

// New builds a client that waits at least interval between requests.
func New(base, appID string, interval time.Duration) (*Client, error) {
	if appID == "" {
		return nil, fmt.Errorf("application id is required")
	}
	if base == "" {
		base = DefaultBaseURL
	}
	lim := rate.NewLimiter(rate.Inf, 1)
	if interval > 0 {
		lim = rate.NewLimiter(rate.Every(interval), 1)
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		hc:    &http.Client{Timeout: 20 * time.Second},
		appID: appID,
		rl:    lim,
	}, nil
}

// ---- Public API ----

// GetHotel looks up a hotel's number and name.
func (c *Client) GetHotel(ctx context.Context, hotelNo string) (domain.HotelRef, error) {
	var env hotelEnvelope
	if err := c.get(ctx, hotelDetailPath, url.Values{"hotelNo": {hotelNo}}, &env); err != nil {
		return domain.HotelRef{}, err
	}
	if len(env.Hotels) == 0 || len(env.Hotels[0].Hotel) == 0 || env.Hotels[0].Hotel[0].HotelBasicInfo == nil {
		return domain.HotelRef{}, ErrMalformed
	}
	info := env.Hotels[0].Hotel[0].HotelBasicInfo
	return domain.HotelRef{HotelNo: info.HotelNo.String(), HotelName: info.HotelName}, nil
}

// SearchPlans lists vacant plans for the stay window in listing order.
// A "not found" answer from the API means no vacancy and yields no plans.
func (c *Client) SearchPlans(ctx context.Context, q domain.PlanQuery) ([]domain.PlanRecord, error) {
	params := url.Values{
		"hotelNo":      {q.Hotel.HotelNo},
		"checkinDate":  {q.Checkin.Format(time.DateOnly)},
		"checkoutDate": {q.Checkout.Format(time.DateOnly)},
		"adultNum":     {strconv.Itoa(q.Adults)},
	}
	var env vacantEnvelope
	if err := c.get(ctx, vacantHotelPath, params, &env); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return env.plans(), nil
}

// ---- Internals ----

var (
	ErrNotFound    = errors.New("rakuten: not found")
	ErrBadRequest  = errors.New("rakuten: bad request")
	ErrRateLimited = errors.New("rakuten: rate limited")
	ErrMalformed   = errors.New("rakuten: malformed response")
)

// get performs a rate-limited GET and decodes the JSON body into out.
// Failures are returned as-is; callers decide what an error means for them.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	params.Set("applicationId", c.appID)
	params.Set("format", "json")
	u := c.base + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hotel-pricer/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("rakuten", endpoint, 0, time.Since(start))
		log.Debug().Str("endpoint", endpoint).Str("err_type", observability.LabelErr(err)).Msg("rakuten request failed")
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("rakuten", endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, errorBody(resp.Body))
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, errorBody(resp.Body))
	}
}

// errorBody reads a small error body for diagnostics.
func errorBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	return strings.TrimSpace(string(b))
}
