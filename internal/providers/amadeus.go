package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mwhitaker/daytripper/internal/airports"
	"github.com/mwhitaker/daytripper/internal/models"
	"github.com/mwhitaker/daytripper/internal/ratelimit"
)

const (
	dateLayout = "2006-01-02"

	// Same-day searches on the current date keep at least this much runway
	// between "now" and the earliest outbound departure.
	minDepartureLeadHours = 2

	// Nonstop flight-time estimate used to apply the discovery duration
	// ceiling: cruise speed plus fixed taxi/climb overhead.
	cruiseKmPerMinute  = 13.0
	taxiOverheadMinute = 40

	maxOfferResults = 50
)

type AmadeusConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
}

// AmadeusClient talks to the flight-offer provider. The OAuth token is
// cached on the client with its expiry and refreshed lazily under the
// mutex; nothing about authentication is package-global.
type AmadeusClient struct {
	cfg        AmadeusConfig
	httpClient *http.Client
	limiter    *ratelimit.ProviderLimiter
	now        func() time.Time

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewAmadeusClient(cfg AmadeusConfig, limiter *ratelimit.ProviderLimiter) *AmadeusClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://test.api.amadeus.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &AmadeusClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
		now:        time.Now,
	}
}

func (c *AmadeusClient) Name() string {
	return "amadeus"
}

func (c *AmadeusClient) refreshToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parse token response: %w", err)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	// Refresh slightly early so an almost-expired token is never sent.
	c.tokenExpiry = c.now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return nil
}

func (c *AmadeusClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.accessToken
	expired := token == "" || c.now().After(c.tokenExpiry)
	c.mu.Unlock()

	if expired {
		if err := c.refreshToken(ctx); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

func (c *AmadeusClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, c.Name()); err != nil {
			return nil, err
		}
	}

	token, err := c.token(ctx)
	if err != nil {
		return nil, NewProviderError(c.Name(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewProviderError(c.Name(), err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewProviderError(c.Name(),
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}
	return body, nil
}

type directDestinationsResponse struct {
	Data []struct {
		IataCode string `json:"iataCode"`
		Name     string `json:"name"`
		GeoCode  *struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"geoCode"`
		TimeZone *struct {
			Offset string `json:"offSet"`
		} `json:"timeZone"`
	} `json:"data"`
}

// DiscoverDestinations lists airports served nonstop from origin and keeps
// those whose estimated flight time fits within maxDurationHours. A provider
// failure yields an empty list: no reachable destinations is a valid "no
// opportunities today" answer, not a fault.
func (c *AmadeusClient) DiscoverDestinations(ctx context.Context, origin, date string, maxDurationHours float64) ([]models.Destination, error) {
	query := url.Values{}
	query.Set("departureAirportCode", strings.ToUpper(origin))

	body, err := c.get(ctx, "/v1/airport/direct-destinations", query)
	if err != nil {
		log.Printf("[discovery] %s: %v", origin, err)
		return nil, nil
	}

	var resp directDestinationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		log.Printf("[discovery] %s: decode response: %v", origin, err)
		return nil, nil
	}

	originCoords := airports.Coords(origin)
	ceiling := maxDurationHours * 60

	destinations := make([]models.Destination, 0, len(resp.Data))
	for _, d := range resp.Data {
		if d.IataCode == "" {
			continue
		}
		dest := models.Destination{
			Code: strings.ToUpper(d.IataCode),
			City: d.Name,
		}
		if dest.City == "" {
			dest.City = airports.City(dest.Code)
		}
		if d.GeoCode != nil {
			dest.Coords = &models.Coordinates{Lat: d.GeoCode.Latitude, Lng: d.GeoCode.Longitude}
		} else {
			dest.Coords = airports.Coords(dest.Code)
		}
		if d.TimeZone != nil && d.TimeZone.Offset != "" {
			offset := d.TimeZone.Offset
			dest.UTCOffset = &offset
		}

		if ceiling > 0 && originCoords != nil && dest.Coords != nil {
			estimated := airports.HaversineKm(*originCoords, *dest.Coords)/cruiseKmPerMinute + taxiOverheadMinute
			if estimated > ceiling {
				continue
			}
		}
		destinations = append(destinations, dest)
	}

	return destinations, nil
}

// departWindow applies the same-day tightening rule: searching today moves
// the earliest departure to at least two hours out. A collapsed window
// (earliest >= latest) means the destination cannot be searched at all.
func (c *AmadeusClient) departWindow(q RoundTripQuery) (earliest, latest int, ok bool) {
	earliest, latest = q.EarliestDepartHour, q.LatestDepartHour
	if q.Date == c.now().Format(dateLayout) {
		if cutoff := c.now().Hour() + minDepartureLeadHours; cutoff > earliest {
			earliest = cutoff
		}
	}
	if earliest >= latest {
		return 0, 0, false
	}
	return earliest, latest, true
}

// SearchRoundTrip queries bundled round-trip offers for one destination and
// applies the window, duration, carrier, and dedup rules. The provider's
// own arrival-time filter is unreliable across timezones, so the query is
// issued wide and inbound arrivals are filtered here by local clock.
func (c *AmadeusClient) SearchRoundTrip(ctx context.Context, q RoundTripQuery) ([]models.RoundTripOffer, error) {
	earliestDepart, latestDepart, ok := c.departWindow(q)
	if !ok {
		return nil, nil
	}

	returnDate := q.ReturnDate
	if returnDate == "" {
		returnDate = q.Date
	}

	query := url.Values{}
	query.Set("originLocationCode", strings.ToUpper(q.Origin))
	query.Set("destinationLocationCode", strings.ToUpper(q.Destination))
	query.Set("departureDate", q.Date)
	query.Set("returnDate", returnDate)
	query.Set("adults", "1")
	query.Set("max", fmt.Sprint(maxOfferResults))
	query.Set("currencyCode", "USD")
	if q.MaxConnections == 0 {
		query.Set("nonStop", "true")
	}

	body, err := c.get(ctx, "/v2/shopping/flight-offers", query)
	if err != nil {
		return nil, err
	}

	var resp flightOffersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, NewProviderError(c.Name(), fmt.Errorf("decode offers: %w", err))
	}

	offers := make([]models.RoundTripOffer, 0, len(resp.Data))
	for _, raw := range resp.Data {
		offer, err := parseRoundTripOffer(raw)
		if err != nil {
			// One unparseable offer never fails the destination.
			log.Printf("[offers] %s-%s: skipping offer: %v", q.Origin, q.Destination, err)
			continue
		}
		if !offerMatches(offer, q, earliestDepart, latestDepart) {
			continue
		}
		offers = append(offers, offer)
	}

	return dedupeCheapest(offers), nil
}
