package flightdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"flight-finder/internal/domain"
)

// ErrNoFlight is returned when the provider has no record of the requested
// flight.
var ErrNoFlight = errors.New("no flight information found")

// Fetcher resolves a flight designator and departure date to flight info.
type Fetcher interface {
	FlightInfo(ctx context.Context, flightNumber, flightDate, departureAirport string) (*domain.FlightInfo, error)
}

// Config holds the upstream flight status API settings.
type Config struct {
	BaseURL string
	AppID   string
	AppKey  string
	Timeout time.Duration
}

// Client fetches flight status from a FlightStats-compatible API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	appKey     string
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
	}
}

type statusResponse struct {
	FlightStatuses []struct {
		CarrierFsCode          string `json:"carrierFsCode"`
		FlightNumber           string `json:"flightNumber"`
		DepartureAirportFsCode string `json:"departureAirportFsCode"`
		ArrivalAirportFsCode   string `json:"arrivalAirportFsCode"`
		DepartureDate          struct {
			DateLocal string `json:"dateLocal"`
		} `json:"departureDate"`
		ArrivalDate struct {
			DateLocal string `json:"dateLocal"`
		} `json:"arrivalDate"`
		Status string `json:"status"`
	} `json:"flightStatuses"`
}

// FlightInfo looks up the status of one flight. flightNumber is a full
// designator like "AA100", flightDate is YYYY-MM-DD, departureAirport is an
// IATA/FS code used to disambiguate multi-leg flights.
func (c *Client) FlightInfo(ctx context.Context, flightNumber, flightDate, departureAirport string) (*domain.FlightInfo, error) {
	carrier, number, err := splitDesignator(flightNumber)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse("2006-01-02", flightDate)
	if err != nil {
		return nil, fmt.Errorf("parse flight date: %w", err)
	}

	endpoint := fmt.Sprintf("%s/flex/flightstatus/rest/v2/json/flight/status/%s/%s/dep/%d/%d/%d",
		c.baseURL, carrier, number, date.Year(), int(date.Month()), date.Day())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build flight status request: %w", err)
	}
	q := url.Values{}
	q.Set("appId", c.appID)
	q.Set("appKey", c.appKey)
	q.Set("airport", departureAirport)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch flight status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight status api returned %s", resp.Status)
	}

	var payload statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode flight status: %w", err)
	}
	if len(payload.FlightStatuses) == 0 {
		return nil, ErrNoFlight
	}

	status := payload.FlightStatuses[0]
	return &domain.FlightInfo{
		Carrier:          status.CarrierFsCode,
		FlightNumber:     status.FlightNumber,
		DepartureAirport: status.DepartureAirportFsCode,
		ArrivalAirport:   status.ArrivalAirportFsCode,
		DepartureTime:    status.DepartureDate.DateLocal,
		ArrivalTime:      status.ArrivalDate.DateLocal,
		Status:           status.Status,
	}, nil
}

// splitDesignator splits "AA100" into carrier "AA" and flight number "100".
func splitDesignator(designator string) (string, string, error) {
	designator = strings.ToUpper(strings.TrimSpace(designator))
	split := 0
	for i, r := range designator {
		if unicode.IsDigit(r) {
			split = i
			break
		}
	}
	if split == 0 || split >= len(designator) {
		return "", "", fmt.Errorf("invalid flight designator %q", designator)
	}
	return designator[:split], designator[split:], nil
}
