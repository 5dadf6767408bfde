package flights

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultKiwiURL = "https://api.tequila.kiwi.com/v2"

// Kiwi queries the Tequila search API. Tequila wants IATA codes, so city
// names go through the static code table first; an unresolved name is a
// *UnknownCityError, not a transport failure.
type Kiwi struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewKiwi(apiKey, baseURL string, logger *slog.Logger) *Kiwi {
	if baseURL == "" {
		baseURL = defaultKiwiURL
	}
	return &Kiwi{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

type kiwiResponse struct {
	Currency string `json:"currency"`
	Data     []struct {
		Price          float64  `json:"price"`
		Airlines       []string `json:"airlines"`
		LocalDeparture string   `json:"local_departure"`
		LocalArrival   string   `json:"local_arrival"`
	} `json:"data"`
}

func (k *Kiwi) Search(ctx context.Context, q Query) ([]Offer, error) {
	var unknown []string
	from, ok := ResolveCity(q.From)
	if !ok {
		unknown = append(unknown, q.From)
	}
	to, ok := ResolveCity(q.To)
	if !ok {
		unknown = append(unknown, q.To)
	}
	if len(unknown) > 0 {
		return nil, &UnknownCityError{Cities: unknown}
	}

	// Tequila takes dd/mm/yyyy bounds.
	day, err := time.Parse("2006-01-02", q.Date)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", q.Date, err)
	}
	dateParam := day.Format("02/01/2006")

	params := url.Values{}
	params.Set("fly_from", from)
	params.Set("fly_to", to)
	params.Set("date_from", dateParam)
	params.Set("date_to", dateParam)
	params.Set("adults", "1")
	params.Set("selected_cabins", "M")
	params.Set("curr", "EUR")
	params.Set("limit", fmt.Sprint(resultLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", k.apiKey)

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kiwi call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		k.logger.Error("kiwi search failed", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("kiwi error %d", resp.StatusCode)
	}

	var apiResp kiwiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	offers := make([]Offer, 0, len(apiResp.Data))
	for _, d := range apiResp.Data {
		if len(offers) == resultLimit {
			break
		}
		offer := Offer{Price: d.Price, Currency: apiResp.Currency}
		if offer.Currency == "" {
			offer.Currency = "EUR"
		}
		if t, err := time.Parse(time.RFC3339, d.LocalDeparture); err == nil {
			offer.DepartureTime = t
		}
		if t, err := time.Parse(time.RFC3339, d.LocalArrival); err == nil {
			offer.ArrivalTime = t
		}
		if len(d.Airlines) > 0 {
			offer.Carrier = d.Airlines[0]
		}
		offers = append(offers, offer)
	}
	return offers, nil
}
