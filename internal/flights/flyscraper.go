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

const defaultFlyScraperURL = "https://fly-scraper.p.rapidapi.com"

// FlyScraper queries the Fly Scraper API, which accepts free-text city names
// directly.
type FlyScraper struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewFlyScraper(apiKey, baseURL string, logger *slog.Logger) *FlyScraper {
	if baseURL == "" {
		baseURL = defaultFlyScraperURL
	}
	return &FlyScraper{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

type flyScraperResponse struct {
	Flights []struct {
		Price struct {
			Amount   float64 `json:"amount"`
			Currency string  `json:"currency"`
		} `json:"price"`
		DepartureTime string `json:"departureTime"`
		ArrivalTime   string `json:"arrivalTime"`
		Airline       string `json:"airline"`
	} `json:"flights"`
}

func (f *FlyScraper) Search(ctx context.Context, q Query) ([]Offer, error) {
	params := url.Values{}
	params.Set("origin", q.From)
	params.Set("destination", q.To)
	params.Set("date", q.Date)
	params.Set("adults", "1")
	params.Set("cabinClass", "economy")
	params.Set("currency", "USD")
	params.Set("limit", fmt.Sprint(resultLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/flights/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", f.apiKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fly scraper call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		f.logger.Error("fly scraper search failed", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("fly scraper error %d", resp.StatusCode)
	}

	var apiResp flyScraperResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	offers := make([]Offer, 0, len(apiResp.Flights))
	for _, fl := range apiResp.Flights {
		if len(offers) == resultLimit {
			break
		}
		offer := Offer{
			Price:    fl.Price.Amount,
			Currency: fl.Price.Currency,
			Carrier:  fl.Airline,
		}
		if offer.Currency == "" {
			offer.Currency = "USD"
		}
		if t, err := time.Parse(time.RFC3339, fl.DepartureTime); err == nil {
			offer.DepartureTime = t
		}
		if t, err := time.Parse(time.RFC3339, fl.ArrivalTime); err == nil {
			offer.ArrivalTime = t
		}
		offers = append(offers, offer)
	}
	return offers, nil
}
