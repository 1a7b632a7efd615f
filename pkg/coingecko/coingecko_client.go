package coingecko_client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const baseUrl = "https://api.coingecko.com/api/v3"

type Client struct {
	HttpClient *retryablehttp.Client
	ApiKey     string
}

func NewClient(apiKey string) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 3
	httpClient.RetryWaitMin = 500 * time.Millisecond
	httpClient.Logger = nil

	return &Client{
		HttpClient: httpClient,
		ApiKey:     apiKey,
	}
}

func (c Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, baseUrl+path, nil)
	if err != nil {
		return nil, err
	}
	if c.ApiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.ApiKey)
	}

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode != 200 {
		return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	return responseBytes, nil
}

// GetCurrentPriceUsd fetches the spot USD price for a coin id, e.g.
// "polkadot" or "kusama".
func (c Client) GetCurrentPriceUsd(ctx context.Context, coinID string) (float64, error) {
	path := fmt.Sprintf("/simple/price?ids=%s&vs_currencies=usd", coinID)
	responseBytes, err := c.get(ctx, path)
	if err != nil {
		return 0, err
	}

	responseBody := map[string]map[string]float64{}
	err = json.Unmarshal(responseBytes, &responseBody)
	if err != nil {
		return 0, err
	}

	prices, ok := responseBody[strings.ToLower(coinID)]
	if !ok {
		return 0, fmt.Errorf("coingecko response missing coin %s", coinID)
	}
	price, ok := prices["usd"]
	if !ok {
		return 0, fmt.Errorf("coingecko response missing usd price for %s", coinID)
	}

	return price, nil
}

// GetHistoricalPriceUsd fetches the USD price for a coin id on a given
// calendar day.
func (c Client) GetHistoricalPriceUsd(ctx context.Context, coinID string, date time.Time) (float64, error) {
	path := fmt.Sprintf("/coins/%s/history?date=%s&localization=false", coinID, date.Format("02-01-2006"))
	responseBytes, err := c.get(ctx, path)
	if err != nil {
		return 0, err
	}

	type historyResponse struct {
		MarketData *struct {
			CurrentPrice map[string]float64 `json:"current_price"`
		} `json:"market_data"`
	}

	responseBody := historyResponse{}
	err = json.Unmarshal(responseBytes, &responseBody)
	if err != nil {
		return 0, err
	}

	if responseBody.MarketData == nil {
		return 0, fmt.Errorf("coingecko has no market data for %s on %s", coinID, date.Format(time.DateOnly))
	}
	price, ok := responseBody.MarketData.CurrentPrice["usd"]
	if !ok {
		return 0, fmt.Errorf("coingecko response missing usd price for %s on %s", coinID, date.Format(time.DateOnly))
	}

	return price, nil
}
