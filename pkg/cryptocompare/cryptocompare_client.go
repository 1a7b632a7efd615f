package cryptocompare_client

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

const baseUrl = "https://min-api.cryptocompare.com"

// Client is the secondary price source. It keys by ticker symbol ("DOT")
// rather than coin id, so callers translate before asking.
type Client struct {
	HttpClient *retryablehttp.Client
}

func NewClient() *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 2
	httpClient.RetryWaitMin = 500 * time.Millisecond
	httpClient.Logger = nil

	return &Client{
		HttpClient: httpClient,
	}
}

func (c Client) GetCurrentPriceUsd(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf("%s/data/price?fsym=%s&tsyms=USD", baseUrl, strings.ToUpper(symbol))
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return 0, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != 200 {
		return 0, fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	responseBody := map[string]float64{}
	err = json.Unmarshal(responseBytes, &responseBody)
	if err != nil {
		return 0, err
	}

	price, ok := responseBody["USD"]
	if !ok {
		return 0, fmt.Errorf("cryptocompare response missing USD price for %s", symbol)
	}

	return price, nil
}
