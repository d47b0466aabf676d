package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"voyager/internal/models/itinerary"
	"voyager/pkg/utils"
)

// RemoteItineraryClient talks to the itinerary HTTP API. Besides the provider
// operations it serves remote quotes and trip documents.
type RemoteItineraryClient struct {
	HTTP    *http.Client
	BaseURL string
}

func NewRemoteItineraryClient(baseURL string, timeout time.Duration) *RemoteItineraryClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &RemoteItineraryClient{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *RemoteItineraryClient) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrItineraryService, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrItineraryService, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", utils.ErrItineraryService, err)
	}
	if resp.StatusCode/100 != 2 {
		text := strings.TrimSpace(string(data))
		if text == "" {
			text = fmt.Sprintf("Itinerary API error %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", utils.ErrItineraryService, text)
	}
	return data, nil
}

func (c *RemoteItineraryClient) Generate(ctx context.Context, req itinerary.TripRequest) (*itinerary.GenerateResponse, error) {
	data, err := c.post(ctx, "/itinerary/generate", req)
	if err != nil {
		return nil, err
	}
	out, err := itinerary.ParseGenerateResponse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedItinerary, err)
	}
	return out, nil
}

func (c *RemoteItineraryClient) PlanWithPicks(ctx context.Context, req itinerary.PicksRequest) (*itinerary.PicksResponse, error) {
	data, err := c.post(ctx, "/itinerary/plan-with-picks", req)
	if err != nil {
		return nil, err
	}
	out, err := itinerary.ParsePicksResponse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedItinerary, err)
	}
	return out, nil
}

// Quote asks the itinerary API for an itemized quote of one option.
func (c *RemoteItineraryClient) Quote(ctx context.Context, option itinerary.Option) (*itinerary.Quote, error) {
	data, err := c.post(ctx, "/itinerary/quote", map[string]interface{}{"option": option})
	if err != nil {
		return nil, err
	}
	quote, err := itinerary.ParseQuoteResponse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMalformedItinerary, err)
	}
	return quote, nil
}

// TripDocument fetches the document body from /itinerary/trip-document.
func (c *RemoteItineraryClient) TripDocument(ctx context.Context, in TripDocumentInput) (string, error) {
	data, err := c.post(ctx, "/itinerary/trip-document", in)
	if err != nil {
		return "", err
	}
	var out struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%w: decode trip document: %v", utils.ErrMalformedItinerary, err)
	}
	return out.Content, nil
}
