package legistar

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://webapi.legistar.com/v1"

// APIError is returned for a 4xx response, or for a 5xx/network failure
// once retries are exhausted. StatusCode is 0 when the request never
// produced a response.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("legistar API error: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("legistar API error: %s", e.Detail)
}

// Event is a meeting record as the Legistar web API returns it.
// Fields are mapped, not validated.
type Event struct {
	EventID          int    `json:"EventId"`
	EventBodyName    string `json:"EventBodyName"`
	EventDate        string `json:"EventDate"`
	EventLocation    string `json:"EventLocation"`
	EventInSiteURL   string `json:"EventInSiteURL"`
	EventAgendaFile  string `json:"EventAgendaFile"`
	EventMinutesFile string `json:"EventMinutesFile"`
}

type EventItem struct {
	EventItemID    int    `json:"EventItemId"`
	EventItemTitle string `json:"EventItemTitle"`
	EventItemMover string `json:"EventItemMover"`
}

type Body struct {
	BodyID   int    `json:"BodyId"`
	BodyName string `json:"BodyName"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      Policy
}

// NewClient builds a client for one Legistar tenant, e.g. "spokane"
// -> https://webapi.legistar.com/v1/spokane.
func NewClient(clientName string) *Client {
	return &Client{
		baseURL:    fmt.Sprintf("%s/%s", defaultBaseURL, clientName),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry:      DefaultPolicy,
	}
}

// ListEvents returns events, optionally filtered to those on or after
// since via the OData $filter the Legistar API supports.
func (c *Client) ListEvents(since *time.Time) ([]Event, error) {
	endpoint := c.baseURL + "/events"
	if since != nil {
		filter := fmt.Sprintf("EventDate ge datetime'%s'", since.Format("2006-01-02T15:04:05"))
		endpoint += "?$filter=" + url.QueryEscape(filter)
	}

	var events []Event
	if err := c.getJSON(endpoint, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) ListEventItems(eventID int) ([]EventItem, error) {
	endpoint := fmt.Sprintf("%s/events/%d/eventitems", c.baseURL, eventID)

	var items []EventItem
	if err := c.getJSON(endpoint, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ListBodies() ([]Body, error) {
	var bodies []Body
	if err := c.getJSON(c.baseURL+"/bodies", &bodies); err != nil {
		return nil, err
	}
	return bodies, nil
}

func (c *Client) getJSON(endpoint string, out any) error {
	return c.retry.Do(func() error {
		resp, err := c.httpClient.Get(endpoint)
		if err != nil {
			return &APIError{Detail: err.Error()}
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return &APIError{StatusCode: resp.StatusCode, Detail: string(body)}
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{Detail: fmt.Sprintf("decode response: %v", err)}
		}
		return nil
	})
}

// isRetryable treats 5xx responses and responseless failures (connection
// errors, timeouts) as transient. 4xx is terminal.
func isRetryable(err error) bool {
	apiErr, ok := err.(*APIError)
	if !ok {
		return false
	}
	return apiErr.StatusCode == 0 || apiErr.StatusCode >= 500
}
