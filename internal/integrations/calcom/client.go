package calcom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	upstreamName       = "calcom"
	maxErrorBodyLength = 500
)

// Client клиент для Cal.com API v1
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	observer   Observer
	log        Logger
}

// NewClient создает новый экземпляр клиента Cal.com
// requestsPerSecond <= 0 отключает ограничение частоты запросов
func NewClient(baseURL string, timeout time.Duration, requestsPerSecond float64, burst int, log Logger) *Client {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter:  rate.NewLimiter(limit, burst),
		observer: nopObserver{},
		log:      log,
	}
}

// SetObserver подключает сбор метрик запросов
func (c *Client) SetObserver(o Observer) {
	if o != nil {
		c.observer = o
	}
}

// GetAvailability получает занятые интервалы пользователя за период
func (c *Client) GetAvailability(ctx context.Context, req *AvailabilityRequest) (*Availability, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", ErrInternal, err)
	}

	params := url.Values{}
	params.Set("apiKey", req.APIKey)
	params.Set("eventTypeId", strconv.FormatInt(req.EventTypeID, 10))
	params.Set("dateFrom", req.DateFrom.Format(domain.UpstreamFormat))
	params.Set("dateTo", req.DateTo.Format(domain.UpstreamFormat))
	params.Set("username", req.Username)

	endpoint := c.baseURL + "/availability?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.log.Info("Cal.com: fetching availability username=%s event_type_id=%d from=%s to=%s",
		req.Username, req.EventTypeID, params.Get("dateFrom"), params.Get("dateTo"))

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.observer.ObserveUpstream(upstreamName, "error", time.Since(started))
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()
	c.observer.ObserveUpstream(upstreamName, strconv.Itoa(resp.StatusCode), time.Since(started))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
		c.log.Warn("Cal.com: unexpected status %d for username=%s", resp.StatusCode, req.Username)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var availability Availability
	if err := json.NewDecoder(resp.Body).Decode(&availability); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if availability.Busy == nil {
		availability.Busy = []BusyPeriod{}
	}

	c.log.Info("Cal.com: received %d busy periods for username=%s (timezone=%q)",
		len(availability.Busy), req.Username, availability.TimeZone)

	return &availability, nil
}
