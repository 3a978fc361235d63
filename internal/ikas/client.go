package ikas

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/modaline/whatsapp-support-bot/internal/models"
	"github.com/modaline/whatsapp-support-bot/internal/utils"
)

var (
	// ErrUnreachable is the sentinel for token acquisition failures. Callers
	// must check it before any dependent call.
	ErrUnreachable = errors.New("ikas: upstream unreachable")

	// ErrOrderNotFound is returned when a lookup matches no order.
	ErrOrderNotFound = errors.New("ikas: order not found")
)

// Client talks to the IKAS admin GraphQL API using OAuth2 client credentials.
type Client struct {
	clientID     string
	clientSecret string
	tokenURL     string
	graphqlURL   string
	httpClient   *http.Client
	log          *logrus.Logger

	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// Config holds the upstream API credentials and endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	GraphQLURL   string
}

// NewClient creates a new IKAS API client.
func NewClient(cfg Config, log *logrus.Logger) *Client {
	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     cfg.TokenURL,
		graphqlURL:   cfg.GraphQLURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		log:          log,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a cached access token, fetching a fresh one when the cache is
// empty or close to expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-time.Minute)) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Errorf("IKAS token request failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.log.Errorf("IKAS token request status %d: %s", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: token status %d", ErrUnreachable, resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil || token.AccessToken == "" {
		return "", fmt.Errorf("%w: decoding token response", ErrUnreachable)
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// orderDTO mirrors the upstream order shape before status canonicalization.
type orderDTO struct {
	OrderNumber     string  `json:"orderNumber"`
	Status          string  `json:"status"`
	TotalFinalPrice float64 `json:"totalFinalPrice"`
	CurrencyCode    string  `json:"currencyCode"`
	CreatedAt       string  `json:"createdAt"`
	CustomerPhone   string  `json:"customerPhone"`
	TrackingURL     string  `json:"trackingUrl"`
	OrderLineItems  []struct {
		ProductName string  `json:"productName"`
		Quantity    int     `json:"quantity"`
		UnitPrice   float64 `json:"unitPrice"`
		ImageURL    string  `json:"imageUrl"`
	} `json:"orderLineItems"`
}

func (dto orderDTO) toModel() models.Order {
	order := models.Order{
		OrderNumber:     dto.OrderNumber,
		Status:          models.ParseOrderStatus(dto.Status),
		TotalFinalPrice: dto.TotalFinalPrice,
		CurrencyCode:    dto.CurrencyCode,
		CreatedAt:       dto.CreatedAt,
		CustomerPhone:   dto.CustomerPhone,
		TrackingURL:     dto.TrackingURL,
	}
	for _, item := range dto.OrderLineItems {
		order.Items = append(order.Items, models.OrderLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			ImageURL:    item.ImageURL,
		})
	}
	return order
}

const listOrderQuery = `query {
  listOrder {
    data {
      orderNumber
      status
      totalFinalPrice
      currencyCode
      createdAt
      customerPhone
      trackingUrl
      orderLineItems { productName quantity unitPrice imageUrl }
    }
  }
}`

const orderByNumberQuery = `query ($orderNumber: String!) {
  listOrder(orderNumber: { eq: $orderNumber }) {
    data {
      orderNumber
      status
      totalFinalPrice
      currencyCode
      createdAt
      customerPhone
      trackingUrl
      orderLineItems { productName quantity unitPrice imageUrl }
    }
  }
}`

const createReturnRequestMutation = `mutation ($orderNumber: String!) {
  createReturnRequest(input: { orderNumber: $orderNumber }) {
    id
  }
}`

// ListOrdersByPhone fetches all orders and filters client-side by exact
// canonical phone match; the upstream API has no server-side phone filter.
func (c *Client) ListOrdersByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	var result struct {
		ListOrder struct {
			Data []orderDTO `json:"data"`
		} `json:"listOrder"`
	}
	if err := c.query(ctx, graphqlRequest{Query: listOrderQuery}, &result); err != nil {
		return nil, err
	}

	canonical := utils.NormalizePhone(phone)
	var orders []models.Order
	for _, dto := range result.ListOrder.Data {
		if utils.NormalizePhone(dto.CustomerPhone) == canonical {
			orders = append(orders, dto.toModel())
		}
	}
	return orders, nil
}

// GetOrderByNumber looks up a single order by the literal user-supplied
// number. No format validation; malformed input just yields ErrOrderNotFound.
func (c *Client) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var result struct {
		ListOrder struct {
			Data []orderDTO `json:"data"`
		} `json:"listOrder"`
	}
	req := graphqlRequest{
		Query:     orderByNumberQuery,
		Variables: map[string]any{"orderNumber": orderNumber},
	}
	if err := c.query(ctx, req, &result); err != nil {
		return nil, err
	}
	if len(result.ListOrder.Data) == 0 {
		return nil, ErrOrderNotFound
	}
	order := result.ListOrder.Data[0].toModel()
	return &order, nil
}

// CreateReturnRequest submits a return request for an order.
func (c *Client) CreateReturnRequest(ctx context.Context, orderNumber string) error {
	var result struct {
		CreateReturnRequest struct {
			ID string `json:"id"`
		} `json:"createReturnRequest"`
	}
	req := graphqlRequest{
		Query:     createReturnRequestMutation,
		Variables: map[string]any{"orderNumber": orderNumber},
	}
	return c.query(ctx, req, &result)
}

func (c *Client) query(ctx context.Context, request graphqlRequest, result any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("marshaling graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating graphql request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Errorf("IKAS graphql request failed: %v", err)
		return fmt.Errorf("graphql request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading graphql response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Errorf("IKAS graphql status %d: %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("graphql status %d", resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("decoding graphql envelope: %w", err)
	}
	if len(envelope.Errors) > 0 {
		c.log.Errorf("IKAS graphql errors: %s", envelope.Errors[0].Message)
		return fmt.Errorf("graphql error: %s", envelope.Errors[0].Message)
	}
	if err := json.Unmarshal(envelope.Data, result); err != nil {
		return fmt.Errorf("decoding graphql data: %w", err)
	}
	return nil
}
