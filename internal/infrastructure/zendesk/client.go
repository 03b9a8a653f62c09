package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ojuto/zendesk-user-reports/config"
	"github.com/ojuto/zendesk-user-reports/internal/domain/entity"
)

const defaultPageSize = "100"

// Client fetches entity collections from one Zendesk instance. Every
// collection is retrieved exhaustively through cursor pagination: pages are
// requested one after another until the server reports no more pages.
type Client struct {
	name    string
	baseURL string
	auth    string
	http    *http.Client
	logger  *logrus.Logger

	// OnProgress, when set, is invoked after each page with the cumulative
	// number of items fetched for the given resource.
	OnProgress func(resource string, fetched int)
}

// NewClient creates a client for one configured instance.
func NewClient(cfg config.InstanceConfig, logger *logrus.Logger) *Client {
	return &Client{
		name:    cfg.Name,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		auth:    cfg.BasicAuth(),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Name returns the configured instance name.
func (c *Client) Name() string {
	return c.name
}

type pageMeta struct {
	HasMore bool `json:"has_more"`
}

type pageLinks struct {
	Next string `json:"next"`
}

type usersEnvelope struct {
	Users []entity.User `json:"users"`
	Meta  *pageMeta     `json:"meta"`
	Links *pageLinks    `json:"links"`
}

type customRolesEnvelope struct {
	CustomRoles []entity.CustomAgentRole `json:"custom_roles"`
	Meta        *pageMeta                `json:"meta"`
	Links       *pageLinks               `json:"links"`
}

type brandsEnvelope struct {
	Brands []entity.Brand `json:"brands"`
	Meta   *pageMeta      `json:"meta"`
	Links  *pageLinks     `json:"links"`
}

type brandAgentsEnvelope struct {
	BrandAgents []entity.BrandAgent `json:"brand_agents"`
	Meta        *pageMeta           `json:"meta"`
	Links       *pageLinks          `json:"links"`
}

// FetchAllUsers retrieves every admin and agent user of the instance.
func (c *Client) FetchAllUsers(ctx context.Context) ([]entity.User, error) {
	params := url.Values{}
	params.Set("page[size]", defaultPageSize)
	params["role[]"] = []string{entity.RoleAdmin, entity.RoleAgent}
	return fetchAll(ctx, c, c.endpoint("/api/v2/users.json", params), "users",
		func(data []byte) (page[entity.User], error) {
			var env usersEnvelope
			if err := json.Unmarshal(data, &env); err != nil {
				return page[entity.User]{}, err
			}
			return page[entity.User]{items: env.Users, hasMore: hasMore(env.Meta), next: nextLink(env.Links)}, nil
		})
}

// FetchAllCustomAgentRoles retrieves every custom agent role of the instance.
func (c *Client) FetchAllCustomAgentRoles(ctx context.Context) ([]entity.CustomAgentRole, error) {
	return fetchAll(ctx, c, c.endpoint("/api/v2/custom_roles.json", nil), "custom roles",
		func(data []byte) (page[entity.CustomAgentRole], error) {
			var env customRolesEnvelope
			if err := json.Unmarshal(data, &env); err != nil {
				return page[entity.CustomAgentRole]{}, err
			}
			return page[entity.CustomAgentRole]{items: env.CustomRoles, hasMore: hasMore(env.Meta), next: nextLink(env.Links)}, nil
		})
}

// FetchAllBrands retrieves every brand of the instance.
func (c *Client) FetchAllBrands(ctx context.Context) ([]entity.Brand, error) {
	params := url.Values{}
	params.Set("page[size]", defaultPageSize)
	return fetchAll(ctx, c, c.endpoint("/api/v2/brands.json", params), "brands",
		func(data []byte) (page[entity.Brand], error) {
			var env brandsEnvelope
			if err := json.Unmarshal(data, &env); err != nil {
				return page[entity.Brand]{}, err
			}
			return page[entity.Brand]{items: env.Brands, hasMore: hasMore(env.Meta), next: nextLink(env.Links)}, nil
		})
}

// FetchAllBrandAgents retrieves every brand membership edge of the instance.
func (c *Client) FetchAllBrandAgents(ctx context.Context) ([]entity.BrandAgent, error) {
	params := url.Values{}
	params.Set("page[size]", defaultPageSize)
	return fetchAll(ctx, c, c.endpoint("/api/v2/brand_agents.json", params), "brand agents",
		func(data []byte) (page[entity.BrandAgent], error) {
			var env brandAgentsEnvelope
			if err := json.Unmarshal(data, &env); err != nil {
				return page[entity.BrandAgent]{}, err
			}
			return page[entity.BrandAgent]{items: env.BrandAgents, hasMore: hasMore(env.Meta), next: nextLink(env.Links)}, nil
		})
}

type page[T any] struct {
	items   []T
	hasMore bool
	next    string
}

// fetchAll walks the paginated collection starting at startURL, appending
// items in server order. The loop stops when the server reports no more
// pages. A page that claims more results but carries no next link stops the
// loop with a warning instead of silently truncating.
func fetchAll[T any](ctx context.Context, c *Client, startURL, resource string, decode func([]byte) (page[T], error)) ([]T, error) {
	var all []T
	pageURL := startURL
	for {
		body, err := c.get(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("fetching %s from %s: %w", resource, c.name, err)
		}
		p, err := decode(body)
		if err != nil {
			return nil, fmt.Errorf("decoding %s page from %s: %w", resource, c.name, err)
		}
		all = append(all, p.items...)
		c.logger.WithFields(logrus.Fields{
			"instance": c.name,
			"resource": resource,
			"fetched":  len(all),
		}).Infof("%d %s fetched from %s", len(all), resource, c.name)
		if c.OnProgress != nil {
			c.OnProgress(resource, len(all))
		}
		if !p.hasMore {
			return all, nil
		}
		if p.next == "" {
			c.logger.WithFields(logrus.Fields{
				"instance": c.name,
				"resource": resource,
				"fetched":  len(all),
				"url":      pageURL,
			}).Warn("server reported more pages but sent no next link, stopping pagination")
			return all, nil
		}
		pageURL = p.next
	}
}

func (c *Client) get(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Basic "+c.auth)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %d", pageURL, resp.StatusCode)
	}
	return body, nil
}

func (c *Client) endpoint(path string, params url.Values) string {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func hasMore(m *pageMeta) bool {
	return m != nil && m.HasMore
}

func nextLink(l *pageLinks) string {
	if l == nil {
		return ""
	}
	return l.Next
}
