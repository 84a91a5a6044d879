package identity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"listings-api/internal/config"
	"listings-api/pkg/logger"
)

// Client talks to the external identity service. It is constructed once per
// process and injected; there is no package-level instance.
type Client struct {
	http            *resty.Client
	introspectPath  string
	userInfoPath    string
	authTimeout     time.Duration
	userInfoTimeout time.Duration
	log             logger.Logger
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool           `json:"active"`
	Claims map[string]any `json:"claims"`
	Reason string         `json:"reason"`
}

// UserDetails is the contact record the identity service releases for a user
// who has a visit or proposal relation with the caller.
type UserDetails struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func NewClient(cfg config.IdentityConfig, log logger.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		http:            httpClient,
		introspectPath:  cfg.IntrospectPath,
		userInfoPath:    cfg.UserInfoPath,
		authTimeout:     cfg.AuthTimeout,
		userInfoTimeout: cfg.UserInfoTimeout,
		log:             log,
	}
}

// Introspect exchanges a bearer token for a validated Principal. Transport
// failures surface as ErrServiceUnavailable so callers can tell an outage
// apart from a rejected token.
func (c *Client) Introspect(ctx context.Context, token string) (Principal, error) {
	ctx, cancel := context.WithTimeout(ctx, c.authTimeout)
	defer cancel()

	var result introspectResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(introspectRequest{Token: token}).
		SetResult(&result).
		Post(c.introspectPath)
	if err != nil {
		c.log.InternalError("identity: introspection request failed", err)
		return Principal{}, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		c.log.Error("identity: introspection returned unexpected status", "status", resp.StatusCode())
		return Principal{}, fmt.Errorf("%w: introspection status %d", ErrServiceUnavailable, resp.StatusCode())
	}

	if !result.Active {
		reason := result.Reason
		if reason == "" {
			reason = "token is not active"
		}
		return Principal{}, fmt.Errorf("%w: %s", ErrUnauthenticated, reason)
	}

	return principalFromClaims(result.Claims)
}

// UserInfo fetches contact details for subjectID, forwarding the caller's
// token so the identity service can enforce its own relation check. It is
// best-effort: any denial, absence, or failure yields nil without an error.
func (c *Client) UserInfo(ctx context.Context, subjectID, callerToken string) *UserDetails {
	ctx, cancel := context.WithTimeout(ctx, c.userInfoTimeout)
	defer cancel()

	var details UserDetails
	resp, err := c.http.R().
		SetContext(ctx).
		SetCookie(&http.Cookie{Name: "access_token", Value: callerToken}).
		SetResult(&details).
		Get(c.userInfoPath + "/" + subjectID)
	if err != nil {
		c.log.Debug("identity: user info lookup failed", "subject_id", subjectID, "err", err)
		return nil
	}
	if resp.StatusCode() != http.StatusOK {
		c.log.Debug("identity: user info lookup denied", "subject_id", subjectID, "status", resp.StatusCode())
		return nil
	}
	if details.ID == "" {
		details.ID = subjectID
	}

	return &details
}
