package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/nova/internal/account/entity"
	"github.com/shandysiswandi/nova/internal/pkg/config"
	"github.com/shandysiswandi/nova/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2/clientcredentials"
)

// Keycloak talks to the Keycloak realm this service delegates identity to.
// Token grants go through the public token endpoint; user management goes
// through the admin API with a client-credentials token.
type Keycloak struct {
	tokenURL     string
	adminURL     string
	clientID     string
	clientSecret string
	client       *http.Client
	adminClient  *http.Client
	ins          instrument.Instrumentation
}

func NewKeycloak(cfg config.Config, ins instrument.Instrumentation) *Keycloak {
	base := strings.TrimRight(cfg.GetString("keycloak.uri"), "/")
	realm := cfg.GetString("keycloak.realm")
	tokenURL := base + "/realms/" + realm + "/protocol/openid-connect/token/"

	cc := clientcredentials.Config{
		ClientID:     cfg.GetString("keycloak.client_id"),
		ClientSecret: cfg.GetString("keycloak.client_secret"),
		TokenURL:     tokenURL,
	}

	return &Keycloak{
		tokenURL:     tokenURL,
		adminURL:     base + "/admin/realms/" + realm,
		clientID:     cfg.GetString("keycloak.client_id"),
		clientSecret: cfg.GetString("keycloak.client_secret"),
		client:       &http.Client{Timeout: cfg.GetSecond("keycloak.timeout_seconds")},
		adminClient:  cc.Client(context.Background()),
		ins:          ins,
	}
}

func (k *Keycloak) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return k.ins.Tracer("account.outbound.idp").Start(ctx, name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// keycloakUser is the admin API representation. Everything this service
// stores beyond the standard fields rides in attributes.
type keycloakUser struct {
	ID            string              `json:"id,omitempty"`
	Email         string              `json:"email"`
	Username      string              `json:"username"`
	FirstName     string              `json:"firstName"`
	LastName      string              `json:"lastName"`
	Attributes    map[string][]string `json:"attributes"`
	Credentials   []credential        `json:"credentials,omitempty"`
	Enabled       bool                `json:"enabled"`
	EmailVerified bool                `json:"emailVerified"`
}

type credential struct {
	Value     string `json:"value"`
	Type      string `json:"type"`
	Temporary bool   `json:"temporary"`
}

func userAttributes(user entity.User) map[string][]string {
	attrs := map[string][]string{
		"phone":       {user.Phone},
		"national_id": {user.NationalID},
		"is_verified": {strconv.FormatBool(user.IsVerified)},
		"status":      {user.Status.Ensure().String()},
		"is_deleted":  {strconv.FormatBool(user.IsDeleted)},
	}
	if user.BirthDate != nil {
		attrs["birthdate"] = []string{user.BirthDate.Format(time.DateOnly)}
	}
	if user.IDExpiration != nil {
		attrs["id_expiration"] = []string{user.IDExpiration.Format(time.DateOnly)}
	}

	return attrs
}

func (k *Keycloak) GetToken(ctx context.Context, username, password string) (_ *entity.TokenPair, err error) {
	ctx, span := k.startSpan(ctx, "GetToken")
	defer func() { endSpan(span, err) }()

	return k.grant(ctx, url.Values{
		"grant_type":    {"password"},
		"client_id":     {k.clientID},
		"client_secret": {k.clientSecret},
		"username":      {username},
		"password":      {password},
	})
}

func (k *Keycloak) RefreshToken(ctx context.Context, refreshToken string) (_ *entity.TokenPair, err error) {
	ctx, span := k.startSpan(ctx, "RefreshToken")
	defer func() { endSpan(span, err) }()

	return k.grant(ctx, url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {k.clientID},
		"client_secret": {k.clientSecret},
		"refresh_token": {refreshToken},
	})
}

func (k *Keycloak) grant(ctx context.Context, form url.Values) (*entity.TokenPair, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := k.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("keycloak token endpoint returned %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, err
	}

	return &entity.TokenPair{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}, nil
}

func (k *Keycloak) CreateUser(ctx context.Context, user entity.User, password string) (_ string, err error) {
	ctx, span := k.startSpan(ctx, "CreateUser")
	defer func() { endSpan(span, err) }()

	payload := keycloakUser{
		Email:      user.Email,
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Attributes: userAttributes(user),
		Credentials: []credential{{
			Value:     password,
			Type:      "password",
			Temporary: false,
		}},
		Enabled: true,
	}

	if err = k.adminRequest(ctx, http.MethodPost, "/users", payload, nil); err != nil {
		return "", err
	}

	created, err := k.findUser(ctx, user.Username)
	if err != nil {
		return "", err
	}

	return created.ID, nil
}

func (k *Keycloak) UpdateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := k.startSpan(ctx, "UpdateUser")
	defer func() { endSpan(span, err) }()

	existing, err := k.findUser(ctx, user.Username)
	if err != nil {
		return err
	}

	existing.Email = user.Email
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	for key, value := range userAttributes(user) {
		if existing.Attributes == nil {
			existing.Attributes = map[string][]string{}
		}
		existing.Attributes[key] = value
	}

	return k.adminRequest(ctx, http.MethodPut, "/users/"+existing.ID, existing, nil)
}

func (k *Keycloak) DeleteUser(ctx context.Context, username string) (err error) {
	ctx, span := k.startSpan(ctx, "DeleteUser")
	defer func() { endSpan(span, err) }()

	user, err := k.findUser(ctx, username)
	if err != nil {
		return err
	}

	return k.adminRequest(ctx, http.MethodDelete, "/users/"+user.ID, nil, nil)
}

func (k *Keycloak) ChangePassword(ctx context.Context, username, newPassword string) (err error) {
	ctx, span := k.startSpan(ctx, "ChangePassword")
	defer func() { endSpan(span, err) }()

	user, err := k.findUser(ctx, username)
	if err != nil {
		return err
	}

	payload := credential{
		Value:     newPassword,
		Type:      "password",
		Temporary: false,
	}

	return k.adminRequest(ctx, http.MethodPut, "/users/"+user.ID+"/reset-password", payload, nil)
}

func (k *Keycloak) findUser(ctx context.Context, username string) (*keycloakUser, error) {
	var users []keycloakUser
	if err := k.adminRequest(ctx, http.MethodGet, "/users?username="+url.QueryEscape(username), nil, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("keycloak user %q not found", username)
	}

	return &users[0], nil
}

// adminRequest sends one admin API call, retrying transient failures with
// exponential backoff. 5xx responses are retryable, 4xx are not.
func (k *Keycloak) adminRequest(ctx context.Context, method, endpoint string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return err
		}
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, k.adminURL+endpoint, reader)
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := k.adminClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("keycloak admin api returned %d", resp.StatusCode))
		}
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("keycloak admin api returned %d", resp.StatusCode)
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return err
			}
		}

		return nil
	})
}
