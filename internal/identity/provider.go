package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/workos/workos-go/v4/pkg/usermanagement"
)

var ErrNotConfigured = errors.New("identity provider is not configured")

// ProviderUser is the provider's view of a signed-in person.
type ProviderUser struct {
	ProviderID string
	Email      string
	FirstName  string
	LastName   string
	PictureURL string
}

// DisplayName falls back to the email when no name is on file.
func (u ProviderUser) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

type Authentication struct {
	User         ProviderUser
	AccessToken  string
	RefreshToken string
}

// Provider is the external OAuth identity provider.
type Provider interface {
	AuthorizationURL(state string) (string, error)
	Authenticate(ctx context.Context, code string) (*Authentication, error)
	LogoutURL(sessionID string) (string, error)
}

// WorkOSProvider signs users in through WorkOS AuthKit.
type WorkOSProvider struct {
	client      *usermanagement.Client
	clientID    string
	redirectURI string
}

func NewWorkOSProvider(apiKey, clientID, redirectURI string) *WorkOSProvider {
	return &WorkOSProvider{
		client:      usermanagement.NewClient(apiKey),
		clientID:    clientID,
		redirectURI: redirectURI,
	}
}

func (p *WorkOSProvider) AuthorizationURL(state string) (string, error) {
	if p.clientID == "" {
		return "", ErrNotConfigured
	}
	u, err := p.client.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    p.clientID,
		RedirectURI: p.redirectURI,
		Provider:    "authkit",
		State:       state,
	})
	if err != nil {
		return "", fmt.Errorf("build authorization url: %w", err)
	}
	return u.String(), nil
}

func (p *WorkOSProvider) Authenticate(ctx context.Context, code string) (*Authentication, error) {
	if p.clientID == "" {
		return nil, ErrNotConfigured
	}
	resp, err := p.client.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: p.clientID,
		Code:     code,
	})
	if err != nil {
		return nil, fmt.Errorf("authenticate with code: %w", err)
	}
	if resp.User.ID == "" {
		return nil, errors.New("provider returned no user")
	}
	return &Authentication{
		User: ProviderUser{
			ProviderID: resp.User.ID,
			Email:      resp.User.Email,
			FirstName:  resp.User.FirstName,
			LastName:   resp.User.LastName,
			PictureURL: resp.User.ProfilePictureURL,
		},
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

func (p *WorkOSProvider) LogoutURL(sessionID string) (string, error) {
	u, err := p.client.GetLogoutURL(usermanagement.GetLogoutURLOpts{SessionID: sessionID})
	if err != nil {
		return "", fmt.Errorf("build logout url: %w", err)
	}
	return u.String(), nil
}
