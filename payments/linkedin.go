package payments

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	linkedInAuthBaseURL = "https://www.linkedin.com"
	linkedInAPIBaseURL  = "https://api.linkedin.com"
)

// LinkedInClient exchanges OAuth authorization codes for member profiles.
type LinkedInClient struct {
	ClientID     string
	clientSecret string
	RedirectURI  string

	AuthBaseURL string
	APIBaseURL  string

	http *resty.Client
}

func NewLinkedInClient(clientID, clientSecret, redirectURI string) *LinkedInClient {
	return &LinkedInClient{
		ClientID:     clientID,
		clientSecret: clientSecret,
		RedirectURI:  redirectURI,
		AuthBaseURL:  linkedInAuthBaseURL,
		APIBaseURL:   linkedInAPIBaseURL,
		http:         resty.New().SetTimeout(15 * time.Second),
	}
}

// LinkedInProfile is the identity extracted from the provider. Email may be
// empty when the member has not granted the email scope.
type LinkedInProfile struct {
	ID         string
	FirstName  string
	LastName   string
	Email      string
	PictureURL string
}

// DisplayName joins the localized names, with the provider's own fallbacks
// when a part is missing.
func (p *LinkedInProfile) DisplayName() string {
	first := p.FirstName
	if first == "" {
		first = "LinkedIn"
	}
	last := p.LastName
	if last == "" {
		last = "User"
	}
	return first + " " + last
}

// FallbackEmail synthesizes a deterministic placeholder address from the
// subject id so the email-uniqueness invariant holds for members who do not
// share their address.
func (p *LinkedInProfile) FallbackEmail() string {
	return fmt.Sprintf("linkedin_%s@vibecoding.local", p.ID)
}

// Authenticate exchanges the authorization code for an access token and
// fetches the member's profile. The email lookup is best effort.
func (lc *LinkedInClient) Authenticate(code string) (*LinkedInProfile, error) {
	accessToken, err := lc.exchangeCode(code)
	if err != nil {
		return nil, err
	}

	profile, err := lc.fetchProfile(accessToken)
	if err != nil {
		return nil, err
	}

	if email, err := lc.fetchEmail(accessToken); err != nil {
		log.Printf("LinkedIn email not available: %v", err)
	} else {
		profile.Email = email
	}

	return profile, nil
}

func (lc *LinkedInClient) exchangeCode(code string) (string, error) {
	resp, err := lc.http.R().
		SetFormData(map[string]string{
			"grant_type":    "authorization_code",
			"code":          code,
			"client_id":     lc.ClientID,
			"client_secret": lc.clientSecret,
			"redirect_uri":  lc.RedirectURI,
		}).
		Post(lc.AuthBaseURL + "/oauth/v2/accessToken")
	if err != nil {
		return "", fmt.Errorf("linkedin token exchange failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("linkedin token exchange failed: status %d", resp.StatusCode())
	}

	var tokenData struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Body(), &tokenData); err != nil {
		return "", fmt.Errorf("linkedin token exchange failed: %w", err)
	}
	if tokenData.AccessToken == "" {
		return "", fmt.Errorf("no access token received from LinkedIn")
	}
	return tokenData.AccessToken, nil
}

func (lc *LinkedInClient) fetchProfile(accessToken string) (*LinkedInProfile, error) {
	resp, err := lc.http.R().
		SetHeader("Authorization", "Bearer "+accessToken).
		SetHeader("X-Restli-Protocol-Version", "2.0.0").
		Get(lc.APIBaseURL + "/v2/people/~")
	if err != nil {
		return nil, fmt.Errorf("linkedin profile fetch failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("linkedin profile fetch failed: status %d", resp.StatusCode())
	}

	var raw struct {
		ID        string `json:"id"`
		FirstName struct {
			Localized map[string]string `json:"localized"`
		} `json:"firstName"`
		LastName struct {
			Localized map[string]string `json:"localized"`
		} `json:"lastName"`
		ProfilePicture struct {
			DisplayImage struct {
				Elements []struct {
					Identifiers []struct {
						Identifier string `json:"identifier"`
					} `json:"identifiers"`
				} `json:"elements"`
			} `json:"displayImage~"`
		} `json:"profilePicture"`
	}
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("linkedin profile fetch failed: %w", err)
	}
	if raw.ID == "" {
		return nil, fmt.Errorf("linkedin profile missing member id")
	}

	profile := &LinkedInProfile{
		ID:        raw.ID,
		FirstName: localizedName(raw.FirstName.Localized),
		LastName:  localizedName(raw.LastName.Localized),
	}
	if elements := raw.ProfilePicture.DisplayImage.Elements; len(elements) > 0 && len(elements[0].Identifiers) > 0 {
		profile.PictureURL = elements[0].Identifiers[0].Identifier
	}
	return profile, nil
}

func (lc *LinkedInClient) fetchEmail(accessToken string) (string, error) {
	resp, err := lc.http.R().
		SetHeader("Authorization", "Bearer "+accessToken).
		SetHeader("X-Restli-Protocol-Version", "2.0.0").
		Get(lc.APIBaseURL + "/v2/emailAddress?q=members&projection=(elements*(handle~))")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode())
	}

	var raw struct {
		Elements []struct {
			Handle struct {
				EmailAddress string `json:"emailAddress"`
			} `json:"handle~"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return "", err
	}
	if len(raw.Elements) == 0 || raw.Elements[0].Handle.EmailAddress == "" {
		return "", fmt.Errorf("no email in response")
	}
	return raw.Elements[0].Handle.EmailAddress, nil
}

func localizedName(localized map[string]string) string {
	if name, ok := localized["en_US"]; ok {
		return name
	}
	for _, name := range localized {
		return name
	}
	return ""
}
