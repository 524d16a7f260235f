package application

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const defaultGitHubAPI = "https://api.github.com"

type GitHubProfile struct {
	Login     string `json:"login"`
	ID        int64  `json:"id"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

type GistFile struct {
	Filename string `json:"filename"`
	Language string `json:"language,omitempty"`
	RawURL   string `json:"raw_url,omitempty"`
	Size     int64  `json:"size"`
}

type Gist struct {
	ID          string              `json:"id"`
	HTMLURL     string              `json:"html_url"`
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	CreatedAt   time.Time           `json:"created_at"`
	Files       map[string]GistFile `json:"files"`
}

// GitHubService wraps the GitHub OAuth code exchange and the public gists API.
type GitHubService struct {
	OAuth  *oauth2.Config
	APIURL string
	HTTP   *http.Client
	Logger *logrus.Logger
}

func NewGitHubService(clientID, clientSecret, apiURL string, timeout time.Duration, logger *logrus.Logger) *GitHubService {
	if apiURL == "" {
		apiURL = defaultGitHubAPI
	}
	return &GitHubService{
		OAuth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     github.Endpoint,
			Scopes:       []string{"read:user", "user:email"},
		},
		APIURL: strings.TrimRight(apiURL, "/"),
		HTTP:   &http.Client{Timeout: timeout},
		Logger: logger,
	}
}

type statusError struct {
	code int
}

func (e *statusError) Error() string { return fmt.Sprintf("github responded %d", e.code) }

func (s *GitHubService) getJSON(ctx context.Context, client *http.Client, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.APIURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{code: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Exchange trades an OAuth authorization code for an access token and returns
// the profile of the GitHub user that granted it.
func (s *GitHubService) Exchange(ctx context.Context, code string) (*GitHubProfile, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrMissingCode
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.HTTP)

	tok, err := s.OAuth.Exchange(ctx, code)
	if err != nil {
		s.Logger.WithError(err).Warn("github code exchange failed")
		return nil, ErrGitHubAuthFailed.Wrap(err)
	}

	var p GitHubProfile
	if err := s.getJSON(ctx, s.OAuth.Client(ctx, tok), "/user", &p); err != nil {
		s.Logger.WithError(err).Warn("github user fetch failed")
		return nil, ErrGitHubAuthFailed.Wrap(err)
	}
	return &p, nil
}

// Gists lists the public gists of username.
func (s *GitHubService) Gists(ctx context.Context, username string) ([]Gist, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrMissingUsername
	}

	var gists []Gist
	err := s.getJSON(ctx, s.HTTP, "/users/"+url.PathEscape(username)+"/gists", &gists)
	if err != nil {
		if se, ok := err.(*statusError); ok && se.code == http.StatusNotFound {
			return nil, ErrGistsNotFound
		}
		s.Logger.WithError(err).WithField("username", username).Warn("github gists fetch failed")
		return nil, ErrGitHubUnavailable.Wrap(err)
	}
	if len(gists) == 0 {
		return nil, ErrGistsNotFound
	}
	return gists, nil
}
