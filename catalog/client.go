package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/neuroval/validation-client/framework"
)

// Client holds the service endpoints and the authentication token. One Client
// may be shared by a ModelCatalog and a TestLibrary; sharing avoids repeated
// calls to the auth service, which throttles frequent token requests.
type Client struct {
	env    Environment
	token  string
	logger framework.Logger
}

// NewClient creates a client for the given environment. The logger may be
// nil to silence request logging.
func NewClient(env Environment, logger framework.Logger) *Client {
	return &Client{env: env, logger: framework.OrNull(logger)}
}

// Token returns the current auth token, or "" if not authenticated.
func (c *Client) Token() string { return c.token }

// SetToken installs a previously obtained token, bypassing Authenticate.
func (c *Client) SetToken(token string) { c.token = token }

// Environment returns the environment this client talks to.
func (c *Client) Environment() Environment { return c.env }

// Authenticate obtains a bearer token from the auth service and stores it on
// the client for all subsequent requests.
func (c *Client) Authenticate(username, password string) error {
	if username == "" {
		return errors.New("username is required for authentication")
	}
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	c.logger.Printf("Authenticating %s against %s", username, c.env.AuthURL)
	respBody, err := c.doRequest("POST", c.env.AuthURL+"/token", body)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(respBody, &tokenResp); err != nil {
		return fmt.Errorf("malformed token response from auth service: %s", string(respBody))
	}
	if tokenResp.AccessToken == "" {
		return errors.New("auth service returned an empty token")
	}
	c.token = tokenResp.AccessToken
	return nil
}

func (c *Client) getJSON(path string, query url.Values, out interface{}) error {
	u := c.env.ServiceURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	body, err := c.doRequest("GET", u, nil)
	if err != nil {
		return err
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("malformed response for GET %s: %w", u, err)
		}
	}
	return nil
}

func (c *Client) postJSON(path string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	u := c.env.ServiceURL + path
	body, err := c.doRequest("POST", u, data)
	if err != nil {
		return err
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("malformed response for POST %s: %w", u, err)
		}
	}
	return nil
}

func (c *Client) putJSON(path string, payload, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	u := c.env.ServiceURL + path
	body, err := c.doRequest("PUT", u, data)
	if err != nil {
		return err
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("malformed response for PUT %s: %w", u, err)
		}
	}
	return nil
}

func (c *Client) doRequest(method, url string, body []byte) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewBuffer(body)
	}
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Add("Authorization", "Bearer "+c.token)
	}
	c.logger.Printf("%s %s", method, url)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	var respBody []byte
	if resp.Body != nil {
		respBody, _ = io.ReadAll(resp.Body)
		_ = resp.Body.Close()
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return respBody, APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			URL:        url,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}
	return respBody, nil
}
