package api

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"voyager.com/pokerclient/game"
)

var apiLogger = log.With().Str("logger_name", "api::client").Logger()

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client issues the three game API requests and maps HTTP statuses to
// tagged results. HTTP-level rejections populate the result's Err field;
// only transport faults (network unreachable, malformed success body)
// are returned as errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger
}

type ClientOpt func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOpt {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger *zerolog.Logger) ClientOpt {
	return func(c *Client) {
		c.logger = logger
	}
}

func NewClient(baseURL string, opts ...ClientOpt) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     &apiLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// responseEnvelope is the body shared by all three endpoints. Which
// fields are populated depends on the operation and status.
type responseEnvelope struct {
	Game     *game.Game `json:"game"`
	Modified bool       `json:"modified"`
	Error    string     `json:"error"`
}

// CreateGame issues POST api/game with no body. 201 carries the new
// game; any other status yields an error result.
func (c *Client) CreateGame(ctx context.Context) (CreateGameResult, error) {
	var result CreateGameResult
	status, body, err := c.do(ctx, http.MethodPost, "api/game", nil)
	if err != nil {
		return result, err
	}

	switch status {
	case http.StatusCreated:
		envelope, err := decodeEnvelope(body)
		if err != nil {
			return result, errors.Wrap(err, "create game: malformed response body")
		}
		if envelope.Game == nil {
			return result, errors.New("create game: response carried no game")
		}
		result.Game = envelope.Game
	default:
		result.Err = errorText(status, body)
	}
	return result, nil
}

// FetchGame issues GET api/game/{gameId}?modifiedOnly={bool}.
//
// 304, or 200 with modified=false while change detection is on, means
// nothing changed since the last check: the result carries no game and
// the caller skips reconciliation. 200 with a payload carries the
// snapshot. 404 and anything else yields an error result.
func (c *Client) FetchGame(ctx context.Context, gameID string, modifiedOnly bool) (FetchGameResult, error) {
	result := FetchGameResult{ModifiedOnly: modifiedOnly}
	path := fmt.Sprintf("api/game/%s?modifiedOnly=%t", gameID, modifiedOnly)
	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return result, err
	}

	switch status {
	case http.StatusNotModified:
		result.Modified = false
	case http.StatusOK:
		envelope, err := decodeEnvelope(body)
		if err != nil {
			return result, errors.Wrap(err, "fetch game: malformed response body")
		}
		result.Modified = envelope.Modified
		if modifiedOnly && !envelope.Modified {
			// Skip signal. The server may still have included the
			// snapshot; drop it so callers cannot depend on it.
			break
		}
		if envelope.Game == nil {
			return result, errors.New("fetch game: response carried no game")
		}
		result.Game = envelope.Game
	default:
		result.Err = errorText(status, body)
	}
	return result, nil
}

// SubmitAction issues POST api/game/{gameId} with the player input as a
// JSON body. 202 carries the post-action snapshot; 417 and anything else
// yields an error result. Illegal-action validation (raising below the
// minimum, acting out of turn) surfaces through that error result.
func (c *Client) SubmitAction(ctx context.Context, gameID string, input game.PlayerInput) (ActionResult, error) {
	var result ActionResult
	payload, err := json.Marshal(input)
	if err != nil {
		return result, errors.Wrap(err, "submit action: marshal input")
	}
	path := fmt.Sprintf("api/game/%s", gameID)
	status, body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return result, err
	}

	switch status {
	case http.StatusAccepted:
		envelope, err := decodeEnvelope(body)
		if err != nil {
			return result, errors.Wrap(err, "submit action: malformed response body")
		}
		if envelope.Game == nil {
			return result, errors.New("submit action: response carried no game")
		}
		result.Game = envelope.Game
	default:
		result.Err = errorText(status, body)
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method string, path string, payload []byte) (int, []byte, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, path)

	var bodyReader *bytes.Reader
	var req *http.Request
	var err error
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
		req, err = http.NewRequestWithContext(ctx, method, url, bodyReader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, nil)
	}
	if err != nil {
		return 0, nil, errors.Wrapf(err, "building %s %s", method, url)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "%s %s", method, url)
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "reading response of %s %s", method, url)
	}
	c.logger.Debug().Msgf("%s %s -> %d", method, url, resp.StatusCode)
	return resp.StatusCode, body, nil
}

func decodeEnvelope(body []byte) (responseEnvelope, error) {
	var envelope responseEnvelope
	err := json.Unmarshal(body, &envelope)
	return envelope, err
}

// errorText extracts the server's error message from a rejection body,
// falling back to the HTTP status text when the body has none.
func errorText(status int, body []byte) string {
	envelope, err := decodeEnvelope(body)
	if err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return http.StatusText(status)
}
