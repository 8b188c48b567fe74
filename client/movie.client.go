// Package client talks to the YTS movie API on behalf of the GraphQL layer.
package client

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/sum529-create/study-graphql/internal/metrics"
	"github.com/sum529-create/study-graphql/internal/models"
)

// DefaultBaseURL is the public YTS v2 API.
const DefaultBaseURL = "https://yts.mx/api/v2"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MovieClient forwards movie lookups to YTS. Every call is its own request:
// no retries, no caching and no sharing between overlapping callers.
type MovieClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewMovieClient builds a client for baseURL. A zero timeout means none.
func NewMovieClient(baseURL string, timeout time.Duration, logger *zap.Logger) *MovieClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &MovieClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type listEnvelope struct {
	Data *struct {
		Movies *[]models.Movie `json:"movies"`
	} `json:"data"`
}

type detailEnvelope struct {
	Data *struct {
		Movie *models.Movie `json:"movie"`
	} `json:"data"`
}

// ListMovies returns data.movies of list_movies.json.
func (c *MovieClient) ListMovies(ctx context.Context) ([]models.Movie, error) {
	var env listEnvelope
	if err := c.get(ctx, "movies", "/list_movies.json", nil, &env); err != nil {
		return nil, c.fail(err)
	}
	if env.Data == nil || env.Data.Movies == nil {
		return nil, c.fail(&GatewayError{Op: "movies", Kind: KindShape, Err: errors.New("data.movies missing")})
	}
	return *env.Data.Movies, nil
}

// GetMovie returns data.movie of movie_details.json. YTS answers an
// unknown id with an empty record (id 0), which is reported as nil.
func (c *MovieClient) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	var env detailEnvelope
	q := url.Values{"movie_id": []string{id}}
	if err := c.get(ctx, "movie", "/movie_details.json", q, &env); err != nil {
		return nil, c.fail(err)
	}
	if env.Data == nil || env.Data.Movie == nil {
		return nil, c.fail(&GatewayError{Op: "movie", Kind: KindShape, Err: errors.New("data.movie missing")})
	}
	if env.Data.Movie.ID == 0 {
		return nil, nil
	}
	return env.Data.Movie, nil
}

func (c *MovieClient) get(ctx context.Context, op, path string, query url.Values, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		var gwErr *GatewayError
		if errors.As(err, &gwErr) {
			outcome = string(gwErr.Kind)
		}
		metrics.ObserveGateway(op, outcome, time.Since(start))
	}()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &GatewayError{Op: op, Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &GatewayError{Op: op, Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &GatewayError{Op: op, Kind: KindStatus, Err: errors.Errorf("status %s", resp.Status)}
	}
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return &GatewayError{Op: op, Kind: KindContentType,
			Err: errors.Errorf("content type %q", resp.Header.Get("Content-Type"))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &GatewayError{Op: op, Kind: KindDecode, Err: err}
	}
	return nil
}

func (c *MovieClient) fail(err error) error {
	c.logger.Error("movie gateway request failed", zap.Error(err))
	return err
}
