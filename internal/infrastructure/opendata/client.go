package opendata

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"

	"nycschools/internal/domain"
	"nycschools/internal/domain/entity"
	"nycschools/pkg/contextx"
	"nycschools/pkg/errcodes"
	"nycschools/pkg/httpx"
	"nycschools/pkg/logx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault            //nolint:gochecknoglobals
)

const (
	defaultTimeout = 15 * time.Second

	paramOffset = "$offset"
	paramLimit  = "$limit"
	paramDBN    = "dbn"
)

type Config struct {
	SchoolListURL  string
	SATDetailURL   string
	AppToken       string
	Timeout        time.Duration
	LogFieldMaxLen int
	LogBodies      bool
}

type Option func(*Client)

// WithTransport replaces the base transport under the token and logging
// round trippers.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.registerer = reg
	}
}

// Client talks to the NYC open data (Socrata) endpoints. Every call issues
// exactly one GET and never retries.
type Client struct {
	httpClient    *http.Client
	schoolListURL string
	satDetailURL  string

	transport  http.RoundTripper
	registerer prometheus.Registerer
	metrics    clientMetrics
}

func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		schoolListURL: cfg.SchoolListURL,
		satDetailURL:  cfg.SATDetailURL,
		transport:     http.DefaultTransport,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.metrics = newClientMetrics(c.registerer)
	c.httpClient = &http.Client{
		Timeout: lo.Ternary(cfg.Timeout > 0, cfg.Timeout, defaultTimeout),
		Transport: httpx.NewLoggingRoundTripper(
			httpx.NewAppTokenRoundTripper(c.transport, cfg.AppToken),
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(cfg.LogFieldMaxLen),
			httpx.WithDumpBodies(cfg.LogBodies),
		),
	}

	return c
}

// FetchSchools returns one page of the school directory.
func (c *Client) FetchSchools(ctx context.Context, offset, limit int) (schools []entity.School, err error) {
	const op = "opendata.FetchSchools"

	start := time.Now()
	defer func() { c.metrics.observe(operationFetchSchools, outcome(err), start) }()

	if offset < 0 || limit <= 0 {
		return nil, domain.NewError(errcodes.InvalidPaging,
			fmt.Sprintf("%s: invalid paging offset=%d limit=%d", op, offset, limit))
	}

	target, err := buildURL(c.schoolListURL, map[string]string{
		paramOffset: strconv.Itoa(offset),
		paramLimit:  strconv.Itoa(limit),
	})
	if err != nil {
		return nil, domain.WrapError(err, errcodes.ConfigurationError, op+": bad school list url")
	}

	var records []schoolSchema

	if err := c.get(ctx, op, target, &records); err != nil {
		return nil, err
	}

	schools = make([]entity.School, 0, len(records))
	for _, r := range records {
		schools = append(schools, r.toDomain())
	}

	logger(ctx).Debug("schools fetched",
		slog.Int(logx.FieldOffset, offset),
		slog.Int(logx.FieldLimit, limit),
		slog.Int(logx.FieldCount, len(schools)),
	)

	return schools, nil
}

// FetchSchoolSATDetails returns the SAT records of one school. An empty id
// fails before any request is made.
func (c *Client) FetchSchoolSATDetails(ctx context.Context, schoolID string) (details []entity.SchoolSATDetail, err error) {
	const op = "opendata.FetchSchoolSATDetails"

	start := time.Now()
	defer func() { c.metrics.observe(operationFetchSATDetails, outcome(err), start) }()

	if schoolID == "" {
		return nil, domain.NewError(errcodes.ConfigurationError, op+": school id is required")
	}

	target, err := buildURL(c.satDetailURL, map[string]string{paramDBN: schoolID})
	if err != nil {
		return nil, domain.WrapError(err, errcodes.ConfigurationError, op+": bad sat detail url")
	}

	var records []satDetailSchema

	if err := c.get(ctx, op, target, &records); err != nil {
		return nil, err
	}

	details = make([]entity.SchoolSATDetail, 0, len(records))
	for _, r := range records {
		details = append(details, r.toDomain())
	}

	logger(ctx).Debug("sat details fetched",
		slog.String(logx.FieldSchoolID, schoolID),
		slog.Int(logx.FieldCount, len(details)),
	)

	return details, nil
}

func (c *Client) get(ctx context.Context, op, target string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return domain.WrapError(err, errcodes.ConfigurationError, op+": build request")
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.TransportError, op+": request failed")
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)

		return domain.NewError(errcodes.TransportError,
			fmt.Sprintf("%s: unexpected status %d", op, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return domain.WrapError(err, errcodes.DecodingError, op+": decode response")
	}

	return nil
}

func buildURL(base string, params map[string]string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("url.Parse: %w", err)
	}

	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("url %q is not absolute", base)
	}

	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}

	u.RawQuery = q.Encode()

	return u.String(), nil
}

func outcome(err error) string {
	if err == nil {
		return outcomeOK
	}

	if code, ok := domain.GetCode(err); ok {
		return code.String()
	}

	return "error"
}
