package dataset

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
)

// DefaultURL is the JHU CSSE confirmed-cases time series for US counties
const DefaultURL = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series/time_series_covid19_confirmed_US.csv"

// DefaultTimeout bounds a single download
const DefaultTimeout = 60 * time.Second

// HTTPSource downloads the raw table over HTTP
type HTTPSource struct {
	url    string
	client *http.Client
}

// HTTPOption configures HTTPSource
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		s.client = &http.Client{Timeout: timeout}
	}
}

// NewHTTPSource creates a source for the given CSV URL
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the URL of the source
func (s *HTTPSource) Name() string {
	return s.url
}

// Fetch downloads and parses the raw table
func (s *HTTPSource) Fetch(ctx context.Context) (*model.RawTable, error) {
	logger := ctxlog.From(ctx)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build dataset request",
			goerr.V("url", s.url),
			goerr.T(model.ErrTagDataUnavailable))
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch dataset",
			goerr.V("url", s.url),
			goerr.T(model.ErrTagDataUnavailable))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected dataset response status",
			goerr.V("url", s.url),
			goerr.V("status", resp.StatusCode),
			goerr.T(model.ErrTagDataUnavailable))
	}

	table, err := model.ParseRawTable(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset",
			goerr.V("url", s.url),
			goerr.T(model.ErrTagDataUnavailable))
	}

	logger.Debug("Dataset downloaded",
		"url", s.url,
		"rows", table.Rows(),
		"dates", table.DateAxis().Len(),
		"duration", time.Since(start),
	)

	return table, nil
}

// FileSource reads the raw table from a local CSV file
type FileSource struct {
	path string
}

// NewFileSource creates a source for a local CSV file
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path
func (s *FileSource) Name() string {
	return s.path
}

// Fetch reads and parses the raw table
func (s *FileSource) Fetch(ctx context.Context) (*model.RawTable, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open dataset file",
			goerr.V("path", s.path),
			goerr.T(model.ErrTagDataUnavailable))
	}
	defer f.Close()

	table, err := model.ParseRawTable(f)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load dataset",
			goerr.V("path", s.path),
			goerr.T(model.ErrTagDataUnavailable))
	}
	return table, nil
}
