package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"github.com/matst80/slask-catalog/pkg/types"
)

const DefaultCatalogUrl = "https://fakestoreapi.com/products"

// ErrNetworkFailure covers every way the catalog request can fail: transport
// errors, non-OK responses and bodies that are not a product list.
var ErrNetworkFailure = errors.New("network failure")

type Fetcher interface {
	Fetch(ctx context.Context) (types.Catalog, error)
}

// HttpFetcher requests the whole product list with a single GET. It never retries.
type HttpFetcher struct {
	Url        string
	HttpClient *http.Client
	// Timeout bounds the request when > 0. Zero leaves the request unbounded.
	Timeout time.Duration
}

func NewHttpFetcher(url string) *HttpFetcher {
	if url == "" {
		url = DefaultCatalogUrl
	}
	return &HttpFetcher{
		Url:        url,
		HttpClient: &http.Client{},
	}
}

func (f *HttpFetcher) Fetch(ctx context.Context) (types.Catalog, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}
	client := f.HttpClient
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: error creating request: %v", ErrNetworkFailure, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading response: %v", ErrNetworkFailure, err)
	}
	var products types.Catalog
	if err := jsoncompat.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("%w: error decoding response: %v", ErrNetworkFailure, err)
	}
	if products == nil {
		products = types.Catalog{}
	}
	return products, nil
}

// StatusError is returned for non-OK responses and matches ErrNetworkFailure.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: received non-OK response: %d", ErrNetworkFailure, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrNetworkFailure
}
