package httpUtils

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Brawl345/ladderbot/logger"
)

var (
	log               = logger.New("httpUtils")
	DefaultHttpClient *http.Client
)

func init() {
	DefaultHttpClient = createHTTPClient()
}

func createHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = 7 * time.Second
	transport.ResponseHeaderTimeout = 15 * time.Second
	transport.MaxIdleConnsPerHost = 20
	transport.IdleConnTimeout = 5 * time.Minute

	client := &http.Client{
		Transport: transport,
	}

	return client
}

type Method string

const (
	MethodGet  Method = http.MethodGet
	MethodPost Method = http.MethodPost
)

type RequestOptions struct {
	Method   Method
	URL      string
	Headers  map[string]string
	Body     io.Reader
	Response any
}

func MakeRequest(opts RequestOptions) error {
	log.Debug().
		Str("url", opts.URL).
		Send()

	method := opts.Method
	if method == "" {
		method = MethodGet
	}

	req, err := http.NewRequest(string(method), opts.URL, opts.Body)
	if err != nil {
		return err
	}

	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := DefaultHttpClient.Do(req)
	if err != nil {
		return err
	}

	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Err(err).Msg("Failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode != 200 {
		return &HttpError{
			StatusCode: resp.StatusCode,
		}
	}

	if opts.Response == nil {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, opts.Response)
}
