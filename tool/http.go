package tool

import (
	"net"
	"net/http"
	"time"
)

var (
	DefaultTimeout = 30 * time.Second
	UploadClient   *http.Client
)

func init() {
	UploadClient = NewHTTPClient()
}

// NewHTTPClient creates the client used for uploads. There is no overall request
// timeout since a single request carries a whole file; only dialing is bounded.
func NewHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   DefaultTimeout,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		MaxIdleConns:          50,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   DefaultTimeout,
		ExpectContinueTimeout: time.Second,
	}
	return &http.Client{
		Transport: transport,
	}
}

func GetHttpClient() *http.Client {
	return UploadClient
}
