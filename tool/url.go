package tool

import (
	"fmt"
	"net/url"
)

// BuildUploadURL joins the server base URL with the upload path.
func BuildUploadURL(server, uploadPath string) (string, error) {
	return joinServerPath(server, uploadPath)
}

// BuildListingURL joins the server base URL with the listing path.
func BuildListingURL(server, listingPath string) (string, error) {
	return joinServerPath(server, listingPath)
}

// ServerHost returns the host name of the server base URL without port.
func ServerHost(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("failed to parse server URL: %v", err)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("server URL %q has no host", server)
	}
	return u.Hostname(), nil
}

func joinServerPath(server, path string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("failed to parse server URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported server URL scheme %q", u.Scheme)
	}
	if path == "" || path == "/" {
		return u.JoinPath("/").String(), nil
	}
	return u.JoinPath(path).String(), nil
}
