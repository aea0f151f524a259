package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUploadURL(t *testing.T) {
	u, err := BuildUploadURL("http://files.local:8080", "/upload")
	require.NoError(t, err)
	assert.Equal(t, "http://files.local:8080/upload", u)

	u, err = BuildUploadURL("https://example.com/share/", "upload")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/share/upload", u)

	_, err = BuildUploadURL("ftp://example.com", "/upload")
	assert.Error(t, err)
}

func TestBuildListingURL(t *testing.T) {
	u, err := BuildListingURL("http://127.0.0.1:8080", "/")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080/", u)
}

func TestServerHost(t *testing.T) {
	host, err := ServerHost("http://files.local:8080/base")
	require.NoError(t, err)
	assert.Equal(t, "files.local", host)

	_, err = ServerHost("not a url")
	assert.Error(t, err)
}
