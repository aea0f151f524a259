package notify

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyoez/filestation-go/types"
)

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Waiting", StatusText(types.StatusPending, ""))
	assert.Equal(t, "Saving, please do not close...", StatusText(types.StatusProcessing, ""))
	assert.Equal(t, "Upload failed", StatusText(types.StatusError, ""))
	assert.Equal(t, "duplicate", StatusText(types.StatusError, "duplicate"))
	assert.Equal(t, "Uploaded", StatusText(types.StatusSuccess, "ignored"))
}

type countingPresenter struct {
	modal     bool
	transfers int
	finalized []types.FinalizeMode
	guard     func() bool
}

func (p *countingPresenter) RenderFileList([]types.FileDescriptor)                 {}
func (p *countingPresenter) RenderTransfer(int, types.TransferStatus, int, string) { p.transfers++ }
func (p *countingPresenter) RenderBatchSummary(int, int)                           {}
func (p *countingPresenter) OnBeforeUnload(inFlight func() bool)                   { p.guard = inFlight }
func (p *countingPresenter) ModalActive() bool                                     { return p.modal }
func (p *countingPresenter) FinalizeNavigation(mode types.FinalizeMode) {
	p.finalized = append(p.finalized, mode)
}

func TestMultiFansOut(t *testing.T) {
	a, b := &countingPresenter{}, &countingPresenter{}
	m := Multi{a, b}

	m.RenderTransfer(0, types.StatusUploading, 10, "")
	m.OnBeforeUnload(func() bool { return true })
	m.FinalizeNavigation(types.FinalizeRedirectToListing)

	for _, p := range []*countingPresenter{a, b} {
		assert.Equal(t, 1, p.transfers)
		require.NotNil(t, p.guard)
		assert.True(t, p.guard())
		assert.Equal(t, []types.FinalizeMode{types.FinalizeRedirectToListing}, p.finalized)
	}

	assert.False(t, m.ModalActive())
	b.modal = true
	assert.True(t, m.ModalActive())
}

func TestConsoleConfirmLeave(t *testing.T) {
	c := NewConsole(&bytes.Buffer{}, "http://127.0.0.1:8080/", false)
	assert.True(t, c.ConfirmLeave(), "no guard registered")

	inFlight := true
	c.OnBeforeUnload(func() bool { return inFlight })
	assert.False(t, c.ConfirmLeave(), "first attempt only warns")
	assert.True(t, c.ConfirmLeave(), "repeated attempt leaves")

	c.FinalizeNavigation(types.FinalizeReloadInPlace)
	assert.False(t, c.ConfirmLeave(), "warning is re-armed after a batch")

	inFlight = false
	assert.True(t, c.ConfirmLeave())
}

func TestConsolePrintsQRCode(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, "http://127.0.0.1:8080/", true)
	c.FinalizeNavigation(types.FinalizeRedirectToListing)
	assert.NotEmpty(t, out.String())

	out.Reset()
	c.FinalizeNavigation(types.FinalizeReloadInPlace)
	assert.Empty(t, out.String())
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub("http://127.0.0.1:8080/")
	assert.False(t, hub.ModalActive())

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(conn)
		defer hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer client.Close()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, hub.ModalActive())

	hub.RenderTransfer(2, types.StatusError, 40, "duplicate")
	hub.FinalizeNavigation(types.FinalizeRedirectToListing)

	var update, finalize types.Notification
	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, sonic.Unmarshal(data, &update))
	assert.Equal(t, types.NotifyTypeTransferUpdate, update.Type)
	assert.Equal(t, "duplicate", update.Message)
	assert.Equal(t, "error", update.Data["status"])
	assert.EqualValues(t, 2, update.Data["index"])

	_, data, err = client.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, sonic.Unmarshal(data, &finalize))
	assert.Equal(t, types.NotifyTypeBatchFinalize, finalize.Type)
	assert.Equal(t, "redirect-to-listing", finalize.Data["mode"])
	assert.Equal(t, "http://127.0.0.1:8080/", finalize.Data["location"])
}
