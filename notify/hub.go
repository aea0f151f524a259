package notify

import (
	"sync"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/moyoez/filestation-go/tool"
	"github.com/moyoez/filestation-go/types"
)

// Hub holds WebSocket connections of the web UI and broadcasts state changes to all of
// them. The web UI shows the upload form in a dialog, so a connected client means a
// modal-hosted surface is active.
type Hub struct {
	mu         sync.RWMutex
	conns      map[*websocket.Conn]struct{}
	writeMu    sync.Mutex
	listingURL string
	inFlight   func() bool
}

var _ types.Presenter = (*Hub)(nil)

// NewHub creates a new notify hub.
func NewHub(listingURL string) *Hub {
	return &Hub{
		conns:      make(map[*websocket.Conn]struct{}),
		listingURL: listingURL,
	}
}

// Register adds a WebSocket connection to the hub.
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

// Unregister removes a WebSocket connection from the hub.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// InFlight reports the registered navigation guard, false when none is registered.
func (h *Hub) InFlight() bool {
	h.mu.RLock()
	guard := h.inFlight
	h.mu.RUnlock()
	return guard != nil && guard()
}

// Broadcast sends the notification as JSON to all registered connections.
func (h *Hub) Broadcast(notification *types.Notification) {
	if notification == nil {
		return
	}
	payload, err := sonic.Marshal(notification)
	if err != nil {
		tool.DefaultLogger.Debugf("Failed to encode notification %s: %v", notification.Type, err)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	// gorilla/websocket allows one concurrent writer per connection
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			tool.DefaultLogger.Debugf("Failed to write notification to %s: %v", conn.RemoteAddr(), err)
		}
	}
}

func (h *Hub) RenderFileList(files []types.FileDescriptor) {
	entries := make([]map[string]any, 0, len(files))
	for _, f := range files {
		entries = append(entries, map[string]any{
			"name":          f.Name,
			"size":          f.Size,
			"formattedSize": tool.FormatFileSize(f.Size),
			"type":          f.Type,
		})
	}
	h.Broadcast(&types.Notification{
		Type: types.NotifyTypeFileList,
		Data: map[string]any{"files": entries},
	})
}

func (h *Hub) RenderTransfer(index int, status types.TransferStatus, progress int, message string) {
	h.Broadcast(&types.Notification{
		Type:    types.NotifyTypeTransferUpdate,
		Message: StatusText(status, message),
		Data: map[string]any{
			"index":    index,
			"status":   string(status),
			"progress": progress,
		},
	})
}

func (h *Hub) RenderBatchSummary(total, completed int) {
	h.Broadcast(&types.Notification{
		Type: types.NotifyTypeBatchSummary,
		Data: map[string]any{
			"total":     total,
			"completed": completed,
			"inFlight":  h.InFlight(), // the web UI arms its beforeunload prompt from this
		},
	})
}

func (h *Hub) OnBeforeUnload(inFlight func() bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inFlight = inFlight
}

func (h *Hub) ModalActive() bool {
	return h.Count() > 0
}

func (h *Hub) FinalizeNavigation(mode types.FinalizeMode) {
	data := map[string]any{"mode": string(mode)}
	if mode == types.FinalizeRedirectToListing {
		data["location"] = h.listingURL
	}
	h.Broadcast(&types.Notification{
		Type:  types.NotifyTypeBatchFinalize,
		Title: "Upload finished",
		Data:  data,
	})
}
