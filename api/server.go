package api

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/moyoez/filestation-go/api/controllers"
	"github.com/moyoez/filestation-go/api/middlewares"
	"github.com/moyoez/filestation-go/listing"
	"github.com/moyoez/filestation-go/notify"
	"github.com/moyoez/filestation-go/session"
	"github.com/moyoez/filestation-go/tool"
)

// Server is the local control API. It only answers requests from localhost.
type Server struct {
	port   int
	engine *gin.Engine
	server *http.Server
	mu     sync.RWMutex

	session           *session.Session
	index             *listing.Index
	hub               *notify.Hub // nil disables /notify-ws
	listingURL        string
	defaultExpiration string
}

type Options struct {
	Session           *session.Session
	Index             *listing.Index
	Hub               *notify.Hub
	ListingURL        string
	DefaultExpiration string
}

func NewServer(port int, opts Options) *Server {
	return &Server{
		port:              port,
		session:           opts.Session,
		index:             opts.Index,
		hub:               opts.Hub,
		listingURL:        opts.ListingURL,
		defaultExpiration: opts.DefaultExpiration,
	}
}

// Handler returns the routed engine, building it on first use.
func (s *Server) Handler() http.Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		s.engine = s.setupRoutes()
	}
	return s.engine
}

func (s *Server) setupRoutes() *gin.Engine {
	if tool.DefaultLogger.GetLevel() == log.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	batchCtrl := controllers.NewBatchController(s.session, s.index, s.defaultExpiration)

	self := engine.Group("/api/self/v1", middlewares.OnlyAllowLocal)
	{
		self.POST("/upload-batch", batchCtrl.HandleUploadBatch)               // Start a batch from local paths
		self.GET("/status", batchCtrl.HandleStatus)                           // Current batch and in-flight flag
		self.GET("/batches/:id", batchCtrl.HandleGetBatch)                    // Finished batch from history
		self.POST("/reset", batchCtrl.HandleReset)                            // Clear the selection
		self.GET("/search", controllers.HandleSearch(s.index))                // Filter uploaded files
		self.GET("/create-qr-code", controllers.GenerateQRCode(s.listingURL)) // QR code PNG, defaults to the listing URL
		if s.hub != nil {
			self.GET("/notify-ws", controllers.HandleNotifyWS(s.hub))
		}
	}
	return engine
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	handler := s.Handler()

	s.mu.Lock()
	s.server = &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler: handler,
	}
	srv := s.server
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Starting control API on http://127.0.0.1:%d", s.port)
	return srv.ListenAndServe()
}
