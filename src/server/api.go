package server

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"vesting-estimator/src/config"
	"vesting-estimator/src/logger"
	"vesting-estimator/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

// APIServer is the consumer-facing surface: REST queries over the latest
// snapshot, a CSV export of the day-by-day series, and a WebSocket push of
// every refresh.
type APIServer struct {
	Config *config.Config
	Logger *logger.Logger
	engine *gin.Engine

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan *models.MLatestData
	register   chan *Client
	unregister chan *Client

	// Local snapshot
	latestState *models.MLatestData
	stateMutex  sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(cfg *config.Config, log *logger.Logger) *APIServer {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:  cfg,
		Logger:  log,
		engine:  gin.Default(),
		clients: make(map[*Client]struct{}),
		// Buffered queue so a refresh burst never blocks the scheduler
		broadcast:  make(chan *models.MLatestData, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		latestState: &models.MLatestData{
			Type:         "INITIAL",
			Calculations: make(map[string]models.MTokenCalculation),
		},
	}

	// CORS for the browser client
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	// REST API endpoints
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/roles", s.getRoles)
	s.engine.GET("/api/series", s.getSeries)
	s.engine.GET("/api/calculation", s.getCalculation)
	s.engine.GET("/api/export.csv", s.getExportCSV)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	s.stateMutex.RLock()
	connections := len(s.clients)
	timestamp := s.latestState.Timestamp
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"connections":    connections,
		"latest_refresh": timestamp,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"term":    s.Config.Term,
		"vesting": s.Config.Vesting,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getRoles(c *gin.Context) {
	roles := make([]models.MStewardRole, 0, len(s.Config.Roles))
	for _, r := range s.Config.Roles {
		roles = append(roles, models.MStewardRole{
			ID:                  r.ID,
			Name:                r.Name,
			MonthlyCompensation: r.MonthlyCompensation,
			AnnualCompensation:  r.AnnualCompensation,
			Description:         r.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"roles": roles})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getSeries(c *gin.Context) {
	s.stateMutex.RLock()
	series := s.latestState.Series
	s.stateMutex.RUnlock()

	if series == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no price data yet"})
		return
	}

	c.JSON(http.StatusOK, series)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getCalculation(c *gin.Context) {
	roleID := c.DefaultQuery("role", s.defaultRoleID())

	if _, ok := s.Config.RoleByID(roleID); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown role: %s", roleID)})
		return
	}

	s.stateMutex.RLock()
	calculation, ok := s.latestState.Calculations[roleID]
	s.stateMutex.RUnlock()

	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no calculation yet"})
		return
	}

	c.JSON(http.StatusOK, calculation)
}

// -----------------------------------------------------------------------------

func (s *APIServer) defaultRoleID() string {
	if len(s.Config.Roles) > 0 {
		return s.Config.Roles[0].ID
	}
	return ""
}
