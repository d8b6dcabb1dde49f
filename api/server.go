package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/qwiicgo/button-backend/api/model"
)

type Server struct {
	controller Controller
	upgrader   websocket.Upgrader
}

func NewServer(c Controller) *Server {
	return &Server{
		controller: c,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router mounts all routes on a fresh gin engine.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		api.GET("/status", s.getStatus)
		api.PUT("/debounce", s.putDebounce)
		api.PUT("/led", s.putLED)
		api.DELETE("/led", s.deleteLED)
		api.GET("/events", s.getEvents)
	}
	router.GET("/ws", s.serveWs)

	return router
}

type statusResponse struct {
	Connected      bool   `json:"connected"`
	Address        uint16 `json:"address"`
	Firmware       string `json:"firmware"`
	Pressed        bool   `json:"pressed"`
	DebounceTimeMs uint16 `json:"debounceTimeMs"`
}

func (s *Server) getStatus(c *gin.Context) {
	dev := s.controller.Device()

	resp := statusResponse{
		Connected: dev.Connected(),
		Address:   dev.Address(),
	}

	var board model.Board
	if r := s.controller.DB().First(&board, boardID); r.Error == nil {
		resp.Firmware = board.Firmware
	}

	if resp.Connected {
		pressed, err := dev.IsPressed()
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		resp.Pressed = pressed

		debounce, err := dev.DebounceTime()
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		resp.DebounceTimeMs = debounce
	}

	c.JSON(http.StatusOK, resp)
}

type debounceRequest struct {
	Ms int `json:"ms"`
}

func (s *Server) putDebounce(c *gin.Context) {
	var req debounceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dev := s.controller.Device()
	if err := dev.SetDebounceTime(req.Ms); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	// Read back so the response reflects clamping.
	ms, err := dev.DebounceTime()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	s.controller.DB().Model(&model.Board{}).
		Where("id = ?", boardID).
		Update("debounce_time_ms", ms)

	c.JSON(http.StatusOK, gin.H{"ms": ms})
}

type ledRequest struct {
	Brightness  byte   `json:"brightness"`
	CycleTimeMs uint16 `json:"cycleTimeMs"`
	OffTimeMs   uint16 `json:"offTimeMs"`
}

func (s *Server) putLED(c *gin.Context) {
	var req ledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.controller.Device().LEDConfig(req.Brightness, req.CycleTimeMs, req.OffTimeMs); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) deleteLED(c *gin.Context) {
	if err := s.controller.Device().LEDOff(); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) getEvents(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	events := make([]model.ButtonEvent, 0, limit)
	r := s.controller.DB().
		Order("id desc").
		Limit(limit).
		Find(&events)
	if r.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": r.Error.Error()})
		return
	}

	c.JSON(http.StatusOK, events)
}

// serveWs streams button events to the client until it disconnects.
func (s *Server) serveWs(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("ws upgrade:", err)
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	events := s.controller.EventChannel(ctx)

	// The read pump only watches for the client going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event := <-events:
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-closed:
			return
		case <-ctx.Done():
			return
		}
	}
}
