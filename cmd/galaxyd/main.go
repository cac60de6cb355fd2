// galaxyd runs a headless simulation and serves the body catalog with live
// positions over a small REST API.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	kitlog "github.com/go-kit/kit/log"

	"github.com/webgfx/galaxy"
)

// server serializes API reads against the tick goroutine: the core's state
// is only exposed read-only between ticks.
type server struct {
	mu  sync.Mutex
	sim *galaxy.Sim
}

type bodyView struct {
	Name          string    `json:"name"`
	Kind          string    `json:"kind"`
	SemiMajorAxis float64   `json:"semi_major_axis"`
	Eccentricity  float64   `json:"eccentricity"`
	VisualSize    float64   `json:"visual_size"`
	Phase         float64   `json:"phase"`
	Position      []float64 `json:"position"`
	Central       bool      `json:"central"`
}

func viewOf(b *galaxy.Body) bodyView {
	pos := make([]float64, 3)
	copy(pos, b.Position())
	return bodyView{
		Name:          b.Name,
		Kind:          b.Kind.String(),
		SemiMajorAxis: b.SemiMajorAxis,
		Eccentricity:  b.Eccentricity,
		VisualSize:    b.VisualSize,
		Phase:         b.Phase(),
		Position:      pos,
		Central:       b.IsCentral(),
	}
}

func (s *server) getBodies(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	views := make([]bodyView, 0, len(s.sim.Registry.Bodies()))
	for _, b := range s.sim.Registry.Bodies() {
		views = append(views, viewOf(b))
	}
	c.JSON(http.StatusOK, views)
}

func (s *server) getBody(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.sim.Registry.Lookup(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "body not found"})
		return
	}
	c.JSON(http.StatusOK, viewOf(b))
}

func (s *server) getStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{
		"frame":   s.sim.Frame(),
		"elapsed": s.sim.Clock.Elapsed(),
		"paused":  s.sim.Paused(),
	})
}

func (s *server) setPaused(c *gin.Context) {
	var req struct {
		Paused bool `json:"paused"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.sim.SetPaused(req.Paused)
	c.JSON(http.StatusOK, gin.H{"paused": req.Paused})
}

func (s *server) requestZoom(c *gin.Context) {
	var req struct {
		Direction string `json:"direction"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Direction {
	case "in":
		s.sim.RequestZoom(galaxy.ZoomIn)
	case "out":
		s.sim.RequestZoom(galaxy.ZoomOut)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be 'in' or 'out'"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"direction": req.Direction})
}

// tick drives the frame loop at the configured fixed step.
func (s *server) tick(step float64) {
	ticker := time.NewTicker(time.Duration(step * float64(time.Second)))
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		s.sim.AdvanceAndRender(step)
		s.mu.Unlock()
	}
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	confDir := flag.String("config", "", "directory containing galaxy.toml (optional)")
	flag.Parse()

	conf := galaxy.DefaultConfig()
	if *confDir != "" {
		var err error
		if conf, err = galaxy.LoadConfig(*confDir); err != nil {
			fmt.Fprintf(os.Stderr, "configuration error: %s\n", err)
			os.Exit(1)
		}
	}

	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	registry, err := galaxy.NewRegistry(conf.Bodies)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %s\n", err)
		os.Exit(1)
	}
	cam := galaxy.NewCamera(conf.Camera.Distance, conf.Camera.MinDistance, conf.Camera.MaxDistance)
	srv := &server{sim: galaxy.NewSim(registry, cam, conf.LabelOffset, galaxy.ExportConfig{}, logger)}
	go srv.tick(conf.Step)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: false,
	}))

	api := r.Group("/api")
	{
		api.GET("/bodies", srv.getBodies)
		api.GET("/bodies/:name", srv.getBody)
		api.GET("/status", srv.getStatus)
		api.POST("/paused", srv.setPaused)
		api.POST("/zoom", srv.requestZoom)
	}
	r.GET("/metrics", gin.WrapH(galaxy.MetricsHandler()))

	logger.Log("level", "info", "subsys", "api", "status", "listening", "addr", *addr)
	if err := r.Run(*addr); err != nil {
		logger.Log("level", "critical", "subsys", "api", "err", err)
		os.Exit(1)
	}
}
