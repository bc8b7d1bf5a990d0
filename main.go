package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"metro-route-server/config"
	"metro-route-server/handlers"
	"metro-route-server/preprocessing"
	"metro-route-server/routing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/mux"
)

type server struct {
	network *routing.Network
	cfg     *config.Config
}

type searchFunc func(ctx context.Context, source, destination string) (routing.Route, bool, error)

func (s *server) search(kind string) searchFunc {
	if kind == routing.KIND_FASTEST {
		return s.network.FastestRoute
	}
	return s.network.FewestHops
}

func (s *server) handleRoute(kind string) gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Printf("=== Received %s route request ===", kind)

		var req routing.RouteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("ERROR: Failed to parse request: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		log.Printf("Request details: %s -> %s", req.From, req.To)

		ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.QueryTimeout)
		defer cancel()

		route, found, err := s.search(kind)(ctx, req.From, req.To)
		if err != nil {
			log.Printf("ERROR: %s search failed: %v", kind, err)
			switch {
			case errors.Is(err, routing.ErrUnknownStation):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, context.DeadlineExceeded):
				c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		resp := routing.PrepareResponse(kind, route, found)
		if found {
			log.Printf("Sending response: %s (%d hops, %d transfers, %d min)",
				resp.Description, resp.Hops, resp.Transfers, resp.TotalDurationMin)
		} else {
			log.Printf("No route between %s and %s", req.From, req.To)
		}
		c.JSON(http.StatusOK, resp)
		log.Printf("=== %s route request completed ===", kind)
	}
}

func newRouter(network *routing.Network, cfg *config.Config) *gin.Engine {
	s := &server{network: network, cfg: cfg}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if cfg.AllowAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"*"}
	r.Use(cors.New(corsConfig))

	r.POST("/route/fewest-hops", s.handleRoute(routing.KIND_FEWEST_HOPS))

	r.POST("/route/fastest", s.handleRoute(routing.KIND_FASTEST))

	catalog := mux.NewRouter()
	handlers.NewStationHandler(network).RegisterRoutes(catalog.PathPrefix("/api").Subrouter())
	r.Any("/api/*path", gin.WrapH(catalog))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"stations":    network.StationCount(),
			"connections": network.ConnectionCount(),
		})
	})

	return r
}

func main() {
	cfg := config.Load()

	log.Printf("Loading %s network from %s...", cfg.NetworkFormat, cfg.NetworkSource)
	network, err := preprocessing.LoadNetwork(context.Background(), cfg.NetworkFormat, cfg.NetworkSource)
	if err != nil {
		log.Fatalf("Failed to load network: %v", err)
	}
	network.Freeze()
	log.Printf("Network ready: %d stations, %d connections", network.StationCount(), network.ConnectionCount())

	r := newRouter(network, cfg)

	log.Printf("Metro Route Server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
