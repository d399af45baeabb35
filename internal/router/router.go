package router

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Fooshman135/BensBudget/internal/config"
	"github.com/Fooshman135/BensBudget/internal/controllers"
	"github.com/Fooshman135/BensBudget/internal/httputil"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Router sets up the gin engine with all middlewares and routes.
func Router(cfg config.Config, co controllers.Controller) (*gin.Engine, error) {
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(metrics())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, out io.Writer, latency time.Duration) zerolog.Logger {
			return log.Logger.With().
				Str("request-id", requestid.Get(c)).
				Dur("latency", latency).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	if cfg.CORSAllowOrigins != "" {
		log.Debug().Str("allowOrigins", cfg.CORSAllowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(cfg.CORSAllowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	if cfg.EnablePprof {
		pprof.Register(r)
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	/*
	 *  Route setup
	 */
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)

	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)

	r.GET("/healthz", co.GetHealthz)
	r.OPTIONS("/healthz", co.OptionsHealthz)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 setup
	v1 := r.Group("/v1")
	{
		v1.GET("", GetV1)
		v1.OPTIONS("", OptionsV1)
	}
	co.RegisterRoutes(v1)

	log.Info().Msg("backend startup complete")

	return r, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz"`
	Metrics string `json:"metrics"`
	Version string `json:"version"`
	V1      string `json:"v1"`
}

// GetRoot is the entrypoint for the API, listing all endpoints.
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: "/healthz",
			Metrics: "/metrics",
			Version: "/version",
			V1:      "/v1",
		},
	})
}

func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}

type VersionObject struct {
	Version string `json:"version"`
}

// GetVersion returns the software version of the API.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Budgets      string `json:"budgets"`
	Categories   string `json:"categories"`
	Accounts     string `json:"accounts"`
	Transactions string `json:"transactions"`
	Ledger       string `json:"ledger"`
}

// GetV1 returns the links for API v1.
func GetV1(c *gin.Context) {
	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Budgets:      "/v1/budgets",
			Categories:   "/v1/categories",
			Accounts:     "/v1/accounts",
			Transactions: "/v1/transactions",
			Ledger:       "/v1/ledger",
		},
	})
}

func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
