package api

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/autonomy-cases/consts"
	"github.com/bitmark-inc/autonomy-cases/dataset"
	"github.com/bitmark-inc/autonomy-cases/logmodule"
	"github.com/bitmark-inc/autonomy-cases/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// CaseViewer serves geography views of the cases dataset
type CaseViewer interface {
	URL() string
	FilterData() bool
	DateColumns() []string
	View(areaType, name string) (*dataset.Table, error)
}

// Server to run a http server instance
type Server struct {
	// Server instance
	serverLock sync.Mutex
	server     *http.Server

	// Stores
	mongoStore store.MongoStore

	// current dataset, swapped on refresh; generation counts the swaps
	viewerLock sync.RWMutex
	viewer     CaseViewer
	generation uint64

	// rendered views
	cache *cache.Cache
}

// NewServer new instance of server
func NewServer(mongoStore store.MongoStore, viewer CaseViewer, cacheTTL time.Duration) *Server {
	return &Server{
		mongoStore: mongoStore,
		viewer:     viewer,
		cache:      cache.New(cacheTTL, 2*cacheTTL),
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	s.serverLock.Lock()
	s.server = server
	s.serverLock.Unlock()

	return server.ListenAndServe()
}

// UpdateViewer replaces the dataset views are served from and drops every
// cached view
func (s *Server) UpdateViewer(viewer CaseViewer) {
	s.viewerLock.Lock()
	s.viewer = viewer
	s.generation++
	s.viewerLock.Unlock()

	s.cache.Flush()
}

// currentViewer returns the viewer together with its generation. Views
// cached under an older generation are never read again.
func (s *Server) currentViewer() (CaseViewer, uint64) {
	s.viewerLock.RLock()
	defer s.viewerLock.RUnlock()
	return s.viewer, s.generation
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))
	apiRoute.GET("/information", s.information)

	casesRoute := apiRoute.Group("/cases")
	{
		casesRoute.GET("/national", s.casesView(viewNational))
		casesRoute.GET("/regional", s.casesView(viewRegional))
		casesRoute.GET("/utla", s.casesView(viewUTLA))
		casesRoute.GET("/history/:view", s.casesHistory)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.serverLock.Lock()
	server := s.server
	s.serverLock.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.mongoStore.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	viewer, _ := s.currentViewer()
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"source": map[string]interface{}{
				"url":          viewer.URL(),
				"date_columns": viewer.DateColumns(),
				"filter_data":  viewer.FilterData(),
			},
			"views":          []string{viewNational, viewRegional, viewUTLA},
			"regions":        englandRegions(),
			"system_version": "Autonomy Cases 0.1",
		},
	})
}

func englandRegions() []map[string]string {
	regions := make([]map[string]string, 0, len(consts.EnglandRegions))
	for code, name := range consts.EnglandRegions {
		key, err := consts.RegionKey(code)
		if err != nil {
			continue
		}
		regions = append(regions, map[string]string{"code": code, "name": name, "key": key})
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i]["code"] < regions[j]["code"] })
	return regions
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
