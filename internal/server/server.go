package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gobuffalo/packr"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/mtslabs/mts/internal/cache"
	"github.com/mtslabs/mts/internal/compress"
	"github.com/mtslabs/mts/internal/config"
	"github.com/mtslabs/mts/internal/graphql"
	"github.com/mtslabs/mts/internal/job"
	"github.com/mtslabs/mts/internal/jobs"
	"github.com/mtslabs/mts/internal/queue"
	"github.com/mtslabs/mts/internal/service"
	"github.com/mtslabs/mts/internal/store"
)

// Server represents the server
type Server struct {
	httpPort string
}

// NewServer creates a new server
func NewServer(httpPort string) *Server {
	return &Server{
		httpPort: httpPort,
	}
}

// Start starts the server
func (s *Server) Start() {
	cnf := config.LoadConfig()
	if s.httpPort != "" {
		cnf.HTTPPort = s.httpPort
	}

	if err := Start(cnf); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start runs the http server until it receives a termination signal.
func Start(cnf config.Config) error {
	db := config.GetDb(cnf)

	docStore := store.NewGormStore(db)
	if err := docStore.Migrate(); err != nil {
		return err
	}

	codec, err := compress.FromName(cnf.Compression)
	if err != nil {
		return err
	}

	var commitCache cache.CommitCache = cache.NewNopCommitCache()
	if cnf.CacheBackend == "redis" {
		commitCache = cache.NewRedisCommitCache(cnf.RedisAddr)
	}

	var commitQueue queue.CommitQueue = queue.NewNopCommitQueue()
	if cnf.KafkaBrokers != "" {
		commitQueue, err = queue.NewKafkaCommitQueue(cnf.KafkaBrokers)
		if err != nil {
			return err
		}
	}
	defer func() {
		if err := commitQueue.Close(); err != nil {
			logrus.Errorf("error closing commit queue: %v", err)
		}
	}()

	authService := service.NewAuthService(docStore, cnf.JWTSecret, cnf.TokenTTL)
	projectService := service.NewProjectService(docStore)
	unitService := service.NewUnitService(docStore)
	commitService := service.NewCommitService(codec, docStore, commitCache, commitQueue)

	if err := authService.EnsureAdmin(context.Background(), cnf.InitPass); err != nil {
		return err
	}

	gqlHandler, err := graphql.NewHandler(docStore)
	if err != nil {
		return err
	}

	lmProxy, err := NewLMProxy(cnf.ChatAPIBaseURL, cnf.ChatAPIKey)
	if err != nil {
		return err
	}

	router := buildRouter(authService, projectService, unitService, commitService, gqlHandler, lmProxy)

	restServer := &http.Server{
		Addr:    cnf.Host + ":" + cnf.HTTPPort,
		Handler: router,
	}

	// prune dense commit history when a retention window is configured
	if cnf.RetentionWindow > 0 {
		executor := jobs.NewTaskExecutor([]jobs.CronJob{
			job.NewCommitRetention(docStore, cnf.RetentionWindow, cnf.RetentionSchedule),
		})
		executor.Run()
		defer executor.Stop()
	}

	// make sure to wait for the server to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting http server on: ", restServer.Addr)
		if err := restServer.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting http server: %v", err)
			}
		}
		logrus.Infof("http server stopped")
	}()

	time.Sleep(1 * time.Second)
	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	if err := restServer.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error stopping http server: %v", err)
	}

	wg.Wait()

	return nil
}

func buildRouter(
	authService *service.AuthService,
	projectService *service.ProjectService,
	unitService *service.UnitService,
	commitService *service.CommitService,
	gqlHandler *graphql.Handler,
	lmProxy *LMProxy,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestTimeMiddleware())

	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "PUT"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		AllowOriginFunc:  func(origin string) bool { return true },
	}))

	authHandler := NewAuthHandler(authService)
	projectHandler := NewProjectHandler(projectService)
	unitHandler := NewUnitHandler(unitService)
	commitHandler := NewCommitHandler(commitService)

	openapiDocs := packr.NewBox("../../docs/v1")
	docsPath := "/v1/docs/"
	router.GET("/v1/docs/*filepath", gin.WrapH(http.StripPrefix(docsPath, http.FileServer(openapiDocs))))

	api := router.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", RequireAuth(authService))

	authed.POST("/auth/users", RequireAdmin(), authHandler.CreateUser)

	authed.GET("/projects", projectHandler.List)
	authed.POST("/projects", projectHandler.Create)
	authed.GET("/projects/:id", projectHandler.Get)
	authed.DELETE("/projects/:id", projectHandler.Delete)

	authed.GET("/units", unitHandler.List)
	authed.POST("/units", unitHandler.Create)
	authed.GET("/units/:id", unitHandler.Get)
	authed.GET("/units/:id/sources", unitHandler.Sources)
	authed.PUT("/units/:id/sources", unitHandler.ReplaceSources)
	authed.DELETE("/units/:id", unitHandler.Delete)
	authed.GET("/units/:id/commits/latest", commitHandler.Latest)

	authed.GET("/commits", commitHandler.List)
	authed.POST("/commits", commitHandler.Create)
	authed.GET("/commits/:id", commitHandler.Get)
	authed.GET("/commits/:id/records", commitHandler.Records)

	authed.POST("/lm/*path", lmProxy.Handle)

	router.POST("/graphql", RequireAuth(authService), gqlHandler.Handle)

	return router
}
