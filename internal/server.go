package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mvelkov/fittrack/internal/config"
	"github.com/mvelkov/fittrack/internal/dashboard"
	"github.com/mvelkov/fittrack/internal/db"
	"github.com/mvelkov/fittrack/internal/instrumentation"
	"github.com/mvelkov/fittrack/internal/middleware"
	"github.com/mvelkov/fittrack/internal/nutrition"
	"github.com/mvelkov/fittrack/internal/plans"
	"github.com/mvelkov/fittrack/internal/profile"
	"github.com/mvelkov/fittrack/internal/workout"
	"github.com/mvelkov/fittrack/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	mongoClient *mongo.Client
	database    *mongo.Database

	instr        *instrumentation.Instrumentation
	promRegistry *prometheus.Registry
}

type NewServerParams struct {
	Config      *config.Config
	VersionInfo string
}

func NewServer(ctx context.Context, params NewServerParams) (*Server, error) {
	mongoClient, database, err := db.NewClient(ctx, db.NewClientParams{
		MongoURL: params.Config.MongoURL,
		DBName:   params.Config.DBName,
	})
	if err != nil {
		if mongoClient == nil {
			return nil, fmt.Errorf("new mongo client: %w", err)
		}
		// connected but unreachable right now, requests will surface store errors
		log.Warnf("failed to ping mongo: %s", err)
	}

	instr, promRegistry := instrumentation.NewInstrumentation("fittrack", "main")
	instr.GaugeLifeSignal.Set(0)

	return &Server{
		config:       params.Config,
		mongoClient:  mongoClient,
		database:     database,
		versionInfo:  params.VersionInfo,
		instr:        instr,
		promRegistry: promRegistry,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	profileHandler := profile.NewHandler(profile.NewRepo(s.database))
	profileHandler.SetupRoutes(api)

	workoutsRepo := workout.NewRepo(s.database)
	workoutHandler := workout.NewHandler(workoutsRepo, s.instr)
	workoutHandler.SetupRoutes(api)

	plansHandler := plans.NewHandler(plans.NewRepo(s.database))
	plansHandler.SetupRoutes(api)

	nutritionRepo := nutrition.NewRepo(s.database)
	nutritionHandler := nutrition.NewHandler(nutritionRepo, s.instr)
	nutritionHandler.SetupRoutes(api)

	dashboardHandler := dashboard.NewHandler(dashboard.NewAnalyzer(
		profile.NewRepo(s.database),
		workoutsRepo,
		nutritionRepo,
	))
	dashboardHandler.SetupRoutes(api)

	api.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteJSONResponseOK(w, `{"message":"Fitness Tracker API"}`)
	}).Methods("GET", "OPTIONS").Name("api-root")

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.instr))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.instr))
	r.Use(middleware.Cors(s.config.CORSAllowedOrigins))
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.instr.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.instr.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.mongoClient != nil {
		if err := s.mongoClient.Disconnect(ctx); err != nil {
			log.Errorf("failed to disconnect mongo client: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
	}
	log.Warnln("server shut down")

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.instr.GaugeRequests.Add(1)
	case http.StateClosed:
		s.instr.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
