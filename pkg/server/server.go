package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/adfharrison1/go-esmigrate/pkg/api"
	"github.com/adfharrison1/go-esmigrate/pkg/engine"
)

// Server holds references to the engine, router, etc.
type Server struct {
	router   *mux.Router
	dbEngine *engine.Engine
}

// NewServer creates a new instance of Server.
func NewServer(options ...engine.Option) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		dbEngine: engine.NewEngine(options...),
	}

	// Define HTTP routes
	api.NewHandler(s.dbEngine).RegisterRoutes(s.router)

	// Use the logging middleware for all routes
	s.router.Use(requestLoggerMiddleware)

	// Customize NotFoundHandler to log 404s
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("WARN: No route found for %s %s", r.Method, r.URL.Path)
		api.WriteJSONError(w, http.StatusNotFound, "no_handler_found_exception",
			"no handler found for uri ["+r.URL.Path+"] and method ["+r.Method+"]")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed_exception",
			"method ["+r.Method+"] is not allowed for uri ["+r.URL.Path+"]")
	})

	return s
}

// requestLoggerMiddleware logs the method, URL path, and duration for each request.
func requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)
		log.Printf("INFO: Request %s %s took %s", r.Method, r.URL.Path, elapsed)
	})
}

// InitDB loads the namespace from a file and starts the background workers
func (s *Server) InitDB(filename string) {
	if err := s.dbEngine.LoadFromFile(filename); err != nil {
		log.Printf("ERROR: Could not load data from file %s: %v", filename, err)
	} else {
		log.Printf("INFO: Loaded data from file %s successfully", filename)
	}
	s.dbEngine.StartBackgroundWorkers()
}

// SaveDB saves the current namespace to file
func (s *Server) SaveDB(filename string) {
	if err := s.dbEngine.SaveToFile(filename); err != nil {
		log.Printf("ERROR: Could not save data to file %s: %v", filename, err)
	} else {
		log.Printf("INFO: Saved data to file %s successfully", filename)
	}
}

// StopBackgroundWorkers stops the engine's background save worker
func (s *Server) StopBackgroundWorkers() {
	s.dbEngine.StopBackgroundWorkers()
}

// Engine exposes the underlying engine.
func (s *Server) Engine() *engine.Engine {
	return s.dbEngine
}

// Router exposes the internal mux.Router.
func (s *Server) Router() http.Handler {
	return s.router
}
