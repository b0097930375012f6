package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"auditor-srv/internal/auditor"
	pkgLog "auditor-srv/pkg/log"
	pkgRedis "auditor-srv/pkg/redis"
)

// HTTPServer hosts the maintenance API next to the audit loop. New() only
// wires and validates dependencies; Run() (in httpserver.go) starts the
// loop and the HTTP listener.
type HTTPServer struct {
	gin    *gin.Engine
	logger pkgLog.Logger
	host   string
	port   int
	mode   string

	auditorUC auditor.UseCase
	redis     pkgRedis.IRedis // nil unless the Redis dedup backend is configured
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Host string
	Port int
	Mode string

	AuditorUC auditor.UseCase
	Redis     pkgRedis.IRedis
}

// New creates a new HTTPServer instance with the provided configuration.
func New(logger pkgLog.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		gin:       gin.New(),
		logger:    logger,
		host:      cfg.Host,
		port:      cfg.Port,
		mode:      cfg.Mode,
		auditorUC: cfg.AuditorUC,
		redis:     cfg.Redis,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	return srv, nil
}

func (s *HTTPServer) validate() error {
	if s.logger == nil {
		return errors.New("logger is required")
	}
	if s.port == 0 {
		return errors.New("port is required")
	}
	if s.auditorUC == nil {
		return errors.New("auditor usecase is required")
	}
	return nil
}
