package web

import (
	"context"

	"github.com/gin-gonic/gin"

	"mbgatectl/cmd/mbgatesim/config"
	"mbgatectl/cmd/mbgatesim/options"
	"mbgatectl/pkg/generic"
	"mbgatectl/pkg/simulator"
)

type Server struct {
	*generic.Server
	*config.Config
}

func NewServer(router *gin.Engine, o *options.Options, config *config.Config) (*Server, error) {
	s := &generic.Server{
		Router:   router,
		Port:     o.Port,
		CertFile: config.CertFile,
		KeyFile:  config.KeyFile,
	}

	server := &Server{
		Server: s,
		Config: config,
	}

	server.InstallHandlers()

	return server, nil
}

func (s *Server) InstallHandlers() {
	api := s.Router.Group("/api")
	simulator.InstallHandler(api, s.Config.SimulatorMgr)
}

func (s *Server) Serve() (func(ctx context.Context), error) {
	return s.Server.Serve()
}
