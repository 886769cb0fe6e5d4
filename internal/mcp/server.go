package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"wayfinder/internal/route"
)

type Server struct {
	planner *route.Planner
	logger  *zap.Logger
	mcp     *sdk.Server
}

func NewServer(planner *route.Planner, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		planner: planner,
		logger:  logger,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "wayfinder",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	s.logger.Info("mcp server starting")
	return s.mcp.Run(ctx, transport)
}
