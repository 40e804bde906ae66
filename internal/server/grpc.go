package server

import (
	"net"

	"google.golang.org/grpc"

	"github.com/kotobadev/kotoba-sync/internal/config"
	myGRPC "github.com/kotobadev/kotoba-sync/internal/handler/grpc"
	"github.com/kotobadev/kotoba-sync/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server          *grpc.Server
	gRPCNetListener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) (*grpcServer, error) {
	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return nil, err
	}

	return &grpcServer{
		handler:         handler,
		server:          grpc.NewServer(),
		gRPCNetListener: listener,
		logger:          logger,
	}, nil
}

func (g *grpcServer) RunServer() {
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Error().Msgf("gRPC server Serve: %v", err)
	}
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.server.GracefulStop()
}
