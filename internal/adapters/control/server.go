package control

import (
	"context"
	"net"
	"os"
	"path/filepath"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// StatusSource reports the counters of a worker pool.
type StatusSource interface {
	Status() ports.WorkerStatus
}

// Server implements the control service.
type Server struct {
	lifecycle  *Lifecycle
	source     StatusSource
	socketPath string
	grpcServer *grpc.Server
}

// NewServer creates a control server bound to socketPath.
func NewServer(socketPath string, lifecycle *Lifecycle, source StatusSource) *Server {
	s := &Server{
		lifecycle:  lifecycle,
		source:     source,
		socketPath: socketPath,
		grpcServer: grpc.NewServer(),
	}
	s.grpcServer.RegisterService(&ServiceDesc, s)
	return s
}

// Serve listens on the socket until ctx is canceled or shutdown is requested.
func (s *Server) Serve(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create control directory"), "path", s.socketPath)
	}

	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return zerr.Wrap(err, "failed to remove stale socket")
	}

	lis, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen on control socket"), "path", s.socketPath)
	}

	if err := os.Chmod(s.socketPath, domain.SocketPerm); err != nil {
		_ = lis.Close()
		return zerr.Wrap(err, "failed to set socket permissions")
	}

	defer func() { _ = os.Remove(s.socketPath) }()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpcServer.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.grpcServer.GracefulStop()
		return nil
	case <-s.lifecycle.ShutdownChan():
		s.grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

// Status implements WorkerControlServer.
func (s *Server) Status(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	st := s.source.Status()
	return structpb.NewStruct(map[string]any{
		fieldPID:          os.Getpid(),
		fieldUptime:       s.lifecycle.Uptime().Seconds(),
		fieldLastActivity: st.LastActivity.Unix(),
		fieldActive:       st.Active,
		fieldSucceeded:    st.Succeeded,
		fieldFailed:       st.Failed,
	})
}

// Shutdown implements WorkerControlServer.
func (s *Server) Shutdown(_ context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	s.lifecycle.Shutdown()
	return &emptypb.Empty{}, nil
}
