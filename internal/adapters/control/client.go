package control

import (
	"context"
	"time"

	"github.com/cdolfi/explorer/internal/core/domain"
	"github.com/cdolfi/explorer/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client implements ports.WorkerClient.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to a worker's control socket.
// grpc.NewClient returns immediately; the connection is made on the first RPC.
func Dial(socketPath string) (*Client, error) {
	conn, err := grpc.NewClient("unix://"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrControlUnavailable.Error())
	}
	return &Client{conn: conn}, nil
}

// Status implements ports.WorkerClient.
func (c *Client) Status(ctx context.Context) (*ports.WorkerStatus, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, statusMethod, &emptypb.Empty{}, out); err != nil {
		return nil, zerr.Wrap(err, domain.ErrControlUnavailable.Error())
	}

	f := out.GetFields()
	num := func(name string) float64 { return f[name].GetNumberValue() }
	return &ports.WorkerStatus{
		PID:          int(num(fieldPID)),
		Uptime:       time.Duration(num(fieldUptime) * float64(time.Second)),
		LastActivity: time.Unix(int64(num(fieldLastActivity)), 0),
		Active:       int(num(fieldActive)),
		Succeeded:    int(num(fieldSucceeded)),
		Failed:       int(num(fieldFailed)),
	}, nil
}

// Shutdown implements ports.WorkerClient.
func (c *Client) Shutdown(ctx context.Context) error {
	if err := c.conn.Invoke(ctx, shutdownMethod, &emptypb.Empty{}, new(emptypb.Empty)); err != nil {
		return zerr.Wrap(err, domain.ErrControlUnavailable.Error())
	}
	return nil
}

// Close implements ports.WorkerClient.
func (c *Client) Close() error {
	return c.conn.Close()
}
