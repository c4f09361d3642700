// Package zeebetest records the job commands a worker sends to the broker so
// tests can assert on completions, failures and thrown BPMN errors without a
// running gateway.
package zeebetest

import (
	"context"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"google.golang.org/grpc"
)

type Kind string

const (
	KindComplete Kind = "complete"
	KindFail     Kind = "fail"
	KindThrow    Kind = "throw"
)

// Call is one job command as seen by the gateway.
type Call struct {
	Kind         Kind
	JobKey       int64
	Retries      int32
	ErrorCode    string
	ErrorMessage string
	Variables    string
	// CtxErr is the state of the send context when the command arrived.
	CtxErr error
}

// Gateway implements the job commands of pb.GatewayClient. Other RPCs panic.
type Gateway struct {
	pb.GatewayClient

	mu    sync.Mutex
	calls []Call
}

func New() *Gateway {
	return &Gateway{}
}

// JobClient returns a worker.JobClient whose commands are sent to g.
func (g *Gateway) JobClient() worker.JobClient {
	return jobClient{gateway: g}
}

func (g *Gateway) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}

// Last returns the most recent call, or false when nothing was sent.
func (g *Gateway) Last() (Call, bool) {
	calls := g.Calls()
	if len(calls) == 0 {
		return Call{}, false
	}
	return calls[len(calls)-1], true
}

func (g *Gateway) record(ctx context.Context, c Call) error {
	c.CtxErr = ctx.Err()
	g.mu.Lock()
	g.calls = append(g.calls, c)
	g.mu.Unlock()
	return c.CtxErr
}

func (g *Gateway) CompleteJob(ctx context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	if err := g.record(ctx, Call{Kind: KindComplete, JobKey: in.JobKey, Variables: in.Variables}); err != nil {
		return nil, err
	}
	return &pb.CompleteJobResponse{}, nil
}

func (g *Gateway) FailJob(ctx context.Context, in *pb.FailJobRequest, _ ...grpc.CallOption) (*pb.FailJobResponse, error) {
	err := g.record(ctx, Call{
		Kind:         KindFail,
		JobKey:       in.JobKey,
		Retries:      in.Retries,
		ErrorMessage: in.ErrorMessage,
		Variables:    in.Variables,
	})
	if err != nil {
		return nil, err
	}
	return &pb.FailJobResponse{}, nil
}

func (g *Gateway) ThrowError(ctx context.Context, in *pb.ThrowErrorRequest, _ ...grpc.CallOption) (*pb.ThrowErrorResponse, error) {
	err := g.record(ctx, Call{
		Kind:         KindThrow,
		JobKey:       in.JobKey,
		ErrorCode:    in.ErrorCode,
		ErrorMessage: in.ErrorMessage,
		Variables:    in.Variables,
	})
	if err != nil {
		return nil, err
	}
	return &pb.ThrowErrorResponse{}, nil
}

type jobClient struct {
	gateway *Gateway
}

func noRetry(context.Context, error) bool { return false }

func (c jobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c.gateway, noRetry)
}

func (c jobClient) NewFailJobCommand() commands.FailJobCommandStep1 {
	return commands.NewFailJobCommand(c.gateway, noRetry)
}

func (c jobClient) NewThrowErrorCommand() commands.ThrowErrorCommandStep1 {
	return commands.NewThrowErrorCommand(c.gateway, noRetry)
}
