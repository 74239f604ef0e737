package generator

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	serviceName    = "learnpath.v1.PathService"
	generateMethod = "/" + serviceName + "/Generate"
)

// PathServiceServer is the server side of learnpath.v1.PathService. Requests and
// responses are google.protobuf.Struct so the payload schema stays open.
type PathServiceServer interface {
	Generate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var pathServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*PathServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Generate", Handler: generateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "learnpath/v1/path.proto",
}

func generateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PathServiceServer).Generate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: generateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PathServiceServer).Generate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func RegisterPathServiceServer(s grpc.ServiceRegistrar, srv PathServiceServer) {
	s.RegisterService(&pathServiceDesc, srv)
}

// Server serves a Generator over gRPC.
type Server struct {
	gen    Generator
	logger *slog.Logger
}

func NewServer(gen Generator, logger *slog.Logger) *Server {
	return &Server{gen: gen, logger: logger}
}

func (s *Server) Generate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := requestFromStruct(in)
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	s.logger.Debug("Generating path", "topic", req.Topic, "level", req.Level)
	payload, err := s.gen.Generate(ctx, req)
	if err != nil {
		s.logger.Error("Generator failed", "topic", req.Topic, "error", err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, status.FromContextError(err).Err()
		}
		return nil, status.Errorf(codes.Unavailable, "generate: %v", err)
	}

	out := new(structpb.Struct)
	if err := protojson.Unmarshal(payload, out); err != nil {
		return nil, status.Errorf(codes.Internal, "payload is not a JSON object: %v", err)
	}
	return out, nil
}

func requestFromStruct(in *structpb.Struct) Request {
	f := in.GetFields()
	return Request{
		Topic:        f["topic"].GetStringValue(),
		Level:        f["level"].GetStringValue(),
		SelectedNode: f["selected_node"].GetStringValue(),
	}
}

// GRPCClient is a Generator backed by a remote PathService.
type GRPCClient struct {
	conn grpc.ClientConnInterface
}

func NewGRPCClient(conn grpc.ClientConnInterface) *GRPCClient {
	return &GRPCClient{conn: conn}
}

func (c *GRPCClient) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	in, err := structpb.NewStruct(req.asMap())
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, generateMethod, in, out); err != nil {
		return nil, err
	}
	return protojson.Marshal(out)
}
