package grpc

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/dramahub/internal/common"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// requestIDKey is the metadata key; gRPC lower-cases header names.
var requestIDKey = strings.ToLower(common.RequestIDHeaderName)

func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(requestIDKey); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	id := requestID(ctx)

	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDKey, id))

	resp, err := handler(ctx, req)

	s.logger.Debug(ctx, "rpc",
		"request_id", id,
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start),
	)
	return resp, err
}
