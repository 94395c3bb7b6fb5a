package interceptor

import (
	"context"
	"time"

	otelinfra "payment-gateway/internal/infrastructure/observability/otel"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggingUnaryInterceptor Unary呼び出しのログを記録するインターセプター
func LoggingUnaryInterceptor(logger *otelinfra.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logCall(ctx, logger, info.FullMethod, start, err)
		return resp, err
	}
}

// LoggingStreamInterceptor Stream呼び出しのログを記録するインターセプター
func LoggingStreamInterceptor(logger *otelinfra.Logger) grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		start := time.Now()
		err := handler(srv, ss)
		logCall(ss.Context(), logger, info.FullMethod, start, err)
		return err
	}
}

func logCall(ctx context.Context, logger *otelinfra.Logger, method string, start time.Time, err error) {
	fields := map[string]interface{}{
		"grpc_method": method,
		"grpc_code":   status.Code(err).String(),
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		logger.Error(ctx, "gRPC call failed", err, fields)
		return
	}
	logger.Debug(ctx, "gRPC call completed", fields)
}
