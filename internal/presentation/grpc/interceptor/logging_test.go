package interceptor

import (
	"bytes"
	"context"
	"testing"

	otelinfra "payment-gateway/internal/infrastructure/observability/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestLoggingUnaryInterceptor(t *testing.T) {
	tests := []struct {
		name        string
		handlerErr  error
		wantMessage string
		wantCode    string
	}{
		{
			name:        "正常系: 成功した呼び出し",
			wantMessage: "gRPC call completed",
			wantCode:    `"grpc_code":"OK"`,
		},
		{
			name:        "異常系: 失敗した呼び出し",
			handlerErr:  status.Error(codes.NotFound, "unknown service"),
			wantMessage: "gRPC call failed",
			wantCode:    `"grpc_code":"NotFound"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := otelinfra.NewLoggerWithWriter(noop.NewTracerProvider().Tracer("test"), &buf)

			interceptor := LoggingUnaryInterceptor(logger)
			info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

			resp, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
				if tt.handlerErr != nil {
					return nil, tt.handlerErr
				}
				return "resp", nil
			})

			if tt.handlerErr != nil {
				require.Error(t, err)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "resp", resp)
			}
			assert.Contains(t, buf.String(), tt.wantMessage)
			assert.Contains(t, buf.String(), tt.wantCode)
			assert.Contains(t, buf.String(), "/grpc.health.v1.Health/Check")
		})
	}
}
