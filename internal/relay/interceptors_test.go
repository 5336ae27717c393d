package relay

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestLoggingInterceptor(t *testing.T) {
	interceptor := loggingInterceptor(slog.Default())

	tests := []struct {
		name       string
		handler    grpc.UnaryHandler
		wantErr    bool
		wantResult string
	}{
		{
			name: "successful request",
			handler: func(ctx context.Context, req any) (any, error) {
				return "success", nil
			},
			wantResult: "success",
		},
		{
			name: "failed request",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, status.Error(codes.Internal, "internal error")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/TestMethod"}

			resp, err := interceptor(context.Background(), "request", info, tt.handler)
			if (err != nil) != tt.wantErr {
				t.Errorf("loggingInterceptor() error = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr && resp != tt.wantResult {
				t.Errorf("loggingInterceptor() result = %v, want %v", resp, tt.wantResult)
			}
		})
	}
}

func TestRecoveryInterceptor(t *testing.T) {
	interceptor := recoveryInterceptor(slog.Default())
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/TestMethod"}

	resp, err := interceptor(context.Background(), "request", info, func(ctx context.Context, req any) (any, error) {
		return "success", nil
	})
	if err != nil || resp != "success" {
		t.Errorf("recoveryInterceptor() = %v, %v, want success, nil", resp, err)
	}

	_, err = interceptor(context.Background(), "request", info, func(ctx context.Context, req any) (any, error) {
		panic(errors.New("error panic"))
	})
	if status.Code(err) != codes.Internal {
		t.Errorf("recoveryInterceptor() code = %v, want Internal", status.Code(err))
	}
}

func TestStreamRecoveryInterceptor(t *testing.T) {
	interceptor := streamRecoveryInterceptor(slog.Default())
	info := &grpc.StreamServerInfo{FullMethod: "/test.Service/Stream"}

	err := interceptor(nil, nil, info, func(srv any, stream grpc.ServerStream) error {
		panic("stream panic")
	})
	if status.Code(err) != codes.Internal {
		t.Errorf("streamRecoveryInterceptor() code = %v, want Internal", status.Code(err))
	}
}

func TestTimeoutInterceptor(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		handler  grpc.UnaryHandler
		wantCode codes.Code
	}{
		{
			name:    "fast handler",
			timeout: time.Second,
			handler: func(ctx context.Context, req any) (any, error) {
				return "success", nil
			},
			wantCode: codes.OK,
		},
		{
			name:    "slow handler timeout",
			timeout: 10 * time.Millisecond,
			handler: func(ctx context.Context, req any) (any, error) {
				time.Sleep(100 * time.Millisecond)
				return "success", nil
			},
			wantCode: codes.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interceptor := timeoutInterceptor(tt.timeout)
			info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/TestMethod"}

			_, err := interceptor(context.Background(), "request", info, tt.handler)
			if status.Code(err) != tt.wantCode {
				t.Errorf("timeoutInterceptor() code = %v, want %v", status.Code(err), tt.wantCode)
			}
		})
	}
}

func TestIdleTracker(t *testing.T) {
	tracker := NewIdleTracker(20 * time.Millisecond)
	tracker.tick = 5 * time.Millisecond

	tracker.StreamStarted()

	go tracker.Start()
	defer tracker.Stop()

	select {
	case <-tracker.ShutdownChan():
		t.Fatal("tracker fired while a stream was open")
	case <-time.After(60 * time.Millisecond):
	}

	tracker.StreamEnded()

	select {
	case <-tracker.ShutdownChan():
	case <-time.After(time.Second):
		t.Fatal("tracker did not fire after the stream closed")
	}
}

func TestIdleTracker_Disabled(t *testing.T) {
	tracker := NewIdleTracker(0)
	if tracker.IsEnabled() {
		t.Error("IsEnabled() = true, want false")
	}

	// Start returns immediately when disabled
	tracker.Start()
}
