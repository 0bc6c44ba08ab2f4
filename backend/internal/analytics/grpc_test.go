package analytics

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1024 * 1024

func dialAnalytics(t *testing.T, svc *Service) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(bufSize)
	s := grpc.NewServer()
	RegisterAnalyticsServer(s, NewGRPCServer(svc, 5*time.Second))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, healthServer)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough://bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestAnalyticsGRPC(t *testing.T) {
	f := newFixture(t)
	conn := dialAnalytics(t, f.svc)
	client := NewClient(conn)
	ctx := context.Background()

	t.Run("LetterGrade", func(t *testing.T) {
		letter, err := client.LetterGrade(ctx, 93)
		require.NoError(t, err)
		assert.Equal(t, "A", letter)

		_, err = client.LetterGrade(ctx, 120)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("GradePoints", func(t *testing.T) {
		points, err := client.GradePoints(ctx, 85)
		require.NoError(t, err)
		assert.Equal(t, 2.7, points)
	})

	t.Run("OverallGPA", func(t *testing.T) {
		gpa, err := client.OverallGPA(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2.73", gpa)
	})

	t.Run("Dashboard", func(t *testing.T) {
		d, err := client.Dashboard(ctx, now)
		require.NoError(t, err)
		fields := d.GetFields()
		assert.Equal(t, 1.0, fields["overdueCount"].GetNumberValue())
		assert.Equal(t, "2.73", fields["overallGpa"].GetStringValue())
		assert.Len(t, fields["upcoming"].GetListValue().GetValues(), 2)
	})

	t.Run("Dashboard defaults to server clock", func(t *testing.T) {
		d, err := client.Dashboard(ctx, time.Time{})
		require.NoError(t, err)
		assert.Len(t, d.GetFields()["dueToday"].GetListValue().GetValues(), 1)
	})

	t.Run("CalendarMonth", func(t *testing.T) {
		view, err := client.CalendarMonth(ctx, time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		fields := view.GetFields()
		assert.Equal(t, "2024-04", fields["month"].GetStringValue())
		stats := fields["stats"].GetStructValue().GetFields()
		assert.Equal(t, 1.0, stats["total"].GetNumberValue())
	})

	t.Run("Health", func(t *testing.T) {
		resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
		require.NoError(t, err)
		assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
	})
}
