// ============================================================================
// backend/internal/analytics/grpc.go
// gRPC surface of the analytics service, built on protobuf well-known types
// ============================================================================

package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"studysync/backend/internal/grade"
	"studysync/backend/internal/shared"
)

// ServiceName is the fully qualified gRPC service name, also used for health checks.
const ServiceName = "studysync.analytics.v1.AnalyticsService"

const (
	methodLetterGrade   = "/" + ServiceName + "/LetterGrade"
	methodGradePoints   = "/" + ServiceName + "/GradePoints"
	methodOverallGPA    = "/" + ServiceName + "/OverallGPA"
	methodDashboard     = "/" + ServiceName + "/Dashboard"
	methodCalendarMonth = "/" + ServiceName + "/CalendarMonth"
)

// AnalyticsServer is the server API for the analytics gRPC service.
type AnalyticsServer interface {
	LetterGrade(context.Context, *wrapperspb.DoubleValue) (*wrapperspb.StringValue, error)
	GradePoints(context.Context, *wrapperspb.DoubleValue) (*wrapperspb.DoubleValue, error)
	OverallGPA(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Dashboard(context.Context, *timestamppb.Timestamp) (*structpb.Struct, error)
	CalendarMonth(context.Context, *timestamppb.Timestamp) (*structpb.Struct, error)
}

// GRPCServer adapts Service to AnalyticsServer
type GRPCServer struct {
	svc     *Service
	timeout time.Duration
}

// NewGRPCServer wraps svc; each call gets its own timeout when timeout > 0.
func NewGRPCServer(svc *Service, timeout time.Duration) *GRPCServer {
	return &GRPCServer{svc: svc, timeout: timeout}
}

// RegisterAnalyticsServer registers srv on s
func RegisterAnalyticsServer(s grpc.ServiceRegistrar, srv AnalyticsServer) {
	s.RegisterService(&analyticsServiceDesc, srv)
}

func (g *GRPCServer) LetterGrade(ctx context.Context, req *wrapperspb.DoubleValue) (*wrapperspb.StringValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "percentage is required")
	}
	letter, err := grade.ValidateLetterGrade(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return wrapperspb.String(letter), nil
}

func (g *GRPCServer) GradePoints(ctx context.Context, req *wrapperspb.DoubleValue) (*wrapperspb.DoubleValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "percentage is required")
	}
	points, err := grade.ValidateGradePoints(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return wrapperspb.Double(points), nil
}

func (g *GRPCServer) OverallGPA(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	gpa, err := g.svc.OverallGPA(ctx)
	if err != nil {
		return nil, toStatus("overall gpa", err)
	}
	return wrapperspb.String(gpa), nil
}

// Dashboard uses the request timestamp as "now", or the server clock when unset.
func (g *GRPCServer) Dashboard(ctx context.Context, req *timestamppb.Timestamp) (*structpb.Struct, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	d, err := g.svc.Dashboard(ctx, g.timeOrNow(req))
	if err != nil {
		return nil, toStatus("dashboard", err)
	}
	return toStruct(d)
}

// CalendarMonth lays out the month containing the request timestamp.
func (g *GRPCServer) CalendarMonth(ctx context.Context, req *timestamppb.Timestamp) (*structpb.Struct, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	now := g.svc.Now()
	ref := g.timeOrNow(req)
	view, err := g.svc.CalendarMonth(ctx, ref, now, ViewMonth)
	if err != nil {
		return nil, toStatus("calendar", err)
	}
	return toStruct(view)
}

func (g *GRPCServer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func (g *GRPCServer) timeOrNow(ts *timestamppb.Timestamp) time.Time {
	now := g.svc.Now()
	if ts == nil || (ts.GetSeconds() == 0 && ts.GetNanos() == 0) {
		return now
	}
	return ts.AsTime().In(now.Location())
}

func toStatus(op string, err error) error {
	switch {
	case shared.IsValidationError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, op+" timed out")
	default:
		slog.Error("analytics request failed", "op", op, "error", err)
		return status.Errorf(codes.Internal, "failed to compute %s", op)
	}
}

// toStruct converts a JSON-tagged value into a protobuf Struct
func toStruct(v interface{}) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode response")
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Error(codes.Internal, "failed to encode response")
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode response")
	}
	return out, nil
}

// ============================================================================
// Service descriptor
// ============================================================================

var analyticsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalyticsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "LetterGrade", Handler: letterGradeHandler},
		{MethodName: "GradePoints", Handler: gradePointsHandler},
		{MethodName: "OverallGPA", Handler: overallGPAHandler},
		{MethodName: "Dashboard", Handler: dashboardHandler},
		{MethodName: "CalendarMonth", Handler: calendarMonthHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "studysync/analytics/v1/analytics.proto",
}

func letterGradeHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.DoubleValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyticsServer).LetterGrade(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodLetterGrade}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyticsServer).LetterGrade(ctx, req.(*wrapperspb.DoubleValue))
	}
	return interceptor(ctx, in, info, handler)
}

func gradePointsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.DoubleValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyticsServer).GradePoints(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGradePoints}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyticsServer).GradePoints(ctx, req.(*wrapperspb.DoubleValue))
	}
	return interceptor(ctx, in, info, handler)
}

func overallGPAHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyticsServer).OverallGPA(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodOverallGPA}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyticsServer).OverallGPA(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func dashboardHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(timestamppb.Timestamp)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyticsServer).Dashboard(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodDashboard}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyticsServer).Dashboard(ctx, req.(*timestamppb.Timestamp))
	}
	return interceptor(ctx, in, info, handler)
}

func calendarMonthHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(timestamppb.Timestamp)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AnalyticsServer).CalendarMonth(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodCalendarMonth}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AnalyticsServer).CalendarMonth(ctx, req.(*timestamppb.Timestamp))
	}
	return interceptor(ctx, in, info, handler)
}

// ============================================================================
// Client
// ============================================================================

// Client calls the analytics service over a gRPC connection
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) LetterGrade(ctx context.Context, percentage float64, opts ...grpc.CallOption) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, methodLetterGrade, wrapperspb.Double(percentage), out, opts...); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

func (c *Client) GradePoints(ctx context.Context, percentage float64, opts ...grpc.CallOption) (float64, error) {
	out := new(wrapperspb.DoubleValue)
	if err := c.cc.Invoke(ctx, methodGradePoints, wrapperspb.Double(percentage), out, opts...); err != nil {
		return 0, err
	}
	return out.GetValue(), nil
}

func (c *Client) OverallGPA(ctx context.Context, opts ...grpc.CallOption) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, methodOverallGPA, &emptypb.Empty{}, out, opts...); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

// Dashboard returns the dashboard as of now; a zero now uses the server clock.
func (c *Client) Dashboard(ctx context.Context, now time.Time, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodDashboard, timestampOrEmpty(now), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CalendarMonth(ctx context.Context, ref time.Time, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodCalendarMonth, timestampOrEmpty(ref), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func timestampOrEmpty(t time.Time) *timestamppb.Timestamp {
	if t.IsZero() {
		return &timestamppb.Timestamp{}
	}
	return timestamppb.New(t)
}
