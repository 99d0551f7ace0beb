package grpcserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/DInduwara/Flood-management-system/internal/auth"
	"github.com/DInduwara/Flood-management-system/internal/service"
	"github.com/DInduwara/Flood-management-system/models"
	"github.com/DInduwara/Flood-management-system/repository"
)

// Server implements IntakeServiceServer on top of the intake service.
type Server struct {
	Intake *service.Intake
	Log    *zap.Logger
}

var _ IntakeServiceServer = (*Server)(nil)

// SubmitSosRequest stores a distress report and returns its public view.
func (s *Server) SubmitSosRequest(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	r, err := s.Intake.SubmitSosRequest(ctx, in.AsMap())
	if err != nil {
		return nil, s.toStatus(err)
	}
	return toStruct(r.Public())
}

// SubmitHelpOffer stores a volunteer offer.
func (s *Server) SubmitHelpOffer(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	o, err := s.Intake.SubmitHelpOffer(ctx, in.AsMap())
	if err != nil {
		return nil, s.toStatus(err)
	}
	return toStruct(o)
}

// ListReliefCamps returns active camps ordered by district.
func (s *Server) ListReliefCamps(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	camps, err := s.Intake.ListReliefCamps(ctx)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return toList(camps)
}

// ListSosRequests filters by the optional district/status keys. Operators get
// internal_notes, everyone else the public view.
func (s *Server) ListSosRequests(ctx context.Context, in *structpb.Struct) (*structpb.ListValue, error) {
	fields := in.GetFields()
	district := fields["district"].GetStringValue()
	st := fields["status"].GetStringValue()

	list, err := s.Intake.ListSosRequests(ctx, district, st)
	if err != nil {
		return nil, s.toStatus(err)
	}
	if p, _ := auth.FromContext(ctx); p.IsOperator() {
		return toList(list)
	}
	out := make([]models.PublicSosRequest, 0, len(list))
	for i := range list {
		out = append(out, list[i].Public())
	}
	return toList(out)
}

// UpdateSosRequest changes status and/or internal_notes of the record named by "id".
func (s *Server) UpdateSosRequest(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if _, err := auth.RequireOperator(ctx); err != nil {
		return nil, err
	}
	raw := in.AsMap()
	id, ok := raw["id"].(float64)
	if !ok || id <= 0 || id != float64(int64(id)) {
		return nil, s.toStatus(&models.ValidationError{Fields: map[string][]string{"id": {"A valid integer is required."}}})
	}
	delete(raw, "id")

	r, err := s.Intake.UpdateSosRequest(ctx, int64(id), raw)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return toStruct(r)
}

// toStatus maps service errors onto gRPC codes. Storage details are logged, never returned.
func (s *Server) toStatus(err error) error {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		st := status.New(codes.InvalidArgument, "validation failed")
		br := &errdetails.BadRequest{}
		for _, field := range ve.FieldNames() {
			for _, msg := range ve.Fields[field] {
				br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{Field: field, Description: msg})
			}
		}
		if withDetails, derr := st.WithDetails(br); derr == nil {
			st = withDetails
		}
		return st.Err()
	case errors.Is(err, repository.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	default:
		if s.Log != nil {
			s.Log.Error("grpc request failed", zap.Error(err))
		}
		return status.Error(codes.Internal, "internal server error")
	}
}

// toStruct converts a record into a Struct using its JSON field names.
func toStruct(v any) (*structpb.Struct, error) {
	var m map[string]any
	if err := roundTrip(v, &m); err != nil {
		return nil, err
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func toList(v any) (*structpb.ListValue, error) {
	items := []any{}
	if err := roundTrip(v, &items); err != nil {
		return nil, err
	}
	out, err := structpb.NewList(items)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func roundTrip(v, dst any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return status.Errorf(codes.Internal, "encode response: %v", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return nil
}
