package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/DInduwara/Flood-management-system/models"
	"github.com/DInduwara/Flood-management-system/repository"
)

const healthMessage = "Flood SOS API running"

// HealthStatus is the liveness probe payload.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Intake validates raw submissions, persists them and answers listing queries.
// It holds no state between calls other than the repositories.
type Intake struct {
	sos    repository.SosRequestRepositoryI
	offers repository.HelpOfferRepositoryI
	camps  repository.ReliefCampRepositoryI
	log    *zap.Logger
}

// NewIntake wires the service. A nil logger disables logging.
func NewIntake(sos repository.SosRequestRepositoryI, offers repository.HelpOfferRepositoryI, camps repository.ReliefCampRepositoryI, log *zap.Logger) *Intake {
	if log == nil {
		log = zap.NewNop()
	}
	return &Intake{sos: sos, offers: offers, camps: camps, log: log}
}

// Health always succeeds while the process can answer.
func (s *Intake) Health() HealthStatus {
	return HealthStatus{Status: "ok", Message: healthMessage}
}

// SubmitSosRequest decodes and stores a distress report. The stored record always starts as "new".
func (s *Intake) SubmitSosRequest(ctx context.Context, raw map[string]any) (*models.SosRequest, error) {
	req, err := models.DecodeSosRequest(raw)
	if err != nil {
		s.logRejected("sos request", err)
		return nil, err
	}
	out, err := s.sos.Create(ctx, req)
	if err != nil {
		s.log.Error("store sos request failed", zap.Error(err))
		return nil, err
	}
	s.log.Info("sos request received",
		zap.Int64("id", out.ID),
		zap.String("district", out.District),
		zap.String("emergency_type", string(out.EmergencyType)),
		zap.Int("number_of_people", out.NumberOfPeople))
	return out, nil
}

// SubmitHelpOffer decodes and stores a volunteer offer.
func (s *Intake) SubmitHelpOffer(ctx context.Context, raw map[string]any) (*models.HelpOffer, error) {
	offer, err := models.DecodeHelpOffer(raw)
	if err != nil {
		s.logRejected("help offer", err)
		return nil, err
	}
	out, err := s.offers.Create(ctx, offer)
	if err != nil {
		s.log.Error("store help offer failed", zap.Error(err))
		return nil, err
	}
	s.log.Info("help offer received", zap.Int64("id", out.ID), zap.String("district", out.HelperDistrict))
	return out, nil
}

// ListReliefCamps returns active camps ordered by district.
func (s *Intake) ListReliefCamps(ctx context.Context) ([]models.ReliefCamp, error) {
	out, err := s.camps.ListActive(ctx)
	if err != nil {
		s.log.Error("list relief camps failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// ListAllReliefCamps includes inactive camps; used by operator tooling.
func (s *Intake) ListAllReliefCamps(ctx context.Context) ([]models.ReliefCamp, error) {
	out, err := s.camps.ListAll(ctx)
	if err != nil {
		s.log.Error("list all relief camps failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// ListSosRequests translates optional query parameters into a repository filter.
// Empty parameters add no predicate. A status outside the enum matches nothing.
func (s *Intake) ListSosRequests(ctx context.Context, district, status string) ([]models.SosRequest, error) {
	var f repository.SosRequestFilter
	f.District = strings.TrimSpace(district)
	if raw := strings.TrimSpace(status); raw != "" {
		st, ok := models.ParseSosStatus(raw)
		if !ok {
			s.log.Debug("unknown status filter", zap.String("status", raw))
			return []models.SosRequest{}, nil
		}
		f.Status = st
	}
	out, err := s.sos.List(ctx, f)
	if err != nil {
		s.log.Error("list sos requests failed", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// UpdateSosRequest applies an operator status and/or notes change.
func (s *Intake) UpdateSosRequest(ctx context.Context, id int64, raw map[string]any) (*models.SosRequest, error) {
	u, err := models.DecodeSosUpdate(raw)
	if err != nil {
		s.logRejected("sos update", err)
		return nil, err
	}
	out, err := s.sos.Update(ctx, id, *u)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error("update sos request failed", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}
	s.log.Info("sos request updated", zap.Int64("id", id), zap.String("status", string(out.Status)))
	return out, nil
}

// CreateReliefCamp decodes and stores a camp entry.
func (s *Intake) CreateReliefCamp(ctx context.Context, raw map[string]any) (*models.ReliefCamp, error) {
	camp, err := models.DecodeReliefCamp(raw)
	if err != nil {
		s.logRejected("relief camp", err)
		return nil, err
	}
	out, err := s.camps.Create(ctx, camp)
	if err != nil {
		s.log.Error("store relief camp failed", zap.Error(err))
		return nil, err
	}
	s.log.Info("relief camp created", zap.Int64("id", out.ID), zap.String("district", out.District))
	return out, nil
}

// SetReliefCampActive opens or closes a camp in the public directory.
func (s *Intake) SetReliefCampActive(ctx context.Context, id int64, active bool) (*models.ReliefCamp, error) {
	out, err := s.camps.SetActive(ctx, id, active)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error("set relief camp active failed", zap.Int64("id", id), zap.Error(err))
		}
		return nil, err
	}
	s.log.Info("relief camp toggled", zap.Int64("id", id), zap.Bool("is_active", out.IsActive))
	return out, nil
}

func (s *Intake) logRejected(kind string, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		s.log.Debug("rejected "+kind, zap.Strings("fields", ve.FieldNames()))
	}
}
