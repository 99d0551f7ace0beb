package repository

import (
	"context"

	"github.com/DInduwara/Flood-management-system/models"
)

// SosRequestRepositoryI defines operations on SosRequest entities.
type SosRequestRepositoryI interface {
	Create(ctx context.Context, s *models.SosRequest) (*models.SosRequest, error)
	GetByID(ctx context.Context, id int64) (*models.SosRequest, error)
	List(ctx context.Context, f SosRequestFilter) ([]models.SosRequest, error)
	Update(ctx context.Context, id int64, u models.SosUpdate) (*models.SosRequest, error)
}

// HelpOfferRepositoryI defines operations on HelpOffer entities.
// Offers are create-only; there is deliberately no List.
type HelpOfferRepositoryI interface {
	Create(ctx context.Context, o *models.HelpOffer) (*models.HelpOffer, error)
	GetByID(ctx context.Context, id int64) (*models.HelpOffer, error)
}

// ReliefCampRepositoryI defines operations on ReliefCamp entities.
type ReliefCampRepositoryI interface {
	Create(ctx context.Context, c *models.ReliefCamp) (*models.ReliefCamp, error)
	GetByID(ctx context.Context, id int64) (*models.ReliefCamp, error)
	ListActive(ctx context.Context) ([]models.ReliefCamp, error)
	ListAll(ctx context.Context) ([]models.ReliefCamp, error)
	SetActive(ctx context.Context, id int64, active bool) (*models.ReliefCamp, error)
}

var (
	_ SosRequestRepositoryI = (*SosRequestRepository)(nil)
	_ HelpOfferRepositoryI  = (*HelpOfferRepository)(nil)
	_ ReliefCampRepositoryI = (*ReliefCampRepository)(nil)
)
