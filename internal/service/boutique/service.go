package boutique

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
	boutiquerepo "github.com/zakaria-baami/marketplace-backend-sub001/internal/repository/boutique"
)

type boutiqueRepo interface {
	Create(ctx context.Context, in boutiquerepo.CreateBoutiqueInput) (*domain.Boutique, error)
	GetByID(ctx context.Context, id string) (*domain.Boutique, error)
	GetBySeller(ctx context.Context, sellerID string) (*domain.Boutique, error)
	SetTemplate(ctx context.Context, boutiqueID, templateID string) (*domain.Boutique, error)
}

type templateRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]domain.Template, error)
}

type sellerRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Seller, error)
}

type Service struct {
	boutiques boutiqueRepo
	templates templateRepo
	sellers   sellerRepo
	logger    *zap.Logger
}

func New(boutiques boutiqueRepo, templates templateRepo, sellers sellerRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{boutiques: boutiques, templates: templates, sellers: sellers, logger: logger}
}

type CreateInput struct {
	Name       string `json:"name"`
	TemplateID string `json:"templateId"`
}

// Create opens a boutique for the seller. The template's required grade is
// checked against the seller's grade before anything is persisted; the
// one-boutique-per-seller rule is enforced by the repository.
func (s *Service) Create(ctx context.Context, sellerID string, in CreateInput) (*domain.Boutique, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.TemplateID) == "" {
		return nil, fmt.Errorf("%w: templateId required", domain.ErrInvalidInput)
	}

	if err := s.checkGrade(ctx, sellerID, in.TemplateID); err != nil {
		return nil, err
	}

	b, err := s.boutiques.Create(ctx, boutiquerepo.CreateBoutiqueInput{
		SellerID:   sellerID,
		TemplateID: in.TemplateID,
		Name:       strings.TrimSpace(in.Name),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("boutique created",
		zap.String("boutique_id", b.ID),
		zap.String("seller_id", sellerID),
		zap.String("template_id", in.TemplateID))
	return b, nil
}

// ChangeTemplate re-runs the grade gate; eligibility is checked on every
// template change, not only at boutique creation.
func (s *Service) ChangeTemplate(ctx context.Context, sellerID, boutiqueID, templateID string) (*domain.Boutique, error) {
	b, err := s.boutiques.GetByID(ctx, boutiqueID)
	if err != nil {
		return nil, err
	}
	if b.SellerID != sellerID {
		return nil, domain.ErrNotOwner
	}

	if err := s.checkGrade(ctx, sellerID, templateID); err != nil {
		return nil, err
	}

	updated, err := s.boutiques.SetTemplate(ctx, boutiqueID, templateID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("boutique template changed",
		zap.String("boutique_id", boutiqueID),
		zap.String("template_id", templateID))
	return updated, nil
}

func (s *Service) Get(ctx context.Context, boutiqueID string) (*domain.Boutique, error) {
	return s.boutiques.GetByID(ctx, boutiqueID)
}

// AuthorizeOwner verifies the caller owns the boutique, for example before
// exposing its statistics.
func (s *Service) AuthorizeOwner(ctx context.Context, callerID, boutiqueID string) (*domain.Boutique, error) {
	b, err := s.boutiques.GetByID(ctx, boutiqueID)
	if err != nil {
		return nil, err
	}
	if b.SellerID != callerID {
		return nil, domain.ErrNotOwner
	}
	return b, nil
}

func (s *Service) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	return s.templates.List(ctx)
}

func (s *Service) checkGrade(ctx context.Context, sellerID, templateID string) error {
	tpl, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		return err
	}
	sel, err := s.sellers.GetByID(ctx, sellerID)
	if err != nil {
		return err
	}
	if !domain.CanUseTemplate(domain.Grade{Rank: sel.GradeRank}, *tpl) {
		s.logger.Info("template denied by grade",
			zap.String("seller_id", sellerID),
			zap.String("template_id", templateID),
			zap.Int("seller_rank", sel.GradeRank),
			zap.Int("required_rank", tpl.RequiredRank))
		return domain.ErrGradeInsufficient
	}
	return nil
}
