package leads

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/PrismCRM/internal/domain"
	leadRepo "github.com/m04kA/PrismCRM/internal/infra/storage/lead"
	"github.com/m04kA/PrismCRM/internal/service/leads/models"
)

// Service сервис админки для работы с лидами
type Service struct {
	leadRepo  LeadRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса лидов
func NewService(leadRepo LeadRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		leadRepo:  leadRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// List возвращает страницу лидов и общее число по тем же фильтрам
func (s *Service) List(ctx context.Context, req *models.ListLeadsRequest) (*models.LeadListResponse, error) {
	q, err := toDomainQuery(req)
	if err != nil {
		s.logger.Warn("List: invalid query: %v", err)
		return nil, err
	}

	var (
		leads []*domain.Lead
		total int64
	)

	// Страница и счётчик из одного снимка
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		if leads, err = s.leadRepo.List(txCtx, q); err != nil {
			return err
		}
		total, err = s.leadRepo.Count(txCtx, q)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: returned %d of %d leads (skip=%d, limit=%d)", len(leads), total, q.Skip, q.Limit)

	return &models.LeadListResponse{
		Items: models.FromDomainLeadList(leads),
		Total: total,
		Skip:  int(q.Skip),
		Limit: int(q.Limit),
	}, nil
}

// Export выгружает лидов по фильтрам в XLSX, не больше MaxExportRows строк
// Пагинация запроса игнорируется
func (s *Service) Export(ctx context.Context, req *models.ListLeadsRequest) ([]byte, error) {
	filters := *req
	filters.Skip, filters.Limit = 0, nil

	q, err := toDomainQuery(&filters)
	if err != nil {
		s.logger.Warn("Export: invalid query: %v", err)
		return nil, err
	}
	q.Limit = domain.MaxExportRows

	leads, err := s.leadRepo.List(ctx, q)
	if err != nil {
		s.logger.Error("Export: repository error: %v", err)
		return nil, fmt.Errorf("%w: Export - repository error: %v", ErrInternal, err)
	}

	buf, err := buildWorkbook(leads)
	if err != nil {
		s.logger.Error("Export: %v", err)
		return nil, fmt.Errorf("%w: Export - %v", ErrInternal, err)
	}

	s.logger.Info("Export: exported %d leads", len(leads))
	return buf.Bytes(), nil
}

// UpdateStatus меняет этап лида, Converted выставляет is_converted
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.LeadResponse, error) {
	status := domain.LeadStatus(req.Status)
	if !status.IsValid() {
		s.logger.Warn("UpdateStatus: invalid status=%q for lead id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	var result *domain.Lead
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.leadRepo.UpdateStatus(txCtx, id, status, status == domain.LeadStatusConverted); err != nil {
			return err
		}
		lead, err := s.leadRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		result = lead
		return nil
	})
	if err != nil {
		if errors.Is(err, leadRepo.ErrLeadNotFound) {
			s.logger.Warn("UpdateStatus: lead id=%d not found", id)
			return nil, ErrLeadNotFound
		}
		s.logger.Error("UpdateStatus: repository error for lead id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: lead id=%d -> %s", id, status)
	return models.FromDomainLead(result), nil
}
