package repository

import (
	"context"
	"time"

	constant "github.com/SeakMengs/FacultyCert/internal/constant"
	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/internal/util"
	"gorm.io/gorm"
)

type SupportRequestRepository struct {
	*baseRepository
}

type SupportRequestFilter struct {
	RequesterID string
	Status      constant.SupportRequestStatus
}

func (srr SupportRequestRepository) List(ctx context.Context, tx *gorm.DB, filter SupportRequestFilter, page, pageSize uint) ([]model.SupportRequest, int64, error) {
	srr.logger.Debugf("List support requests with filter: %+v, page: %d, pageSize: %d", filter, page, pageSize)

	db := srr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.SupportRequest{})
	if filter.RequesterID != "" {
		query = query.Where("requester_id = ?", filter.RequesterID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []model.SupportRequest
	if err := query.Preload("Requester").Preload("AssignedTo").
		Order("created_at DESC").
		Offset(util.PageOffset(page, pageSize)).Limit(int(pageSize)).
		Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (srr SupportRequestRepository) GetById(ctx context.Context, tx *gorm.DB, requestId string) (*model.SupportRequest, error) {
	srr.logger.Debugf("Get support request by id: %s", requestId)

	db := srr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var request model.SupportRequest
	if err := db.WithContext(ctx).Model(&model.SupportRequest{}).
		Preload("Requester").Preload("AssignedTo").
		Where("id = ?", requestId).
		First(&request).Error; err != nil {
		return nil, err
	}

	return &request, nil
}

func (srr SupportRequestRepository) Create(ctx context.Context, tx *gorm.DB, request *model.SupportRequest) error {
	srr.logger.Debugf("Create support request %s for requester: %s", request.ReferenceCode, request.RequesterID)

	db := srr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	request.Status = constant.SupportRequestStatusPending
	return db.WithContext(ctx).Model(&model.SupportRequest{}).Create(request).Error
}

func (srr SupportRequestRepository) Assign(ctx context.Context, tx *gorm.DB, requestId string, adminId string) error {
	srr.logger.Debugf("Assign support request %s to: %s", requestId, adminId)

	return updateById(ctx, srr.getDB(tx), &model.SupportRequest{}, requestId, map[string]interface{}{
		"assigned_to_id": adminId,
		"status":         constant.SupportRequestStatusInProgress,
	})
}

func (srr SupportRequestRepository) Resolve(ctx context.Context, tx *gorm.DB, requestId string, resolution string, at time.Time) error {
	srr.logger.Debugf("Resolve support request: %s", requestId)

	return updateById(ctx, srr.getDB(tx), &model.SupportRequest{}, requestId, map[string]interface{}{
		"status":      constant.SupportRequestStatusResolved,
		"resolution":  resolution,
		"resolved_at": at,
	})
}

func (srr SupportRequestRepository) Close(ctx context.Context, tx *gorm.DB, requestId string) error {
	srr.logger.Debugf("Close support request: %s", requestId)

	return updateById(ctx, srr.getDB(tx), &model.SupportRequest{}, requestId, map[string]interface{}{
		"status": constant.SupportRequestStatusClosed,
	})
}
