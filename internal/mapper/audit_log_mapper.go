package mapper

import (
	"encoding/json"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/model"

	"gorm.io/datatypes"
)

type AuditLogMapper struct{}

func NewAuditLogMapper() *AuditLogMapper {
	return &AuditLogMapper{}
}

func (m *AuditLogMapper) ToEntity(a *model.AuditLog) *entity.AuditLog {
	if a == nil {
		return nil
	}

	details := map[string]interface{}{}
	if len(a.Details) > 0 {
		// Details column is written by us; a decode failure just yields an
		// empty map rather than a surfaced error.
		_ = json.Unmarshal(a.Details, &details)
	}

	return &entity.AuditLog{
		Id:        a.Id,
		Action:    a.Action,
		Details:   details,
		CreatedAt: a.CreatedAt,
	}
}

func (m *AuditLogMapper) ToModel(a *entity.AuditLog) (*model.AuditLog, error) {
	if a == nil {
		return nil, nil
	}

	raw, err := json.Marshal(a.Details)
	if err != nil {
		return nil, err
	}

	return &model.AuditLog{
		Id:        a.Id,
		Action:    a.Action,
		Details:   datatypes.JSON(raw),
		CreatedAt: a.CreatedAt,
	}, nil
}

func (m *AuditLogMapper) ToEntities(models []*model.AuditLog) []*entity.AuditLog {
	entities := make([]*entity.AuditLog, 0, len(models))
	for _, a := range models {
		entities = append(entities, m.ToEntity(a))
	}
	return entities
}
