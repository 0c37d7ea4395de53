package respond

import (
	"encoding/json"
	"strconv"
	"time"

	"yunke_visitor_server/internal/model"
)

// AuditLogRespond 审计记录视图
type AuditLogRespond struct {
	Id              string         `json:"id"`
	Action          string         `json:"action"`
	EntityType      string         `json:"entityType"`
	EntityId        string         `json:"entityId"`
	PerformedBy     string         `json:"performedBy,omitempty"`
	PerformedByRole string         `json:"performedByRole"`
	Details         map[string]any `json:"details,omitempty"`
	Ip              string         `json:"ip,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// NewAuditLogRespond 由模型构造审计记录视图
func NewAuditLogRespond(log *model.AuditLog) AuditLogRespond {
	rsp := AuditLogRespond{
		Id:              strconv.FormatInt(log.Uuid, 10),
		Action:          log.Action,
		EntityType:      log.EntityType,
		EntityId:        log.EntityId,
		PerformedBy:     log.PerformedBy,
		PerformedByRole: log.PerformedByRole,
		Ip:              log.Ip,
		CreatedAt:       log.CreatedAt,
	}
	if log.Details != "" {
		var details map[string]any
		if err := json.Unmarshal([]byte(log.Details), &details); err == nil {
			rsp.Details = details
		}
	}
	return rsp
}
