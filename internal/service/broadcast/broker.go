// Package broadcast 实现访客请求的实时事件推送
// broker.go
// 核心职责：事件代理聚合结构和依赖注入
// 封装 ChannelBroker / KafkaBroker，提供统一的生命周期管理
package broadcast

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// 事件类型
const (
	EventNewRequest    = "new-request"
	EventRequestUpdate = "request-update"
)

// request-update 的子类型
const (
	SubtypeNew          = "new"
	SubtypeStatusChange = "status-change"
	SubtypeEntry        = "entry"
	SubtypeExit         = "exit"
	SubtypeCancelled    = "cancelled"
)

// MemberRoom 成员私有房间名
func MemberRoom(memberId string) string {
	return "member-" + memberId
}

// CompanyRoom 公司公共房间名
func CompanyRoom(companyId string) string {
	return "company-" + companyId
}

// Event 一条待推送的实时事件
// Rooms 为目标房间列表，同一订阅者命中多个房间时只收到一次
type Event struct {
	Event     string   `json:"event"`
	Subtype   string   `json:"subtype,omitempty"`
	Rooms     []string `json:"rooms"`
	RequestId string   `json:"requestId"`
	Status    string   `json:"status"`
	Payload   any      `json:"payload,omitempty"`
}

// EventBroker 定义事件代理接口
// 支持多种实现：KafkaBroker (分布式), ChannelBroker (单机)
type EventBroker interface {
	// Publish 发布事件
	Publish(ctx context.Context, evt Event) error
	// RegisterClient 注册订阅者连接
	RegisterClient(client *Subscriber)
	// UnregisterClient 注销订阅者连接
	UnregisterClient(client *Subscriber)
	// GetClient 获取指定订阅者的连接
	GetClient(clientId string) *Subscriber
	// Start 启动事件消费循环
	Start()
	// Close 关闭代理资源
	Close()
}

// GlobalBroker 全局事件代理，由 main 在启动时注入
var GlobalBroker EventBroker

// BroadcastServer 事件推送服务聚合结构
type BroadcastServer struct {
	Broker      EventBroker
	KafkaClient *KafkaClient
	mode        string // "channel" 或 "kafka"
}

// BroadcastServerConfig 事件推送服务配置
type BroadcastServerConfig struct {
	Mode          string
	KafkaHostPort string
	KafkaTopic    string
}

// NewBroadcastServer 根据配置选择 ChannelBroker 或 KafkaBroker
func NewBroadcastServer(cfg BroadcastServerConfig) *BroadcastServer {
	bs := &BroadcastServer{mode: cfg.Mode}
	if cfg.Mode == "kafka" {
		bs.KafkaClient = NewKafkaClient()
		bs.Broker = NewKafkaBroker(bs.KafkaClient)
	} else {
		bs.Broker = NewChannelBroker()
	}
	return bs
}

// InitKafka 初始化 Kafka 连接（仅 Kafka 模式需要调用）
func (bs *BroadcastServer) InitKafka() {
	if bs.KafkaClient != nil {
		bs.KafkaClient.KafkaInit()
	}
}

// Start 启动事件推送服务
func (bs *BroadcastServer) Start() {
	bs.Broker.Start()
}

// Close 关闭事件推送服务
func (bs *BroadcastServer) Close() {
	bs.Broker.Close()
	if bs.KafkaClient != nil {
		bs.KafkaClient.KafkaClose()
	}
}

// PublishEvent 发布事件的便捷入口
// 推送失败只记日志，绝不影响主流程
func PublishEvent(evt Event) {
	if GlobalBroker == nil {
		return
	}
	if err := GlobalBroker.Publish(context.Background(), evt); err != nil {
		zap.L().Error("实时事件发布失败",
			zap.String("event", evt.Event), zap.String("requestId", evt.RequestId), zap.Error(err))
	}
}

// encodeEvent 序列化事件，供 broker 实现复用
func encodeEvent(evt Event) ([]byte, error) {
	return json.Marshal(evt)
}
