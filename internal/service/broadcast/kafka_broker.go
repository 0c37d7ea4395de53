// Package broadcast 实现访客请求的实时事件推送
// kafka_broker.go
// 核心职责：Kafka 模式下的事件推送实现
// 1. 封装 Kafka 底层连接 (Writer/Reader)
// 2. Publish 写入 Kafka，消费协程读回后交给本地扇出
// 3. 适合多实例部署：每个实例消费全量事件，各自向本机连接扇出
package broadcast

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	myconfig "yunke_visitor_server/internal/config"
)

// KafkaClient Kafka 客户端结构
type KafkaClient struct {
	Producer *kafka.Writer // 生产者：负责写入事件
	Consumer *kafka.Reader // 消费者：负责读取事件
}

// NewKafkaClient 创建 Kafka 客户端实例
func NewKafkaClient() *KafkaClient {
	return &KafkaClient{}
}

// KafkaInit 初始化 Kafka 客户端
func (k *KafkaClient) KafkaInit() {
	cfg := myconfig.GetConfig().BroadcastConfig
	k.Producer = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.HostPort),
		Topic:                  cfg.EventTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           cfg.Timeout * time.Second,
		RequiredAcks:           kafka.RequireNone,
		AllowAutoTopicCreation: false,
	}
	k.Consumer = kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.HostPort},
		Topic:          cfg.EventTopic,
		CommitInterval: cfg.Timeout * time.Second,
		// 不设 GroupID，各实例独立消费全量事件
		Partition:   cfg.Partition,
		StartOffset: kafka.LastOffset,
	})
}

// KafkaClose 关闭 Kafka 资源
func (k *KafkaClient) KafkaClose() {
	if k.Producer != nil {
		if err := k.Producer.Close(); err != nil {
			zap.L().Error(err.Error())
		}
	}
	if k.Consumer != nil {
		if err := k.Consumer.Close(); err != nil {
			zap.L().Error(err.Error())
		}
	}
}

// SendMessage 向 Kafka 写入事件
func (k *KafkaClient) SendMessage(ctx context.Context, key, value []byte) error {
	return k.Producer.WriteMessages(ctx, kafka.Message{Key: key, Value: value})
}

// KafkaBroker Kafka 模式的事件代理
// 订阅者管理与本地扇出复用 ChannelBroker，仅事件传输走 Kafka
type KafkaBroker struct {
	client *KafkaClient
	local  *ChannelBroker
	cancel context.CancelFunc
}

// NewKafkaBroker 创建 Kafka 事件代理
func NewKafkaBroker(client *KafkaClient) *KafkaBroker {
	return &KafkaBroker{
		client: client,
		local:  NewChannelBroker(),
	}
}

// Publish 将事件写入 Kafka，以 requestId 作为分区键
func (b *KafkaBroker) Publish(ctx context.Context, evt Event) error {
	data, err := encodeEvent(evt)
	if err != nil {
		return err
	}
	return b.client.SendMessage(ctx, []byte(evt.RequestId), data)
}

// RegisterClient 注册订阅者连接
func (b *KafkaBroker) RegisterClient(client *Subscriber) {
	b.local.RegisterClient(client)
}

// UnregisterClient 注销订阅者连接
func (b *KafkaBroker) UnregisterClient(client *Subscriber) {
	b.local.UnregisterClient(client)
}

// GetClient 获取指定订阅者的连接
func (b *KafkaBroker) GetClient(clientId string) *Subscriber {
	return b.local.GetClient(clientId)
}

// Start 启动本地扇出循环和 Kafka 消费循环
func (b *KafkaBroker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go b.local.Start()
	for {
		message, err := b.client.Consumer.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			zap.L().Error("Kafka 消费失败", zap.Error(err))
			continue
		}
		select {
		case b.local.Transmit <- message.Value:
		default:
			zap.L().Warn("本地扇出通道已满，丢弃事件")
		}
	}
}

// Close 关闭代理资源
func (b *KafkaBroker) Close() {
	if b.cancel != nil {
		b.cancel()
	}
	b.local.Close()
}
