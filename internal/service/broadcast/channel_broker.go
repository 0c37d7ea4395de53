// Package broadcast 实现访客请求的实时事件推送
// channel_broker.go
// 核心职责：单机模式下的事件推送实现
// 1. 维护在线订阅者连接
// 2. 按房间完成事件的直接扇出
// 3. 不依赖外部消息队列，适合小规模或开发环境
package broadcast

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"yunke_visitor_server/pkg/constants"
)

// ChannelBroker 单机事件代理
type ChannelBroker struct {
	// Clients 所有在线订阅者，Key 为订阅者 clientId，Value 为 *Subscriber
	// 使用 sync.Map 实现并发安全，无需手动加锁
	Clients sync.Map
	// Transmit 事件转发通道
	Transmit chan []byte
	// Login 订阅者上线通道
	Login chan *Subscriber
	// Logout 订阅者下线通道
	Logout chan *Subscriber

	closeOnce sync.Once
}

// NewChannelBroker 创建单机事件代理
func NewChannelBroker() *ChannelBroker {
	return &ChannelBroker{
		Transmit: make(chan []byte, constants.CHANNEL_SIZE),
		Login:    make(chan *Subscriber, constants.CHANNEL_SIZE),
		Logout:   make(chan *Subscriber, constants.CHANNEL_SIZE),
	}
}

// Publish 将事件写入转发通道
func (s *ChannelBroker) Publish(ctx context.Context, evt Event) error {
	data, err := encodeEvent(evt)
	if err != nil {
		return err
	}
	select {
	case s.Transmit <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RegisterClient 注册订阅者连接
func (s *ChannelBroker) RegisterClient(client *Subscriber) {
	s.Login <- client
}

// UnregisterClient 注销订阅者连接
func (s *ChannelBroker) UnregisterClient(client *Subscriber) {
	s.Logout <- client
}

// GetClient 获取指定订阅者的连接
func (s *ChannelBroker) GetClient(clientId string) *Subscriber {
	if v, ok := s.Clients.Load(clientId); ok {
		return v.(*Subscriber)
	}
	return nil
}

// Start 启动主循环
// 在死循环中处理上线/下线/事件扇出三类 channel 事件
func (s *ChannelBroker) Start() {
	for {
		select {
		case client, ok := <-s.Login:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			s.Clients.Store(client.ClientId, client)
			zap.L().Debug("订阅者上线", zap.String("clientId", client.ClientId),
				zap.Strings("rooms", client.Rooms))

		case client, ok := <-s.Logout:
			if !ok {
				return
			}
			if client == nil {
				continue
			}
			s.Clients.Delete(client.ClientId)
			zap.L().Info("订阅者下线", zap.String("clientId", client.ClientId))

		case data, ok := <-s.Transmit:
			if !ok {
				return
			}
			var evt Event
			if err := json.Unmarshal(data, &evt); err != nil {
				zap.L().Error("事件反序列化失败", zap.Error(err))
				continue
			}
			s.deliver(evt, data)
		}
	}
}

// deliver 将事件扇出到命中房间的所有订阅者
// 同一订阅者命中多个目标房间时只投递一次
func (s *ChannelBroker) deliver(evt Event, data []byte) {
	targets := make(map[string]bool, len(evt.Rooms))
	for _, room := range evt.Rooms {
		targets[room] = true
	}
	s.Clients.Range(func(_, value any) bool {
		client := value.(*Subscriber)
		for _, room := range client.Rooms {
			if targets[room] {
				client.Deliver(data)
				break
			}
		}
		return true
	})
}

// Close 关闭代理资源
func (s *ChannelBroker) Close() {
	s.closeOnce.Do(func() {
		close(s.Login)
		close(s.Logout)
		close(s.Transmit)
	})
}
