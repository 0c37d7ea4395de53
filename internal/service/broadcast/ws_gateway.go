// Package broadcast 实现访客请求的实时事件推送
// ws_gateway.go
// 核心职责：WebSocket 连接生命周期管理
// 1. 建立 WebSocket 连接 (Upgrade)
// 2. 封装 Subscriber 对象，管理读写协程
// 3. 通过 EventBroker 接口解耦事件投递逻辑
package broadcast

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"yunke_visitor_server/pkg/constants"
)

// Subscriber 表示一个 WebSocket 订阅者连接
type Subscriber struct {
	Conn *websocket.Conn
	// ClientId 连接唯一标识（同一用户多端登录时各连接独立）
	ClientId string
	// UserId 订阅者的用户 Uuid
	UserId string
	// Rooms 该连接订阅的房间列表，建立连接时根据身份确定，之后不变
	Rooms []string
	// SendBack 待推送给前端的事件
	SendBack chan []byte

	closeOnce sync.Once
}

// 允许任何来源的连接，跨域校验交给部署层
var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Deliver 向该订阅者投递一条事件（非阻塞）
func (c *Subscriber) Deliver(data []byte) {
	select {
	case c.SendBack <- data:
	default:
		zap.L().Warn("订阅者推送通道已满，丢弃事件", zap.String("clientId", c.ClientId))
	}
}

// Read 读协程：仅消费客户端的控制消息，连接断开时注销
// 事件推送是单向的，客户端上行数据一律忽略
func (c *Subscriber) Read() {
	defer func() {
		GlobalBroker.UnregisterClient(c)
		c.closeChannels()
		_ = c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			zap.L().Debug("ws 连接断开", zap.String("clientId", c.ClientId), zap.Error(err))
			return
		}
	}
}

// Write 写协程：从 SendBack 通道读取事件并发送给 WebSocket
func (c *Subscriber) Write() {
	for data := range c.SendBack {
		if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			zap.L().Error(err.Error())
			return
		}
	}
}

func (c *Subscriber) closeChannels() {
	c.closeOnce.Do(func() {
		close(c.SendBack)
	})
}

// NewSubscriberInit 完成 WebSocket 升级并注册订阅者
// rooms 由调用方根据已认证的身份计算，这里不做权限判断
func NewSubscriberInit(c *gin.Context, clientId, userId string, rooms []string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	client := &Subscriber{
		Conn:     conn,
		ClientId: clientId,
		UserId:   userId,
		Rooms:    rooms,
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
	}
	GlobalBroker.RegisterClient(client)
	go client.Read()
	go client.Write()
	zap.L().Info("ws 连接成功", zap.String("userId", userId), zap.Strings("rooms", rooms))
}
