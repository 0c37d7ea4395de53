package broadcast

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubscriber(clientId, userId string, rooms ...string) *Subscriber {
	return &Subscriber{
		ClientId: clientId,
		UserId:   userId,
		Rooms:    rooms,
		SendBack: make(chan []byte, 8),
	}
}

// waitDelivery 等待一条推送，超时视为未投递
func waitDelivery(t *testing.T, sub *Subscriber) (Event, bool) {
	t.Helper()
	select {
	case data := <-sub.SendBack:
		var evt Event
		require.NoError(t, json.Unmarshal(data, &evt))
		return evt, true
	case <-time.After(time.Second):
		return Event{}, false
	}
}

func assertNoDelivery(t *testing.T, sub *Subscriber) {
	t.Helper()
	select {
	case <-sub.SendBack:
		t.Fatal("不该收到推送")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestChannelBrokerRoomFanout(t *testing.T) {
	broker := NewChannelBroker()
	go broker.Start()
	defer broker.Close()

	member := newTestSubscriber("c1", "M001", MemberRoom("M001"), CompanyRoom("C001"))
	frontdesk := newTestSubscriber("c2", "A001", CompanyRoom("C001"))
	outsider := newTestSubscriber("c3", "M002", MemberRoom("M002"), CompanyRoom("C002"))
	broker.RegisterClient(member)
	broker.RegisterClient(frontdesk)
	broker.RegisterClient(outsider)

	// 等上线事件被主循环消费
	require.Eventually(t, func() bool {
		return broker.GetClient("c3") != nil
	}, time.Second, 10*time.Millisecond)

	err := broker.Publish(context.Background(), Event{
		Event:     EventNewRequest,
		Subtype:   SubtypeNew,
		Rooms:     []string{MemberRoom("M001"), CompanyRoom("C001")},
		RequestId: "R001",
		Status:    "pending",
	})
	require.NoError(t, err)

	// 命中成员房间和企业房间的各收到一次，未命中者收不到
	evt, ok := waitDelivery(t, member)
	require.True(t, ok)
	assert.Equal(t, EventNewRequest, evt.Event)
	assert.Equal(t, "R001", evt.RequestId)

	_, ok = waitDelivery(t, frontdesk)
	require.True(t, ok)

	assertNoDelivery(t, outsider)
	// 成员同时在两个目标房间里，也只投递一次
	assertNoDelivery(t, member)
}

func TestChannelBrokerUnregister(t *testing.T) {
	broker := NewChannelBroker()
	go broker.Start()
	defer broker.Close()

	sub := newTestSubscriber("c1", "M001", MemberRoom("M001"))
	broker.RegisterClient(sub)
	require.Eventually(t, func() bool {
		return broker.GetClient("c1") != nil
	}, time.Second, 10*time.Millisecond)

	broker.UnregisterClient(sub)
	require.Eventually(t, func() bool {
		return broker.GetClient("c1") == nil
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, broker.Publish(context.Background(), Event{
		Event: EventRequestUpdate, Rooms: []string{MemberRoom("M001")}, RequestId: "R001",
	}))
	assertNoDelivery(t, sub)
}

func TestPublishEventNilBroker(t *testing.T) {
	old := GlobalBroker
	GlobalBroker = nil
	defer func() { GlobalBroker = old }()

	// 未初始化推送时调用不应 panic
	assert.NotPanics(t, func() {
		PublishEvent(Event{Event: EventRequestUpdate, RequestId: "R001"})
	})
}
