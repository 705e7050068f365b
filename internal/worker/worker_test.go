package worker

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/flightdesk/internal/kafka"
)

type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) SyncPending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, event kafka.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func message(t *testing.T, event kafka.BookingEvent) kafkaGo.Message {
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return kafkaGo.Message{Value: data}
}

func TestNotificationHandler_SendsBookingCreated(t *testing.T) {
	sender := &MockSender{}
	event := kafka.BookingEvent{Type: kafka.EventBookingCreated, BookingID: "BK-1", Email: "a@b.c"}
	sender.On("Send", mock.Anything, event).Return(nil)

	err := NotificationHandler(sender)(context.Background(), message(t, event))
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestNotificationHandler_SkipsOtherEvents(t *testing.T) {
	sender := &MockSender{}

	err := NotificationHandler(sender)(context.Background(), message(t, kafka.BookingEvent{Type: "something_else"}))
	require.NoError(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNotificationHandler_BadPayloadAndSendErrorsDoNotStop(t *testing.T) {
	sender := &MockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("no recipient"))
	handler := NotificationHandler(sender)

	assert.NoError(t, handler(context.Background(), kafkaGo.Message{Value: []byte("{")}))
	assert.NoError(t, handler(context.Background(), message(t, kafka.BookingEvent{Type: kafka.EventBookingCreated, BookingID: "BK-2"})))
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestSyncOnce(t *testing.T) {
	syncer := &MockSyncer{}
	syncer.On("SyncPending", mock.Anything).Return(2, nil).Once()
	syncer.On("SyncPending", mock.Anything).Return(0, errors.New("store closed")).Once()

	SyncOnce(context.Background(), syncer)
	SyncOnce(context.Background(), syncer)
	syncer.AssertExpectations(t)
}

func TestRunRemoteSync_StopsOnCancel(t *testing.T) {
	var calls atomic.Int32
	syncer := &MockSyncer{}
	syncer.On("SyncPending", mock.Anything).Return(0, nil).Run(func(mock.Arguments) { calls.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunRemoteSync(ctx, 5*time.Millisecond, syncer)
		close(done)
	}()

	assert.Eventually(t, func() bool { return calls.Load() > 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunRemoteSync did not return after cancel")
	}
}
