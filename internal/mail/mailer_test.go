package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/Domenick1991/airtickets/config"
)

func testDispatcher(attempts int, sendFn func(*gomail.Message) error) *SMTPDispatcher {
	d := NewSMTPDispatcher(config.SMTPConfig{
		Host:          "localhost",
		Port:          1025,
		From:          "noreply@airtickets.test",
		RetryAttempts: attempts,
	}, zap.NewNop())
	d.sendFn = sendFn
	return d
}

func TestSMTPDispatcher_Send_Success(t *testing.T) {
	calls := 0
	d := testDispatcher(3, func(m *gomail.Message) error {
		calls++
		return nil
	})

	receipt, err := d.Send(context.Background(), Message{To: "ann@example.com", Subject: "Ticket Confirmation", HTML: "<p>hi</p>"})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "ann@example.com", receipt.To)
	assert.NotEmpty(t, receipt.ID)
}

func TestSMTPDispatcher_Send_RetriesTransientFailure(t *testing.T) {
	calls := 0
	d := testDispatcher(3, func(m *gomail.Message) error {
		calls++
		if calls < 3 {
			return errors.New("connection reset")
		}
		return nil
	})

	receipt, err := d.Send(context.Background(), Message{To: "ann@example.com"})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.NotNil(t, receipt)
}

func TestSMTPDispatcher_Send_AllAttemptsFail(t *testing.T) {
	calls := 0
	d := testDispatcher(2, func(m *gomail.Message) error {
		calls++
		return errors.New("relay refused")
	})

	receipt, err := d.Send(context.Background(), Message{To: "ann@example.com"})

	assert.Error(t, err)
	assert.Nil(t, receipt)
	assert.Equal(t, 2, calls)
	assert.Contains(t, err.Error(), "relay refused")
}

func TestSMTPDispatcher_Send_ContextCanceled(t *testing.T) {
	calls := 0
	d := testDispatcher(5, func(m *gomail.Message) error {
		calls++
		return errors.New("down")
	})
	d.backoff = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Send(ctx, Message{To: "ann@example.com"})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
