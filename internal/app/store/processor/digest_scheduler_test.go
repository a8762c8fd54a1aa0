package processor

import (
	"context"
	"io"
	"os"
	"testing"

	"devlavka/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.InitWithWriter("store-api-test", "error", io.Discard)
	os.Exit(m.Run())
}

// MockDigestSender мок для PendingDigestSender
type MockDigestSender struct {
	mock.Mock
}

func (m *MockDigestSender) SendPendingDigest(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestNewDigestScheduler(t *testing.T) {
	sender := new(MockDigestSender)

	scheduler := NewDigestScheduler(sender)

	assert.NotNil(t, scheduler)
	assert.NotNil(t, scheduler.cron)
	assert.Equal(t, sender, scheduler.sender)
}

func TestDigestScheduler_Start_RegistersEntry(t *testing.T) {
	sender := new(MockDigestSender)
	scheduler := NewDigestScheduler(sender)

	err := scheduler.Start(context.Background(), "0 9 * * *")
	defer scheduler.Stop()

	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)
}

func TestDigestScheduler_Start_InvalidSchedule(t *testing.T) {
	sender := new(MockDigestSender)
	scheduler := NewDigestScheduler(sender)

	err := scheduler.Start(context.Background(), "not a cron expr")

	assert.Error(t, err)
	assert.Empty(t, scheduler.GetEntries())
}

func TestDigestScheduler_StopWaitsForJobs(t *testing.T) {
	sender := new(MockDigestSender)
	scheduler := NewDigestScheduler(sender)

	err := scheduler.Start(context.Background(), "0 9 * * *")
	assert.NoError(t, err)

	// Stop блокируется до завершения запущенных заданий
	scheduler.Stop()
	sender.AssertNotCalled(t, "SendPendingDigest")
}
