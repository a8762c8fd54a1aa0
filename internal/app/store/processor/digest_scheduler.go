package processor

import (
	"context"

	"devlavka/pkg/logger"

	"github.com/robfig/cron/v3"
)

// PendingDigestSender отправляет дайджест ожидающих заказов
type PendingDigestSender interface {
	SendPendingDigest(ctx context.Context) error
}

// DigestScheduler запускает по расписанию отправку дайджеста
// заказов в статусе pending во внешний webhook
type DigestScheduler struct {
	cron   *cron.Cron
	sender PendingDigestSender
}

func NewDigestScheduler(sender PendingDigestSender) *DigestScheduler {
	return &DigestScheduler{
		cron:   cron.New(),
		sender: sender,
	}
}

// Start регистрирует задание и запускает планировщик.
// Расписание задается в стандартном cron-формате, например "0 9 * * *".
func (s *DigestScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("starting digest scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("cron job triggered: sending pending orders digest")

		if err := s.sender.SendPendingDigest(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to send pending orders digest")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего задания
func (s *DigestScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("digest scheduler stopped")
}

func (s *DigestScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
