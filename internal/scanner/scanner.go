package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
)

const (
	TaskReminders = "reminders"
	TaskMissed    = "missed"
)

// ErrScan возвращается, когда не удалось получить кандидатов
var ErrScan = fmt.Errorf("%w: scanner: query failed", domain.ErrInfrastructure)

// Config параметры проходов сканера
type Config struct {
	// Lookaheads окна напоминаний, например 24h и 1h до начала
	Lookaheads []time.Duration
	// Band ширина окна напоминания, не больше интервала сканирования
	Band time.Duration
	// Grace сколько ждать клиента после начала записи
	Grace         time.Duration
	RescheduleURL string
	Location      *time.Location
}

// Scanner проходы напоминаний и пропущенных записей
type Scanner struct {
	bookingRepo BookingRepository
	personRepo  PersonRepository
	marker      MissedMarker
	tokens      TokenIssuer
	notifier    Notifier
	metrics     Metrics
	cfg         Config
	now         func() time.Time
	logger      Logger
}

// New создает сканер
func New(
	bookingRepo BookingRepository,
	personRepo PersonRepository,
	marker MissedMarker,
	tokens TokenIssuer,
	notifier Notifier,
	metrics Metrics,
	cfg Config,
	logger Logger,
) *Scanner {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Scanner{
		bookingRepo: bookingRepo,
		personRepo:  personRepo,
		marker:      marker,
		tokens:      tokens,
		notifier:    notifier,
		metrics:     metrics,
		cfg:         cfg,
		now:         time.Now,
		logger:      logger,
	}
}

// WithClock подменяет источник времени
func (s *Scanner) WithClock(now func() time.Time) *Scanner {
	s.now = now
	return s
}

// ScanReminders отправляет напоминания о подтвержденных записях, начинающихся
// в [now+lookahead, now+lookahead+band). Повторной отправки нет, пока band не шире интервала
func (s *Scanner) ScanReminders(ctx context.Context) (int, error) {
	now := s.now()
	sent := 0
	var errs []error

	for _, lookahead := range s.cfg.Lookaheads {
		from := now.Add(lookahead)
		to := from.Add(s.cfg.Band)

		candidates, err := s.bookingRepo.Find(ctx, domain.BookingFilter{
			StartFrom:   &from,
			StartBefore: &to,
			Statuses:    []domain.BookingStatus{domain.StatusConfirmed},
		})
		if err != nil {
			s.logger.Error("ScanReminders: failed to find bookings for lookahead %s: %v", lookahead, err)
			errs = append(errs, fmt.Errorf("%w: lookahead %s: %v", ErrScan, lookahead, err))
			continue
		}

		for _, b := range candidates {
			contact, err := s.contact(ctx, b)
			if err != nil {
				s.logger.Warn("ScanReminders: skip booking id=%d: %v", b.ID, err)
				continue
			}
			s.notifier.Notify(ctx, notifier.ReminderMessage(b, contact, lookahead, s.cfg.Location))
			sent++
		}
	}

	s.logger.Info("ScanReminders: sent %d reminders", sent)
	err := errors.Join(errs...)
	s.observe(TaskReminders, err)
	return sent, err
}

// ScanMissed переводит в missed записи без отметки о приходе, начавшиеся раньше now-grace,
// и отправляет клиенту ссылку на перенос
func (s *Scanner) ScanMissed(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.cfg.Grace)
	notCheckedIn := false

	candidates, err := s.bookingRepo.Find(ctx, domain.BookingFilter{
		StartBefore:     &cutoff,
		ExcludeStatuses: domain.MissedCandidateExcluded,
		CheckedIn:       &notCheckedIn,
	})
	if err != nil {
		s.logger.Error("ScanMissed: failed to find bookings: %v", err)
		err = fmt.Errorf("%w: %v", ErrScan, err)
		s.observe(TaskMissed, err)
		return 0, err
	}

	marked := 0
	for _, candidate := range candidates {
		// 1. Переход по автомату, запись могли отметить параллельно
		b, err := s.marker.MarkMissed(ctx, candidate.ID)
		if err != nil {
			s.logger.Warn("ScanMissed: booking id=%d not marked: %v", candidate.ID, err)
			continue
		}
		marked++

		// 2. Ссылка на перенос
		raw, err := s.tokens.Issue(b.ID)
		if err != nil {
			s.logger.Error("ScanMissed: failed to issue reschedule token for booking id=%d: %v", b.ID, err)
			continue
		}

		// 3. Уведомление
		contact, err := s.contact(ctx, b)
		if err != nil {
			s.logger.Warn("ScanMissed: booking id=%d marked but not notified: %v", b.ID, err)
			continue
		}
		s.notifier.Notify(ctx, notifier.MissedMessage(b, contact, raw, s.cfg.RescheduleURL, s.cfg.Location))
	}

	s.logger.Info("ScanMissed: marked %d of %d candidates as missed", marked, len(candidates))
	s.observe(TaskMissed, nil)
	return marked, nil
}

func (s *Scanner) contact(ctx context.Context, b *domain.Booking) (domain.Contact, error) {
	customer, err := s.personRepo.GetByID(ctx, b.CustomerID)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("load customer id=%d: %w", b.CustomerID, err)
	}
	return customer.Contact(), nil
}

func (s *Scanner) observe(task string, err error) {
	if s.metrics == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	s.metrics.ObserveScannerRun(task, result)
}
