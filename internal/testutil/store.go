// Package testutil содержит in-memory реализации хранилищ для тестов usecase и сервисов
package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	hoursRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/hours"
	personRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/person"
	"github.com/m04kA/SMC-SalonService/internal/integrations/catalogservice"
)

// ErrInjected ошибка, которую возвращают методы с включенным сбоем
var ErrInjected = errors.New("testutil: injected failure")

type txKey struct{}

// txState блокировки и журнал отката одной транзакции, используется только ее горутиной
type txState struct {
	held map[string]struct{}
	undo []func()
}

func txFrom(ctx context.Context) *txState {
	tx, _ := ctx.Value(txKey{}).(*txState)
	return tx
}

// Store in-memory хранилище бронирований, людей, часов и каталога услуг
// Реализует репозитории, менеджер транзакций с откатом по журналу и блокировки по ключам.
// Транзакции не сериализуются целиком: как и advisory-блокировки в Postgres,
// ждут друг друга только транзакции с общими ключами
type Store struct {
	mu sync.Mutex

	lockMu   sync.Mutex
	keyLocks map[string]*sync.Mutex

	bookings map[int64]*domain.Booking
	persons  map[int64]*domain.Person
	hours    map[int64]*domain.BusinessHours // ключ 0 - часы салона
	services map[int64]*domain.Service
	nextID   int64

	LockedKeys [][]string

	// OnLocked вызывается после получения блокировок, пока они удерживаются
	OnLocked func(keys []string)

	FailFind   error
	FailCreate error
	FailUpdate error
	FailLock   error
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		bookings: make(map[int64]*domain.Booking),
		persons:  make(map[int64]*domain.Person),
		hours:    make(map[int64]*domain.BusinessHours),
		services: make(map[int64]*domain.Service),
		keyLocks: make(map[string]*sync.Mutex),
	}
}

// record добавляет шаг отката в текущую транзакцию; вызывать под s.mu
func (s *Store) record(ctx context.Context, undo func()) {
	if tx := txFrom(ctx); tx != nil {
		tx.undo = append(tx.undo, undo)
	}
}

// keep запоминает состояние бронирования до изменения; вызывать под s.mu
func (s *Store) keep(ctx context.Context, b *domain.Booking) {
	prev := *b
	s.record(ctx, func() { s.bookings[prev.ID] = &prev })
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// --- каталог ---

// PutService добавляет или меняет услугу каталога
func (s *Store) PutService(svc domain.Service) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = &svc
}

func (s *Store) GetService(_ context.Context, id int64) (*domain.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svc, ok := s.services[id]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	c := *svc
	return &c, nil
}

// --- бронирования ---

// PutBooking сохраняет бронирование как есть, присваивая ID при необходимости
func (s *Store) PutBooking(b domain.Booking) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.id()
	}
	s.bookings[b.ID] = &b
	c := b
	return &c
}

// Bookings возвращает копии всех бронирований по возрастанию ID
func (s *Store) Bookings() []*domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*domain.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		c := *b
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *Store) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if s.FailCreate != nil {
		return nil, s.FailCreate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.id()
	id := b.ID
	s.record(ctx, func() { delete(s.bookings, id) })
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	c := *b
	s.bookings[b.ID] = &c
	return b, nil
}

func (s *Store) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	c := *b
	return &c, nil
}

func (s *Store) Find(_ context.Context, f domain.BookingFilter) ([]*domain.Booking, error) {
	if s.FailFind != nil {
		return nil, s.FailFind
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if matches(b, f) {
			c := *b
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].ID < result[j].ID
		}
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func matches(b *domain.Booking, f domain.BookingFilter) bool {
	if f.CustomerID != nil && b.CustomerID != *f.CustomerID {
		return false
	}
	if f.StaffID != nil && (b.StaffID == nil || *b.StaffID != *f.StaffID) {
		return false
	}
	if f.StartFrom != nil && b.StartTime.Before(*f.StartFrom) {
		return false
	}
	if f.StartAfter != nil && !b.StartTime.After(*f.StartAfter) {
		return false
	}
	if f.StartBefore != nil && !b.StartTime.Before(*f.StartBefore) {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, b.Status) {
		return false
	}
	if containsStatus(f.ExcludeStatuses, b.Status) {
		return false
	}
	if f.ExcludeID != nil && b.ID == *f.ExcludeID {
		return false
	}
	if f.CheckedIn != nil && b.CheckedIn != *f.CheckedIn {
		return false
	}
	return true
}

func containsStatus(list []domain.BookingStatus, s domain.BookingStatus) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func (s *Store) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus, markCheckedIn bool) error {
	if s.FailUpdate != nil {
		return s.FailUpdate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrStatusChanged
	}
	s.keep(ctx, b)
	b.Status = to
	if markCheckedIn {
		b.CheckedIn = true
	}
	b.UpdatedAt = time.Now()
	return nil
}

func (s *Store) Reschedule(ctx context.Context, id int64, from domain.BookingStatus, newStart time.Time, to domain.BookingStatus) error {
	if s.FailUpdate != nil {
		return s.FailUpdate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrStatusChanged
	}
	s.keep(ctx, b)
	b.StartTime = newStart
	b.Status = to
	b.UpdatedAt = time.Now()
	return nil
}

func (s *Store) AssignStaff(ctx context.Context, id int64, from domain.BookingStatus, staffID int64) error {
	if s.FailUpdate != nil {
		return s.FailUpdate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok || b.Status != from {
		return bookingRepo.ErrStatusChanged
	}
	s.keep(ctx, b)
	b.StaffID = &staffID
	b.UpdatedAt = time.Now()
	return nil
}

// SetStatus меняет статус в обход автомата, для подготовки тестовых данных
func (s *Store) SetStatus(id int64, status domain.BookingStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok {
		b.Status = status
	}
}

// --- люди ---

// PutPerson сохраняет запись справочника
func (s *Store) PutPerson(p domain.Person) *domain.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	p.Email = domain.NormalizeEmail(p.Email)
	s.persons[p.ID] = &p
	c := p
	return &c
}

// Persons возвращает количество записей справочника
func (s *Store) Persons() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.persons)
}

func (s *Store) CreatePerson(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.Email = domain.NormalizeEmail(p.Email)
	for _, existing := range s.persons {
		if existing.Email == p.Email {
			return nil, personRepo.ErrDuplicateEmail
		}
	}
	p.ID = s.id()
	id := p.ID
	s.record(ctx, func() { delete(s.persons, id) })
	c := *p
	s.persons[p.ID] = &c
	return p, nil
}

func (s *Store) GetPerson(_ context.Context, id int64) (*domain.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.persons[id]
	if !ok {
		return nil, personRepo.ErrPersonNotFound
	}
	c := *p
	return &c, nil
}

func (s *Store) FindPersonByEmail(_ context.Context, email string) (*domain.Person, error) {
	return s.findPerson(func(p *domain.Person) bool { return p.Email == domain.NormalizeEmail(email) })
}

func (s *Store) FindPersonByPhone(_ context.Context, phone string) (*domain.Person, error) {
	return s.findPerson(func(p *domain.Person) bool { return p.Phone != nil && *p.Phone == phone })
}

func (s *Store) findPerson(pred func(p *domain.Person) bool) (*domain.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *domain.Person
	for _, p := range s.persons {
		if pred(p) && (found == nil || p.ID < found.ID) {
			found = p
		}
	}
	if found == nil {
		return nil, personRepo.ErrPersonNotFound
	}
	c := *found
	return &c, nil
}

func (s *Store) UpdateContact(ctx context.Context, id int64, name, phone *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.persons[id]
	if !ok {
		return personRepo.ErrPersonNotFound
	}
	prev := *p
	s.record(ctx, func() { s.persons[id] = &prev })
	if name != nil {
		p.Name = *name
	}
	if phone != nil {
		p.Phone = phone
	}
	return nil
}

// --- рабочие часы ---

func hoursKey(staffID *int64) int64 {
	if staffID == nil {
		return 0
	}
	return *staffID
}

func (s *Store) GetHours(_ context.Context, staffID *int64) (*domain.BusinessHours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hours[hoursKey(staffID)]
	if !ok {
		return nil, hoursRepo.ErrHoursNotFound
	}
	c := *h
	return &c, nil
}

func (s *Store) GetHoursWithHierarchy(ctx context.Context, staffID *int64) (*domain.BusinessHours, error) {
	if staffID != nil {
		if h, err := s.GetHours(ctx, staffID); err == nil {
			return h, nil
		}
	}
	return s.GetHours(ctx, nil)
}

func (s *Store) UpsertHours(ctx context.Context, h *domain.BusinessHours) (*domain.BusinessHours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := hoursKey(h.StaffID)
	if existing, ok := s.hours[key]; ok {
		h.ID = existing.ID
		prev := *existing
		s.record(ctx, func() { s.hours[key] = &prev })
	} else {
		h.ID = s.id()
		s.record(ctx, func() { delete(s.hours, key) })
	}
	c := *h
	s.hours[key] = &c
	return h, nil
}

// --- блокировки и транзакции ---

// Lock берет блокировки по ключам до конца транзакции, в отсортированном порядке.
// Повторный ключ в той же транзакции не блокирует, как и advisory-блокировки одной сессии
func (s *Store) Lock(ctx context.Context, keys ...string) error {
	tx := txFrom(ctx)
	if tx == nil {
		return errors.New("testutil: lock outside transaction")
	}
	if s.FailLock != nil {
		return s.FailLock
	}

	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	for _, key := range sorted {
		if _, ok := tx.held[key]; ok {
			continue
		}
		s.keyLock(key).Lock()
		tx.held[key] = struct{}{}
	}

	s.mu.Lock()
	s.LockedKeys = append(s.LockedKeys, append([]string(nil), keys...))
	hook := s.OnLocked
	s.mu.Unlock()

	if hook != nil {
		hook(keys)
	}
	return nil
}

func (s *Store) keyLock(key string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	m, ok := s.keyLocks[key]
	if !ok {
		m = &sync.Mutex{}
		s.keyLocks[key] = m
	}
	return m
}

func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

func (s *Store) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.run(ctx, fn)
}

// run выполняет fn в транзакции: при ошибке откатывает ее изменения, затем отпускает блокировки
func (s *Store) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	tx := &txState{held: make(map[string]struct{})}
	defer func() {
		for key := range tx.held {
			s.keyLock(key).Unlock()
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		s.mu.Lock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}
