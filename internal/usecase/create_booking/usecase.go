package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	personRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/person"
	"github.com/m04kA/SMC-SalonService/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonService/internal/service/bookings/models"
)

// результаты для метрики bookings_created_total
const (
	resultSuccess  = "success"
	resultConflict = "conflict"
	resultNotFound = "not_found"
	resultInvalid  = "invalid"
	resultDenied   = "denied"
	resultError    = "error"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	personRepo  PersonRepository
	guard       OverlapGuard
	locker      Locker
	catalog     CatalogClient
	txManager   TransactionManager
	notifier    Notifier
	metrics     Metrics
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	personRepo PersonRepository,
	guard OverlapGuard,
	locker Locker,
	catalog CatalogClient,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo: bookingRepo,
		personRepo:  personRepo,
		guard:       guard,
		locker:      locker,
		catalog:     catalog,
		txManager:   txManager,
		notifier:    notifier,
		metrics:     metrics,
		location:    location,
		logger:      logger,
	}
}

// placement параметры записи, общие для всех вариантов создания
type placement struct {
	serviceID int64
	start     time.Time
	staffID   *int64
}

// customerResolver находит клиента внутри транзакции создания записи
type customerResolver func(txCtx context.Context) (*domain.Person, error)

// Execute создает запись клиента
// Клиент может записать только себя, сотрудник и администратор - любого клиента
func (uc *UseCase) Execute(ctx context.Context, actor domain.Actor, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: actor=%d(%s), customer=%d, service=%d, start=%s, staff=%v",
		actor.ID, actor.Role, req.CustomerID, req.ServiceID, req.StartTime.Format(time.RFC3339), req.StaffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.observe(resultInvalid)
		return nil, err
	}

	// 2. Проверка прав
	if !actor.IsStaff() && actor.ID != req.CustomerID {
		uc.logger.Warn("CreateBooking: customer=%d tried to book for customer=%d", actor.ID, req.CustomerID)
		uc.observe(resultDenied)
		return nil, ErrAccessDenied
	}

	return uc.create(ctx, "CreateBooking", placement{req.ServiceID, req.StartTime, req.StaffID}, uc.existingCustomer(req.CustomerID))
}

// BookForSelf создает запись, где клиентом выступает сам сотрудник или администратор
func (uc *UseCase) BookForSelf(ctx context.Context, actor domain.Actor, req *SelfRequest) (*models.BookingResponse, error) {
	uc.logger.Info("BookForSelf: actor=%d(%s), service=%d, start=%s, staff=%v",
		actor.ID, actor.Role, req.ServiceID, req.StartTime.Format(time.RFC3339), req.StaffID)

	if err := validateSlot(req.ServiceID, req.StartTime, req.StaffID); err != nil {
		uc.logger.Warn("BookForSelf: validation failed: %v", err)
		uc.observe(resultInvalid)
		return nil, err
	}

	if !actor.IsStaff() {
		uc.logger.Warn("BookForSelf: actor=%d with role %s is not staff", actor.ID, actor.Role)
		uc.observe(resultDenied)
		return nil, ErrAccessDenied
	}

	return uc.create(ctx, "BookForSelf", placement{req.ServiceID, req.StartTime, req.StaffID}, uc.existingCustomer(actor.ID))
}

// BookForWalkIn создает запись клиента, пришедшего без регистрации
// Поиск и создание клиента выполняются в одной транзакции с записью
func (uc *UseCase) BookForWalkIn(ctx context.Context, actor domain.Actor, req *WalkInRequest) (*models.BookingResponse, error) {
	uc.logger.Info("BookForWalkIn: actor=%d(%s), service=%d, start=%s, staff=%v",
		actor.ID, actor.Role, req.ServiceID, req.StartTime.Format(time.RFC3339), req.StaffID)

	if err := validateWalkIn(req); err != nil {
		uc.logger.Warn("BookForWalkIn: validation failed: %v", err)
		uc.observe(resultInvalid)
		return nil, err
	}

	if !actor.IsStaff() {
		uc.logger.Warn("BookForWalkIn: actor=%d with role %s is not staff", actor.ID, actor.Role)
		uc.observe(resultDenied)
		return nil, ErrAccessDenied
	}

	return uc.create(ctx, "BookForWalkIn", placement{req.ServiceID, req.StartTime, req.StaffID}, func(txCtx context.Context) (*domain.Person, error) {
		return uc.resolveWalkIn(txCtx, req)
	})
}

// create общий сценарий: услуга, клиент, блокировки, проверки пересечений, запись
func (uc *UseCase) create(ctx context.Context, op string, p placement, resolve customerResolver) (*models.BookingResponse, error) {
	// 1. Получаем услугу
	service, err := uc.catalog.GetService(ctx, p.serviceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("%s: service id=%d not found", op, p.serviceID)
			uc.observe(resultNotFound)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("%s: failed to get service id=%d: %v", op, p.serviceID, err)
		uc.observe(resultError)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if err := service.Validate(); err != nil {
		uc.logger.Warn("%s: service id=%d is not bookable: %v", op, p.serviceID, err)
		uc.observe(resultInvalid)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		result   *domain.Booking
		customer *domain.Person
	)

	// 2. Проверки и запись в одной транзакции под блокировками клиента и сотрудника
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Клиент
		c, err := resolve(txCtx)
		if err != nil {
			return err
		}
		customer = c

		// 2.2. Блокировки по людям, удерживаются до конца транзакции
		keys := []string{domain.FieldCustomer.LockKey(customer.ID)}
		if p.staffID != nil {
			keys = append(keys, domain.FieldStaff.LockKey(*p.staffID))
		}
		if err := uc.locker.Lock(txCtx, keys...); err != nil {
			uc.logger.Error("%s: failed to lock %v: %v", op, keys, err)
			return fmt.Errorf("%w: failed to lock: %v", ErrInternal, err)
		}

		// 2.3. Сотрудник
		if p.staffID != nil {
			staff, err := uc.personRepo.GetByID(txCtx, *p.staffID)
			if err != nil {
				if errors.Is(err, personRepo.ErrPersonNotFound) {
					uc.logger.Warn("%s: staff id=%d not found", op, *p.staffID)
					return ErrStaffNotFound
				}
				uc.logger.Error("%s: failed to get staff id=%d: %v", op, *p.staffID, err)
				return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
			}
			if err := validateStaffRole(staff); err != nil {
				uc.logger.Warn("%s: %v", op, err)
				return err
			}
		}

		// 2.4. Пересечение у клиента
		overlap, err := uc.guard.HasOverlap(txCtx, domain.FieldCustomer, customer.ID, p.start, service.DurationMinutes, nil)
		if err != nil {
			uc.logger.Error("%s: failed to check customer overlap for customer=%d: %v", op, customer.ID, err)
			return fmt.Errorf("%w: failed to check customer overlap: %v", ErrInternal, err)
		}
		if overlap {
			uc.logger.Warn("%s: customer=%d already has a booking at %s", op, customer.ID, p.start.Format(time.RFC3339))
			return ErrCustomerOverlap
		}

		// 2.5. Пересечение у сотрудника
		if p.staffID != nil {
			overlap, err := uc.guard.HasOverlap(txCtx, domain.FieldStaff, *p.staffID, p.start, service.DurationMinutes, nil)
			if err != nil {
				uc.logger.Error("%s: failed to check staff overlap for staff=%d: %v", op, *p.staffID, err)
				return fmt.Errorf("%w: failed to check staff overlap: %v", ErrInternal, err)
			}
			if overlap {
				uc.logger.Warn("%s: staff=%d already has a booking at %s", op, *p.staffID, p.start.Format(time.RFC3339))
				return ErrStaffOverlap
			}
		}

		// 2.6. Создаем бронирование со снимком услуги
		booking := &domain.Booking{
			CustomerID:      customer.ID,
			StaffID:         p.staffID,
			ServiceID:       service.ID,
			StartTime:       p.start,
			ServiceName:     service.Name,
			DurationMinutes: service.DurationMinutes,
			Price:           service.Price,
			Status:          domain.StatusConfirmed,
			PaymentStatus:   domain.PaymentUnpaid,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("%s: failed to create booking: %v", op, err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		result = created
		return nil
	})
	if err != nil {
		uc.observe(resultOf(err))
		return nil, err
	}

	uc.observe(resultSuccess)
	uc.logger.Info("%s: booking id=%d created for customer=%d", op, result.ID, result.CustomerID)

	// 3. Уведомление после коммита, ошибки доставки не влияют на результат
	uc.notifier.Notify(ctx, notifier.BookingCreatedMessage(result, customer.Contact(), uc.location))

	return models.FromDomainBooking(result), nil
}

// existingCustomer ищет клиента по ID
func (uc *UseCase) existingCustomer(customerID int64) customerResolver {
	return func(txCtx context.Context) (*domain.Person, error) {
		customer, err := uc.personRepo.GetByID(txCtx, customerID)
		if err != nil {
			if errors.Is(err, personRepo.ErrPersonNotFound) {
				uc.logger.Warn("CreateBooking: customer id=%d not found", customerID)
				return nil, ErrCustomerNotFound
			}
			uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", customerID, err)
			return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}
		return customer, nil
	}
}

// resolveWalkIn ищет клиента по email, затем по телефону, иначе создает нового
func (uc *UseCase) resolveWalkIn(txCtx context.Context, req *WalkInRequest) (*domain.Person, error) {
	name := strings.TrimSpace(req.Name)

	var email, phone string
	if req.Email != nil {
		email = domain.NormalizeEmail(*req.Email)
	}
	if req.Phone != nil {
		phone = strings.TrimSpace(*req.Phone)
	}

	// 1. Блокируем контакты, чтобы параллельные запросы не создали дубликат
	var keys []string
	if email != "" {
		keys = append(keys, "person-email:"+email)
	}
	if phone != "" {
		keys = append(keys, "person-phone:"+phone)
	}
	if len(keys) > 0 {
		if err := uc.locker.Lock(txCtx, keys...); err != nil {
			uc.logger.Error("BookForWalkIn: failed to lock %v: %v", keys, err)
			return nil, fmt.Errorf("%w: failed to lock: %v", ErrInternal, err)
		}
	}

	// 2. Поиск по email, затем по телефону
	lookups := []struct {
		value string
		find  func(ctx context.Context, v string) (*domain.Person, error)
	}{
		{email, uc.personRepo.FindByEmail},
		{phone, uc.personRepo.FindByPhone},
	}
	for _, l := range lookups {
		if l.value == "" {
			continue
		}
		existing, err := l.find(txCtx, l.value)
		if err == nil {
			return uc.refreshContact(txCtx, existing, name, phone)
		}
		if !errors.Is(err, personRepo.ErrPersonNotFound) {
			uc.logger.Error("BookForWalkIn: failed to find person by %q: %v", l.value, err)
			return nil, fmt.Errorf("%w: failed to find person: %v", ErrInternal, err)
		}
	}

	// 3. Создаем минимальную запись клиента
	if email == "" {
		email = fmt.Sprintf("walkin-%s@%s", uuid.NewString(), domain.PlaceholderEmailDomain)
	}
	person := &domain.Person{
		Name:  name,
		Email: email,
		Role:  domain.RoleCustomer,
	}
	if phone != "" {
		person.Phone = &phone
	}

	created, err := uc.personRepo.Create(txCtx, person)
	if err != nil {
		uc.logger.Error("BookForWalkIn: failed to create customer: %v", err)
		return nil, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
	}
	uc.logger.Info("BookForWalkIn: created customer id=%d", created.ID)
	return created, nil
}

// refreshContact обновляет имя и телефон найденного клиента
func (uc *UseCase) refreshContact(txCtx context.Context, p *domain.Person, name, phone string) (*domain.Person, error) {
	var phonePtr *string
	if phone != "" {
		phonePtr = &phone
	}

	if p.Name == name && (phonePtr == nil || (p.Phone != nil && *p.Phone == phone)) {
		return p, nil
	}

	if err := uc.personRepo.UpdateContact(txCtx, p.ID, &name, phonePtr); err != nil {
		uc.logger.Error("BookForWalkIn: failed to update contact of person id=%d: %v", p.ID, err)
		return nil, fmt.Errorf("%w: failed to update contact: %v", ErrInternal, err)
	}

	p.Name = name
	if phonePtr != nil {
		p.Phone = phonePtr
	}
	uc.logger.Info("BookForWalkIn: reused customer id=%d", p.ID)
	return p, nil
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveBookingCreated(result)
	}
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrConflict):
		return resultConflict
	case errors.Is(err, domain.ErrNotFound):
		return resultNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return resultInvalid
	default:
		return resultError
	}
}
