// Package ledger владеет авторитетным счетчиком допущенных бронирований на
// каждый слот (тип услуги, дата). Все мутации одного слота линеаризуемы;
// операции над разными слотами не блокируют друг друга.
package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// ReleaseHook вызывается при каждом переходе резервации в Released —
// как при явном освобождении, так и при снятии по TTL. Используется для
// возврата командного слота аллокатору.
type ReleaseHook func(res *domain.Reservation)

// entry одна резервация внутри слота
// reclaimedByTTL отличает снятие по таймауту от явного освобождения:
// Confirm по снятой по TTL резервации должен вернуть ErrReservationExpired
type entry struct {
	res            *domain.Reservation
	reclaimedByTTL bool
}

// slot состояние одного ключа (тип услуги, дата)
// Инвариант: admitted == число записей в entries со статусом Held или Confirmed
type slot struct {
	mu       sync.Mutex
	key      domain.SlotKey
	admitted int
	entries  map[string]*entry
}

// Ledger потокобезопасный реестр резерваций
type Ledger struct {
	mu    sync.RWMutex // только для доступа к картам, не держится во время работы со слотом
	slots map[domain.SlotKey]*slot
	index map[string]domain.SlotKey // reservationID -> slot

	ttl         time.Duration
	now         func() time.Time
	releaseHook ReleaseHook
	logger      Logger
}

// Option настройка Ledger
type Option func(*Ledger)

// WithClock подменяет источник времени (для тестирования)
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithReleaseHook устанавливает обработчик освобождения резерваций
func WithReleaseHook(hook ReleaseHook) Option {
	return func(l *Ledger) {
		l.releaseHook = hook
	}
}

// New создает Ledger с заданным TTL для неподтвержденных резерваций
func New(ttl time.Duration, logger Logger, opts ...Option) *Ledger {
	l := &Ledger{
		slots:  make(map[domain.SlotKey]*slot),
		index:  make(map[string]domain.SlotKey),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Reserve атомарно занимает одно место в слоте. Проверка лимита и инкремент —
// единый шаг под блокировкой слота, поэтому при конкурентных запросах на
// последнее место выигрывает ровно один. Вторым значением возвращается
// счетчик занятых мест сразу после инкремента: surge и остаток мест должны
// считаться именно по нему, повторное чтение счетчика уже гонится с
// соседними резервациями.
func (l *Ledger) Reserve(serviceType domain.ServiceType, date time.Time, maxBookings int) (*domain.Reservation, int, error) {
	key := domain.NewSlotKey(serviceType, date)
	s := l.getOrCreateSlot(key)
	now := l.now()

	s.mu.Lock()
	reclaimed := s.reclaimExpiredLocked(now)

	if s.admitted >= maxBookings {
		s.mu.Unlock()
		l.notifyReleased(reclaimed)
		return nil, 0, ErrCapacityExceeded
	}

	res := &domain.Reservation{
		ID:          uuid.NewString(),
		ServiceType: serviceType,
		Date:        key.Date,
		State:       domain.ReservationHeld,
		CreatedAt:   now,
		ExpiresAt:   now.Add(l.ttl),
	}
	s.entries[res.ID] = &entry{res: res}
	s.admitted++
	count := s.admitted
	s.mu.Unlock()

	l.mu.Lock()
	l.index[res.ID] = key
	l.mu.Unlock()

	l.notifyReleased(reclaimed)
	l.logger.Info("ledger: reserved %s for %s/%s, admitted=%d/%d", res.ID, key.ServiceType, key.Date, count, maxBookings)

	resCopy := *res
	return &resCopy, count, nil
}

// Confirm переводит резервацию в Confirmed. Идемпотентен: повторное
// подтверждение уже подтвержденной резервации — no-op success.
func (l *Ledger) Confirm(reservationID string) error {
	s, ok := l.slotFor(reservationID)
	if !ok {
		return ErrReservationNotFound
	}

	now := l.now()

	s.mu.Lock()
	reclaimed := s.reclaimExpiredLocked(now)
	e, ok := s.entries[reservationID]
	if !ok {
		s.mu.Unlock()
		l.notifyReleased(reclaimed)
		return ErrReservationNotFound
	}

	var err error
	switch e.res.State {
	case domain.ReservationConfirmed:
		// идемпотентность
	case domain.ReservationHeld:
		e.res.State = domain.ReservationConfirmed
	case domain.ReservationReleased:
		if e.reclaimedByTTL {
			err = ErrReservationExpired
		} else {
			err = ErrReservationNotFound
		}
	}
	s.mu.Unlock()

	l.notifyReleased(reclaimed)
	return err
}

// Release возвращает место в слот. Идемпотентен: повторное освобождение не
// уменьшает счетчик второй раз и не уводит его в минус.
func (l *Ledger) Release(reservationID string) error {
	s, ok := l.slotFor(reservationID)
	if !ok {
		return ErrReservationNotFound
	}

	s.mu.Lock()
	e, ok := s.entries[reservationID]
	if !ok {
		s.mu.Unlock()
		return ErrReservationNotFound
	}

	var released *domain.Reservation
	if e.res.State != domain.ReservationReleased {
		e.res.State = domain.ReservationReleased
		s.admitted--
		released = e.res
	}
	count := s.admitted
	s.mu.Unlock()

	if released != nil {
		l.logger.Info("ledger: released %s for %s/%s, admitted=%d", reservationID, s.key.ServiceType, s.key.Date, count)
		if l.releaseHook != nil {
			l.releaseHook(released)
		}
	}
	return nil
}

// CurrentCount возвращает актуальное число занятых мест в слоте
// Перед подсчетом лениво снимает просроченные резервации
func (l *Ledger) CurrentCount(serviceType domain.ServiceType, date time.Time) int {
	key := domain.NewSlotKey(serviceType, date)

	l.mu.RLock()
	s, ok := l.slots[key]
	l.mu.RUnlock()
	if !ok {
		return 0
	}

	s.mu.Lock()
	reclaimed := s.reclaimExpiredLocked(l.now())
	count := s.admitted
	s.mu.Unlock()

	l.notifyReleased(reclaimed)
	return count
}

// Get возвращает копию резервации по ID
func (l *Ledger) Get(reservationID string) (*domain.Reservation, bool) {
	s, ok := l.slotFor(reservationID)
	if !ok {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[reservationID]
	if !ok {
		return nil, false
	}
	resCopy := *e.res
	return &resCopy, true
}

// AttachTeam записывает выделенную команду в удерживаемую резервацию
func (l *Ledger) AttachTeam(reservationID, teamName string) error {
	s, ok := l.slotFor(reservationID)
	if !ok {
		return ErrReservationNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[reservationID]
	if !ok || e.res.State == domain.ReservationReleased {
		return ErrReservationNotFound
	}
	e.res.TeamName = &teamName
	return nil
}

// AttachSnapshot фиксирует посчитанный при допуске снапшот цены в резервации.
// Подтверждение читает цену отсюда, а не из запроса клиента.
func (l *Ledger) AttachSnapshot(reservationID string, snapshot *domain.PriceSnapshot) error {
	s, ok := l.slotFor(reservationID)
	if !ok {
		return ErrReservationNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[reservationID]
	if !ok || e.res.State == domain.ReservationReleased {
		return ErrReservationNotFound
	}
	snapCopy := *snapshot
	e.res.Snapshot = &snapCopy
	return nil
}

// Restore восстанавливает подтвержденную резервацию при старте сервиса,
// чтобы перезапуск не обнулял занятость слотов
func (l *Ledger) Restore(res *domain.Reservation) {
	key := res.Key()
	s := l.getOrCreateSlot(key)

	s.mu.Lock()
	if _, exists := s.entries[res.ID]; !exists {
		resCopy := *res
		resCopy.State = domain.ReservationConfirmed
		s.entries[res.ID] = &entry{res: &resCopy}
		s.admitted++
	}
	s.mu.Unlock()

	l.mu.Lock()
	l.index[res.ID] = key
	l.mu.Unlock()
}

// Sweep снимает просроченные резервации во всех слотах и удаляет слоты
// прошедших дат. Возвращает число снятых резерваций.
func (l *Ledger) Sweep() int {
	now := l.now()
	today := now.Format(domain.DateFormat)

	l.mu.RLock()
	snapshot := make([]*slot, 0, len(l.slots))
	for _, s := range l.slots {
		snapshot = append(snapshot, s)
	}
	l.mu.RUnlock()

	total := 0
	var staleKeys []domain.SlotKey
	for _, s := range snapshot {
		s.mu.Lock()
		reclaimed := s.reclaimExpiredLocked(now)
		empty := s.admitted == 0
		s.mu.Unlock()

		total += len(reclaimed)
		l.notifyReleased(reclaimed)

		// Слоты прошедших дат без активных резерваций больше не понадобятся
		if empty && s.key.Date < today {
			staleKeys = append(staleKeys, s.key)
		}
	}

	if len(staleKeys) > 0 {
		l.mu.Lock()
		for _, key := range staleKeys {
			if s, ok := l.slots[key]; ok {
				s.mu.Lock()
				for id := range s.entries {
					delete(l.index, id)
				}
				s.mu.Unlock()
				delete(l.slots, key)
			}
		}
		l.mu.Unlock()
	}

	if total > 0 {
		l.logger.Info("ledger: sweep reclaimed %d expired reservations", total)
	}
	return total
}

// reclaimExpiredLocked снимает просроченные Held-резервации
// Вызывается только под s.mu; возвращает снятые резервации для хуков
func (s *slot) reclaimExpiredLocked(now time.Time) []*domain.Reservation {
	var reclaimed []*domain.Reservation
	for _, e := range s.entries {
		if e.res.ExpiredAt(now) {
			e.res.State = domain.ReservationReleased
			e.reclaimedByTTL = true
			s.admitted--
			reclaimed = append(reclaimed, e.res)
		}
	}
	return reclaimed
}

func (l *Ledger) getOrCreateSlot(key domain.SlotKey) *slot {
	l.mu.RLock()
	s, ok := l.slots[key]
	l.mu.RUnlock()
	if ok {
		return s
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok = l.slots[key]; ok {
		return s
	}
	s = &slot{key: key, entries: make(map[string]*entry)}
	l.slots[key] = s
	return s
}

func (l *Ledger) slotFor(reservationID string) (*slot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	key, ok := l.index[reservationID]
	if !ok {
		return nil, false
	}
	s, ok := l.slots[key]
	return s, ok
}

func (l *Ledger) notifyReleased(reclaimed []*domain.Reservation) {
	for _, res := range reclaimed {
		l.logger.Warn("ledger: reservation %s for %s/%s reclaimed after TTL", res.ID, res.ServiceType, res.Date)
		if l.releaseHook != nil {
			l.releaseHook(res)
		}
	}
}
