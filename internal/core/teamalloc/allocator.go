// Package teamalloc распределение команд по датам. Команда берет не больше
// одного бронирования в день; выбор — first-fit в порядке создания команд.
// Балансировка нагрузки сознательно не делается: перекос в сторону первых
// команд — наблюдаемое свойство, а не дефект.
package teamalloc

import (
	"errors"
	"sort"
	"sync"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

var (
	// ErrNoTeamAvailable возвращается, когда ни одна подходящая команда не свободна на дату
	ErrNoTeamAvailable = errors.New("teamalloc: no team available for this date")
)

// Allocator потокобезопасный реестр дневных назначений команд
type Allocator struct {
	mu     sync.Mutex
	byDate map[string]map[string]string // date -> teamName -> reservationID
}

// New создает пустой аллокатор
func New() *Allocator {
	return &Allocator{
		byDate: make(map[string]map[string]string),
	}
}

// Assign выбирает первую подходящую свободную команду и закрепляет за ней
// дату. Проверка занятости и закрепление — единый шаг под блокировкой:
// две конкурентные заявки на одну дату не получат одну команду.
func (a *Allocator) Assign(teams []*domain.Team, serviceType domain.ServiceType, date string, reservationID string) (string, error) {
	ordered := eligibleInOrder(teams, serviceType)
	if len(ordered) == 0 {
		return "", ErrNoTeamAvailable
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	day := a.byDate[date]
	if day == nil {
		day = make(map[string]string)
		a.byDate[date] = day
	}

	for _, team := range ordered {
		if _, busy := day[team.Name]; !busy {
			day[team.Name] = reservationID
			return team.Name, nil
		}
	}
	return "", ErrNoTeamAvailable
}

// Release освобождает команду на дату. Идемпотентен.
func (a *Allocator) Release(teamName, date string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if day, ok := a.byDate[date]; ok {
		delete(day, teamName)
		if len(day) == 0 {
			delete(a.byDate, date)
		}
	}
}

// Restore восстанавливает назначение при старте сервиса
func (a *Allocator) Restore(teamName, date, reservationID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	day := a.byDate[date]
	if day == nil {
		day = make(map[string]string)
		a.byDate[date] = day
	}
	day[teamName] = reservationID
}

// AssignedOn возвращает команду, закрепленную за резервацией на дату
func (a *Allocator) AssignedOn(date, teamName string) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	day, ok := a.byDate[date]
	if !ok {
		return "", false
	}
	id, ok := day[teamName]
	return id, ok
}

// AvailableOn возвращает имена свободных на дату команд, подходящих для
// услуги, в детерминированном порядке
func (a *Allocator) AvailableOn(teams []*domain.Team, serviceType domain.ServiceType, date string) []string {
	ordered := eligibleInOrder(teams, serviceType)

	a.mu.Lock()
	defer a.mu.Unlock()

	day := a.byDate[date]
	available := make([]string, 0, len(ordered))
	for _, team := range ordered {
		if _, busy := day[team.Name]; !busy {
			available = append(available, team.Name)
		}
	}
	return available
}

// eligibleInOrder отбирает активные команды, подходящие для услуги,
// в порядке создания (стабильный детерминированный tie-break)
func eligibleInOrder(teams []*domain.Team, serviceType domain.ServiceType) []*domain.Team {
	ordered := make([]*domain.Team, 0, len(teams))
	for _, team := range teams {
		if team.IsActive && team.EligibleFor(serviceType) {
			ordered = append(ordered, team)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})
	return ordered
}
