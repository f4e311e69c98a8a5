package flows

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Kelale-BookingPortal/internal/workflow"
)

// Registry хранилище открытых страниц бронирования в памяти процесса.
// Страница без активности дольше idleTTL закрывается и удаляется при очистке
type Registry struct {
	mu     sync.RWMutex
	flows  map[string]*workflow.Flow
	closed bool

	idleTTL time.Duration
	metrics Metrics
	logger  Logger
	now     func() time.Time
}

// NewRegistry создает хранилище. metrics может быть nil
func NewRegistry(idleTTL time.Duration, metrics Metrics, logger Logger) *Registry {
	return &Registry{
		flows:   make(map[string]*workflow.Flow),
		idleTTL: idleTTL,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// NewID генерирует идентификатор новой страницы
func NewID() string {
	return uuid.NewString()
}

// Open создает страницу маршрута routeID с новым идентификатором и регистрирует ее
func (r *Registry) Open(routeID, scheduleID string, deps workflow.Dependencies) (*workflow.Flow, error) {
	f := workflow.New(NewID(), routeID, scheduleID, deps)
	if err := r.Add(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Add регистрирует страницу
func (r *Registry) Add(f *workflow.Flow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		f.Close()
		return ErrRegistryClosed
	}
	r.flows[f.ID()] = f
	r.report()
	return nil
}

// Get возвращает страницу по идентификатору
func (r *Registry) Get(id string) (*workflow.Flow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.flows[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", ErrFlowNotFound, id)
	}
	return f, nil
}

// Remove закрывает и удаляет страницу. Отправка в полете отменяется
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	f, ok := r.flows[id]
	if ok {
		delete(r.flows, id)
		r.report()
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: id=%s", ErrFlowNotFound, id)
	}
	f.Close()
	return nil
}

// Len количество открытых страниц
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.flows)
}

// Sweep закрывает страницы без активности дольше idleTTL. Возвращает число удаленных
func (r *Registry) Sweep(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}

	var expired []*workflow.Flow
	r.mu.Lock()
	for id, f := range r.flows {
		if now.Sub(f.LastActivity()) > r.idleTTL {
			expired = append(expired, f)
			delete(r.flows, id)
		}
	}
	if len(expired) > 0 {
		r.report()
	}
	r.mu.Unlock()

	for _, f := range expired {
		f.Close()
	}
	if len(expired) > 0 {
		r.logger.Info("Flows: evicted %d idle flows, %d open", len(expired), r.Len())
	}
	return len(expired)
}

// Run периодически вызывает Sweep до закрытия stopCh
func (r *Registry) Run(interval time.Duration, stopCh <-chan struct{}) {
	if interval <= 0 {
		r.logger.Warn("Flows: sweep interval is not positive, idle eviction disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Sweep(r.now())
		case <-stopCh:
			return
		}
	}
}

// CloseAll закрывает все страницы. Новые страницы после этого не регистрируются
func (r *Registry) CloseAll() {
	r.mu.Lock()
	flows := r.flows
	r.flows = make(map[string]*workflow.Flow)
	r.closed = true
	r.report()
	r.mu.Unlock()

	for _, f := range flows {
		f.Close()
	}
	if len(flows) > 0 {
		r.logger.Info("Flows: closed %d flows on shutdown", len(flows))
	}
}

func (r *Registry) report() {
	if r.metrics != nil {
		r.metrics.SetOpenFlows(len(r.flows))
	}
}
