package ledger

import "time"

// Sweeper периодически снимает просроченные резервации
// Ленивое снятие при обращении к слоту остается основным механизмом;
// фоновый проход гарантирует, что заброшенный слот не висит вечно,
// даже если к нему никто больше не обращается
type Sweeper struct {
	ledger   *Ledger
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSweeper создает фоновый уборщик для ledger
func NewSweeper(l *Ledger, interval time.Duration) *Sweeper {
	return &Sweeper{
		ledger:   l,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start запускает фоновый цикл уборки
func (s *Sweeper) Start() {
	go func() {
		defer close(s.doneCh)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.ledger.Sweep()
			}
		}
	}()
}

// Stop останавливает уборщик и дожидается завершения цикла
func (s *Sweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
}
