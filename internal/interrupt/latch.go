// Package interrupt связывает источник нажатий (горячая клавиша, Enter в
// консоли) с текущей записью.
package interrupt

import (
	"log"
	"sync"
)

// Latch пересылает нажатие в канал, взведённый на время одной записи.
// Нажатия вне записи игнорируются.
type Latch struct {
	mu    sync.Mutex
	armed chan struct{}
}

// New создаёт невзведённый Latch.
func New() *Latch {
	return &Latch{}
}

// Arm взводит Latch. Канал закрывается при первом Fire; disarm снимает
// взвод и безопасен для повторного вызова.
func (l *Latch) Arm() (<-chan struct{}, func()) {
	ch := make(chan struct{})

	l.mu.Lock()
	l.armed = ch
	l.mu.Unlock()

	disarm := func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.armed == ch {
			l.armed = nil
		}
	}
	return ch, disarm
}

// Fire прерывает текущую запись. Возвращает false если ничего не взведено.
func (l *Latch) Fire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.armed == nil {
		return false
	}
	close(l.armed)
	l.armed = nil
	return true
}

// Key - источник нажатий, который захватывается только на время записи.
type Key interface {
	Grab() error
	Release() error
}

// Scoped взводит Latch и на то же время захватывает Key. Между записями
// клавиша свободна.
type Scoped struct {
	Latch *Latch
	Key   Key
}

// Arm взводит Latch и захватывает клавишу. Если захватить не удалось,
// запись идёт без досрочной остановки по клавише.
func (s Scoped) Arm() (<-chan struct{}, func()) {
	ch, disarm := s.Latch.Arm()
	if s.Key == nil {
		return ch, disarm
	}
	if err := s.Key.Grab(); err != nil {
		log.Printf("Не удалось захватить клавишу прерывания: %v", err)
		return ch, disarm
	}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			if err := s.Key.Release(); err != nil {
				log.Printf("Ошибка освобождения клавиши прерывания: %v", err)
			}
			disarm()
		})
	}
}
