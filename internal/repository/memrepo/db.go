// Package memrepo хранилище в памяти с теми же транзакционными гарантиями, что и postgres: транзакции
// выполняются последовательно над копией состояния и либо целиком заменяют его при фиксации, либо отбрасываются.
package memrepo

import (
	"maps"
	"sync"
	"time"

	"github.com/fsdevblog/groupbuy/internal/domain"
)

type state struct {
	seq           map[string]int64
	listings      map[int64]domain.Listing
	groups        map[int64]domain.Group
	orders        map[int64]domain.Order
	transactions  map[int64]domain.Transaction
	notifications map[int64]domain.Notification
	reviews       map[int64]domain.Review
	ratings       map[int64]domain.SellerRating
	paymentEvents map[int64]domain.PaymentEvent
}

func newState() *state {
	return &state{
		seq:           make(map[string]int64),
		listings:      make(map[int64]domain.Listing),
		groups:        make(map[int64]domain.Group),
		orders:        make(map[int64]domain.Order),
		transactions:  make(map[int64]domain.Transaction),
		notifications: make(map[int64]domain.Notification),
		reviews:       make(map[int64]domain.Review),
		ratings:       make(map[int64]domain.SellerRating),
		paymentEvents: make(map[int64]domain.PaymentEvent),
	}
}

// clone глубокая копия. Единственное вложенное изменяемое поле - Participants группы.
func (s *state) clone() *state {
	groups := make(map[int64]domain.Group, len(s.groups))
	for id, g := range s.groups {
		g.Participants = maps.Clone(g.Participants)
		groups[id] = g
	}
	return &state{
		seq:           maps.Clone(s.seq),
		listings:      maps.Clone(s.listings),
		groups:        groups,
		orders:        maps.Clone(s.orders),
		transactions:  maps.Clone(s.transactions),
		notifications: maps.Clone(s.notifications),
		reviews:       maps.Clone(s.reviews),
		ratings:       maps.Clone(s.ratings),
		paymentEvents: maps.Clone(s.paymentEvents),
	}
}

func (s *state) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// DB разделяемое состояние хранилища.
type DB struct {
	mu        sync.Mutex
	st        *state
	conflicts int
	now       func() time.Time
}

func NewDB() *DB {
	return &DB{
		st:  newState(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// InjectConflicts заставляет следующие n транзакций завершиться uow.ErrConflict после выполнения их функции.
// Изменения таких транзакций отбрасываются.
func (d *DB) InjectConflicts(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.conflicts += n
}

// SetClock подменяет источник времени.
func (d *DB) SetClock(now func() time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.now = now
}

// store доступ репозиториев к состоянию: внутри транзакции это ее копия, вне транзакции - общее состояние под мьютексом.
type store interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
	clock() time.Time
}

type txStore struct {
	st  *state
	now func() time.Time
}

func (t *txStore) read(fn func(*state) error) error  { return fn(t.st) }
func (t *txStore) write(fn func(*state) error) error { return fn(t.st) }
func (t *txStore) clock() time.Time                  { return t.now() }

type directStore struct {
	db *DB
}

func (d *directStore) read(fn func(*state) error) error {
	d.db.mu.Lock()
	defer d.db.mu.Unlock()
	return fn(d.db.st)
}

// write выполняет fn над копией и заменяет состояние только при успехе.
func (d *directStore) write(fn func(*state) error) error {
	d.db.mu.Lock()
	defer d.db.mu.Unlock()
	next := d.db.st.clone()
	if err := fn(next); err != nil {
		return err
	}
	d.db.st = next
	return nil
}

func (d *directStore) clock() time.Time {
	return d.db.now()
}
