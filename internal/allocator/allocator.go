package allocator

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-room-allocator/internal/inventory"
	"github.com/iliyamo/hotel-room-allocator/internal/model"
)

// Booking size limits.
const (
	MinRooms = 1
	MaxRooms = 5
)

// DefaultProbability is the occupancy probability used by Randomize when
// the caller does not choose one.
const DefaultProbability = 0.35

// Allocator owns an inventory and serializes every read-modify-write of
// its occupancy behind one mutex, so a booking's vacancy scan and its
// reservation happen as a single critical section.
type Allocator struct {
	mu    sync.Mutex
	inv   *inventory.Inventory
	cost  CostModel
	rng   *rand.Rand
	newID func() string
	now   func() time.Time
	log   *zap.Logger
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithCostModel overrides the default vertical/horizontal step costs.
func WithCostModel(m CostModel) Option { return func(a *Allocator) { a.cost = m } }

// WithRand sets the random source used by Randomize.
func WithRand(r *rand.Rand) Option { return func(a *Allocator) { a.rng = r } }

// WithIDGenerator sets the function producing booking IDs.
func WithIDGenerator(fn func() string) Option { return func(a *Allocator) { a.newID = fn } }

// WithClock sets the time source stamped on bookings.
func WithClock(fn func() time.Time) Option { return func(a *Allocator) { a.now = fn } }

// WithLogger sets the logger.  A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(a *Allocator) {
		if l != nil {
			a.log = l
		}
	}
}

// New returns an Allocator that takes ownership of inv.  Callers must not
// touch inv directly afterwards.
func New(inv *inventory.Inventory, opts ...Option) *Allocator {
	if inv == nil {
		panic("nil inventory passed to allocator.New")
	}
	a := &Allocator{
		inv:   inv,
		cost:  DefaultCostModel(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		newID: func() string { return uuid.NewString() },
		now:   func() time.Time { return time.Now().UTC() },
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CostModel returns the cost model in use.
func (a *Allocator) CostModel() CostModel { return a.cost }

// Book reserves count rooms.  Rooms on a single floor are preferred: the
// lowest floor with at least count vacancies supplies its tightest run.
// Otherwise the rooms come from the whole building, chosen by travel time
// among candidates ordered by distance from the origin.  On error nothing
// is reserved.
func (a *Allocator) Book(count int) (model.Booking, error) {
	if count < MinRooms || count > MaxRooms {
		return model.Booking{}, fmt.Errorf("%w: room count %d outside [%d, %d]", ErrInvalidRequest, count, MinRooms, MaxRooms)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	vacant := a.inv.Vacant()
	if len(vacant) < count {
		return model.Booking{}, fmt.Errorf("%w: %d requested, %d vacant", ErrInsufficientInventory, count, len(vacant))
	}

	strategy := model.StrategySameFloor
	chosen, ok := sameFloorWindow(vacant, count)
	if !ok {
		strategy = model.StrategyCrossFloor
		chosen = crossFloorWindow(vacant, count, a.cost)
	}

	rooms := make([]model.Room, 0, len(chosen))
	for _, r := range chosen {
		a.inv.SetOccupied(r.Floor, r.Position, true)
		r.Occupied = true
		rooms = append(rooms, r)
	}

	b := model.Booking{
		ID:          a.newID(),
		Rooms:       rooms,
		TravelTime:  a.cost.TravelTime(rooms),
		Strategy:    strategy,
		BookedAt:    a.now(),
		VacantAfter: len(vacant) - len(rooms),
	}
	a.log.Info("rooms booked",
		zap.String("booking_id", b.ID),
		zap.Ints("rooms", b.Numbers()),
		zap.Int("travel_time", b.TravelTime),
		zap.String("strategy", string(b.Strategy)),
	)
	return b, nil
}

// Release frees the given occupied rooms.  The request is rejected as a
// whole when it is empty, repeats a number, names an unknown room or
// names a vacant one.
func (a *Allocator) Release(numbers []int) ([]model.Room, error) {
	if len(numbers) == 0 {
		return nil, fmt.Errorf("%w: no rooms given", ErrInvalidRequest)
	}
	seen := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("%w: room %d listed twice", ErrInvalidRequest, n)
		}
		seen[n] = struct{}{}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	rooms := make([]model.Room, 0, len(numbers))
	for _, n := range numbers {
		r, ok := a.inv.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrRoomNotFound, n)
		}
		if !r.Occupied {
			return nil, fmt.Errorf("%w: %d", ErrRoomVacant, n)
		}
		rooms = append(rooms, r)
	}
	for i := range rooms {
		a.inv.SetOccupied(rooms[i].Floor, rooms[i].Position, false)
		rooms[i].Occupied = false
	}
	a.log.Info("rooms released", zap.Ints("rooms", numbers))
	return rooms, nil
}

// Randomize marks each room occupied independently with probability p.
func (a *Allocator) Randomize(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidProbability, p)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.inv.Each(func(r *model.Room) { r.Occupied = a.rng.Float64() < p })
	a.log.Info("occupancy randomized", zap.Float64("probability", p))
	return nil
}

// ResetAll marks every room vacant.
func (a *Allocator) ResetAll() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.inv.Each(func(r *model.Room) { r.Occupied = false })
	a.log.Info("occupancy reset")
}

// Snapshot returns a consistent copy of every room.
func (a *Allocator) Snapshot() []model.Room {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inv.Rooms()
}

// Floor returns a consistent copy of one floor's rooms.
func (a *Allocator) Floor(f int) []model.Room {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inv.Floor(f)
}

// Floors returns the floors that have rooms, ascending.
func (a *Allocator) Floors() []int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inv.Floors()
}

// Lookup returns the room with the given number.
func (a *Allocator) Lookup(number int) (model.Room, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	r, ok := a.inv.Lookup(number)
	if !ok {
		return model.Room{}, fmt.Errorf("%w: %d", ErrRoomNotFound, number)
	}
	return r, nil
}

// Summary counts occupied and vacant rooms.
func (a *Allocator) Summary() model.Occupancy {
	a.mu.Lock()
	defer a.mu.Unlock()
	occ := len(a.inv.Occupied())
	return model.Occupancy{Total: a.inv.Len(), Occupied: occ, Vacant: a.inv.Len() - occ}
}
