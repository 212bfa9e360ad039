package allocator

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-room-allocator/internal/inventory"
	"github.com/iliyamo/hotel-room-allocator/internal/model"
)

func newHotel(t *testing.T, opts ...Option) *Allocator {
	t.Helper()
	layout := map[int]int{}
	for f := 1; f <= 9; f++ {
		layout[f] = 10
	}
	layout[10] = 7
	opts = append([]Option{
		WithRand(rand.New(rand.NewSource(1))),
		WithIDGenerator(func() string { return "bk-1" }),
		WithClock(func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }),
	}, opts...)
	return New(inventory.New(10, layout), opts...)
}

// occupyAllExcept marks every room occupied except the listed numbers.
func occupyAllExcept(t *testing.T, a *Allocator, vacant ...int) {
	t.Helper()
	require.NoError(t, a.Randomize(1))
	_, err := a.Release(vacant)
	require.NoError(t, err)
}

func occupiedSet(a *Allocator) map[int]bool {
	out := map[int]bool{}
	for _, r := range a.Snapshot() {
		if r.Occupied {
			out[r.Number] = true
		}
	}
	return out
}

func TestBook_EmptyHotelTakesFirstRoomsOnFloorOne(t *testing.T) {
	a := newHotel(t)

	b, err := a.Book(3)

	require.NoError(t, err)
	assert.Equal(t, []int{101, 102, 103}, b.Numbers())
	// positions 0-2 on one floor: two corridor steps
	assert.Equal(t, 2, b.TravelTime)
	assert.Equal(t, model.StrategySameFloor, b.Strategy)
	assert.Equal(t, "bk-1", b.ID)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), b.BookedAt)
	assert.Equal(t, 94, b.VacantAfter)
	for _, r := range b.Rooms {
		assert.True(t, r.Occupied)
	}
}

func TestBook_SingleRoomHasNoTravelTime(t *testing.T) {
	a := newHotel(t)

	b, err := a.Book(1)

	require.NoError(t, err)
	assert.Equal(t, []int{101}, b.Numbers())
	assert.Equal(t, 0, b.TravelTime)
}

func TestBook_ConsecutiveBookingsFillFloorOne(t *testing.T) {
	a := newHotel(t)

	first, err := a.Book(5)
	require.NoError(t, err)
	second, err := a.Book(5)
	require.NoError(t, err)
	third, err := a.Book(2)
	require.NoError(t, err)

	assert.Equal(t, []int{101, 102, 103, 104, 105}, first.Numbers())
	assert.Equal(t, []int{106, 107, 108, 109, 110}, second.Numbers())
	assert.Equal(t, []int{201, 202}, third.Numbers())
}

func TestBook_PicksTightestRunOnFirstQualifyingFloor(t *testing.T) {
	a := newHotel(t)
	// floor 1 vacancies at positions 0, 4, 5, 9; floor 2 fully vacant.
	var keep []int
	keep = append(keep, 101, 105, 106, 110)
	for n := 201; n <= 210; n++ {
		keep = append(keep, n)
	}
	occupyAllExcept(t, a, keep...)

	b, err := a.Book(2)

	require.NoError(t, err)
	assert.Equal(t, []int{105, 106}, b.Numbers())
	assert.Equal(t, model.StrategySameFloor, b.Strategy)
}

func TestBook_LaterFloorIgnoredEvenWithSmallerSpan(t *testing.T) {
	a := newHotel(t)
	occupyAllExcept(t, a, 101, 110, 301, 302)

	b, err := a.Book(2)

	require.NoError(t, err)
	assert.Equal(t, []int{101, 110}, b.Numbers())
	assert.Equal(t, 9, b.TravelTime)
}

func TestBook_CrossFloorFallback(t *testing.T) {
	a := newHotel(t)
	// one vacancy per floor on floors 1-3: 110, 201, 302.
	occupyAllExcept(t, a, 110, 201, 302)

	b, err := a.Book(2)

	require.NoError(t, err)
	assert.Equal(t, model.StrategyCrossFloor, b.Strategy)
	assert.Equal(t, []int{201, 302}, b.Numbers())
	assert.Equal(t, 3, b.TravelTime)
	assert.Len(t, occupiedSet(a), 96)
}

func TestBook_CrossFloorKeepsOriginCostOrdering(t *testing.T) {
	a := newHotel(t)
	occupyAllExcept(t, a, 110, 210, 503)

	b, err := a.Book(2)

	require.NoError(t, err)
	assert.Equal(t, model.StrategyCrossFloor, b.Strategy)
	// 110 and 210 are closer together, but 503 separates them by origin cost.
	assert.Equal(t, []int{503, 210}, b.Numbers())
	assert.Equal(t, 13, b.TravelTime)
	assert.Equal(t, 1, b.VacantAfter)
}

func TestBook_CrossFloorUsesTopFloorNumbers(t *testing.T) {
	a := newHotel(t)
	occupyAllExcept(t, a, 905, 1004)

	b, err := a.Book(2)

	require.NoError(t, err)
	assert.Equal(t, []int{905, 1004}, b.Numbers())
	assert.Equal(t, 2+1, b.TravelTime)
}

func TestBook_InvalidCount(t *testing.T) {
	for _, n := range []int{-1, 0, 6, 100} {
		a := newHotel(t)
		before := occupiedSet(a)

		_, err := a.Book(n)

		assert.True(t, errors.Is(err, ErrInvalidRequest), "count %d", n)
		assert.Equal(t, before, occupiedSet(a))
	}
}

func TestBook_InsufficientInventory(t *testing.T) {
	a := newHotel(t)
	occupyAllExcept(t, a, 101, 505)
	before := occupiedSet(a)

	_, err := a.Book(3)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientInventory))
	assert.Equal(t, before, occupiedSet(a))
}

func TestBook_OnlyChosenRoomsChange(t *testing.T) {
	a := newHotel(t, WithRand(rand.New(rand.NewSource(42))))
	require.NoError(t, a.Randomize(0.5))
	before := occupiedSet(a)

	b, err := a.Book(4)
	require.NoError(t, err)

	after := occupiedSet(a)
	assert.Len(t, after, len(before)+4)
	for n := range before {
		assert.True(t, after[n])
	}
	for _, n := range b.Numbers() {
		assert.False(t, before[n])
		assert.True(t, after[n])
	}
}

func TestBook_FullHotel(t *testing.T) {
	a := newHotel(t)
	require.NoError(t, a.Randomize(1))

	_, err := a.Book(1)

	assert.ErrorIs(t, err, ErrInsufficientInventory)
}

func TestBook_ConcurrentCallersNeverDoubleBook(t *testing.T) {
	a := newHotel(t)

	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := map[int]int{}
	left := map[int]int{}
	booked := 0
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := a.Book(3)
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			booked += len(b.Rooms)
		left[b.VacantAfter]++
			for _, n := range b.Numbers() {
				seen[n]++
			}
		}()
	}
	wg.Wait()

	for n, c := range seen {
		assert.Equal(t, 1, c, "room %d booked %d times", n, c)
	}
	assert.Equal(t, booked, a.Summary().Occupied)
	assert.LessOrEqual(t, booked, 97)
	// each booking saw the vacancy count its own reservation produced
	for v, c := range left {
		assert.Equal(t, 1, c, "vacant_after %d reported %d times", v, c)
		assert.Equal(t, 1, v%3, "vacant_after %d", v)
	}
}

func TestRelease(t *testing.T) {
	a := newHotel(t)
	_, err := a.Book(3)
	require.NoError(t, err)

	released, err := a.Release([]int{102, 101})

	require.NoError(t, err)
	require.Len(t, released, 2)
	assert.Equal(t, 102, released[0].Number)
	assert.False(t, released[0].Occupied)
	assert.Equal(t, map[int]bool{103: true}, occupiedSet(a))
}

func TestRelease_AllOrNothing(t *testing.T) {
	a := newHotel(t)
	_, err := a.Book(2)
	require.NoError(t, err)

	tests := []struct {
		name    string
		numbers []int
		want    error
	}{
		{"empty", nil, ErrInvalidRequest},
		{"duplicate", []int{101, 101}, ErrInvalidRequest},
		{"unknown", []int{101, 1008}, ErrRoomNotFound},
		{"vacant", []int{101, 103}, ErrRoomVacant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Release(tt.numbers)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, map[int]bool{101: true, 102: true}, occupiedSet(a))
		})
	}
}

func TestRandomize_Bounds(t *testing.T) {
	a := newHotel(t)

	require.NoError(t, a.Randomize(0))
	assert.Equal(t, 0, a.Summary().Occupied)

	require.NoError(t, a.Randomize(1))
	assert.Equal(t, 97, a.Summary().Occupied)
}

func TestRandomize_RejectsBadProbability(t *testing.T) {
	a := newHotel(t)

	for _, p := range []float64{-0.1, 1.5, math.NaN()} {
		assert.ErrorIs(t, a.Randomize(p), ErrInvalidProbability)
	}
	assert.Equal(t, 0, a.Summary().Occupied)
}

func TestRandomize_DeterministicWithSeed(t *testing.T) {
	a := newHotel(t, WithRand(rand.New(rand.NewSource(7))))
	b := newHotel(t, WithRand(rand.New(rand.NewSource(7))))

	require.NoError(t, a.Randomize(DefaultProbability))
	require.NoError(t, b.Randomize(DefaultProbability))

	assert.Equal(t, a.Snapshot(), b.Snapshot())
	occ := a.Summary().Occupied
	assert.Greater(t, occ, 0)
	assert.Less(t, occ, 97)
}

func TestResetAll_Idempotent(t *testing.T) {
	a := newHotel(t)
	require.NoError(t, a.Randomize(1))

	a.ResetAll()
	a.ResetAll()

	s := a.Summary()
	assert.Equal(t, model.Occupancy{Total: 97, Occupied: 0, Vacant: 97}, s)
}

func TestLookupAndFloor(t *testing.T) {
	a := newHotel(t)

	r, err := a.Lookup(1007)
	require.NoError(t, err)
	assert.Equal(t, 10, r.Floor)
	assert.Equal(t, 6, r.Position)

	_, err = a.Lookup(111)
	assert.ErrorIs(t, err, ErrRoomNotFound)

	assert.Len(t, a.Floor(10), 7)
	assert.Len(t, a.Floors(), 10)
}

func TestNew_PanicsOnNilInventory(t *testing.T) {
	assert.Panics(t, func() { New(nil) })
}
