package sim

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStation(capacity, threshold int) (*Simulator, *Station, *Metrics, *recordingSink) {
	s := NewSimulator()
	m := NewMetrics()
	sink := &recordingSink{}
	return s, NewStation(s, Primer, capacity, threshold, m, sink), m, sink
}

func TestStation_Request_FreeSlot_GrantsSynchronously(t *testing.T) {
	// GIVEN an idle station
	s, st, m, _ := newTestStation(1, 3)

	// WHEN a car requests a slot
	var late *Grant
	g, ok := st.Request(1, grantCollector(&late))

	// THEN the grant is immediate, with zero wait, and nothing is scheduled
	require.True(t, ok)
	require.NotNil(t, g)
	assert.Equal(t, 0.0, g.Wait())
	assert.Equal(t, 1, st.InService())
	assert.Equal(t, 0, st.QueueLen())
	assert.Equal(t, 0, s.Pending())
	assert.Nil(t, late)
	assert.Equal(t, 0, m.MaxQueue[Primer])
}

func TestStation_CapacityTwo_ThirdCarWaitsForFirstRelease(t *testing.T) {
	// GIVEN a capacity-2 station and three cars requesting at t=0
	s, st, m, _ := newTestStation(2, 3)
	var g3 *Grant
	g1, ok1 := st.Request(1, func(*Simulator, *Grant) { t.Fatal("car 1 must not be resumed") })
	g2, ok2 := st.Request(2, func(*Simulator, *Grant) { t.Fatal("car 2 must not be resumed") })
	none, ok3 := st.Request(3, grantCollector(&g3))

	// THEN the first two are served and the third is queued
	require.True(t, ok1)
	require.True(t, ok2)
	assert.False(t, ok3)
	assert.Nil(t, none)
	assert.Equal(t, 2, st.InService())
	assert.Equal(t, 1, st.QueueLen())
	assert.Equal(t, 1, m.MaxQueue[Primer])

	// WHEN car 1 releases at t=30
	s.ScheduleAfter(30, "release car-1", func(*Simulator) {
		st.Release(g1)
		// slot passes within the same call: occupancy never dips
		assert.Equal(t, 2, st.InService())
		assert.Equal(t, 0, st.QueueLen())
	})
	s.Run()

	// THEN car 3 is granted at t=30 after waiting 30
	require.NotNil(t, g3)
	assert.Equal(t, 3, g3.CarID)
	assert.Equal(t, 30.0, g3.GrantedAt)
	assert.Equal(t, 30.0, g3.Wait())
	assert.False(t, g2.Released())
	assert.True(t, g1.Released())
}

func TestStation_Release_ServesWaitersInFIFOOrder(t *testing.T) {
	// GIVEN a busy capacity-1 station with cars 5, 2, 9 queued in that order
	s, st, _, _ := newTestStation(1, 10)
	holder, ok := st.Request(1, func(*Simulator, *Grant) {})
	require.True(t, ok)

	var order []int
	var release func(sim *Simulator, g *Grant)
	release = func(sim *Simulator, g *Grant) {
		order = append(order, g.CarID)
		sim.ScheduleAfter(1, "release", func(*Simulator) { st.Release(g) })
	}
	for _, id := range []int{5, 2, 9} {
		_, ok := st.Request(id, release)
		require.False(t, ok)
	}

	// WHEN the holder releases and each waiter holds the slot for 1 minute
	st.Release(holder)
	s.Run()

	// THEN grants follow request order
	assert.Equal(t, []int{5, 2, 9}, order)
	assert.Equal(t, 0, st.InService())
}

func TestStation_QueuedBehindWaiters_EvenWhenSlotFree(t *testing.T) {
	// GIVEN a handoff pending in the event queue (slot already reassigned)
	s, st, _, _ := newTestStation(1, 10)
	g1, _ := st.Request(1, func(*Simulator, *Grant) {})
	var g2 *Grant
	st.Request(2, grantCollector(&g2))
	st.Release(g1)

	// WHEN a third car arrives before car 2's continuation runs
	_, ok := st.Request(3, func(*Simulator, *Grant) {})

	// THEN it must queue: car 2 already owns the slot
	assert.False(t, ok)
	s.Run()
	require.NotNil(t, g2)
	assert.Equal(t, 2, g2.CarID)
}

func TestStation_QueueAlert_FiresWhenDepthExceedsThreshold(t *testing.T) {
	// GIVEN a capacity-1 station with threshold 1
	_, st, m, sink := newTestStation(1, 1)

	// WHEN four cars request (depths sampled: 0, 1, 2, 3)
	for id := 1; id <= 4; id++ {
		st.Request(id, func(*Simulator, *Grant) {})
	}

	// THEN only the samples above the threshold alert
	alerts := sink.ofKind(NotifyQueueAlert)
	require.Len(t, alerts, 2)
	assert.Equal(t, 2, alerts[0].QueueDepth)
	assert.Equal(t, 3, alerts[1].QueueDepth)
	assert.Equal(t, Primer, alerts[1].Station)
	assert.Equal(t, 2, m.Alerts)
	assert.Equal(t, 3, m.MaxQueue[Primer])
}

func TestStation_Release_Misuse_Panics(t *testing.T) {
	_, st, _, _ := newTestStation(1, 3)
	_, other, _, _ := newTestStation(1, 3)
	g, _ := st.Request(1, func(*Simulator, *Grant) {})
	foreign, _ := other.Request(2, func(*Simulator, *Grant) {})

	assert.Panics(t, func() { st.Release(nil) }, "nil grant")
	assert.Panics(t, func() { st.Release(foreign) }, "grant from another station")
	st.Release(g)
	assert.Panics(t, func() { st.Release(g) }, "double release")
}

func TestNewStation_ZeroCapacity_Panics(t *testing.T) {
	assert.Panics(t, func() { NewStation(NewSimulator(), Cleaning, 0, 3, nil, nil) })
}

func TestStation_NilMetricsAndSink_AreTolerated(t *testing.T) {
	st := NewStation(NewSimulator(), Painting, 1, 0, nil, nil)
	assert.NotPanics(t, func() {
		st.Request(1, func(*Simulator, *Grant) {})
		st.Request(2, func(*Simulator, *Grant) {})
	})
}

func TestStation_Request_Queued_LogsCarAhead(t *testing.T) {
	// GIVEN debug logging captured from the standard logger
	hook := test.NewGlobal()
	defer hook.Reset()
	prev := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)
	defer logrus.SetLevel(prev)

	// WHEN car 1 holds the only slot, car 2 queues, then car 3 queues
	_, st, _, _ := newTestStation(1, 10)
	st.Request(1, func(*Simulator, *Grant) {})
	st.Request(2, func(*Simulator, *Grant) {})
	st.Request(3, func(*Simulator, *Grant) {})

	// THEN only car 3 found someone already waiting, and it names the head
	var queued []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.DebugLevel {
			queued = append(queued, e.Message)
		}
	}
	assert.Equal(t, []string{"[t 0000.00] car 3 queued at Primer behind car 2"}, queued)
	assert.Equal(t, 2, st.Queue().Peek().CarID)
}
