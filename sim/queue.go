// Implements the WaitQueue, which holds all slot requests waiting at a station.
// Requests are enqueued when every slot of the station is occupied.

package sim

import (
	"fmt"
	"strings"
)

// GrantContinuation resumes a process that was waiting for a station slot.
// It receives the Grant that now represents the process's occupancy.
type GrantContinuation func(sim *Simulator, g *Grant)

// SlotRequest is a pending request for one station slot.
type SlotRequest struct {
	CarID       int               // Car that asked for the slot
	RequestedAt float64           // Simulation time of the request
	resume      GrantContinuation // Resumed once the slot is granted
}

func (r *SlotRequest) String() string {
	return fmt.Sprintf("car-%d@%.2f", r.CarID, r.RequestedAt)
}

// WaitQueue represents a FIFO queue of slot requests waiting at a station.
// The first request to arrive among those still waiting is the first granted,
// irrespective of the service time the requester will need.
type WaitQueue struct {
	queue []*SlotRequest // FIFO queue of requests
}

// Enqueue adds a request to the back of the wait queue.
func (wq *WaitQueue) Enqueue(r *SlotRequest) {
	if r == nil {
		panic("Enqueue: request must not be nil")
	}
	wq.queue = append(wq.queue, r)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(val.String())
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of requests in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the request at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *SlotRequest {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Dequeue removes and returns the request at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *SlotRequest {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return head
}
