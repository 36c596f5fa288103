package att

import "github.com/rigado/attmon"

// pendingRead is a Read Request waiting for its response.
type pendingRead struct {
	attr   *attmon.Attribute
	in     bool
	cid    uint16
	decode ValueFunc
}

// pendingReads is a FIFO of reads. A response consumes the oldest read
// sent in the opposite direction on the same channel.
type pendingReads struct {
	q []pendingRead
}

func (r *pendingReads) len() int { return len(r.q) }

// push appends pr. When limit is positive and the queue is full the oldest
// entries are dropped to make room; push returns how many.
func (r *pendingReads) push(pr pendingRead, limit int) int {
	dropped := 0
	if limit > 0 {
		for len(r.q) >= limit {
			r.q[0] = pendingRead{}
			r.q = r.q[1:]
			dropped++
		}
	}
	r.q = append(r.q, pr)
	return dropped
}

// take removes and returns the oldest read matching a response received
// (in) on channel cid.
func (r *pendingReads) take(in bool, cid uint16) (pendingRead, bool) {
	for i, pr := range r.q {
		if pr.in == in || pr.cid != cid {
			continue
		}
		r.q = append(r.q[:i], r.q[i+1:]...)
		return pr, true
	}
	return pendingRead{}, false
}
