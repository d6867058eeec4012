package dispatch

import (
	"math"
	"slices"

	"github.com/13bad37/Elevator-Control-System/internal/carstate"
	"github.com/13bad37/Elevator-Control-System/internal/floors"
)

// effectivePosition is the car's numeric position, advanced one step toward
// the destination when the car is already committed to moving (doors
// Closing or travelling Between). Without the adjustment a floor could be
// queued just behind a car that is about to pass it.
func (c *Car) effectivePosition() int {
	cur, err := floors.Parse(c.CurrentFloor)
	if err != nil {
		return 0
	}
	if c.Status == carstate.StatusClosing || c.Status == carstate.StatusBetween {
		dst, err := floors.Parse(c.DestinationFloor)
		if err == nil && dst.Numeric != cur.Numeric {
			if dst.Numeric > cur.Numeric {
				return cur.Numeric + 1
			}
			return cur.Numeric - 1
		}
	}
	return cur.Numeric
}

// sweepUp infers the car's current sweep direction: from its movement if
// it has a destination, else from the head of its queue, else from the
// floor about to be inserted.
func (c *Car) sweepUp(newFloor int) bool {
	cur, err := floors.Parse(c.CurrentFloor)
	if err != nil {
		return true
	}
	dst, err := floors.Parse(c.DestinationFloor)
	if err == nil && dst.Numeric != cur.Numeric {
		return dst.Numeric > cur.Numeric
	}
	if len(c.queue) > 0 {
		if head, err := floors.Parse(c.queue[0]); err == nil {
			return head.Numeric > cur.Numeric
		}
	}
	return newFloor > cur.Numeric
}

// insert places a floor into the queue under the SCAN policy. A floor
// still ahead of the car joins the current sweep unless some queued sweep
// floor lies beyond it (the sweep has already committed past it); anything
// else waits for the return sweep at the tail. Duplicates are dropped, and
// the head target is never displaced.
func (c *Car) insert(floor string) {
	if slices.Contains(c.queue, floor) {
		return
	}
	f, err := floors.Parse(floor)
	if err != nil {
		return
	}
	if len(c.queue) == 0 {
		c.queue = []string{floor}
		return
	}

	pos := c.effectivePosition()
	up := c.sweepUp(f.Numeric)

	ahead := func(n int) bool {
		if up {
			return n > pos
		}
		return n < pos
	}
	beyond := func(n, m int) bool {
		if up {
			return n > m
		}
		return n < m
	}

	if ahead(f.Numeric) {
		joins := true
		for _, q := range c.queue {
			qf, err := floors.Parse(q)
			if err != nil {
				continue
			}
			if ahead(qf.Numeric) && beyond(qf.Numeric, f.Numeric) {
				joins = false
				break
			}
		}
		if joins {
			// Past every queued floor of this sweep: slot in right after
			// the sweep prefix. The prefix always holds the head target,
			// then runs while floors stay ahead of the car and keep
			// advancing in the sweep direction; the first floor breaking
			// that order opens the return sweep.
			i := 0
			last := pos
			for i < len(c.queue) {
				qf, err := floors.Parse(c.queue[i])
				if err != nil || (i > 0 && (!ahead(qf.Numeric) || !beyond(qf.Numeric, last))) {
					break
				}
				last = qf.Numeric
				i++
			}
			c.queue = slices.Insert(c.queue, i, floor)
			return
		}
	}
	c.queue = append(c.queue, floor)
}

// eta estimates how soon the car can reach target: the travel distance
// from its effective position plus one stop per queued floor.
func (c *Car) eta(target string) int {
	tf, err := floors.Parse(target)
	if err != nil {
		return math.MaxInt
	}
	distance := tf.Numeric - c.effectivePosition()
	if distance < 0 {
		distance = -distance
	}
	return distance + len(c.queue)
}
