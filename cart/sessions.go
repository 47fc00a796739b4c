package cart

import (
	"sync"
	"time"
)

type session struct {
	cart    *Cart
	touched time.Time
}

// Sessions owns one Cart per session key (the authenticated user id).
type Sessions struct {
	mu       sync.Mutex
	carts    map[string]*session
	shipping ShippingFunc
	now      func() time.Time
}

func NewSessions(shipping ShippingFunc) *Sessions {
	return &Sessions{
		carts:    make(map[string]*session),
		shipping: shipping,
		now:      time.Now,
	}
}

// Update runs fn against the cart for key, creating it on first use, and
// returns the resulting summary.
func (s *Sessions) Update(key string, fn func(*Cart)) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.carts[key]
	if !ok {
		sess = &session{cart: New(s.shipping)}
		s.carts[key] = sess
	}
	fn(sess.cart)
	sess.touched = s.now()
	return sess.cart.Summary()
}

func (s *Sessions) View(key string) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.carts[key]
	if !ok {
		return New(s.shipping).Summary()
	}
	return sess.cart.Summary()
}

// Take removes the cart for key and returns what it held, so a checkout
// consumes exactly the lines it prices.
func (s *Sessions) Take(key string) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.carts[key]
	if !ok {
		return New(s.shipping).Summary()
	}
	delete(s.carts, key)
	return sess.cart.Summary()
}

// Restore merges lines back into the cart for key after a failed checkout.
func (s *Sessions) Restore(key string, lines []Line) {
	if len(lines) == 0 {
		return
	}
	s.Update(key, func(c *Cart) {
		for _, l := range lines {
			c.AddLine(l)
		}
	})
}

// Sweep drops carts untouched for longer than maxIdle and returns how many
// were dropped.
func (s *Sessions) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	dropped := 0
	for key, sess := range s.carts {
		if sess.touched.Before(cutoff) {
			delete(s.carts, key)
			dropped++
		}
	}
	return dropped
}
