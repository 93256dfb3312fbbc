package triplebuffer_test

import (
	"context"
	"sync"
	"time"

	triplebuffer "code.cloudfoundry.org/go-triplebuffer"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Poller", func() {
	var (
		spy *spySource
		p   *triplebuffer.Poller[string]
	)

	BeforeEach(func() {
		spy = new(spySource)
		p = triplebuffer.NewPoller[string](spy, triplebuffer.WithPollingInterval(time.Millisecond))
	})

	It("returns the available result", func() {
		spy.dataList = []string{"a", "b"}

		Expect(mustNext[string](p)).To(Equal("a"))
		Expect(mustNext[string](p)).To(Equal("b"))
	})

	It("polls the given source until data is available", func() {
		go func() {
			time.Sleep(250 * time.Millisecond)
			spy.mu.Lock()
			defer spy.mu.Unlock()
			spy.dataList = []string{"a"}
		}()

		Expect(mustNext[string](p)).To(Equal("a"))
		Expect(spy.calls()).To(BeNumerically(">", 1))
	})

	Context("when the context is done", func() {
		BeforeEach(func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			spy.current = "stale"
			p = triplebuffer.NewPoller[string](spy, triplebuffer.WithPollerContext(ctx))
		})

		It("returns the current value and false", func() {
			v, ok := p.Next()
			Expect(ok).To(BeFalse())
			Expect(v).To(Equal("stale"))
		})
	})

	Context("wrapping a Reader", func() {
		It("returns values published by a Writer", func() {
			tb := triplebuffer.New("", "", "")
			r := tb.Reader()
			defer r.Close()
			rp := triplebuffer.NewPoller[string](r, triplebuffer.WithPollingInterval(time.Millisecond))

			done := make(chan struct{})
			go func() {
				defer close(done)
				w := tb.Writer()
				defer w.Close()
				time.Sleep(50 * time.Millisecond)
				w.Write("published")
			}()

			Expect(mustNext[string](rp)).To(Equal("published"))
			Eventually(done).Should(BeClosed())
		})
	})
})

type nexter[T any] interface {
	Next() (T, bool)
}

func mustNext[T any](n nexter[T]) T {
	GinkgoHelper()
	v, ok := n.Next()
	Expect(ok).To(BeTrue(), "Next() returned before a new value was available")
	return v
}

type spySource struct {
	mu       sync.Mutex
	dataList []string
	current  string
	called   int
}

func (s *spySource) Update() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.called++
	if len(s.dataList) == 0 {
		return false
	}

	s.current = s.dataList[0]
	s.dataList = s.dataList[1:]
	return true
}

func (s *spySource) OutputBuffer() *string {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.current
	return &v
}

func (s *spySource) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.called
}
