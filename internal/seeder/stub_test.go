package seeder

import "time"

// stubSource returns scripted values. Float64 and Intn pop from their queues
// and fall back to the defaults once a queue is empty.
type stubSource struct {
	floats   []float64
	ints     []int
	float    float64
	name     string
	company  string
	bs       string
	lastName string
	now      time.Time
}

func newStub() *stubSource {
	return &stubSource{
		float:    0.9,
		name:     "John Smith",
		company:  "Acme, Inc.",
		bs:       "synergize scalable e-markets",
		lastName: "Smith",
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *stubSource) Float64() float64 {
	if len(s.floats) == 0 {
		return s.float
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *stubSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *stubSource) IntRange(min, max int) int         { return min + s.Intn(max-min+1) }
func (s *stubSource) Uniform(min, max float64) float64 { return min }
func (s *stubSource) Name() string                     { return s.name }
func (s *stubSource) Company() string                  { return s.company }
func (s *stubSource) BS() string                       { return s.bs }
func (s *stubSource) LastName() string                 { return s.lastName }
func (s *stubSource) Email() string                    { return "someone@example.com" }
func (s *stubSource) Country() string                  { return "Norway" }
func (s *stubSource) Phone() string                    { return "+1 (555) 010-2030 ext. 4455" }
func (s *stubSource) Now() time.Time                   { return s.now }

func (s *stubSource) DateBetween(start, end time.Time) time.Time { return start }
