package mocks

import "github.com/rocketscienceinc/tictactoe/internal/pkg/random"

var _ random.Random = (*MockRandom)(nil)

// MockRandom returns queued values from Intn, then 0 once the queue is drained.
// Queued values are reduced modulo n so they always stay in range.
type MockRandom struct {
	results []int
	index   int

	// Calls records the n passed to each Intn call.
	Calls []int
}

func NewMockRandom(values ...int) *MockRandom {
	return &MockRandom{results: values}
}

func (that *MockRandom) Intn(n int) int {
	that.Calls = append(that.Calls, n)

	if n <= 0 || that.index >= len(that.results) {
		return 0
	}

	result := ((that.results[that.index] % n) + n) % n
	that.index++

	return result
}

func (that *MockRandom) QueueIntn(values ...int) {
	that.results = append(that.results, values...)
}
