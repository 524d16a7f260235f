package application

import (
	"context"
	"errors"

	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
)

// cancellation is polled once per block
const sumBlock = 1 << 20

// ComputeService runs the CPU-bound demo off the request goroutine on a bounded pool.
type ComputeService struct {
	Pool       *helpers.TaskPool
	Iterations int64
}

func NewComputeService(pool *helpers.TaskPool, iterations int64) *ComputeService {
	return &ComputeService{Pool: pool, Iterations: iterations}
}

// Sum adds 0..Iterations-1. It fails with ErrComputeUnavailable when every
// pool slot is busy.
func (s *ComputeService) Sum(ctx context.Context) (int64, error) {
	var total int64
	err := s.Pool.Do(ctx, func(ctx context.Context) error {
		var acc int64
		for i := int64(0); i < s.Iterations; i++ {
			if i%sumBlock == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			acc += i
		}
		total = acc
		return nil
	})
	if err != nil {
		if errors.Is(err, helpers.ErrPoolBusy) {
			return 0, ErrComputeUnavailable.Wrap(err)
		}
		return 0, err
	}
	return total, nil
}
