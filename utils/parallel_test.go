package utils

import (
	"context"
	"sync"
	"testing"

	"go.viam.com/test"
)

func TestGroupWorkParallel(t *testing.T) {
	for _, total := range []int{0, 1, 7, 100, 1001} {
		seen := make([]int, total)
		var mu sync.Mutex
		groups := 0
		err := GroupWorkParallel(
			context.Background(),
			total,
			func(groupSize int) { groups = groupSize },
			func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc) {
				test.That(t, to-from, test.ShouldEqual, groupSize)
				return func(memberNum, workNum int) {
					mu.Lock()
					seen[workNum]++
					mu.Unlock()
				}, nil
			},
		)
		test.That(t, err, test.ShouldBeNil)
		for _, count := range seen {
			test.That(t, count, test.ShouldEqual, 1)
		}
		if total > 0 {
			test.That(t, groups, test.ShouldBeGreaterThan, 0)
			test.That(t, groups, test.ShouldBeLessThanOrEqualTo, ParallelFactor)
		}
	}
}

func TestGroupWorkParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := GroupWorkParallel(ctx, 10, nil, func(groupNum, groupSize, from, to int) (MemberWorkFunc, GroupWorkDoneFunc) {
		return func(memberNum, workNum int) {
			t.Error("no work should run on a canceled context")
		}, nil
	})
	test.That(t, err, test.ShouldBeError, context.Canceled)
}
