package position_test

import (
	"fmt"

	"github.com/planora/shelfplan/pkg/position"
)

func ExampleGroupKey() {
	// The integer part picks the column, the fraction orders the stack.
	fmt.Println("Column of 3.0:", position.GroupKey(3.0))
	fmt.Println("Column of 3.1:", position.GroupKey(3.1))
	fmt.Println("Rank of 3.1:", position.StackRank(3.1))
	// Output:
	// Column of 3.0: 3
	// Column of 3.1: 3
	// Rank of 3.1: 0.10000000000000009
}

func ExampleAssignMissing() {
	// Two products carry positions, two do not. The unset ones receive the
	// lowest free integer columns in array order.
	got := position.AssignMissing([]float64{2, 0, 3.1, 0})
	fmt.Println(got)
	// Output:
	// [2 1 3.1 4]
}
