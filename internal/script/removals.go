package script

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RemovalSet is the set of item nums explicitly marked Removed. Removal is
// authoritative over any uploaded artifacts for those nums.
type RemovalSet map[int]struct{}

// NewRemovalSet returns an empty removal set.
func NewRemovalSet() RemovalSet {
	return make(RemovalSet)
}

func (r RemovalSet) Add(num int) {
	r[num] = struct{}{}
}

func (r RemovalSet) Remove(num int) {
	delete(r, num)
}

func (r RemovalSet) Has(num int) bool {
	_, ok := r[num]
	return ok
}

// Nums returns the set's members in ascending order.
func (r RemovalSet) Nums() []int {
	nums := make([]int, 0, len(r))
	for num := range r {
		nums = append(nums, num)
	}
	sort.Ints(nums)
	return nums
}

// ParseRemovals reads a removal list, one num per line. Non-numeric lines
// are ignored.
func ParseRemovals(data []byte) RemovalSet {
	set := NewRemovalSet()
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		num, err := strconv.Atoi(line)
		if err != nil || num <= 0 {
			continue
		}
		set.Add(num)
	}
	return set
}

// RenderRemovals is the inverse of ParseRemovals, one num per line in
// ascending order.
func RenderRemovals(set RemovalSet) []byte {
	var builder strings.Builder
	for _, num := range set.Nums() {
		fmt.Fprintf(&builder, "%d\n", num)
	}
	return []byte(builder.String())
}
