package weakec

import (
	"reflect"
	"testing"
)

func TestFactorize(t *testing.T) {
	cases := []struct {
		n    uint64
		want map[uint64]int
	}{
		{2, map[uint64]int{2: 1}},
		{12, map[uint64]int{2: 2, 3: 1}},
		{79, map[uint64]int{79: 1}},
		{237, map[uint64]int{3: 1, 79: 1}},
		{40612, map[uint64]int{2: 2, 11: 1, 13: 1, 71: 1}},
		{1024, map[uint64]int{2: 10}},
	}
	for _, tc := range cases {
		if got := Factorize(tc.n); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Factorize(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}
}
