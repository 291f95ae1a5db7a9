package engine

import (
	"math"
	"testing"
)

func TestExponentialAverage_SeedsWithFirstValue(t *testing.T) {
	t.Parallel()

	averaged := ExponentialAverage([]float64{36.9}, 3)
	if len(averaged) != 1 {
		t.Fatalf("expected 1 value, got %d", len(averaged))
	}
	if !floatsClose(averaged[0], 36.9) {
		t.Fatalf("expected first value to seed the average, got %f", averaged[0])
	}
}

func TestExponentialAverage_Recurrence(t *testing.T) {
	t.Parallel()

	averaged := ExponentialAverage([]float64{36.0, 37.0, 38.0}, 3)

	want := []float64{36.0, 36.5, 37.25}
	for i, value := range want {
		if !floatsClose(averaged[i], value) {
			t.Fatalf("expected averaged[%d]=%f, got %f", i, value, averaged[i])
		}
	}
}

func TestExponentialAverage_ConvergesOnConstantSeries(t *testing.T) {
	t.Parallel()

	values := make([]float64, 40)
	for i := range values {
		values[i] = 36.7
	}

	for _, span := range []int{3, 30} {
		averaged := ExponentialAverage(values, span)
		last := averaged[len(averaged)-1]
		if math.Abs(last-36.7) > 1e-9 {
			t.Fatalf("expected span %d average to converge to 36.7, got %f", span, last)
		}
	}
}

func TestExponentialAverage_EmptyInput(t *testing.T) {
	t.Parallel()

	if averaged := ExponentialAverage(nil, 3); averaged != nil {
		t.Fatalf("expected nil for empty input, got %v", averaged)
	}
}

func TestSampleStdDev(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "no values", values: nil, want: 0},
		{name: "single value", values: []float64{36.5}, want: 0},
		{name: "two values", values: []float64{1, 3}, want: math.Sqrt(2)},
		{name: "constant values", values: []float64{2, 2, 2, 2}, want: 0},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			if got := sampleStdDev(testCase.values); !floatsClose(got, testCase.want) {
				t.Fatalf("expected stddev %f, got %f", testCase.want, got)
			}
		})
	}
}
