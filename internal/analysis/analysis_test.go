package analysis

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestLinearFitExactLine(t *testing.T) {
	line, ok := LinearFit([]float64{1, 2, 3})
	if !ok {
		t.Fatal("expected a fit")
	}
	if math.Abs(line.Slope-1) > eps || math.Abs(line.Intercept-1) > eps {
		t.Fatalf("got slope=%v intercept=%v, want 1/1", line.Slope, line.Intercept)
	}

	fitted := line.Fitted(3)
	for i, want := range []float64{1, 2, 3} {
		if math.Abs(fitted[i]-want) > eps {
			t.Errorf("fitted[%d] = %v, want %v", i, fitted[i], want)
		}
	}
}

func TestLinearFitNoisy(t *testing.T) {
	// Worked by hand: mean x 1.5, mean y 2, Sxy -11, Sxx 5.
	line, ok := LinearFit([]float64{5.5, 2.5, 1.5, -1.5})
	if !ok {
		t.Fatal("expected a fit")
	}
	if math.Abs(line.Slope-(-2.2)) > eps || math.Abs(line.Intercept-5.3) > eps {
		t.Fatalf("got slope=%v intercept=%v", line.Slope, line.Intercept)
	}
}

func TestLinearFitDegenerate(t *testing.T) {
	for _, ys := range [][]float64{nil, {}, {4.2}} {
		if _, ok := LinearFit(ys); ok {
			t.Errorf("LinearFit(%v) should be undefined", ys)
		}
	}
}

func TestCenteredRollingMeanConstant(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = -3.5
	}

	means, ok := CenteredRollingMean(values, 12)
	for i := range values {
		full := i >= 6 && i <= len(values)-6
		if ok[i] != full {
			t.Fatalf("ok[%d] = %v, want %v", i, ok[i], full)
		}
		if full && math.Abs(means[i]-(-3.5)) > eps {
			t.Fatalf("means[%d] = %v, want -3.5", i, means[i])
		}
	}
}

func TestCenteredRollingMeanAlignment(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4}

	means, ok := CenteredRollingMean(values, 3)
	wantOK := []bool{false, true, true, true, false}
	for i := range values {
		if ok[i] != wantOK[i] {
			t.Fatalf("window 3: ok = %v, want %v", ok, wantOK)
		}
	}
	for i := 1; i <= 3; i++ {
		if math.Abs(means[i]-float64(i)) > eps {
			t.Errorf("window 3: means[%d] = %v, want %v", i, means[i], i)
		}
	}

	// Even window: index i averages values[i-2 : i+2].
	means, ok = CenteredRollingMean(values, 4)
	wantOK = []bool{false, false, true, true, false}
	for i := range values {
		if ok[i] != wantOK[i] {
			t.Fatalf("window 4: ok = %v, want %v", ok, wantOK)
		}
	}
	if math.Abs(means[2]-1.5) > eps || math.Abs(means[3]-2.5) > eps {
		t.Errorf("window 4: means = %v", means)
	}
}

func TestCenteredRollingMeanShortSeries(t *testing.T) {
	_, ok := CenteredRollingMean([]float64{1, 2, 3}, 12)
	for i, v := range ok {
		if v {
			t.Errorf("ok[%d] should be false for a series shorter than the window", i)
		}
	}
}
