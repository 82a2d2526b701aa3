package errors

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		kind    string
		err     error
		wantMsg string
	}{
		{
			name:    "with original error",
			op:      "Fit",
			kind:    "invalid input",
			err:     fmt.Errorf("test error"),
			wantMsg: "smile: Fit: invalid input: test error",
		},
		{
			name:    "without original error",
			op:      "Predict",
			kind:    "not fitted",
			err:     nil,
			wantMsg: "smile: Predict: not fitted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Fatalf("expected ModelError, got %T", err)
			}
			if tt.err != nil && modelErr.Unwrap() != tt.err {
				t.Errorf("Unwrap() = %v, want %v", modelErr.Unwrap(), tt.err)
			}
		})
	}
}

func TestNewNotFittedError(t *testing.T) {
	err := NewNotFittedError("RandomForestClassifier", "Predict")

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatalf("expected NotFittedError, got %T", err)
	}
	if nfe.ModelName != "RandomForestClassifier" {
		t.Errorf("ModelName = %q", nfe.ModelName)
	}
	if !strings.Contains(err.Error(), "not fitted yet") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestNewDimensionError(t *testing.T) {
	err := NewDimensionError("Predict", 5, 3, 1)

	var de *DimensionError
	if !As(err, &de) {
		t.Fatalf("expected DimensionError, got %T", err)
	}
	if de.Expected != 5 || de.Got != 3 || de.Axis != 1 {
		t.Errorf("unexpected fields: %+v", de)
	}
	if !strings.Contains(err.Error(), "features") {
		t.Errorf("axis 1 should report features: %q", err.Error())
	}

	rowErr := NewDimensionError("Fit", 10, 8, 0)
	if !strings.Contains(rowErr.Error(), "rows") {
		t.Errorf("axis 0 should report rows: %q", rowErr.Error())
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("ntrees", "must be positive", 0)

	var ve *ValidationError
	if !As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.ParamName != "ntrees" {
		t.Errorf("ParamName = %q", ve.ParamName)
	}
	if !strings.Contains(err.Error(), "must be positive") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestNewValueError(t *testing.T) {
	err := NewValueError("findBestSplit", "node has too few samples to split")
	if !strings.Contains(err.Error(), "findBestSplit") {
		t.Errorf("unexpected message: %q", err.Error())
	}

	var ve *ValueError
	if !As(err, &ve) {
		t.Fatalf("expected ValueError, got %T", err)
	}
}

func TestWarnHandler(t *testing.T) {
	var captured error
	SetWarningHandler(func(w error) {
		captured = w
	})
	defer SetWarningHandler(func(w error) {})

	w := NewDegenerateDataWarning("RandomForest", "no out-of-bag rows", "tree 3")
	Warn(w)

	if captured == nil {
		t.Fatal("warning handler was not invoked")
	}
	if !strings.Contains(captured.Error(), "no out-of-bag rows") {
		t.Errorf("unexpected warning: %q", captured.Error())
	}
}

func TestCheckNumericalStability(t *testing.T) {
	if err := CheckNumericalStability("split_score", []float64{1, 2, 3}, 0); err != nil {
		t.Errorf("finite values should pass: %v", err)
	}

	nan := []float64{1, math.NaN(), 3}
	err := CheckNumericalStability("split_score", nan, 7)
	if err == nil {
		t.Fatal("NaN should be detected")
	}

	var nie *NumericalInstabilityError
	if !As(err, &nie) {
		t.Fatalf("expected NumericalInstabilityError, got %T", err)
	}
	if nie.Iteration != 7 {
		t.Errorf("Iteration = %d, want 7", nie.Iteration)
	}
}

func TestSafeDivide(t *testing.T) {
	if got := SafeDivide(10, 2); got != 5 {
		t.Errorf("SafeDivide(10, 2) = %v", got)
	}
	if got := SafeDivide(1, 0); got != 0 {
		t.Errorf("SafeDivide(1, 0) = %v, want 0", got)
	}
}
