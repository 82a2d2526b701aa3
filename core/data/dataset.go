// Package data provides the column-oriented dataset view consumed by the
// tree and ensemble packages. A Dataset is immutable once constructed: the
// engine reads rows and columns but never mutates them, so one Dataset can
// back many concurrent tree builds.
package data

import (
	"sort"
	"strconv"

	"github.com/TiftGolofebitke/smile-sub000/pkg/errors"
)

// Column holds one feature column. A column is either continuous (Values are
// arbitrary float64s) or nominal (Values are non-negative integer category
// codes stored as float64, with Categories giving the code count).
type Column struct {
	Values     []float64
	Nominal    bool
	Categories int

	// ascending order of Values, computed once for continuous columns and
	// shared by every tree fitted on this dataset
	order []int
}

// Order returns the indices of the column's values in ascending order, ties
// broken by original row order. Nil for nominal columns.
func (c *Column) Order() []int {
	return c.order
}

// Dataset is an immutable view over feature columns plus a response vector.
// Exactly one of the label vector (classification) or the target vector
// (regression) is set.
type Dataset struct {
	n       int
	columns []Column

	labels  []int // class labels in [0, k)
	classes int

	y []float64 // regression targets
}

// NewClassification constructs a classification dataset. Labels must be
// contiguous integers starting at zero; column values must be finite and
// nominal codes must lie in [0, Categories).
func NewClassification(columns []Column, labels []int) (*Dataset, error) {
	n := len(labels)
	if n == 0 || len(columns) == 0 {
		return nil, errors.NewModelError("data.NewClassification", "empty data", errors.ErrEmptyData)
	}

	if err := validateColumns("data.NewClassification", columns, n); err != nil {
		return nil, err
	}

	k := 0
	for _, label := range labels {
		if label < 0 {
			return nil, errors.NewValueError("data.NewClassification",
				"class labels must be non-negative")
		}
		if label+1 > k {
			k = label + 1
		}
	}
	// every label value below k must occur at least once
	present := make([]bool, k)
	for _, label := range labels {
		present[label] = true
	}
	for label, ok := range present {
		if !ok {
			return nil, errors.NewValueError("data.NewClassification",
				"class labels must be contiguous starting at 0, label "+strconv.Itoa(label)+" is missing")
		}
	}

	ds := &Dataset{
		n:       n,
		columns: columns,
		labels:  labels,
		classes: k,
	}
	ds.buildOrders()
	return ds, nil
}

// NewRegression constructs a regression dataset. Targets and column values
// must be finite.
func NewRegression(columns []Column, y []float64) (*Dataset, error) {
	n := len(y)
	if n == 0 || len(columns) == 0 {
		return nil, errors.NewModelError("data.NewRegression", "empty data", errors.ErrEmptyData)
	}

	if err := validateColumns("data.NewRegression", columns, n); err != nil {
		return nil, err
	}
	if err := errors.CheckNumericalStability("data.NewRegression response", y, 0); err != nil {
		return nil, err
	}

	ds := &Dataset{
		n:       n,
		columns: columns,
		y:       y,
	}
	ds.buildOrders()
	return ds, nil
}

func validateColumns(op string, columns []Column, n int) error {
	for j := range columns {
		col := &columns[j]
		if len(col.Values) != n {
			return errors.NewDimensionError(op, n, len(col.Values), 0)
		}
		if err := errors.CheckNumericalStability(op+" column", col.Values, j); err != nil {
			return err
		}
		if col.Nominal {
			if col.Categories < 2 {
				return errors.NewValueError(op, "nominal column needs at least 2 categories")
			}
			for _, v := range col.Values {
				code := int(v)
				if float64(code) != v || code < 0 || code >= col.Categories {
					return errors.NewValueError(op, "nominal code out of range")
				}
			}
		}
	}
	return nil
}

// buildOrders precomputes the ascending order index of every continuous
// column. Sorting is stable so equal values keep original row order.
func (ds *Dataset) buildOrders() {
	for j := range ds.columns {
		col := &ds.columns[j]
		if col.Nominal {
			continue
		}
		order := make([]int, ds.n)
		for i := range order {
			order[i] = i
		}
		values := col.Values
		sort.SliceStable(order, func(a, b int) bool {
			return values[order[a]] < values[order[b]]
		})
		col.order = order
	}
}

// Len returns the number of rows.
func (ds *Dataset) Len() int { return ds.n }

// Features returns the number of feature columns.
func (ds *Dataset) Features() int { return len(ds.columns) }

// Column returns the j-th feature column.
func (ds *Dataset) Column(j int) *Column { return &ds.columns[j] }

// Value returns the value of feature j for row i.
func (ds *Dataset) Value(i, j int) float64 { return ds.columns[j].Values[i] }

// Row copies row i's feature values into dst, allocating when dst is too
// small, and returns the slice.
func (ds *Dataset) Row(i int, dst []float64) []float64 {
	p := len(ds.columns)
	if cap(dst) < p {
		dst = make([]float64, p)
	}
	dst = dst[:p]
	for j := range ds.columns {
		dst[j] = ds.columns[j].Values[i]
	}
	return dst
}

// Classification reports whether the dataset carries class labels.
func (ds *Dataset) Classification() bool { return ds.labels != nil }

// Labels returns the class label vector. Nil for regression datasets.
func (ds *Dataset) Labels() []int { return ds.labels }

// Classes returns the number of distinct class labels. Zero for regression.
func (ds *Dataset) Classes() int { return ds.classes }

// Y returns the regression target vector. Nil for classification datasets.
func (ds *Dataset) Y() []float64 { return ds.y }
