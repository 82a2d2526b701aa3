package data

import (
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"github.com/TiftGolofebitke/smile-sub000/pkg/errors"
)

// ReadNpyMatrix reads a NumPy .npy file into a dense matrix. The file must
// hold a 1-D or 2-D float array; 1-D arrays come back as a column vector.
func ReadNpyMatrix(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "data.ReadNpyMatrix: open %s", path)
	}
	defer f.Close()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "data.ReadNpyMatrix: %s is not a npy file", path)
	}

	m := &mat.Dense{}
	if err := r.Read(m); err != nil {
		return nil, errors.Wrapf(err, "data.ReadNpyMatrix: read %s", path)
	}
	return m, nil
}

// ClassificationFromNpy loads a classification dataset from a pair of .npy
// files: an n×p feature matrix and a length-n integer label vector.
func ClassificationFromNpy(xPath, yPath string, nominal []bool) (*Dataset, error) {
	X, err := ReadNpyMatrix(xPath)
	if err != nil {
		return nil, err
	}
	y, err := ReadNpyMatrix(yPath)
	if err != nil {
		return nil, err
	}
	return ClassificationFromMatrix(X, asColumnVector(y), nominal)
}

// RegressionFromNpy loads a regression dataset from a pair of .npy files:
// an n×p feature matrix and a length-n target vector.
func RegressionFromNpy(xPath, yPath string, nominal []bool) (*Dataset, error) {
	X, err := ReadNpyMatrix(xPath)
	if err != nil {
		return nil, err
	}
	y, err := ReadNpyMatrix(yPath)
	if err != nil {
		return nil, err
	}
	return RegressionFromMatrix(X, asColumnVector(y), nominal)
}

// asColumnVector reshapes a 1×n matrix to n×1; n×1 input passes through.
func asColumnVector(m *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	if cols == 1 || rows == 0 {
		return m
	}
	if rows == 1 {
		out := mat.NewDense(cols, 1, nil)
		for i := 0; i < cols; i++ {
			out.Set(i, 0, m.At(0, i))
		}
		return out
	}
	return m
}
