// Package smile provides CART decision tree induction and Random Forest
// ensembles for Go, designed for backend services and batch scoring.
//
// The library exposes two API surfaces:
//
//   - an engine API in sklearn/tree and sklearn/ensemble working on
//     column-oriented datasets (core/data), with out-of-bag error
//     estimation, variable importance, and forest merge/trim;
//   - scikit-learn-style estimators (RandomForestClassifier,
//     RandomForestRegressor) with Fit/Predict/Score over gonum matrices.
//
// # Installation
//
//	go get github.com/TiftGolofebitke/smile-sub000
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/TiftGolofebitke/smile-sub000/sklearn/ensemble"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 2, []float64{0, 0, 0, 1, 1, 0, 1, 1})
//	    y := mat.NewDense(4, 1, []float64{0, 1, 1, 0})
//
//	    clf := ensemble.NewRandomForestClassifier(ensemble.WithNTrees(50))
//	    if err := clf.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, err := clf.Predict(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mat.Formatted(pred))
//	}
//
// # Packages
//
//   - core/data: column-oriented dataset view with nominal feature support
//     and loaders for gonum matrices and NumPy .npy files
//   - core/model: estimator fitted-state tracking
//   - core/parallel: chunked worker helpers used by training and batch
//     prediction
//   - sklearn/tree: CART induction (Gini, entropy, classification error,
//     variance reduction), best-first growth, leaf collapse
//   - sklearn/ensemble: bagging, parallel forest growth, OOB estimation,
//     merge/trim, sklearn-style wrappers
//   - metrics: accuracy, MSE, RMSE, MAE, R²
//   - pkg/errors, pkg/log: structured errors and logging
package smile
