// Standard attribute keys for machine learning log records.
//
// Using these keys keeps training and inference logs uniform across packages
// and queryable downstream. Keys follow a hierarchical naming convention
// (e.g. "model.name", "data.samples").

package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of model.
	// Examples: "RandomForestClassifier", "RandomForestRegressor"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score", "merge", "trim"
	OperationKey = "ml.operation"

	// ComponentKey identifies the package or component emitting the record.
	// Examples: "ensemble.forest", "tree.builder"
	ComponentKey = "ml.component"
)

// Data shape and characteristics.
const (
	// SamplesKey is the number of rows in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns in the dataset.
	FeaturesKey = "data.features"

	// ClassesKey is the number of distinct class labels (classification).
	ClassesKey = "data.classes"
)

// Ensemble training context.
const (
	// TreesKey is the number of trees in a forest.
	TreesKey = "ensemble.trees"

	// TreeIndexKey is the index of a single tree within its forest.
	TreeIndexKey = "ensemble.tree_index"

	// OOBErrorKey is the aggregate out-of-bag error estimate.
	OOBErrorKey = "ensemble.oob_error"

	// WorkersKey is the number of parallel workers used for a fit.
	WorkersKey = "ensemble.workers"
)

// Performance metrics.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy, in [0, 1].
	AccuracyKey = "metrics.accuracy"

	// RMSEKey records root-mean-squared error for regression.
	RMSEKey = "metrics.rmse"
)

// Configuration.
const (
	// RandomSeedKey records the base random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)
