// Package dataprocessing implements the tabular transformation
// pipeline: CSV loading with validation, row/column cleaning, z-score
// outlier removal, min-max normalization, missing-value imputation, and
// per-column summary statistics.
//
// Every operation takes a dataset.Table and returns a new logical
// version of it; callers must carry the returned table forward and drop
// their stale reference. Operations validate their preconditions up
// front and fail atomically with a typed errors.PipelineError, except
// cleaning, which recovers per-cell coercion failures locally so a
// single malformed cell never discards the dataset.
package dataprocessing
