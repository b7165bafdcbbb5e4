// Package io reads and writes correlation matrices.
//
// # Formats
//
// Delimited text (.csv, .tsv) holds the matrix with a header of names; rows
// may repeat the name in a first column:
//
//	,height,weight,age
//	height,1,0.71,0.2
//	weight,0.71,1,-0.4
//	age,0.2,-0.4,1
//
// JSON (.json) and YAML (.yaml, .yml) use the same two fields:
//
//	{"names": ["height", "weight"], "matrix": [[1, 0.71], [0.71, 1]]}
//
// names is optional everywhere; missing names default to N1..Nn.
//
// # Observations
//
// [ReadObservations] and [ImportObservations] take raw data instead, one
// observation per row under a header of variable names, and return the
// Pearson correlation matrix of the columns.
//
// # Import and Export
//
// [Import] and [Export] pick the format from the file extension. Missing
// files are reported with [errors.ErrCodeFileNotFound], unknown extensions
// with [errors.ErrCodeInvalidFormat]. Everything read is validated by
// [matrix.New]: square, finite, symmetric.
package io
