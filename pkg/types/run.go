// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for textpdf: conversion
// settings, per-file results and history records.
package types

import "time"

// ConversionStatus indicates the outcome of converting one text file.
type ConversionStatus string

const (
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// ConversionResult is the outcome of converting one input file.
type ConversionResult struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`

	// Rows is the number of rows written, one per input line.
	Rows int `json:"rows" yaml:"rows"`

	// Dropped counts characters removed because the target encoding
	// could not represent them.
	Dropped int `json:"dropped" yaml:"dropped"`

	// Fallbacks counts lines that went through the ASCII fallback.
	Fallbacks int `json:"fallbacks" yaml:"fallbacks"`

	Status ConversionStatus `json:"status" yaml:"status"`
	Err    error            `json:"-" yaml:"-"`
}

// OK reports whether the conversion succeeded.
func (r ConversionResult) OK() bool {
	return r.Status == ConversionDone
}

// Run is one row of the conversion history.
type Run struct {
	ID         string           `json:"id" yaml:"id"`
	Input      string           `json:"input" yaml:"input"`
	Output     string           `json:"output" yaml:"output"`
	Encoding   string           `json:"encoding" yaml:"encoding"`
	Rows       int              `json:"rows" yaml:"rows"`
	Dropped    int              `json:"dropped" yaml:"dropped"`
	Fallbacks  int              `json:"fallbacks" yaml:"fallbacks"`
	Status     ConversionStatus `json:"status" yaml:"status"`
	Error      string           `json:"error,omitempty" yaml:"error,omitempty"`
	StartedAt  time.Time        `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time        `json:"finished_at" yaml:"finished_at"`
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
