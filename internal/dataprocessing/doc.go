// Package dataprocessing is the extraction and normalization engine for
// daily treasury workbooks. It turns a semi-structured Arabic cash-movement
// workbook into normalized, validated, aggregated report data for one
// target date.
//
// # Architecture
//
// The package is organized leaf-first:
//
//  1. Normalizer: digit/locale normalization and numeric/date coercion
//  2. Grid helpers: header-offset resolution and tolerant column lookup
//  3. Locator: label search, nearest-number search, header-row location
//  4. Ledger extractor: the three daily sheets filtered to the target date
//  5. Summary extractor: KPIs, monthly expenses and receivables tables
//  6. Assembler: orchestration and error merging
//
// # Data flow
//
//	xlsx buffer → workbook.Open → Assembler → ReportBundle + ValidationErrors
//
// # Error handling
//
// Extraction problems are collected domain.ValidationError values, never
// errors returned up the stack: the engine always prefers degraded output
// over no output. The only hard failure is a workbook that cannot be
// decoded at all, which the caller reports as a file-kind error.
//
// Header rows are not at fixed offsets and labels drift in spacing, case
// and diacritics, so every text comparison in this package goes through
// explicit normalization helpers rather than raw equality.
package dataprocessing
