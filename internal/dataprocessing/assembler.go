package dataprocessing

import (
	"context"
	"log/slog"

	"khazna/internal/workbook"
	"khazna/pkg/contracts/domain"
)

// Assembler orchestrates one full report run: daily sheet validation, the
// ledger extraction, and the summary extraction, merging every collected
// validation error into one ordered list.
type Assembler struct {
	ledger  *LedgerExtractor
	summary *SummaryExtractor
	logger  *slog.Logger
}

// NewAssembler creates a report assembler. A nil logger falls back to the
// default slog logger.
func NewAssembler(logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{
		ledger:  NewLedgerExtractor(logger),
		summary: NewSummaryExtractor(logger),
		logger:  logger,
	}
}

// Assemble runs both extractions against an already-decoded workbook.
//
// Presence of the three daily sheets is a hard gate: when any is missing a
// single sheet-kind error lists them all and no bundle is returned, even
// if rows exist in the present sheets. Otherwise both extractions run and
// their errors concatenate in extraction order. The summary section is
// always attached; its sub-sections carry their own found flags.
func (a *Assembler) Assemble(ctx context.Context, wb *workbook.Workbook, targetDate string) (*domain.ReportBundle, []domain.ValidationError) {
	if missing := MissingDailySheets(wb); len(missing) > 0 {
		a.logger.WarnContext(ctx, "required daily sheets missing",
			slog.Any("sheets", missing))
		return nil, []domain.ValidationError{{
			Kind:    domain.ErrorKindSheet,
			Message: "الصفحات التالية غير موجودة في الملف",
			Details: missing,
		}}
	}

	var errs []domain.ValidationError

	daily, ledgerErrs := a.ledger.Extract(ctx, wb, targetDate)
	errs = append(errs, ledgerErrs...)

	summary, summaryErrs := a.summary.Extract(ctx, wb, targetDate)
	errs = append(errs, summaryErrs...)

	return &domain.ReportBundle{Daily: daily, Summary: summary}, errs
}
