package api

import (
	"context"

	"task-board/internal/codec"
	"task-board/internal/errors"
	"task-board/internal/logging"
)

func (a *boardAPI) ExportCSV(ctx context.Context) (string, error) {
	events, err := a.store.ReadAll(ctx)
	if err != nil {
		return "", err
	}
	return codec.EncodeHistory(events), nil
}

// ImportCSV decodes text completely before anything is written. Incomplete
// rows are dropped; the rest replace the log and the registry together.
func (a *boardAPI) ImportCSV(ctx context.Context, text string) (ImportSummary, error) {
	events, reg := codec.DecodeHistory(text)

	if err := a.store.Import(ctx, events, reg); err != nil {
		return ImportSummary{}, err
	}

	logging.Debugf("imported %d events and %d problems", len(events), reg.Len())
	return ImportSummary{Events: len(events), Problems: reg.Len()}, nil
}

// ImportFile reads the whole file before decoding. A read failure leaves the
// log and registry untouched.
func (a *boardAPI) ImportFile(ctx context.Context, path string) (ImportSummary, error) {
	data, err := a.readFile(path)
	if err != nil {
		return ImportSummary{}, errors.NewFileUnavailableError(path, err)
	}
	return a.ImportCSV(ctx, string(data))
}

func (a *boardAPI) ExportTimeTracking(ctx context.Context) (string, error) {
	records, err := a.reporting.TimeTracking(ctx)
	if err != nil {
		return "", err
	}
	return codec.EncodeTimeTracking(records), nil
}
