package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/events"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/repositories"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Result summarizes a finished import.
type Result struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
}

// Importer loads spreadsheet files into the database, broadcasting progress
// as it goes.
type Importer struct {
	bulk       *repositories.BulkRepository
	interfaces *repositories.InterfaceRepository
	broker     *events.Broker
	logger     ectologger.Logger
	batchSize  int
}

// NewImporter creates a new importer
func NewImporter(bulk *repositories.BulkRepository, interfaces *repositories.InterfaceRepository, broker *events.Broker, logger ectologger.Logger, batchSize int) *Importer {
	if batchSize < 1 {
		batchSize = 1000
	}
	return &Importer{
		bulk:       bulk,
		interfaces: interfaces,
		broker:     broker,
		logger:     logger,
		batchSize:  batchSize,
	}
}

// ImportFile reads the spreadsheet and loads it into the table named by the
// file (or tableOverride when set). Employee and attendance sheets replace
// rows by primary key; interface sheets merge by their natural key.
func (i *Importer) ImportFile(ctx context.Context, path, tableOverride string) (*Result, error) {
	ctx, span := tracing.StartSpan(ctx, "Importer.ImportFile")
	defer span.End()

	i.publish(events.ProgressEvent{Step: "start", Message: "Reading spreadsheet"})

	headers, rows, err := ReadSheet(path)
	if err != nil {
		i.publishError(err)
		return nil, err
	}
	i.publish(events.ProgressEvent{Step: "dataLoaded", Message: "Spreadsheet data loaded", TotalRows: len(rows)})

	table := tableOverride
	if table == "" {
		table, err = DetermineTable(path)
		if err != nil {
			i.publishError(err)
			return nil, err
		}
	} else if !ImportableTable(table) {
		err = fmt.Errorf("table %q does not accept spreadsheet imports", table)
		i.publishError(err)
		return nil, err
	}
	i.publish(events.ProgressEvent{Step: "tableNameDetermined", Message: "Table name determined", Table: table})

	i.publish(events.ProgressEvent{Step: "updatingDatabase", Message: "Updating database", Table: table})
	if table == repositories.InterfaceTable {
		records := toInterfaceRecords(headers, rows)
		err = i.interfaces.UpsertBatch(ctx, records, i.batchSize, i.progressFor(table, "batches"))
	} else {
		err = i.bulk.ReplaceRows(ctx, table, headers, rows, i.progressFor(table, "rows"))
	}
	if err != nil {
		i.publishError(err)
		return nil, err
	}

	i.publish(events.ProgressEvent{Step: "complete", Message: "Database update completed", Table: table, TotalRows: len(rows), Progress: 1})

	i.logger.WithContext(ctx).WithFields(map[string]any{
		"table": table,
		"rows":  len(rows),
	}).Info("Imported spreadsheet")
	return &Result{Table: table, Rows: len(rows)}, nil
}

func (i *Importer) progressFor(table, unit string) repositories.ProgressFunc {
	return func(done, total int) {
		// coarse frames; the broker drops extras anyway
		if done != total && done%100 != 0 {
			return
		}
		i.publish(events.ProgressEvent{
			Step:     "progress",
			Message:  fmt.Sprintf("Processed %d of %d %s", done, total, unit),
			Table:    table,
			Progress: float64(done) / float64(total),
		})
	}
}

func (i *Importer) publish(event events.ProgressEvent) {
	if i.broker != nil {
		i.broker.Publish(event)
	}
}

func (i *Importer) publishError(err error) {
	i.publish(events.ProgressEvent{Step: "error", Message: err.Error()})
}

func toInterfaceRecords(headers []string, rows [][]any) []models.InterfaceRecord {
	records := make([]models.InterfaceRecord, 0, len(rows))
	for _, row := range rows {
		var rec models.InterfaceRecord
		for idx, header := range headers {
			if idx >= len(row) || row[idx] == nil {
				continue
			}
			value := fmt.Sprint(row[idx])
			switch strings.ToLower(strings.TrimSpace(header)) {
			case "eventid":
				rec.EventID = parseInt(value)
			case "status":
				rec.Status = &value
			case "date":
				rec.Date = &value
			case "employeeid":
				rec.EmployeeID = parseInt(value)
			case "sendcode":
				rec.SendCode = parseInt(value)
			case "subevent":
				rec.SubEvent = parseInt(value)
			case "eventname":
				rec.EventName = &value
			case "lastname":
				rec.LastName = &value
			case "firstname":
				rec.FirstName = &value
			case "correctedvalue":
				rec.CorrectedValue = &value
			case "error":
				rec.Error = &value
			case "note":
				rec.Note = &value
			}
		}
		records = append(records, rec)
	}
	return records
}

func parseInt(value string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
