package results

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"

	"github.com/gateway3b/aoc2023/internal/config"
)

// bigQueryRow is the table layout of a record.
type bigQueryRow struct {
	RunID     string    `bigquery:"run_id"`
	Day       int64     `bigquery:"day"`
	Part      int64     `bigquery:"part"`
	Answer    int64     `bigquery:"answer"`
	Error     string    `bigquery:"error"`
	ElapsedNs int64     `bigquery:"elapsed_ns"`
	InputHash string    `bigquery:"input_hash"`
	SolvedAt  time.Time `bigquery:"solved_at"`
}

func toBigQueryRow(r Record) bigQueryRow {
	return bigQueryRow{
		RunID:     r.RunID.String(),
		Day:       int64(r.Day),
		Part:      int64(r.Part),
		Answer:    r.Answer,
		Error:     r.Error,
		ElapsedNs: int64(r.Elapsed),
		InputHash: r.InputHash,
		SolvedAt:  r.SolvedAt,
	}
}

// Save implements bigquery.ValueSaver. The insert id makes retried inserts of the same part
// of the same run idempotent.
func (row bigQueryRow) Save() (map[string]bigquery.Value, string, error) {
	return map[string]bigquery.Value{
		"run_id":     row.RunID,
		"day":        row.Day,
		"part":       row.Part,
		"answer":     row.Answer,
		"error":      row.Error,
		"elapsed_ns": row.ElapsedNs,
		"input_hash": row.InputHash,
		"solved_at":  row.SolvedAt,
	}, row.RunID + "/" + strconv.FormatInt(row.Day, 10) + "/" + strconv.FormatInt(row.Part, 10), nil
}

func (row bigQueryRow) record() (Record, error) {
	runID, err := uuid.Parse(row.RunID)
	if err != nil {
		return Record{}, fmt.Errorf("bad run id %q: %w", row.RunID, err)
	}
	return Record{
		RunID:     runID,
		Day:       int(row.Day),
		Part:      int(row.Part),
		Answer:    row.Answer,
		Error:     row.Error,
		Elapsed:   time.Duration(row.ElapsedNs),
		InputHash: row.InputHash,
		SolvedAt:  row.SolvedAt.UTC(),
	}, nil
}

// BigQuery records answers in a BigQuery table.
type BigQuery struct {
	client *bigquery.Client
	table  *bigquery.Table
	cfg    config.BigQueryConfig
}

// OpenBigQuery connects to cfg.Project and creates the answers table if it is missing.
func OpenBigQuery(ctx context.Context, cfg config.BigQueryConfig) (*BigQuery, error) {
	client, err := bigquery.NewClient(ctx, cfg.Project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	b := &BigQuery{
		client: client,
		table:  client.Dataset(cfg.Dataset).Table(cfg.Table),
		cfg:    cfg,
	}
	if err := b.ensureTable(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return b, nil
}

func (b *BigQuery) ensureTable(ctx context.Context) error {
	_, err := b.table.Metadata(ctx)
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != http.StatusNotFound {
		return fmt.Errorf("table.Metadata: %w", err)
	}

	schema, err := bigquery.InferSchema(bigQueryRow{})
	if err != nil {
		return fmt.Errorf("bigquery.InferSchema: %w", err)
	}
	if err := b.table.Create(ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
		return fmt.Errorf("table.Create: %w", err)
	}
	return nil
}

func (b *BigQuery) Record(ctx context.Context, records ...Record) error {
	rows := make([]bigQueryRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, toBigQueryRow(r))
	}
	if err := b.table.Inserter().Put(ctx, rows); err != nil {
		return fmt.Errorf("inserter.Put: %w", err)
	}
	return nil
}

// historyQuery selects the newest rows of table, for one day or all of them.
func historyQuery(project, dataset, table string) string {
	return fmt.Sprintf("SELECT run_id, day, part, answer, error, elapsed_ns, input_hash, solved_at "+
		"FROM `%s.%s.%s` WHERE @day = 0 OR day = @day ORDER BY solved_at DESC LIMIT @limit",
		project, dataset, table)
}

func (b *BigQuery) History(ctx context.Context, day, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 1000
	}
	q := b.client.Query(historyQuery(b.cfg.Project, b.cfg.Dataset, b.cfg.Table))
	q.Location = b.cfg.Location
	q.Parameters = []bigquery.QueryParameter{
		{Name: "day", Value: day},
		{Name: "limit", Value: limit},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	var records []Record
	for {
		var row bigQueryRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		r, err := row.record()
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

func (b *BigQuery) Close() error {
	return b.client.Close()
}
