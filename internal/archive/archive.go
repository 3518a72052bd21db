// Package archive writes answered questions to a Cloud Storage bucket as an
// audit trail. Objects are laid out as answers/YYYY/MM/DD/<job-id>.json.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog"

	"github.com/vaulton/vaulton/internal/jobs"
)

const uploadTimeout = 2 * time.Minute

// ObjectWriter abstracts the bucket write for testing.
type ObjectWriter interface {
	WriteObject(ctx context.Context, objectName string, data []byte) error
}

// Archiver serializes answered questions and uploads them. It implements
// the jobs handler signature consumed by the in-memory queue.
type Archiver struct {
	writer ObjectWriter
	log    zerolog.Logger
}

// NewArchiver wires an archiver to a bucket writer.
func NewArchiver(writer ObjectWriter, log zerolog.Logger) *Archiver {
	return &Archiver{writer: writer, log: log}
}

// answerRecord is the archived JSON document.
type answerRecord struct {
	JobID        string    `json:"job_id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	DataProvided bool      `json:"data_provided"`
	AskedAt      time.Time `json:"asked_at"`
}

// HandleJob archives one answered question. It is called by the job queue
// and returns an error to trigger a retry.
func (a *Archiver) HandleJob(ctx context.Context, job jobs.Job) error {
	aj, ok := job.(*jobs.ArchiveAnswerJob)
	if !ok {
		return fmt.Errorf("HandleJob: unexpected job type %T", job)
	}

	data, err := json.Marshal(answerRecord{
		JobID:        aj.JobID,
		Question:     aj.Question,
		Answer:       aj.Answer,
		DataProvided: aj.DataProvided,
		AskedAt:      aj.AskedAt,
	})
	if err != nil {
		return fmt.Errorf("HandleJob: marshal answer record: %w", err)
	}

	objectName := ObjectName(aj.AskedAt, aj.JobID)
	if err := a.writer.WriteObject(ctx, objectName, data); err != nil {
		return fmt.Errorf("HandleJob: upload %s: %w", objectName, err)
	}

	a.log.Debug().Str("object", objectName).Msg("Archived answer")
	return nil
}

// ObjectName builds the date-partitioned object path for an answer.
func ObjectName(askedAt time.Time, jobID string) string {
	return fmt.Sprintf("answers/%s/%s.json", askedAt.UTC().Format("2006/01/02"), jobID)
}

// GCSWriter uploads objects to a Google Cloud Storage bucket. It assumes
// Application Default Credentials are configured.
type GCSWriter struct {
	bucket string
}

// NewGCSWriter creates a writer for the named bucket.
func NewGCSWriter(bucket string) *GCSWriter {
	return &GCSWriter{bucket: bucket}
}

// WriteObject uploads one object, creating a client per call.
func (g *GCSWriter) WriteObject(ctx context.Context, objectName string, data []byte) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("WriteObject: create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := client.Bucket(g.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("WriteObject: write to GCS writer: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("WriteObject: close GCS writer: %w", err)
	}
	return nil
}
