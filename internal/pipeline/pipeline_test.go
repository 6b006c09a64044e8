package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-screener/internal/extraction"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/textextract"
)

const (
	strongResume = `Jane Doe
jane@example.com
555-123-4567
7 years of experience with Python, Java and AWS.`

	partialResume = `John Smith
john@example.com
(555) 987-6543
5+ years of experience in Python, Java, SQL`
)

func newJob(t *testing.T) *screening.JobRequirement {
	t.Helper()
	job, err := screening.NewJobRequirement(screening.JobSpec{
		Title:              "Backend Engineer",
		MinYearsExperience: 3,
		RequiredSkills:     []string{"Python", "Java", "AWS"},
	})
	require.NoError(t, err)
	return job
}

func newScreener(t *testing.T, logger *zap.Logger, concurrency int) *Screener {
	t.Helper()
	return New(newJob(t), extraction.New(extraction.Default(extraction.Options{}), logger), logger, Options{
		Concurrency: concurrency,
	})
}

func TestScreenKeepsUnrecognizedResume(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	screener := newScreener(t, zap.New(core), 1)

	docs := []textextract.Document{
		{Filename: "photo.png", Recognized: false},
		{Filename: "john.txt", Text: partialResume, Recognized: true},
		{Filename: "jane.txt", Text: strongResume, Recognized: true},
	}

	batch, err := screener.Screen(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, batch.Candidates, 3)
	assert.NotEmpty(t, batch.ID)

	first, second, last := batch.Candidates[0], batch.Candidates[1], batch.Candidates[2]

	assert.Equal(t, "jane.txt", first.SourceName)
	assert.Equal(t, "Jane Doe", first.Name)
	assert.Equal(t, 100, first.FinalScore())
	assert.Equal(t, screening.StrongHire, first.Recommendation())
	assert.Equal(t, screening.ParseOk, first.ParseStatus)

	assert.Equal(t, "john.txt", second.SourceName)
	assert.Equal(t, 67, second.SkillMatchPercent)
	assert.Equal(t, 100, second.ExperienceMatchPercent)
	assert.Equal(t, 77, second.FinalScore())
	assert.Equal(t, screening.Interview, second.Recommendation())
	assert.Equal(t, "5559876543", second.Phone.Digits)

	assert.Equal(t, "photo.png", last.SourceName)
	assert.Equal(t, screening.ParseFailed, last.ParseStatus)
	assert.Equal(t, 0, last.FinalScore())
	assert.Equal(t, screening.Reject, last.Recommendation())

	assert.Equal(t, Stats{Total: 3, Ok: 2, Failed: 1}, batch.Stats)
	assert.Equal(t, 1, observed.FilterMessage("resume could not be parsed").Len())
	summary := observed.FilterMessage("batch screened").All()
	require.Len(t, summary, 1)
	assert.Equal(t, batch.ID, summary[0].ContextMap()["batch_id"])

	for _, entry := range observed.FilterMessage("resume could not be parsed").All() {
		assert.Equal(t, batch.ID, entry.ContextMap()["batch_id"])
	}
}

func TestScreenMarksDegradedResume(t *testing.T) {
	screener := newScreener(t, nil, 1)

	batch, err := screener.Screen(context.Background(), []textextract.Document{
		{Filename: "anon.txt", Text: "Python and AWS, 1 year", Recognized: true},
		{Filename: "blank.txt", Text: "  \n ", Recognized: true},
	})
	require.NoError(t, err)
	require.Len(t, batch.Candidates, 2)

	degraded := batch.Candidates[0]
	assert.Equal(t, screening.ParseDegraded, degraded.ParseStatus)
	assert.ElementsMatch(t, []string{extraction.FieldName, extraction.FieldEmail, extraction.FieldPhone}, degraded.MissingFields)
	assert.Equal(t, []string{"aws", "python"}, degraded.Skills)
	assert.Equal(t, 67, degraded.SkillMatchPercent)
	assert.Equal(t, 33, degraded.ExperienceMatchPercent)
	assert.Equal(t, 57, degraded.FinalScore())

	assert.Equal(t, screening.ParseFailed, batch.Candidates[1].ParseStatus)
}

func TestScreenConcurrentMatchesSequential(t *testing.T) {
	docs := make([]textextract.Document, 0, 40)
	for i := range 40 {
		text := partialResume
		if i%3 == 0 {
			text = strongResume
		}
		docs = append(docs, textextract.Document{
			Filename:   fmt.Sprintf("resume-%02d.txt", i),
			Text:       text,
			Recognized: i%7 != 0,
		})
	}

	sequential, err := newScreener(t, nil, 1).Screen(context.Background(), docs)
	require.NoError(t, err)
	parallel, err := newScreener(t, nil, 8).Screen(context.Background(), docs)
	require.NoError(t, err)

	require.Len(t, parallel.Candidates, len(docs))
	for i := range sequential.Candidates {
		assert.Equal(t, sequential.Candidates[i].SourceName, parallel.Candidates[i].SourceName)
		assert.Equal(t, sequential.Candidates[i].FinalScore(), parallel.Candidates[i].FinalScore())
	}
	assert.Equal(t, sequential.Stats, parallel.Stats)
}

type panickingField struct{}

func (panickingField) Name() string { return "panics" }

func (panickingField) Disable(string) {}

func (panickingField) IsEnabled() bool { return true }

func (panickingField) Extract(in *extraction.Input, _ *extraction.Fields) bool {
	if in.Raw == "boom" {
		panic("unexpected input")
	}
	return true
}

func TestProcessContainsPanics(t *testing.T) {
	core, observed := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)
	fields := append(extraction.Default(extraction.Options{}), panickingField{})
	screener := New(newJob(t), extraction.New(fields, logger), logger, Options{})

	batch, err := screener.Screen(context.Background(), []textextract.Document{
		{Filename: "boom.txt", Text: "boom", Recognized: true},
		{Filename: "jane.txt", Text: strongResume, Recognized: true},
	})
	require.NoError(t, err)
	require.Len(t, batch.Candidates, 2)

	assert.Equal(t, "jane.txt", batch.Candidates[0].SourceName)
	assert.Equal(t, "boom.txt", batch.Candidates[1].SourceName)
	assert.Equal(t, screening.ParseFailed, batch.Candidates[1].ParseStatus)
	assert.Equal(t, 1, observed.FilterMessage("resume processing panicked").Len())
}

func TestScreenCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newScreener(t, nil, 1).Screen(ctx, []textextract.Document{{Filename: "a.txt", Text: strongResume, Recognized: true}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestScreenEmptyBatch(t *testing.T) {
	batch, err := newScreener(t, nil, 4).Screen(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, batch.Candidates)
	assert.Equal(t, Stats{}, batch.Stats)
}
