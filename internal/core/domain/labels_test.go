package domain_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/labelsync/internal/core/domain"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		required   []string
		current    []string
		wantAdd    []string
		wantRemove []string
	}{
		{
			name:     "empty current adds everything",
			required: []string{"component=Connectors/Kafka", "component=Runtime/StateBackends"},
			current:  nil,
			wantAdd:  []string{"component=Connectors/Kafka", "component=Runtime/StateBackends"},
		},
		{
			name:       "stale managed label is removed",
			required:   []string{"component=API/DataStream"},
			current:    []string{"component=API/DataStream", "component=Documentation"},
			wantRemove: []string{"component=Documentation"},
		},
		{
			name:       "unmanaged labels are never touched",
			required:   []string{"component=Documentation"},
			current:    []string{"review=approved", "component=<none>", "stale"},
			wantAdd:    []string{"component=Documentation"},
			wantRemove: []string{"component=<none>"},
		},
		{
			name:     "required equals current",
			required: []string{"component=A", "component=B"},
			current:  []string{"component=B", "component=A"},
		},
		{
			name:     "duplicates collapse",
			required: []string{"component=A", "component=A"},
			current:  []string{},
			wantAdd:  []string{"component=A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta := domain.Reconcile(tt.required, tt.current)
			assert.Equal(t, tt.wantAdd, delta.ToAdd)
			assert.Equal(t, tt.wantRemove, delta.ToRemove)
			assert.Equal(t, len(tt.wantAdd) == 0 && len(tt.wantRemove) == 0, delta.Empty())
		})
	}
}

func TestReconcile_Properties(t *testing.T) {
	sets := [][]string{
		{},
		{"component=A"},
		{"component=A", "component=B"},
		{"component=B", "component=C", "component=D"},
		{"component=A", "component=D", "other"},
	}

	for _, set := range sets {
		required := domain.ManagedLabels(set)
		for _, current := range sets {
			delta := domain.Reconcile(required, current)
			managed := domain.ManagedLabels(current)

			for _, l := range delta.ToAdd {
				assert.Contains(t, required, l)
				assert.NotContains(t, managed, l)
				assert.NotContains(t, delta.ToRemove, l)
			}
			for _, l := range delta.ToRemove {
				assert.Contains(t, managed, l)
				assert.NotContains(t, required, l)
			}
		}
		assert.True(t, domain.Reconcile(required, required).Empty())
	}
}

func TestManagedLabels(t *testing.T) {
	got := domain.ManagedLabels([]string{"bug", "component=A", "Component=B", "component="})
	assert.Equal(t, []string{"component=A", "component="}, got)
}

func TestNormalizeComponents_Empty(t *testing.T) {
	assert.Equal(t, []string{"component=<none>"}, domain.NormalizeComponents(nil))
	assert.Equal(t, []string{domain.NoComponentLabel}, domain.NormalizeComponents([]string{}))
}

func TestNormalizeComponents_EndToEndScenario(t *testing.T) {
	labels := domain.NormalizeComponents([]string{"Connectors / Kafka", "Runtime / State Backends"})
	require.Equal(t, []string{"component=Connectors/Kafka", "component=Runtime/StateBackends"}, labels)

	delta := domain.Reconcile(labels, nil)
	assert.Equal(t, labels, delta.ToAdd)
	assert.Empty(t, delta.ToRemove)
}

func TestNormalizeComponents_FormatsFamilyCollapses(t *testing.T) {
	labels := domain.NormalizeComponents([]string{
		"Formats (JSON, Avro, Parquet, ORC, SequenceFile)",
		"Formats",
		"FormatsXYZ",
	})
	assert.Equal(t, []string{"component=Formats"}, labels)
}

func TestNormalizeComponents_TruncationMayCollapse(t *testing.T) {
	long := strings.Repeat("x", 60)
	labels := domain.NormalizeComponents([]string{long + "a", long + "b"})
	require.Len(t, labels, 1)
	assert.Equal(t, domain.MaxLabelLength, utf8.RuneCountInString(labels[0]))
}

func TestNormalizeComponent_TruncatesOnRuneBoundary(t *testing.T) {
	label := domain.NormalizeComponent(strings.Repeat("é", 60))
	assert.True(t, utf8.ValidString(label))
	assert.Equal(t, domain.MaxLabelLength, utf8.RuneCountInString(label))
}

func TestNormalizeComponents_Deterministic(t *testing.T) {
	in := []string{"Runtime / Web Frontend", "API / DataStream", "Documentation"}
	first := domain.NormalizeComponents(in)
	for range 5 {
		assert.Equal(t, first, domain.NormalizeComponents(in))
	}
}

func TestNormalizeComponent_Golden(t *testing.T) {
	inputs := []string{
		"Connectors / Kafka",
		"Runtime / State Backends",
		"Formats (JSON, Avro, Parquet, ORC, SequenceFile)",
		"Table SQL / Planner",
		"API / DataStream",
		"Runtime / Web Frontend",
		"Documentation",
		"Build System / Azure Pipelines",
		"Connectors / ElasticSearch and OpenSearch Integration Tests",
		"Runtime / Checkpointing  ",
	}

	var b strings.Builder
	for _, in := range inputs {
		fmt.Fprintf(&b, "%q => %s\n", in, domain.NormalizeComponent(in))
	}

	g := goldie.New(t)
	g.Assert(t, "normalize_components", []byte(b.String()))
}

func TestTicketExtractor(t *testing.T) {
	extractor := domain.NewTicketExtractor(domain.DefaultProjectKey)

	tests := []struct {
		title  string
		want   string
		wantOK bool
	}{
		{title: "Fix bug [FLINK-1234] in parser", want: "FLINK-1234", wantOK: true},
		{title: "no ticket here", wantOK: false},
		{title: "flink-99 lower case", want: "FLINK-99", wantOK: true},
		{title: "FLINK-500: add feature", want: "FLINK-500", wantOK: true},
		{title: "[FLINK-1][FLINK-2] two tickets", want: "FLINK-1", wantOK: true},
		{title: "FLINK- missing digits", wantOK: false},
		{title: "[hotfix] KAFKA-12 other project", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got, ok := extractor.ExtractTicketID(tt.title)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTicketExtractor_QuotesProjectKey(t *testing.T) {
	extractor := domain.NewTicketExtractor("A.B")

	_, ok := extractor.ExtractTicketID("AxB-1")
	assert.False(t, ok)

	got, ok := extractor.ExtractTicketID("see a.b-7")
	require.True(t, ok)
	assert.Equal(t, "A.B-7", got)
}
