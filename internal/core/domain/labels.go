package domain

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// LabelPrefix marks labels owned by the labeler. Labels without it are never touched.
	LabelPrefix = "component="

	// NoComponentLabel is applied to pull requests whose ticket has no components.
	NoComponentLabel = LabelPrefix + "<none>"

	// FormatsFamily is the component family collapsed into a single label.
	FormatsFamily = "Formats"

	// MaxLabelLength caps label names (prefix included), counted in runes.
	MaxLabelLength = 50

	// LabelColor is the colour of labels created by the labeler.
	LabelColor = "175fb7"

	// DefaultProjectKey is the issue-tracker project matched in pull request titles.
	DefaultProjectKey = "FLINK"
)

// Delta is the label change needed to bring a pull request in line with its ticket.
type Delta struct {
	ToAdd    []string
	ToRemove []string
}

// Empty reports whether the delta requires no write.
func (d Delta) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// Reconcile computes the minimal delta turning the managed subset of current into required.
// Labels in current without LabelPrefix are ignored. Both result slices are sorted.
func Reconcile(required, current []string) Delta {
	want := toSet(required)
	have := toSet(ManagedLabels(current))

	var delta Delta
	for label := range want {
		if _, ok := have[label]; !ok {
			delta.ToAdd = append(delta.ToAdd, label)
		}
	}
	for label := range have {
		if _, ok := want[label]; !ok {
			delta.ToRemove = append(delta.ToRemove, label)
		}
	}
	slices.Sort(delta.ToAdd)
	slices.Sort(delta.ToRemove)
	return delta
}

// ManagedLabels returns the labels carrying LabelPrefix, in input order.
func ManagedLabels(labels []string) []string {
	managed := make([]string, 0, len(labels))
	for _, l := range labels {
		if strings.HasPrefix(l, LabelPrefix) {
			managed = append(managed, l)
		}
	}
	return managed
}

// NormalizeComponents maps raw component names to the sorted set of labels they require.
// A ticket without components maps to NoComponentLabel.
func NormalizeComponents(components []string) []string {
	if len(components) == 0 {
		return []string{NoComponentLabel}
	}
	labels := make([]string, 0, len(components))
	for _, c := range components {
		labels = append(labels, NormalizeComponent(c))
	}
	slices.Sort(labels)
	return slices.Compact(labels)
}

// NormalizeComponent maps a single component name to its label.
// Distinct names may collapse to the same label after truncation.
func NormalizeComponent(component string) string {
	if strings.HasPrefix(component, FormatsFamily) {
		return LabelPrefix + FormatsFamily
	}
	return truncateRunes(LabelPrefix+stripSpace(component), MaxLabelLength)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// TicketExtractor finds ticket ids of one project in free text.
type TicketExtractor struct {
	pattern *regexp.Regexp
}

// NewTicketExtractor returns an extractor for ids of the form <projectKey>-<digits>.
func NewTicketExtractor(projectKey string) *TicketExtractor {
	return &TicketExtractor{
		pattern: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(projectKey) + `-[0-9]+`),
	}
}

// ExtractTicketID returns the first ticket id in title, upper-cased.
func (e *TicketExtractor) ExtractTicketID(title string) (string, bool) {
	match := e.pattern.FindString(title)
	if match == "" {
		return "", false
	}
	return strings.ToUpper(match), true
}
