package sender

import (
	"errors"
	"fmt"
	"time"
)

// Metric is a single measurement reported to the monitoring agent.
// A Metric can only be obtained from Builder.Build and is valid and immutable from then on.
type Metric struct {
	applicationName string
	metricName      string
	timestamp       int64
	value           string
	tags            map[string]string
}

func (m *Metric) ApplicationName() string {
	return m.applicationName
}

func (m *Metric) MetricName() string {
	return m.metricName
}

// Timestamp is the unix time, in seconds, when the measurement was taken.
func (m *Metric) Timestamp() int64 {
	return m.timestamp
}

func (m *Metric) Time() time.Time {
	return time.Unix(m.timestamp, 0)
}

func (m *Metric) Value() string {
	return m.value
}

// Tags returns a copy of the metric's tags. Tags are not part of the agent line format.
func (m *Metric) Tags() map[string]string {
	tags := make(map[string]string, len(m.tags))
	for k, v := range m.tags {
		tags[k] = v
	}
	return tags
}

func (m *Metric) Tag(name string) (string, bool) {
	v, ok := m.tags[name]
	return v, ok
}

// Builder accumulates the fields of a Metric. Nothing is validated until Build.
type Builder struct {
	applicationName string
	metricName      string
	timestamp       int64
	value           string
	tags            map[string]string
}

func NewBuilder() *Builder {
	return &Builder{tags: make(map[string]string)}
}

func (b *Builder) ApplicationName(applicationName string) *Builder {
	b.applicationName = applicationName
	return b
}

func (b *Builder) MetricName(metricName string) *Builder {
	b.metricName = metricName
	return b
}

// Timestamp sets the unix time, in seconds, the measurement was taken.
func (b *Builder) Timestamp(timestamp int64) *Builder {
	b.timestamp = timestamp
	return b
}

// Time sets the timestamp from t, truncated to whole seconds.
func (b *Builder) Time(t time.Time) *Builder {
	b.timestamp = t.Unix()
	return b
}

func (b *Builder) Value(value string) *Builder {
	b.value = value
	return b
}

// AddTag sets a tag on the metric. Adding a tag name that is already present replaces its value.
func (b *Builder) AddTag(name, value string) *Builder {
	if b.tags == nil {
		b.tags = make(map[string]string)
	}
	b.tags[name] = value
	return b
}

// Build validates the accumulated fields and returns the Metric.
// All violations are reported together and each one matches ErrInvalidRecord.
func (b *Builder) Build() (*Metric, error) {
	var errs []error
	if b.applicationName == "" {
		errs = append(errs, fmt.Errorf("%w: application name is required", ErrInvalidRecord))
	}
	if b.metricName == "" {
		errs = append(errs, fmt.Errorf("%w: metric name is required", ErrInvalidRecord))
	}
	if b.timestamp <= 0 {
		errs = append(errs, fmt.Errorf("%w: timestamp must be positive, got %d", ErrInvalidRecord, b.timestamp))
	}
	if b.value == "" {
		errs = append(errs, fmt.Errorf("%w: value is required", ErrInvalidRecord))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	tags := make(map[string]string, len(b.tags))
	for k, v := range b.tags {
		tags[k] = v
	}

	return &Metric{
		applicationName: b.applicationName,
		metricName:      b.metricName,
		timestamp:       b.timestamp,
		value:           b.value,
		tags:            tags,
	}, nil
}
