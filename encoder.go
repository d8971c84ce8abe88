package sender

import (
	"bytes"
	"fmt"
	protocol "github.com/influxdata/line-protocol"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Encoder renders a Metric as one newline terminated line.
type Encoder interface {
	Encode(m *Metric) (string, error)
}

// LineEncoder produces the monitoring agent's line format:
//
//	<applicationName> <metricName> <value> <timestamp>\n
//
// Fields are written verbatim, so values containing spaces or newlines cannot
// be told apart by the receiver. Tags are not written.
type LineEncoder struct{}

func (LineEncoder) Encode(m *Metric) (string, error) {
	if m == nil {
		return "", fmt.Errorf("%w: metric is nil", ErrInvalidArgument)
	}

	var sb strings.Builder
	sb.Grow(len(m.applicationName) + len(m.metricName) + len(m.value) + 24)
	sb.WriteString(m.applicationName)
	sb.WriteByte(' ')
	sb.WriteString(m.metricName)
	sb.WriteByte(' ')
	sb.WriteString(m.value)
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatInt(m.timestamp, 10))
	sb.WriteByte('\n')
	return sb.String(), nil
}

// ApplicationTag is the tag key InfluxEncoder stores the application name under.
const ApplicationTag = "application"

// InfluxEncoder produces Influx line protocol, for collectors such as the
// telegraf socket_listener input. Unlike LineEncoder it includes the tags,
// sorted by key. A tag named application is replaced by the application name.
//
//	<metricName>,application=<applicationName>[,<tag>=<value>...] value="<value>" <nanoseconds>\n
type InfluxEncoder struct{}

func (InfluxEncoder) Encode(m *Metric) (string, error) {
	if m == nil {
		return "", fmt.Errorf("%w: metric is nil", ErrInvalidArgument)
	}

	var buffer bytes.Buffer
	_, err := protocol.NewEncoder(&buffer).Encode(influxMetric{m})
	if err != nil {
		return "", fmt.Errorf("failed to encode: %w", err)
	}
	return buffer.String(), nil
}

// influxMetric adapts a Metric to protocol.Metric.
type influxMetric struct {
	m *Metric
}

func (im influxMetric) Time() time.Time {
	return im.m.Time()
}

func (im influxMetric) Name() string {
	return im.m.metricName
}

func (im influxMetric) TagList() []*protocol.Tag {
	tags := make([]*protocol.Tag, 0, len(im.m.tags)+1)
	tags = append(tags, &protocol.Tag{Key: ApplicationTag, Value: im.m.applicationName})
	for k, v := range im.m.tags {
		if k == ApplicationTag {
			continue
		}
		tags = append(tags, &protocol.Tag{Key: k, Value: v})
	}
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].Key < tags[j].Key
	})
	return tags
}

func (im influxMetric) FieldList() []*protocol.Field {
	return []*protocol.Field{
		{Key: "value", Value: im.m.value},
	}
}
