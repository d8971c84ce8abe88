package sender

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestLineEncoder(t *testing.T) {
	metric, err := NewBuilder().
		ApplicationName("app").
		MetricName("m").
		Value("v").
		Timestamp(42).
		Build()
	require.NoError(t, err)

	line, err := LineEncoder{}.Encode(metric)
	require.NoError(t, err)
	assert.Equal(t, "app m v 42\n", line)

	again, err := LineEncoder{}.Encode(metric)
	require.NoError(t, err)
	assert.Equal(t, line, again)
}

func TestLineEncoder_OmitsTags(t *testing.T) {
	metric, err := NewBuilder().
		ApplicationName("app").
		MetricName("m").
		Value("v").
		Timestamp(42).
		AddTag("host", "h1").
		AddTag("region", "eu").
		Build()
	require.NoError(t, err)

	line, err := LineEncoder{}.Encode(metric)
	require.NoError(t, err)

	assert.Equal(t, "app m v 42\n", line)
	assert.NotContains(t, line, "host")
	assert.NotContains(t, line, "h1")
	assert.Equal(t, map[string]string{"host": "h1", "region": "eu"}, metric.Tags())
}

func TestLineEncoder_Verbatim(t *testing.T) {
	metric, err := NewBuilder().
		ApplicationName("my app").
		MetricName("m").
		Value("1.5").
		Timestamp(7).
		Build()
	require.NoError(t, err)

	line, err := LineEncoder{}.Encode(metric)
	require.NoError(t, err)
	assert.Equal(t, "my app m 1.5 7\n", line)
}

func TestEncode_Nil(t *testing.T) {
	_, err := LineEncoder{}.Encode(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = InfluxEncoder{}.Encode(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInfluxEncoder(t *testing.T) {
	metric, err := NewBuilder().
		ApplicationName("testApplication").
		MetricName("testMetric").
		Value("testValue").
		Timestamp(3).
		AddTag("zone", "z1").
		AddTag("host", "h1").
		Build()
	require.NoError(t, err)

	line, err := InfluxEncoder{}.Encode(metric)
	require.NoError(t, err)

	assert.Equal(t, "testMetric,application=testApplication,host=h1,zone=z1 value=\"testValue\" 3000000000\n", line)
}

func TestInfluxEncoder_ApplicationTagWins(t *testing.T) {
	metric, err := NewBuilder().
		ApplicationName("app").
		MetricName("m").
		Value("v").
		Timestamp(1).
		AddTag(ApplicationTag, "other").
		Build()
	require.NoError(t, err)

	line, err := InfluxEncoder{}.Encode(metric)
	require.NoError(t, err)

	assert.Equal(t, "m,application=app value=\"v\" 1000000000\n", line)
}
