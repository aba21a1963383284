package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/vburojevic/authscan/internal/domain"
)

func localUnix(t *testing.T, s string) int64 {
	t.Helper()
	ts, err := time.ParseInLocation(domain.TimestampLayout, s, time.Local)
	require.NoError(t, err)
	return ts.Unix()
}

func sampleReport(t *testing.T) *domain.Report {
	t.Helper()
	r := domain.NewReport(domain.DetectionConfig{WindowSeconds: 60, Threshold: 3})
	r.RunID = "run-1"
	r.GeneratedAt = time.Date(2025, 12, 11, 10, 0, 0, 0, time.UTC)
	r.Sources = []string{"auth.log"}
	r.Counters = domain.Counters{TotalLines: 10, FailedLogins: 4, WarnCount: 2, ErrorCount: 1}
	r.TopAddresses = []domain.KeyTotal{{Key: "10.0.0.1", Count: 3}, {Key: "10.0.0.2", Count: 1}}
	r.Offenders = []domain.Offender{{
		Key:         "10.0.0.1",
		WindowStart: localUnix(t, "2024-01-01 00:00:00"),
		WindowEnd:   localUnix(t, "2024-01-01 00:00:20"),
		Count:       3,
	}}
	return r
}

func decodeAll(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	dec := json.NewDecoder(bytes.NewReader(buf.Bytes()))
	var out []map[string]interface{}
	for {
		var m map[string]interface{}
		err := dec.Decode(&m)
		if err == nil {
			out = append(out, m)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
	return out
}

func TestNDJSONWriterContract_AllTypesHaveSchemaVersion(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewNDJSONWriter(buf)

	require.NoError(t, w.WriteReport(sampleReport(t)))
	require.NoError(t, w.WriteExport("csv", "alerts.csv", 1))
	require.NoError(t, w.WriteWarning("careful"))
	require.NoError(t, w.WriteError("READ_ERROR", "boom", "check permissions"))

	items := decodeAll(t, buf)
	require.Len(t, items, 4)

	types := make([]string, 0, len(items))
	for _, m := range items {
		types = append(types, m["type"].(string))
		assert.EqualValues(t, SchemaVersion, m["schemaVersion"], "type=%s", m["type"])
	}
	assert.Equal(t, []string{"report", "export", "warning", "error"}, types)
}

func TestNDJSONWriter_WriteReport(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewNDJSONWriter(buf).WriteReport(sampleReport(t)))

	line := buf.String()
	assert.Equal(t, "report", gjson.Get(line, "type").String())
	assert.Equal(t, "run-1", gjson.Get(line, "runId").String())
	assert.Equal(t, "2025-12-11T10:00:00Z", gjson.Get(line, "generatedAt").String())
	assert.Equal(t, int64(60), gjson.Get(line, "config.windowSeconds").Int())
	assert.Equal(t, int64(3), gjson.Get(line, "config.threshold").Int())
	assert.Equal(t, int64(10), gjson.Get(line, "counters.totalLines").Int())
	assert.Equal(t, int64(4), gjson.Get(line, "counters.failedLogins").Int())
	assert.Equal(t, "10.0.0.1", gjson.Get(line, "topAddresses.0.address").String())
	assert.Equal(t, int64(2), gjson.Get(line, "topAddresses.#").Int())
	assert.Equal(t, "2024-01-01 00:00:00", gjson.Get(line, "offenders.0.firstSeen").String())
	assert.Equal(t, "2024-01-01 00:00:20", gjson.Get(line, "offenders.0.lastSeen").String())
	assert.Equal(t, int64(3), gjson.Get(line, "offenders.0.count").Int())
	assert.True(t, gjson.Get(line, "hasOffenders").Bool())
}

func TestNDJSONWriter_EmptyReportUsesArrays(t *testing.T) {
	buf := &bytes.Buffer{}
	r := &domain.Report{Type: "report"}
	require.NoError(t, NewNDJSONWriter(buf).WriteReport(r))

	line := buf.String()
	assert.True(t, gjson.Get(line, "offenders").IsArray())
	assert.True(t, gjson.Get(line, "topAddresses").IsArray())
	assert.True(t, gjson.Get(line, "sources").IsArray())
	assert.False(t, gjson.Get(line, "hasOffenders").Bool())
}

func TestNDJSONWriter_ErrorOmitsEmptyHint(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, NewNDJSONWriter(buf).WriteError("INVALID_CONFIG", "threshold must be positive", ""))

	assert.NotContains(t, buf.String(), `"hint"`)
	assert.Equal(t, "INVALID_CONFIG", gjson.Get(buf.String(), "code").String())
}
