package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordEvent(t *testing.T) {
	before := testutil.ToFloat64(WorkflowEvents.WithLabelValues("enroll"))
	RecordEvent("enroll")
	RecordEvent("enroll")
	assert.Equal(t, before+2, testutil.ToFloat64(WorkflowEvents.WithLabelValues("enroll")))
}

func TestInitTwice(t *testing.T) {
	assert.NotPanics(t, func() {
		Init()
		Init()
	})
}
