package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNew_WithoutJaeger(t *testing.T) {
	o := New("fanclub-test", "")
	defer o.Shutdown()

	assert.Nil(t, o.tracerProvider)
	assert.NotNil(t, o.meter)

	ctx, span := o.StartSpan(context.Background(), "store.Subscribe", attribute.String("artistId", "artist-1"))
	assert.NotNil(t, ctx)
	span.End()

	assert.NotPanics(t, func() {
		o.RecordOperation(context.Background(), "Subscribe", 3*time.Millisecond, "ok")
	})
}

func TestZeroValue_IsSafe(t *testing.T) {
	var o Observability
	assert.NotPanics(t, func() {
		_, span := o.StartSpan(context.Background(), "noop")
		span.End()
		o.RecordOperation(context.Background(), "noop", time.Millisecond, "ok")
		o.Shutdown()
	})
}
