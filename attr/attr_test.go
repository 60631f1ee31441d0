package attr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValueKinds(t *testing.T) {
	assert.Equal(t, "hello", String("k", "hello").Value.AsString())
	assert.Equal(t, int64(42), Int("k", 42).Value.AsInt64())
	assert.Equal(t, int64(-7), Int64("k", -7).Value.AsInt64())
	assert.Equal(t, 3.5, Float64("k", 3.5).Value.AsFloat64())
	assert.True(t, Bool("k", true).Value.AsBool())
	assert.Equal(t, 2*time.Second, Duration("k", 2*time.Second).Value.AsDuration())
}

func TestValueKindMismatchYieldsZero(t *testing.T) {
	v := String("k", "text").Value
	assert.Equal(t, int64(0), v.AsInt64())
	assert.Equal(t, 0.0, v.AsFloat64())
	assert.False(t, v.AsBool())
}

func TestValueText(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{name: "string", v: StringValue("s"), want: "s"},
		{name: "int", v: Int64Value(-3), want: "-3"},
		{name: "float", v: Float64Value(0.25), want: "0.25"},
		{name: "bool", v: BoolValue(true), want: "true"},
		{name: "duration", v: DurationValue(1500 * time.Millisecond), want: "1.5s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Text())
		})
	}
}
