//nolint:funlen // ok for tests
package log

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(buf, InfoLevel)
	l.Debug("hidden")
	l.Info("visible", String("car", "bmw_m4_gt3"), Int("corners", 3))
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"visible"`)
	assert.Contains(t, out, `"car":"bmw_m4_gt3"`)
	assert.Contains(t, out, `"corners":3`)
}

func TestLogger_Named(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(buf, DebugLevel).Named("pipeline").Named("corner")
	l.Debug("scan")
	assert.Contains(t, buf.String(), `"logger":"pipeline.corner"`)
}

func TestLogger_WithFilter(t *testing.T) {
	tests := []struct {
		name    string
		rules   string
		logger  string
		want    bool
		wantErr bool
	}{
		{name: "no rules", rules: "", logger: "any", want: true},
		{name: "matching name", rules: "debug:pipeline.*", logger: "pipeline.corner", want: true},
		{name: "other name", rules: "debug:pipeline.*", logger: "recommend", want: false},
		{name: "broken rule", rules: "verbose:*", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l, err := New(buf, DebugLevel).WithFilter(tt.rules)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			l.Named(tt.logger).Debug("msg")
			assert.Equal(t, tt.want, strings.Contains(buf.String(), `"msg":"msg"`))
		})
	}
}

func TestContext(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(buf, InfoLevel)
	ctx := AddToContext(context.Background(), l)
	assert.Same(t, l, GetFromContext(ctx))
	assert.Same(t, Default(), GetFromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("warn")
	assert.NoError(t, err)
	assert.Equal(t, WarnLevel, lvl)
	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}
