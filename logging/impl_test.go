package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.viam.com/test"
)

func newBufferLogger(name string, level Level) (Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewBlankLogger(name)
	logger.SetLevel(level)
	logger.AddAppender(NewWriterAppender(buf))
	return logger, buf
}

func splitLine(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	line, err := buf.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)
	return strings.Split(strings.TrimSuffix(line, "\n"), "\t")
}

func TestWriterAppenderFormat(t *testing.T) {
	logger, buf := newBufferLogger("solver", DEBUG)

	logger.Infof("solved %d branches", 8)
	parts := splitLine(t, buf)
	test.That(t, len(parts), test.ShouldEqual, 5)
	_, err := time.Parse(DefaultTimeFormatStr, parts[0])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parts[1], test.ShouldEqual, "INFO")
	test.That(t, parts[2], test.ShouldEqual, "solver")
	test.That(t, strings.HasPrefix(parts[3], "logging/impl_test.go:"), test.ShouldBeTrue)
	test.That(t, parts[4], test.ShouldEqual, "solved 8 branches")

	logger.Debugw("branch skipped", "joint", 3, "cos", 1.5)
	parts = splitLine(t, buf)
	test.That(t, len(parts), test.ShouldEqual, 6)
	test.That(t, parts[1], test.ShouldEqual, "DEBUG")
	fields := map[string]interface{}{}
	test.That(t, json.Unmarshal([]byte(parts[5]), &fields), test.ShouldBeNil)
	test.That(t, fields, test.ShouldResemble, map[string]interface{}{"joint": 3., "cos": 1.5})
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger("", WARN)
	logger.Debug("dropped")
	logger.Info("dropped")
	test.That(t, buf.Len(), test.ShouldEqual, 0)

	logger.Warn("kept")
	parts := splitLine(t, buf)
	test.That(t, parts[1], test.ShouldEqual, "WARN")

	logger.CDebugf(context.Background(), "dropped")
	test.That(t, buf.Len(), test.ShouldEqual, 0)

	ctx := EnableDebugMode(context.Background(), "")
	test.That(t, IsDebugMode(ctx), test.ShouldBeTrue)
	test.That(t, len(GetName(ctx)), test.ShouldEqual, 6)
	logger.CDebugf(ctx, "kept %s", "anyway")
	parts = splitLine(t, buf)
	test.That(t, parts[len(parts)-1], test.ShouldEqual, "kept anyway")
}

func TestSublogger(t *testing.T) {
	logger, buf := newBufferLogger("urkin", INFO)
	sub := logger.Sublogger("ik")
	sub.Error("boom")
	parts := splitLine(t, buf)
	test.That(t, parts[2], test.ShouldEqual, "urkin.ik")

	sub.SetLevel(ERROR)
	test.That(t, logger.GetLevel(), test.ShouldEqual, INFO)
}

func TestObservedTestLogger(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	logger.Debugw("gimbal lock", "wrist3", 0.5)
	logger.Info("done")
	test.That(t, observed.Len(), test.ShouldEqual, 2)
	test.That(t, observed.FilterMessage("gimbal lock").Len(), test.ShouldEqual, 1)
	test.That(t, observed.All()[0].ContextMap()["wrist3"], test.ShouldEqual, 0.5)
}

func TestLevelFromString(t *testing.T) {
	for str, level := range map[string]Level{"debug": DEBUG, "INFO": INFO, "Warning": WARN, "error": ERROR} {
		parsed, err := LevelFromString(str)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, level)
	}
	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)

	var level Level
	test.That(t, json.Unmarshal([]byte(`"warn"`), &level), test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, WARN)
	out, err := json.Marshal(ERROR)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `"error"`)
}

func TestFileAppender(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "urkin.log")
	appender := NewFileAppender(filename)
	logger := NewBlankLogger("verify")
	logger.AddAppender(appender)

	logger.Infow("round trip failed", "residual", 0.5)
	test.That(t, logger.Sync(), test.ShouldBeNil)
	test.That(t, appender.Close(), test.ShouldBeNil)

	data, err := os.ReadFile(filename)
	test.That(t, err, test.ShouldBeNil)
	parts := strings.Split(strings.TrimSuffix(string(data), "\n"), "\t")
	test.That(t, parts[1], test.ShouldEqual, "INFO")
	test.That(t, parts[2], test.ShouldEqual, "verify")
	test.That(t, parts[4], test.ShouldEqual, "round trip failed")
	test.That(t, parts[5], test.ShouldEqual, `{"residual":0.5}`)
}
