package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/robotsim/logging"
	"go.viam.com/robotsim/referenceframe"
	"go.viam.com/robotsim/utils"
)

func fixture(name string) string {
	return utils.ResolveFile("referenceframe/testurdf/" + name)
}

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"robotsim"}, args...))
	return out.String(), errOut.String(), err
}

func TestParseRPYFlag(t *testing.T) {
	rpy, err := parseRPYFlag("1:0.1,0.2,0.3")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rpy, test.ShouldResemble, rpyFlag{wheel: 1, roll: "0.1", pitch: "0.2", yaw: "0.3"})

	rpy, err = parseRPYFlag(" 0 :,1")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rpy, test.ShouldResemble, rpyFlag{wheel: 0, roll: "", pitch: "1", yaw: ""})

	for _, bad := range []string{"0.1,0.2,0.3", "x:1,2,3", "0:1,2,3,4"} {
		_, err := parseRPYFlag(bad)
		test.That(t, err, test.ShouldNotBeNil)
	}
}

func TestWheelInputs(t *testing.T) {
	inputs, err := wheelInputs(2, []string{"1.5"}, []string{"1:,,0.5"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(inputs), test.ShouldEqual, 2)
	test.That(t, inputs[0].Speed, test.ShouldEqual, "1.5")
	test.That(t, inputs[1].Speed, test.ShouldEqual, "")
	test.That(t, inputs[1].Yaw, test.ShouldEqual, "0.5")

	_, err = wheelInputs(2, []string{"1", "2", "3"}, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "got 3 speeds for 2 wheels")

	_, err = wheelInputs(2, nil, []string{"2:1,1,1"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "out of range")
}

func TestFormatFloat(t *testing.T) {
	test.That(t, formatFloat(0.1234), test.ShouldEqual, "0.123")
	test.That(t, formatFloat(-0.00001), test.ShouldEqual, "0.000")
	test.That(t, formatFloat(-1), test.ShouldEqual, "-1.000")
}

func TestDescribeAction(t *testing.T) {
	out, _, err := runApp(t, "describe", fixture("two_wheel.urdf"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "Robot two_wheel, base link base_link")
	test.That(t, out, test.ShouldContainSubstring, "PARENT JOINT")
	test.That(t, out, test.ShouldContainSubstring, "left_wheel_joint")
	test.That(t, out, test.ShouldContainSubstring, "continuous")
	test.That(t, out, test.ShouldContainSubstring, "Wheels: [left_wheel_joint right_wheel_joint]")
	test.That(t, out, test.ShouldContainSubstring, `robot "two_wheel": 4 links, 3 joints`)
}

func TestDescribeActionOneWheel(t *testing.T) {
	out, _, err := runApp(t, "describe", fixture("arm.urdf"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "Warning: robot has 1 wheel(s)")
}

func TestValidateAction(t *testing.T) {
	out, _, err := runApp(t, "validate", fixture("two_wheel.urdf"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "two_wheel.urdf: ok")

	_, _, err = runApp(t, "validate", fixture("cylinder_base.urdf"))
	test.That(t, errors.Is(err, referenceframe.ErrInvalidBaseLinkShape), test.ShouldBeTrue)

	_, _, err = runApp(t, "validate")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no robot description given")

	_, _, err = runApp(t, "validate", "robot.sdf")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "description")
}

func TestLogLevelFlag(t *testing.T) {
	_, errOut, err := runApp(t, "--log-level", "debug", "validate", fixture("two_wheel.urdf"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "loaded robot description")

	_, _, err = runApp(t, "--log-level", "loud", "validate", fixture("two_wheel.urdf"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown log level")
}

func TestDriveAction(t *testing.T) {
	out, _, err := runApp(t, "drive", "--speed", "1", "--speed", "1", "--steps", "2", fixture("two_wheel.urdf"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "THETA")
	test.That(t, out, test.ShouldContainSubstring, "0.100")
	test.That(t, out, test.ShouldContainSubstring, "0.200")
	test.That(t, out, test.ShouldContainSubstring, "Position: x=0.20 y=0.00 z=0.10 θ=0.00")

	out, _, err = runApp(t, "drive", "--speed", "1", "--speed", "-1", fixture("two_wheel.urdf"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "331.4")

	_, _, err = runApp(t, "drive", "--speed", "1", "--speed", "1", "--speed", "1", fixture("two_wheel.urdf"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDriveActionPlot(t *testing.T) {
	plotPath := filepath.Join(t.TempDir(), "track.png")
	out, _, err := runApp(t, "drive", "--speed", "2", "--speed", "1", "--steps", "5", "--plot", plotPath,
		fixture("two_wheel.urdf"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "saved path plot to "+plotPath)

	info, err := os.Stat(plotPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, info.Size(), test.ShouldBeGreaterThan, 0)

	_, _, err = runApp(t, "drive", "--plot", filepath.Join(t.TempDir(), "track.bmp-nope"), fixture("two_wheel.urdf"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDriveActionNotDrivable(t *testing.T) {
	out, errOut, err := runApp(t, "drive", "--speed", "3", fixture("arm.urdf"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, errOut, test.ShouldContainSubstring, "cannot be driven")
	test.That(t, out, test.ShouldContainSubstring, "Position: x=0.00 y=0.00")
}

func TestTransformsAction(t *testing.T) {
	out, _, err := runApp(t, "transforms", fixture("two_wheel.urdf"))
	test.That(t, err, test.ShouldBeNil)
	lines := strings.Split(out, "\n")
	var leftWheel string
	for _, line := range lines {
		if strings.Contains(line, " left_wheel ") {
			leftWheel = line
		}
	}
	test.That(t, leftWheel, test.ShouldContainSubstring, "0.200")
	test.That(t, leftWheel, test.ShouldContainSubstring, "0.100")
}

func writeXacroConfig(t *testing.T) string {
	t.Helper()
	cfg := fmt.Sprintf(`{
	"description": %q,
	"xacro": {"command": "sh", "args": [%q]}
}`, fixture("two_wheel.xacro"), utils.ResolveFile("referenceframe/urdf/testdata/fake_xacro.sh"))
	path := filepath.Join(t.TempDir(), "robotsim.json")
	test.That(t, os.WriteFile(path, []byte(cfg), 0o600), test.ShouldBeNil)
	return path
}

func TestExpandAction(t *testing.T) {
	cfgPath := writeXacroConfig(t)
	outPath := filepath.Join(t.TempDir(), "two_wheel.urdf")

	out, _, err := runApp(t, "--config", cfgPath, "expand", "-o", outPath)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "wrote robot two_wheel (4 links, 3 joints)")

	expanded, err := os.ReadFile(outPath)
	test.That(t, err, test.ShouldBeNil)
	want, err := os.ReadFile(fixture("two_wheel.urdf"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(expanded), test.ShouldEqual, string(want))

	out, _, err = runApp(t, "--config", cfgPath, "expand")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldEqual, string(want))

	_, _, err = runApp(t, "expand", fixture("two_wheel.urdf"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expand needs a .xacro file")
}

func startWatchLoop(t *testing.T, path string) (chan struct{}, context.CancelFunc, chan error) {
	t.Helper()
	watcher, err := newFileWatcher(path)
	test.That(t, err, test.ShouldBeNil)
	t.Cleanup(func() { watcher.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, watcher, path, logging.NewTestLogger(t), func() {
			changed <- struct{}{}
		})
	}()
	return changed, cancel, done
}

func waitStopped(t *testing.T, done chan error) {
	t.Helper()
	select {
	case err := <-done:
		test.That(t, err, test.ShouldBeNil)
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop")
	}
}

func TestWatchLoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robot.urdf")
	test.That(t, os.WriteFile(path, []byte("<robot/>"), 0o600), test.ShouldBeNil)
	changed, cancel, done := startWatchLoop(t, path)

	// other files in the directory are ignored, and a burst of writes is reported once
	test.That(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.urdf"), []byte("x"), 0o600), test.ShouldBeNil)
	for i := 0; i < 3; i++ {
		test.That(t, os.WriteFile(path, []byte(fmt.Sprintf("<robot name=\"r%d\"/>", i)), 0o600), test.ShouldBeNil)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case <-changed:
		t.Fatal("burst reported more than once")
	case <-time.After(3 * watchDebounce):
	}

	cancel()
	waitStopped(t, done)
}

func TestWatchLoopNoChangeAfterStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "robot.urdf")
	test.That(t, os.WriteFile(path, []byte("<robot/>"), 0o600), test.ShouldBeNil)
	changed, cancel, done := startWatchLoop(t, path)

	// a write still waiting out the debounce when the loop stops is dropped
	test.That(t, os.WriteFile(path, []byte("<robot name=\"r\"/>"), 0o600), test.ShouldBeNil)
	cancel()
	waitStopped(t, done)

	time.Sleep(3 * watchDebounce)
	test.That(t, len(changed), test.ShouldEqual, 0)
}
