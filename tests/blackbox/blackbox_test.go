//go:build blackbox

package blackbox

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var brokerpnlBin string

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "brokerpnl-blackbox-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmp)

	brokerpnlBin = filepath.Join(tmp, "brokerpnl")

	// Build the binary once for all tests.
	cmd := exec.Command("go", "build", "-o", brokerpnlBin, "./cmd/brokerpnl")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	cmd := exec.Command(brokerpnlBin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("command failed: %v\nargs: %v\noutput:\n%s", err, args, string(out))
	}
	return string(out)
}

func runErr(args ...string) (string, error) {
	cmd := exec.Command(brokerpnlBin, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}
