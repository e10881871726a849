package deps

import (
	"fmt"
	"os/exec"
)

// Checker verifies once, before any pipeline is built, that the external
// tools this program shells out to actually exist.
type Checker struct {
	binaries []string
}

// NewChecker creates a checker for the given binary names or paths.
func NewChecker(binaries ...string) *Checker {
	return &Checker{binaries: binaries}
}

// CheckAll verifies every binary and reports all missing ones at once.
func (c *Checker) CheckAll() error {
	var missing []string
	for _, bin := range c.binaries {
		if !c.IsAvailable(bin) {
			missing = append(missing, bin)
		}
	}
	if len(missing) > 0 {
		return &MissingDepsError{Binaries: missing}
	}
	return nil
}

// IsAvailable reports whether a single binary resolves. Bare names are
// looked up in PATH; names containing a separator are checked directly.
func (c *Checker) IsAvailable(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}

// Report prints a per-binary status line and returns the same error
// CheckAll would.
func (c *Checker) Report() error {
	var missing []string
	for _, bin := range c.binaries {
		if c.IsAvailable(bin) {
			fmt.Printf("[OK]      %s\n", bin)
		} else {
			fmt.Printf("[MISSING] %s (install it and make sure it is reachable)\n", bin)
			missing = append(missing, bin)
		}
	}
	if len(missing) > 0 {
		return &MissingDepsError{Binaries: missing}
	}
	return nil
}

// MissingDepsError lists the binaries that could not be resolved.
type MissingDepsError struct {
	Binaries []string
}

func (e *MissingDepsError) Error() string {
	return fmt.Sprintf("missing dependencies: %v", e.Binaries)
}
