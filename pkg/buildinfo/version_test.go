package buildinfo

import "testing"

func TestServerHeader(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })

	Version, Commit = "v1.2.3", "0123456789abcdef"
	if got := ServerHeader(); got != "bleed/v1.2.3 (0123456)" {
		t.Errorf("ServerHeader() = %q", got)
	}

	Commit = "none"
	if got := ServerHeader(); got != "bleed/v1.2.3 (none)" {
		t.Errorf("ServerHeader() = %q", got)
	}
}
