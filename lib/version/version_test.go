// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	info := Info()
	if !strings.Contains(info, Version) || !strings.Contains(info, GitCommit) {
		t.Errorf("Info() = %q, missing version or commit", info)
	}
}

func TestFullIncludesPlatform(t *testing.T) {
	full := Full()
	if !strings.Contains(full, "Go: ") || !strings.Contains(full, "Platform: ") {
		t.Errorf("Full() = %q", full)
	}
}
