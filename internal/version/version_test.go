// Copyright (c) 2017-2018 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package version

import "testing"

// TestNormalize ensures invalid characters are stripped from pre-release and
// build metadata strings.
func TestNormalize(t *testing.T) {
	tests := []struct {
		in        string
		wantPre   string
		wantBuild string
	}{
		{"", "", ""},
		{"beta", "beta", "beta"},
		{"rc.1", "rc1", "rc.1"},
		{"a+b c_d", "abcd", "abcd"},
	}

	for i, test := range tests {
		if got := NormalizePreRelString(test.in); got != test.wantPre {
			t.Errorf("NormalizePreRelString #%d: got %q, want %q", i,
				got, test.wantPre)
		}
		if got := NormalizeBuildString(test.in); got != test.wantBuild {
			t.Errorf("NormalizeBuildString #%d: got %q, want %q", i,
				got, test.wantBuild)
		}
	}
}

// TestString ensures the version string includes the pre-release and build
// metadata only when they are set.
func TestString(t *testing.T) {
	defer func(pre, build string) {
		PreRelease, BuildMetadata = pre, build
	}(PreRelease, BuildMetadata)

	PreRelease, BuildMetadata = "", ""
	if got := String(); got != "0.1.0" {
		t.Fatalf("String: got %q, want %q", got, "0.1.0")
	}

	PreRelease, BuildMetadata = "beta", "abc.1"
	if got := String(); got != "0.1.0-beta+abc.1" {
		t.Fatalf("String: got %q, want %q", got, "0.1.0-beta+abc.1")
	}
}
