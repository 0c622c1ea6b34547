// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestFilesystemPathValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   FilesystemPath
		wantErr bool
	}{
		{name: "unset", value: ""},
		{name: "absolute", value: "/home/user/.config/openinclude/config.cue"},
		{name: "relative", value: "config.cue"},
		{name: "windows", value: `C:\Users\me\AppData\Roaming\openinclude\config.cue`},
		{name: "spaces inside", value: "My Shaders/config.cue"},
		{name: "whitespace only", value: "  \t", wantErr: true},
		{name: "nul byte", value: "conf\x00ig.cue", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("FilesystemPath(%q).Validate() error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidFilesystemPath) {
				t.Errorf("error should wrap ErrInvalidFilesystemPath, got %v", err)
			}
		})
	}
}

func TestFilesystemPathIsSet(t *testing.T) {
	t.Parallel()

	if FilesystemPath("").IsSet() {
		t.Error("empty path should not be set")
	}
	if !FilesystemPath("a").IsSet() {
		t.Error("non-empty path should be set")
	}
	if got := FilesystemPath("a/b").String(); got != "a/b" {
		t.Errorf("String() = %q", got)
	}
}
