package platform

import (
	"fmt"
	"runtime"
	"strings"

	"gngen/internal/functional"

	"github.com/hashicorp/hcl/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Platform is the operating system a descriptor is generated for
type Platform int

const (
	Linux Platform = iota
	Mac
	Windows
	Android
	IOS
	Harmony
)

var names = map[string]Platform{
	"linux":   Linux,
	"mac":     Mac,
	"windows": Windows,
	"android": Android,
	"ios":     IOS,
	"harmony": Harmony,
}

// aliases used by GOOS and by GN's target_os
var aliases = map[string]Platform{
	"darwin": Mac,
	"macos":  Mac,
	"win":    Windows,
	"ohos":   Harmony,
}

func (p Platform) String() string {
	for name, value := range names {
		if value == p {
			return name
		}
	}

	// this implies a 🐞 in the code
	panic(fmt.Sprintf("unknown platform %d", int(p)))
}

// LibrarySuffix is appended to every link library on this platform
func (p Platform) LibrarySuffix() string {
	if p == Windows {
		return ".lib"
	}

	return ""
}

// Names returns the canonical platform names sorted alphabetically
func Names() []string {
	result := maps.Keys(names)
	slices.Sort(result)
	return result
}

// Host is the platform gngen is running on
func Host() Platform {
	p, diags := Parse(runtime.GOOS)
	if diags.HasErrors() {
		return Linux
	}

	return p
}

func Parse(text string) (Platform, hcl.Diagnostics) {
	key := strings.ToLower(strings.TrimSpace(text))
	if p, ok := names[key]; ok {
		return p, nil
	}

	if p, ok := aliases[key]; ok {
		return p, nil
	}

	detail := fmt.Sprintf("Supported platforms are: %s.", strings.Join(Names(), ", "))
	if suggestion := functional.Suggest(key, Names()); suggestion != "" {
		detail = fmt.Sprintf("Did you mean %q?", suggestion)
	}

	return Linux, hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("unknown platform %q", text),
		Detail:   detail,
	}}
}
