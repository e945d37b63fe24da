package emit

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gngen/internal/platform"
	"gngen/internal/target"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Diff compares the file at filename with what Emit would write. It returns an
// empty string when both are identical, otherwise a unified diff. A missing
// file is compared as an empty one
func Diff(descriptor *target.Descriptor, filename, rebasePath string, p platform.Platform) (string, error) {
	var generated bytes.Buffer
	err := Render(&generated, descriptor, rebasePath, p)
	if err != nil {
		return "", err
	}

	current, err := os.ReadFile(filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if bytes.Equal(current, generated.Bytes()) {
		return "", nil
	}

	edits := myers.ComputeEdits(span.URIFromPath(filename), string(current), generated.String())
	unified := gotextdiff.ToUnified(filename, filename+" (generated)", string(current), edits)
	return fmt.Sprint(unified), nil
}
