//go:build darwin || linux || freebsd

package openvino

import (
	goruntime "runtime"

	"github.com/ebitengine/purego"
)

var defaultLibraryName = func() string {
	if goruntime.GOOS == "darwin" {
		return "libopenvino_c.dylib"
	}
	return "libopenvino_c.so"
}()

func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func closeLibrary(handle uintptr) error {
	return purego.Dlclose(handle)
}
