// Command symcheck verifies that every OpenVINO C symbol the bridge binds is
// declared by the C API headers of a given OpenVINO release.
//
//	go run ./tools/symcheck -version 2024.0.0
//	go run ./tools/symcheck -headers /opt/intel/openvino/runtime/include/openvino/c
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"
)

const headerURLTemplate = "https://raw.githubusercontent.com/openvinotoolkit/openvino/%s/src/bindings/c/include/openvino/c/%s"

// headerFiles are the C API headers declaring the symbols the bridge binds.
var headerFiles = []string{
	"ov_common.h",
	"ov_core.h",
	"ov_model.h",
	"ov_compiled_model.h",
	"ov_infer_request.h",
	"ov_node.h",
	"ov_partial_shape.h",
	"ov_shape.h",
	"ov_tensor.h",
}

var (
	registerPattern = regexp.MustCompile(`register\(&funcs\.[A-Za-z0-9_]+,\s*"(ov_[a-z0-9_]+)"\)`)
	declPattern     = regexp.MustCompile(`OPENVINO_C_API\([^)]*\)\s*(ov_[a-z0-9_]+)\s*\(`)
)

func main() {
	version := flag.String("version", "2024.0.0", "OpenVINO release tag to fetch headers for")
	headers := flag.String("headers", "", "read headers from this directory instead of downloading")
	funcsPath := flag.String("funcs", "openvino/internal/api/capi/funcs.go", "Go file registering the symbols")
	flag.Parse()

	src, err := os.ReadFile(*funcsPath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *funcsPath, err)
	}
	registered := parseRegistered(src)
	log.Printf("Found %d registered symbols in %s", len(registered), *funcsPath)

	declared := map[string]bool{}
	for _, name := range headerFiles {
		data, err := loadHeader(*headers, *version, name)
		if err != nil {
			log.Fatalf("Failed to load %s: %v", name, err)
		}
		for _, sym := range parseDeclared(data) {
			declared[sym] = true
		}
	}
	log.Printf("Found %d declared symbols", len(declared))

	missing := missingSymbols(registered, declared)
	if len(missing) > 0 {
		for _, sym := range missing {
			fmt.Printf("missing: %s\n", sym)
		}
		os.Exit(1)
	}
	log.Println("All registered symbols are declared")
}

func loadHeader(dir, version, name string) ([]byte, error) {
	if dir != "" {
		return os.ReadFile(filepath.Join(dir, name))
	}

	url := fmt.Sprintf(headerURLTemplate, version, name)
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: HTTP %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseRegistered returns the symbol names passed to register, in order.
func parseRegistered(src []byte) []string {
	var out []string
	for _, m := range registerPattern.FindAllSubmatch(src, -1) {
		out = append(out, string(m[1]))
	}
	return out
}

// parseDeclared returns the functions a header exports with OPENVINO_C_API.
func parseDeclared(header []byte) []string {
	var out []string
	for _, m := range declPattern.FindAllSubmatch(header, -1) {
		out = append(out, string(m[1]))
	}
	return out
}

func missingSymbols(registered []string, declared map[string]bool) []string {
	var missing []string
	for _, sym := range registered {
		if !declared[sym] && !slices.Contains(missing, sym) {
			missing = append(missing, sym)
		}
	}
	return missing
}
