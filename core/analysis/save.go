package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/siherrmann/companygraph/helper"
)

const fileTimeLayout = "20060102_150405"

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_")

// AnalysisFileName returns analysis_<company>_<YYYYMMDD_HHMMSS>.json for the given time
func AnalysisFileName(company string, now time.Time) string {
	return fmt.Sprintf("analysis_%s_%s.json", fileNameReplacer.Replace(company), now.Format(fileTimeLayout))
}

// SaveAnalysisResult writes v as indented JSON into dir and returns the file path.
// Non-ASCII characters and HTML are written unescaped.
func SaveAnalysisResult(dir string, company string, v interface{}, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	err := encoder.Encode(v)
	if err != nil {
		return "", helper.NewError("encode analysis", err)
	}

	err = os.MkdirAll(dir, 0o750)
	if err != nil {
		return "", helper.NewError("create output directory", err)
	}

	path := filepath.Clean(filepath.Join(dir, AnalysisFileName(company, now)))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", helper.NewError("create analysis file", err)
	}

	_, err = file.Write(buf.Bytes())
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		// Partial files are not left behind
		_ = os.Remove(path)
		return "", helper.NewError("write analysis file", err)
	}

	return path, nil
}
