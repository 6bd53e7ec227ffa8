package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Extension is a file kind derived from a path suffix. The set is closed:
// anything not listed maps to ExtOther.
type Extension string

const (
	ExtTxt   Extension = "txt"
	ExtCsv   Extension = "csv"
	ExtXlsx  Extension = "xlsx"
	ExtXlsm  Extension = "xlsm"
	ExtPptx  Extension = "pptx"
	ExtBat   Extension = "bat"
	ExtJava  Extension = "java"
	ExtClass Extension = "class"
	ExtJson  Extension = "json"
	ExtPy    Extension = "py"
	ExtRs    Extension = "rs"
	ExtTs    Extension = "ts"
	ExtJs    Extension = "js"
	ExtTsx   Extension = "tsx"
	ExtJsx   Extension = "jsx"
	ExtMd    Extension = "md"
	ExtOther Extension = "other"
)

var knownExtensions = map[string]Extension{
	"txt":   ExtTxt,
	"csv":   ExtCsv,
	"xlsx":  ExtXlsx,
	"xlsm":  ExtXlsm,
	"pptx":  ExtPptx,
	"bat":   ExtBat,
	"java":  ExtJava,
	"class": ExtClass,
	"json":  ExtJson,
	"py":    ExtPy,
	"rs":    ExtRs,
	"ts":    ExtTs,
	"js":    ExtJs,
	"tsx":   ExtTsx,
	"jsx":   ExtJsx,
	"md":    ExtMd,
}

// ClassifyExtension maps the text after the last '.' of the final path
// segment to a known Extension. Matching is case-sensitive; a leading dot
// alone (".bashrc") is not an extension.
func ClassifyExtension(path string) Extension {
	base := filepath.Base(path)
	idx := strings.LastIndexByte(base, '.')
	if idx <= 0 || idx == len(base)-1 {
		return ExtOther
	}
	if ext, ok := knownExtensions[base[idx+1:]]; ok {
		return ext
	}
	return ExtOther
}

// Matches reports whether path classifies as e.
func (e Extension) Matches(path string) bool {
	return ClassifyExtension(path) == e
}

func (e Extension) String() string {
	return string(e)
}

// ParseExtension turns a configured name ("rs", ".rs", "other") into a tag.
func ParseExtension(name string) (Extension, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), ".")
	if name == string(ExtOther) {
		return ExtOther, nil
	}
	if ext, ok := knownExtensions[name]; ok {
		return ext, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownExtension, name)
}

// ParseExtensions parses every name, failing on the first unknown one.
func ParseExtensions(names []string) ([]Extension, error) {
	exts := make([]Extension, 0, len(names))
	for _, name := range names {
		ext, err := ParseExtension(name)
		if err != nil {
			return nil, err
		}
		exts = append(exts, ext)
	}
	return exts, nil
}
