package filesystem

import (
	"fmt"
	"os"

	"github.com/ajkula/moni/domain/model"
	"github.com/ajkula/moni/domain/port/outbound"
)

// SizeObserver reports the byte size of a file.
type SizeObserver struct{}

func (SizeObserver) Observe(path string) (int64, error) {
	info, err := statFile(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ModTimeObserver reports the modification time in nanoseconds.
type ModTimeObserver struct{}

func (ModTimeObserver) Observe(path string) (int64, error) {
	info, err := statFile(path)
	if err != nil {
		return 0, err
	}
	return info.ModTime().UnixNano(), nil
}

// NewObserver returns the observer for mode, size being the default.
func NewObserver(mode model.DetectMode) (outbound.FileObserver, error) {
	switch mode {
	case "", model.DetectBySize:
		return SizeObserver{}, nil
	case model.DetectByModTime:
		return ModTimeObserver{}, nil
	default:
		return nil, fmt.Errorf("unknown detect mode: %q", mode)
	}
}

// statFile follows symlinks; a directory is not observable.
func statFile(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return info, nil
}
