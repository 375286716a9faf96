package clipboard

import (
	"log/slog"
	"sync"

	"golang.design/x/clipboard"

	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
)

var (
	initMu      sync.Mutex
	initialized bool
)

// clipLog returns the component logger. Fetched per call so it follows
// logger.Init.
func clipLog() *slog.Logger { return logger.WithComponent("clipboard") }

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	initMu.Lock()
	defer initMu.Unlock()

	if initialized {
		return nil
	}

	if err := clipboard.Init(); err != nil {
		clipLog().Warn("init failed", "error", err)
		return perrors.ClipboardUnavailable(err)
	}

	initialized = true
	clipLog().Debug("initialized")
	return nil
}

// ReadImage attempts to read an image from the clipboard.
// Returns nil if clipboard doesn't contain an image.
func ReadImage() (*ImageData, error) {
	if err := Init(); err != nil {
		return nil, err
	}

	imgBytes := clipboard.Read(clipboard.FmtImage)
	if len(imgBytes) == 0 {
		clipLog().Debug("no image data")
		return nil, nil // No image in clipboard, not an error
	}

	clipLog().Debug("read image", "bytes", len(imgBytes))

	img, err := Decode(imgBytes)
	if err != nil {
		clipLog().Warn("decode failed", "error", err)
		return nil, err
	}

	clipLog().Debug("image decoded", "width", img.Width, "height", img.Height, "pngBytes", len(img.Data))
	return img, nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtText, []byte(text))
	clipLog().Debug("wrote text", "bytes", len(text))
	return nil
}
