package graphs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Screenshot defines a CliRenderer that draws the ECharts page in headless Chrome and
// saves it as a PNG.
type Screenshot struct {
	*ECharts
	logger  *slog.Logger
	width   int64
	height  int64
	timeout time.Duration
	// settle is how long the page gets to draw after the canvas appears.
	settle time.Duration
}

var _ CliRenderer = (*Screenshot)(nil)

func NewScreenshot(title string, width, height int64, timeout time.Duration, logger *slog.Logger) *Screenshot {
	return &Screenshot{
		ECharts: NewECharts(title),
		logger:  logger,
		width:   width,
		height:  height,
		timeout: timeout,
		settle:  500 * time.Millisecond,
	}
}

func (s *Screenshot) RenderToFile(filename string) error {
	png, err := s.Capture(context.Background())
	if err != nil {
		return err
	}
	return os.WriteFile(filename+".png", png, 0o644)
}

// Capture returns the PNG bytes of the most recently rendered frame.
func (s *Screenshot) Capture(ctx context.Context) ([]byte, error) {
	var doc bytes.Buffer
	if err := s.Write(&doc); err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}

	startTime := time.Now()

	timeoutCtx, timeoutCancel := context.WithTimeout(ctx, s.timeout)
	defer timeoutCancel()

	chromeCtx, cancel := chromedp.NewContext(timeoutCtx)
	defer cancel()

	downloadedBytes := int64(0)

	countBytesAction := func(ctx context.Context) error {
		chromedp.ListenTarget(ctx, func(ev interface{}) {
			switch ev := ev.(type) {
			case *network.EventLoadingFinished:
				downloadedBytes += int64(ev.EncodedDataLength)
			}
		})
		return nil
	}

	var png []byte
	err := chromedp.Run(chromeCtx,
		network.Enable(),
		chromedp.ActionFunc(countBytesAction),
		chromedp.EmulateViewport(s.width, s.height),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, doc.String()).Do(ctx)
		}),
		chromedp.WaitVisible("canvas", chromedp.ByQuery),
		chromedp.Sleep(s.settle),
		chromedp.CaptureScreenshot(&png),
	)
	if err != nil {
		return nil, fmt.Errorf("capturing screenshot: %w", err)
	}

	s.logger.Debug("captured screenshot",
		"bytes", len(png),
		"assetBytes", downloadedBytes,
		"duration", time.Since(startTime))

	return png, nil
}
