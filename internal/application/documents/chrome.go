package documents

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// A4 in inches.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

// ChromeConverter prints the HTML file with headless Chrome as an A4
// landscape PDF, backgrounds included.
type ChromeConverter struct {
	Timeout time.Duration
}

func NewChromeConverter() *ChromeConverter {
	return &ChromeConverter{Timeout: time.Minute}
}

func (c *ChromeConverter) Convert(ctx context.Context, input string) (string, error) {
	out, err := prepare(input)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return "", err
	}

	chromeCtx, cancel := chromedp.NewContext(ctx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancel()
	if c.Timeout > 0 {
		chromeCtx, cancel = context.WithTimeout(chromeCtx, c.Timeout)
		defer cancel()
	}

	start := time.Now()
	var pdf []byte
	err = chromedp.Run(chromeCtx,
		chromedp.Navigate((&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithLandscape(true).
				WithPrintBackground(true).
				Do(ctx)
			pdf = buf
			return err
		}),
	)
	if err != nil {
		log.Warn().Err(err).Str("input", input).Msg("chrome conversion failed")
		return "", &ConversionError{Input: input, Output: out, Err: err}
	}
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return "", &ConversionError{Input: input, Output: out, Err: err}
	}
	log.Info().Str("input", input).Str("output", out).Int("bytes", len(pdf)).Dur("took", time.Since(start)).Msg("document converted")
	return out, nil
}
