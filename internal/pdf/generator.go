package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Session holds a headless browser page with a rendered document loaded.
// The export worker prints the PDF and captures the preview thumbnail from
// the same page, then calls Close.
type Session struct {
	browser *rod.Browser
	page    *rod.Page
	cleanup func()
}

// NewSession launches headless Chromium and loads htmlContent into a page.
func NewSession(htmlContent string) (_ *Session, err error) {
	launch := launcher.New().
		Headless(true).
		NoSandbox(true)
	defer func() {
		if err != nil {
			launch.Cleanup()
		}
	}()

	if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(browserURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		if err != nil {
			_ = browser.Close()
		}
	}()

	page, err := browser.Timeout(30 * time.Second).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	page = page.Timeout(30 * time.Second)
	if err := page.SetDocumentContent(htmlContent); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("set document content: %w", err)
	}

	if err := page.WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("wait load: %w", err)
	}

	// Web fonts settle after load; wait briefly so the print metrics match
	// the screen rendering.
	if _, evalErr := page.Timeout(5 * time.Second).Eval(`() => {
	  if (document && document.fonts && document.fonts.ready) {
	    return Promise.race([
	      document.fonts.ready.then(() => true),
	      new Promise((resolve) => setTimeout(() => resolve(true), 3000))
	    ]);
	  }
	  return true;
	}`); evalErr != nil {
		// Fall back to whatever fonts are available.
		_ = evalErr
	}

	if err := (proto.EmulationSetEmulatedMedia{Media: "print"}).Call(page); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("set emulated media to print: %w", err)
	}

	session := &Session{
		browser: browser,
		page:    page,
		cleanup: func() {
			_ = page.Close()
			_ = browser.Close()
			launch.Cleanup()
		},
	}
	return session, nil
}

// PDF prints the loaded document to A4 with zero margins.
func (s *Session) PDF() ([]byte, error) {
	params := &proto.PagePrintToPDF{
		PrintBackground:   true,
		PaperWidth:        float64Ptr(8.27),
		PaperHeight:       float64Ptr(11.69),
		MarginTop:         float64Ptr(0),
		MarginBottom:      float64Ptr(0),
		MarginLeft:        float64Ptr(0),
		MarginRight:       float64Ptr(0),
		PreferCSSPageSize: true,
	}
	reader, err := s.page.PDF(params)
	if err != nil {
		return nil, fmt.Errorf("export pdf: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read pdf bytes: %w", err)
	}
	return data, nil
}

// Screenshot captures the A4 canvas as a JPEG thumbnail, falling back to the
// full viewport when the canvas element cannot be located.
func (s *Session) Screenshot(quality int) ([]byte, error) {
	element, err := s.page.Timeout(5 * time.Second).Element(".a4-page")
	if err == nil {
		if data, shotErr := element.Screenshot(proto.PageCaptureScreenshotFormatJpeg, quality); shotErr == nil {
			return data, nil
		}
	}

	req := &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: intPtr(quality),
	}
	data, err := s.page.Screenshot(true, req)
	if err != nil {
		return nil, fmt.Errorf("page screenshot: %w", err)
	}
	return data, nil
}

// Close releases the page, browser and launcher resources.
func (s *Session) Close() {
	s.cleanup()
}

// GeneratePDFFromHTML renders htmlContent and returns the PDF bytes in one
// shot for callers that do not need a preview.
func GeneratePDFFromHTML(htmlContent string) ([]byte, error) {
	session, err := NewSession(htmlContent)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	return session.PDF()
}

func float64Ptr(value float64) *float64 {
	return &value
}

func intPtr(value int) *int {
	return &value
}
