package services

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Deglobeal/countrys-api/models"
)

const (
	summaryWidth  = 600
	summaryHeight = 400
	summaryTopN   = 5
)

// GenerateSummaryImage renders the refresh summary PNG at path. It
// degrades rather than fails: if the full render cannot be produced it
// falls back to a minimal placeholder, then to a blank pixel, so the
// image endpoint always has an artifact to serve once a refresh ran.
func GenerateSummaryImage(path string, total int64, top []models.Country, lastRefresh time.Time) error {
	data, err := renderSummaryPNG(total, top, lastRefresh)
	if err != nil {
		log.Printf("[IMAGE] Summary render failed, using placeholder: %v", err)
		data, err = renderPlaceholderPNG(total, lastRefresh)
		if err != nil {
			log.Printf("[IMAGE] Placeholder render failed, using blank pixel: %v", err)
			data = blankPixelPNG()
		}
	}
	return writeAtomic(path, data)
}

func renderSummaryPNG(total int64, top []models.Country, lastRefresh time.Time) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, summaryWidth, summaryHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	drawText(img, 20, 40, "Country Data Summary")
	drawText(img, 20, 80, fmt.Sprintf("Total Countries: %d", total))
	drawText(img, 20, 120, fmt.Sprintf("Top %d Countries by Estimated GDP:", summaryTopN))

	y := 150
	for i, country := range top {
		if i >= summaryTopN {
			break
		}
		gdp := "N/A"
		if country.EstimatedGDP != nil {
			gdp = "$" + formatAmount(*country.EstimatedGDP)
		}
		drawText(img, 40, y, fmt.Sprintf("%d. %s: %s", i+1, country.Name, gdp))
		y += 30
	}

	drawText(img, 20, y+30, "Last Refreshed: "+lastRefresh.UTC().Format("2006-01-02 15:04:05 UTC"))

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPlaceholderPNG(total int64, lastRefresh time.Time) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	drawText(img, 20, 40, "Country Data Summary")
	drawText(img, 20, 80, fmt.Sprintf("Total Countries: %d", total))
	drawText(img, 20, 110, "Last Updated: "+lastRefresh.UTC().Format("2006-01-02 15:04:05"))

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// blankPixelPNG is the terminal fallback: a 1x1 white PNG.
func blankPixelPNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	// Encoding into a buffer cannot fail for a well-formed image.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func drawText(img *image.RGBA, x, y int, text string) {
	drawer := font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}

// formatAmount renders a currency figure with thousands separators and
// two decimals, e.g. 1234567.8 -> "1,234,567.80".
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}

	out := b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// writeAtomic writes data to a temp file next to path and renames it
// into place, so concurrent readers never see a half-written image.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "summary-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	return nil
}
