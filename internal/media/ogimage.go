package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// Open Graph card dimensions expected by link-preview crawlers.
	ogWidth  = 1200
	ogHeight = 630

	ogWebPQuality = 80
	ogMaxLines    = 6
	ogLineChars   = 48
)

var (
	ogBackground = color.RGBA{R: 0x12, G: 0x12, B: 0x1a, A: 0xff}
	ogText       = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	ogAccent     = color.RGBA{R: 0x8a, G: 0x6c, B: 0xff, A: 0xff}
)

// OGRenderer renders share-card images for posts and writes them under the
// media directory as both PNG and WebP.
type OGRenderer struct {
	mediaDir string
}

// NewOGRenderer creates a renderer rooted at mediaDir. An empty dir disables
// rendering.
func NewOGRenderer(mediaDir string) *OGRenderer {
	return &OGRenderer{mediaDir: mediaDir}
}

func (r *OGRenderer) Enabled() bool {
	return r != nil && r.mediaDir != ""
}

// Render draws a 1200x630 card with the post text and author handle and
// stores it as og/<postID>.png and og/<postID>.webp. Returns the relative
// path of the PNG.
func (r *OGRenderer) Render(postID uint, authorHandle, content string) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, ogWidth, ogHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(ogBackground), image.Point{}, draw.Src)

	// Accent bar along the left edge.
	bar := image.Rect(0, 0, 16, ogHeight)
	draw.Draw(img, bar, image.NewUniform(ogAccent), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	lines := wrapText(content, ogLineChars, ogMaxLines)

	y := 180
	for _, line := range lines {
		drawString(img, face, ogText, 80, y, line)
		y += 40
	}
	drawString(img, face, ogAccent, 80, ogHeight-80, "@"+authorHandle)

	pngBytes, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	webpBytes, err := encodeWebP(img, ogWebPQuality)
	if err != nil {
		return "", err
	}

	pngRel := filepath.ToSlash(filepath.Join("og", fmt.Sprintf("%d.png", postID)))
	webpRel := filepath.ToSlash(filepath.Join("og", fmt.Sprintf("%d.webp", postID)))
	if err := writeBytesToFile(filepath.Join(r.mediaDir, pngRel), pngBytes); err != nil {
		return "", err
	}
	if err := writeBytesToFile(filepath.Join(r.mediaDir, webpRel), webpBytes); err != nil {
		return "", err
	}
	return pngRel, nil
}

func drawString(dst draw.Image, face font.Face, c color.Color, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// wrapText breaks text into at most maxLines lines of roughly lineChars
// characters, appending an ellipsis when truncated.
func wrapText(text string, lineChars, maxLines int) []string {
	words := strings.Fields(text)
	var lines []string
	var cur strings.Builder

	for _, w := range words {
		if cur.Len() > 0 && cur.Len()+1+len(w) > lineChars {
			lines = append(lines, cur.String())
			cur.Reset()
			if len(lines) == maxLines {
				last := lines[maxLines-1]
				lines[maxLines-1] = strings.TrimRight(last, " ") + "..."
				return lines
			}
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}

func encodePNG(img image.Image) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
