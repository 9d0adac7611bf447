package landing

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1920
	jpegQuality   = 80
	imagesSubdir  = "img"
)

// resizeImage scales img down to width, keeping the aspect ratio. Images
// already at most width wide are returned unchanged.
func resizeImage(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= width {
		return img
	}
	newH := h * width / w
	if newH < 1 {
		newH = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// encodeImage writes img as PNG when the source was PNG, JPEG otherwise.
func encodeImage(img image.Image, format string) ([]byte, string, error) {
	var buf bytes.Buffer
	if format == "png" {
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("encode png: %w", err)
		}
		return buf.Bytes(), "image/png", nil
	}
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

// validImageName accepts a bare file name with a raster image extension.
func validImageName(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}

// handleImage serves StaticDir/img/:name, downscaled when ?w= is given.
// Resizing is rate limited per client IP.
func (a *App) handleImage(c echo.Context) error {
	name := c.Param("name")
	if !validImageName(name) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	path := filepath.Join(a.Config.StaticDir, imagesSubdir, name)

	raw := c.QueryParam("w")
	if raw == "" {
		return c.File(path)
	}
	width, err := strconv.Atoi(raw)
	if err != nil || width < 1 || width > maxImageWidth {
		return echo.NewHTTPError(http.StatusBadRequest, "w must be between 1 and "+strconv.Itoa(maxImageWidth))
	}
	if !a.images.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests)
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if err != nil {
		return err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode image %s: %w", name, err)
	}
	data, contentType, err := encodeImage(resizeImage(img, width), format)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentType, data)
}
