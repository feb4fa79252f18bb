package services

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/types"
	"github.com/bundleworks/commerce-backend/internal/utils"
)

const coverSize = 512

// CoverService renders a monogram PNG for bundles that have no media of
// their own: a flat background picked from the bundle id with the title
// initials on top.
type CoverService interface {
	RenderBundleCover(bundle *types.ProductBundle) (bytes.Buffer, error)
}

type coverService struct {
	log      *logger.Logger
	fontFace font.Face
	palette  []color.NRGBA
}

func NewCoverService(baseLog *logger.Logger) (CoverService, error) {
	serviceLog := baseLog.With("service", "CoverService")

	fontPath := strings.TrimSpace(utils.GetEnv("COVER_FONT", "", baseLog))
	if fontPath == "" {
		return nil, fmt.Errorf("env var COVER_FONT is empty")
	}
	serviceLog.Info("Loading cover font", "font", fontPath)
	face, err := loadFontFace(fontPath, 220)
	if err != nil {
		return nil, fmt.Errorf("could not load cover font: %w", err)
	}

	return &coverService{
		log:      serviceLog,
		fontFace: face,
		palette: []color.NRGBA{
			{R: 0x2F, G: 0x6F, B: 0x8F, A: 0xFF},
			{R: 0x8F, G: 0x3B, B: 0x4A, A: 0xFF},
			{R: 0x3E, G: 0x7C, B: 0x4F, A: 0xFF},
			{R: 0x6B, G: 0x4F, B: 0x8F, A: 0xFF},
			{R: 0xA0, G: 0x6A, B: 0x2E, A: 0xFF},
		},
	}, nil
}

func (cs *coverService) RenderBundleCover(bundle *types.ProductBundle) (bytes.Buffer, error) {
	var buf bytes.Buffer
	if bundle == nil {
		return buf, fmt.Errorf("no bundle given")
	}

	dc := gg.NewContext(coverSize, coverSize)
	bg := cs.palette[paletteIndex(bundle.ID[:], len(cs.palette))]
	dc.SetColor(bg)
	dc.Clear()

	dc.SetFontFace(cs.fontFace)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(monogram(bundle.Title), coverSize/2, coverSize/2, 0.5, 0.5)

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("error encoding cover png: %w", err)
	}
	return buf, nil
}

func loadFontFace(path string, points float64) (font.Face, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed, err := truetype.Parse(raw)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: points}), nil
}

// monogram takes the first letters of up to two title words.
func monogram(title string) string {
	var letters []rune
	for _, word := range strings.Fields(title) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				letters = append(letters, unicode.ToUpper(r))
			}
			break
		}
		if len(letters) == 2 {
			break
		}
	}
	if len(letters) == 0 {
		return "?"
	}
	return string(letters)
}

func paletteIndex(seed []byte, size int) int {
	var sum int
	for _, b := range seed {
		sum += int(b)
	}
	return sum % size
}
