package services

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/keyvez/vaan-backend/internal/logger"
)

const (
	ogWidth  = 1200
	ogHeight = 630
)

// OGImageService renders share cards for social previews. Cards are drawn on
// demand and returned as PNG bytes; callers set cache headers.
type OGImageService interface {
	RenderWordCard(card WordCard) ([]byte, error)
	RenderNameCard(card NameCard) ([]byte, error)
}

type WordCard struct {
	Sanskrit        string
	Transliteration string
	Meaning         string
	SiteName        string
}

type NameCard struct {
	Name          string
	Pronunciation string
	Meaning       string
	Gender        string
	SiteName      string
}

type ogImageService struct {
	log *logger.Logger

	devanagari *truetype.Font
	latin      *truetype.Font
}

func NewOGImageService(log *logger.Logger) (OGImageService, error) {
	serviceLog := log.With("service", "OGImageService")

	devanagariPath := os.Getenv("OG_DEVANAGARI_FONT_PATH")
	if strings.TrimSpace(devanagariPath) == "" {
		return nil, fmt.Errorf("Env var OG_DEVANAGARI_FONT_PATH is empty")
	}
	latinPath := os.Getenv("OG_FONT_PATH")
	if strings.TrimSpace(latinPath) == "" {
		return nil, fmt.Errorf("Env var OG_FONT_PATH is empty")
	}
	serviceLog.Info("Loading share card fonts", "devanagari", devanagariPath, "latin", latinPath)

	devanagari, err := loadTTF(devanagariPath)
	if err != nil {
		return nil, fmt.Errorf("could not load devanagari font: %w", err)
	}
	latin, err := loadTTF(latinPath)
	if err != nil {
		return nil, fmt.Errorf("could not load latin font: %w", err)
	}

	return &ogImageService{
		log:        serviceLog,
		devanagari: devanagari,
		latin:      latin,
	}, nil
}

func (s *ogImageService) RenderWordCard(card WordCard) ([]byte, error) {
	dc := gg.NewContext(ogWidth, ogHeight)

	// Saffron gradient background
	grad := gg.NewLinearGradient(0, 0, ogWidth, ogHeight)
	grad.AddColorStop(0, color.NRGBA{R: 0xFF, G: 0x99, B: 0x33, A: 0xFF})
	grad.AddColorStop(1, color.NRGBA{R: 0xCC, G: 0x55, B: 0x00, A: 0xFF})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, ogWidth, ogHeight)
	dc.Fill()

	cx := float64(ogWidth) / 2

	dc.SetColor(color.White)
	dc.SetFontFace(faceFor(s.devanagari, 140))
	dc.DrawStringAnchored(card.Sanskrit, cx, 230, 0.5, 0.5)

	if card.Transliteration != "" {
		dc.SetColor(color.NRGBA{R: 0xFF, G: 0xEE, B: 0xDD, A: 0xFF})
		dc.SetFontFace(faceFor(s.latin, 52))
		dc.DrawStringAnchored(card.Transliteration, cx, 360, 0.5, 0.5)
	}

	if card.Meaning != "" {
		dc.SetColor(color.White)
		dc.SetFontFace(faceFor(s.latin, 44))
		dc.DrawStringAnchored(truncateLine(card.Meaning, 60), cx, 440, 0.5, 0.5)
	}

	siteName := card.SiteName
	if siteName == "" {
		siteName = "संस्कृत रोज़"
	}
	dc.SetColor(color.NRGBA{R: 0xFF, G: 0xE5, B: 0xC2, A: 0xFF})
	dc.SetFontFace(faceFor(s.devanagari, 36))
	dc.DrawStringAnchored(siteName, cx, 560, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ogImageService) RenderNameCard(card NameCard) ([]byte, error) {
	dc := gg.NewContext(ogWidth, ogHeight)

	start, end := genderAccent(card.Gender)
	grad := gg.NewLinearGradient(0, 0, ogWidth, ogHeight)
	grad.AddColorStop(0, start)
	grad.AddColorStop(1, end)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, ogWidth, ogHeight)
	dc.Fill()

	cx := float64(ogWidth) / 2

	dc.SetColor(color.White)
	dc.SetFontFace(faceFor(s.devanagari, 120))
	dc.DrawStringAnchored(card.Name, cx, 210, 0.5, 0.5)

	if card.Pronunciation != "" {
		dc.SetColor(color.NRGBA{R: 0xF2, G: 0xF2, B: 0xF2, A: 0xFF})
		dc.SetFontFace(faceFor(s.latin, 48))
		dc.DrawStringAnchored(card.Pronunciation, cx, 330, 0.5, 0.5)
	}

	if card.Meaning != "" {
		dc.SetColor(color.White)
		dc.SetFontFace(faceFor(s.latin, 42))
		dc.DrawStringAnchored(truncateLine(card.Meaning, 64), cx, 420, 0.5, 0.5)
	}

	siteName := card.SiteName
	if siteName == "" {
		siteName = "संस्कृत रोज़"
	}
	dc.SetColor(color.NRGBA{R: 0xEE, G: 0xE6, B: 0xDA, A: 0xFF})
	dc.SetFontFace(faceFor(s.devanagari, 36))
	dc.DrawStringAnchored(siteName, cx, 560, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func genderAccent(gender string) (color.NRGBA, color.NRGBA) {
	switch strings.ToLower(gender) {
	case "boy":
		return color.NRGBA{R: 0x2E, G: 0x6F, B: 0xB7, A: 0xFF}, color.NRGBA{R: 0x12, G: 0x35, B: 0x6B, A: 0xFF}
	case "girl":
		return color.NRGBA{R: 0xC2, G: 0x4A, B: 0x7A, A: 0xFF}, color.NRGBA{R: 0x78, G: 0x1E, B: 0x45, A: 0xFF}
	default:
		return color.NRGBA{R: 0x4C, G: 0x8C, B: 0x5C, A: 0xFF}, color.NRGBA{R: 0x1F, G: 0x4D, B: 0x2E, A: 0xFF}
	}
}

func truncateLine(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func loadTTF(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return parsed, nil
}

func faceFor(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
