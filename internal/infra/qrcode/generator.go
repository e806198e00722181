package qrcode

import (
	"encoding/base64"
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 300

// Generator renders QR codes as PNG data URLs that can be stored next to the
// record and dropped straight into an <img src>.
type Generator struct {
	Size  int
	Level goqrcode.RecoveryLevel
}

func NewGenerator() *Generator {
	return &Generator{Size: defaultSize, Level: goqrcode.Medium}
}

func (g *Generator) PNG(content string) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qrcode: empty content")
	}
	size := g.Size
	if size <= 0 {
		size = defaultSize
	}
	png, err := goqrcode.Encode(content, g.Level, size)
	if err != nil {
		return nil, fmt.Errorf("qrcode: encoding %q: %w", content, err)
	}
	return png, nil
}

func (g *Generator) DataURL(content string) (string, error) {
	png, err := g.PNG(content)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
