package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/raycaster/ecs/component"
	"github.com/milk9111/raycaster/logger"
)

//go:embed *.png
var assetsFS embed.FS

// LoadFile returns an asset by assets-relative path. A copy under assets/ on
// disk wins over the embedded one.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fs.ErrNotExist
	}
	if data, err := os.ReadFile(filepath.Join("assets", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return assetsFS.ReadFile(clean)
}

// LoadImage decodes an image asset by assets-relative path.
func LoadImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// Kind selects the placeholder generated when a texture has no PNG.
type Kind int

const (
	KindWall Kind = iota
	KindDoor
	KindSprite
)

// Texture returns <name>.png or a generated placeholder of the given kind.
// Wall and door textures are 2w wide, lit half first.
func Texture(name string, kind Kind, w, h int) image.Image {
	if img, err := LoadImage(name + ".png"); err == nil {
		return img
	} else if !errors.Is(err, fs.ErrNotExist) {
		logger.Log.WithError(err).Warnf("texture %s: using placeholder", name)
	}
	switch kind {
	case KindWall:
		return WallTexture(name, w, h)
	case KindDoor:
		return DoorTexture(name, w, h)
	}
	return SpriteTexture(name, w, h)
}

// Sheet returns <name>.png or a generated sheet matching layout.
func Sheet(name string, layout component.SpriteLayout) image.Image {
	if img, err := LoadImage(name + ".png"); err == nil {
		return img
	}
	return SpriteSheet(name, layout)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
