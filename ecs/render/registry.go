package render

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Registry caches GPU textures by handle.
type Registry struct {
	images map[string]*ebiten.Image
}

func NewRegistry() *Registry {
	return &Registry{images: map[string]*ebiten.Image{}}
}

// Register stores an image by key, replacing any previous one.
func (r *Registry) Register(key string, img *ebiten.Image) {
	if r == nil || key == "" || img == nil {
		return
	}
	if old := r.images[key]; old != nil && old != img {
		old.Deallocate()
	}
	r.images[key] = img
}

// RegisterImage uploads a decoded image and stores it by key.
func (r *Registry) RegisterImage(key string, img image.Image) {
	if img == nil {
		return
	}
	r.Register(key, ebiten.NewImageFromImage(img))
}

// Get returns a cached image by key.
func (r *Registry) Get(key string) *ebiten.Image {
	if r == nil || key == "" {
		return nil
	}
	return r.images[key]
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.images)
}
