package resources

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Required sprite names. The game cannot start without them.
const (
	AssetPlayer = "player"
	AssetEnemy  = "enemy"
)

// RequiredAssets lists the logical names checked at startup.
var RequiredAssets = []string{AssetPlayer, AssetEnemy}

// ErrMissingAsset is returned by RequireAssets when a required asset is not
// declared in the manifest or its file cannot be found.
var ErrMissingAsset = errors.New("missing required asset")

// ResourceManager resolves logical asset names through the manifest and
// loads and caches images from an fs.FS.
//
// The file system is either the embedded assets (see pkg/embedded) or an
// on-disk directory given on the command line. Paths inside it are always
// slash-separated and start with the manifest's base path.
//
// This implementation is NOT thread-safe; all loading happens on the main
// goroutine before the game loop starts.
type ResourceManager struct {
	fsys        fs.FS
	config      *ResourceConfig
	resourceMap map[string]string        // Resource ID -> file path
	imageCache  map[string]*ebiten.Image // file path -> Image
}

// NewResourceManager creates a ResourceManager reading from fsys.
func NewResourceManager(fsys fs.FS) *ResourceManager {
	return &ResourceManager{
		fsys:        fsys,
		resourceMap: make(map[string]string),
		imageCache:  make(map[string]*ebiten.Image),
	}
}

// LoadResourceConfig reads and parses the manifest at configPath inside the
// resource file system, then builds the ID -> path mapping.
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := fs.ReadFile(rm.fsys, configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	cfg, err := ParseResourceConfig(data)
	if err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}

	rm.config = cfg
	rm.buildResourceMap()
	log.Printf("[ResourceManager] Loaded %d resource ids from %s", len(rm.resourceMap), configPath)
	return nil
}

// buildResourceMap constructs the mapping from resource IDs to full paths.
//
//	player -> assets/images/player.png
func (rm *ResourceManager) buildResourceMap() {
	rm.resourceMap = make(map[string]string)
	if rm.config == nil {
		return
	}

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(rm.config.BasePath, img.Path)
			if path.Ext(fullPath) == "" {
				fullPath += ".png"
			}
			rm.resourceMap[img.ID] = fullPath
		}
	}
}

// GetResourcePath returns the file path mapped to a resource ID.
func (rm *ResourceManager) GetResourcePath(id string) (string, bool) {
	p, ok := rm.resourceMap[id]
	return p, ok
}

// RequireAssets verifies that every id is declared in the manifest and that
// its file exists. All missing ids are reported together.
//
// Returns an error wrapping ErrMissingAsset; callers treat it as fatal.
func (rm *ResourceManager) RequireAssets(ids ...string) error {
	var missing []string
	for _, id := range ids {
		p, ok := rm.GetResourcePath(id)
		if !ok {
			missing = append(missing, id+" (not in manifest)")
			continue
		}
		if _, err := fs.Stat(rm.fsys, p); err != nil {
			missing = append(missing, id+" ("+p+")")
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrMissingAsset, strings.Join(missing, ", "))
	}
	return nil
}

// decodeImage opens and decodes the image at p.
func (rm *ResourceManager) decodeImage(p string) (image.Image, error) {
	file, err := rm.fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", p, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", p, err)
	}
	return img, nil
}

// LoadImageByID loads the image registered under id and caches it.
func (rm *ResourceManager) LoadImageByID(id string) (*ebiten.Image, error) {
	p, ok := rm.GetResourcePath(id)
	if !ok {
		return nil, fmt.Errorf("resource id %q not found in manifest", id)
	}

	if cached, exists := rm.imageCache[p]; exists {
		return cached, nil
	}

	img, err := rm.decodeImage(p)
	if err != nil {
		return nil, err
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[p] = ebitenImg
	return ebitenImg, nil
}
