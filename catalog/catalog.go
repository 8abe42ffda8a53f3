// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aCallin/retro-rain/audio"
)

// Clip is one loadable sound. It is immutable once added to a Catalog.
type Clip struct {
	// ID is the stable identifier, the file name for directory loads.
	ID string
	// Format names the decoder ("wav", "mp3"...).
	Format string
	// Path is where the clip was read from, empty for in-memory clips.
	Path string
	// Data holds the encoded file contents.
	Data []byte
}

// Catalog maps clip identifiers to clips.
type Catalog struct {
	clips map[string]Clip

	mtx *sync.RWMutex
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		clips: make(map[string]Clip),
		mtx:   &sync.RWMutex{},
	}
}

// Add registers clip under clip.ID.
func (c *Catalog) Add(clip Clip) error {
	if clip.ID == "" {
		return ErrEmptyID
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	if _, ok := c.clips[clip.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateClip, clip.ID)
	}
	c.clips[clip.ID] = clip

	return nil
}

// Lookup returns the clip registered under id. Unknown ids return an
// error matching ErrUnknownClip.
func (c *Catalog) Lookup(id string) (Clip, error) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	clip, ok := c.clips[id]
	if !ok {
		return Clip{}, fmt.Errorf("%w: %s", ErrUnknownClip, id)
	}

	return clip, nil
}

// IDs returns every clip identifier in sorted order.
func (c *Catalog) IDs() []string {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	ids := make([]string, 0, len(c.clips))
	for id := range c.clips {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

// Len returns the number of clips.
func (c *Catalog) Len() int {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	return len(c.clips)
}

// LoadDir adds every regular file in dir whose name ends with one of
// extensions (".wav" or "wav", case insensitive). The file name becomes
// the clip ID. Sub-directories are not descended into. It returns the
// number of clips added.
func (c *Catalog) LoadDir(dir string, extensions []string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading clip directory: %w", err)
	}

	added := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		name := entry.Name()
		format, ok := matchExtension(name, extensions)
		if !ok {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return added, fmt.Errorf("reading clip %s: %w", name, err)
		}

		if err := c.Add(Clip{ID: name, Format: format, Path: path, Data: data}); err != nil {
			return added, err
		}
		added++
	}

	return added, nil
}

func matchExtension(name string, extensions []string) (string, bool) {
	format := audio.FormatOf(name)
	if format == "" {
		return "", false
	}

	for _, want := range extensions {
		if strings.ToLower(strings.TrimPrefix(want, ".")) == format {
			return format, true
		}
	}

	return "", false
}
