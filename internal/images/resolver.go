package images

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"

	"hatena-md/internal/hatena"
)

// imagePattern matches Markdown image markup ![alt](path)
var imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)

// ImageNotFoundError indicates a local image reference whose file is
// missing from the image directory.
type ImageNotFoundError struct {
	Path string
}

func (e *ImageNotFoundError) Error() string {
	return fmt.Sprintf("image file not found: %s", e.Path)
}

// Uploader uploads image bytes, returning the uploaded image identity.
// *hatena.Client satisfies it.
type Uploader interface {
	UploadImage(data []byte, filename string) (*hatena.FotolifeImage, error)
}

// Resolver rewrites local image references in a post body to embed codes,
// uploading each referenced image at most once.
type Resolver struct {
	uploader Uploader
	cache    *Cache
	imageDir string
}

// NewResolver creates a resolver that looks up local images in the
// imageDir folder next to the source file.
func NewResolver(uploader Uploader, cache *Cache, imageDir string) *Resolver {
	return &Resolver{
		uploader: uploader,
		cache:    cache,
		imageDir: imageDir,
	}
}

// Rewrite scans body for image markup and replaces each local reference
// with the platform embed code, uploading images not yet in the cache.
// Remote references (any URL scheme) are left untouched. The first missing
// file or failed upload aborts the rewrite; the source file on disk is
// never modified.
func (r *Resolver) Rewrite(body, baseDir string) (string, error) {
	var failure error
	uploads := 0

	rewritten := imagePattern.ReplaceAllStringFunc(body, func(match string) string {
		if failure != nil {
			return match
		}

		groups := imagePattern.FindStringSubmatch(match)
		ref := groups[2]

		if isRemote(ref) {
			logrus.WithField("ref", ref).Debug("Skipping remote image reference")
			return match
		}

		localPath := filepath.Join(baseDir, r.imageDir, filepath.Base(ref))

		data, err := os.ReadFile(localPath)
		if err != nil {
			if os.IsNotExist(err) {
				failure = &ImageNotFoundError{Path: localPath}
			} else {
				failure = fmt.Errorf("failed to read image %s: %w", localPath, err)
			}
			return match
		}

		sum := sha256.Sum256(data)
		hash := hex.EncodeToString(sum[:])

		if entry := r.cache.Get(localPath, hash); entry != nil {
			return entry.Embed
		}

		image, err := r.uploader.UploadImage(data, filepath.Base(localPath))
		if err != nil {
			failure = err
			return match
		}
		uploads++

		embed := image.Embed()
		r.cache.Set(localPath, hash, embed)

		logrus.WithFields(logrus.Fields{
			"path":  localPath,
			"embed": embed,
		}).Info("Rewrote image reference")

		return embed
	})

	if failure != nil {
		return "", failure
	}

	if uploads > 0 {
		logrus.WithField("uploads", uploads).Info("Uploaded referenced images")
	}

	return rewritten, nil
}

// isRemote reports whether an image reference carries a URL scheme
func isRemote(ref string) bool {
	parsed, err := url.Parse(ref)
	return err == nil && parsed.Scheme != ""
}
