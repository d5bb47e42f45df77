package server

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"foodforall/internal/utils"
	"foodforall/pkg/types"
)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

const maxUploadBytes = 10 << 20

// saveImage stores an optional multipart image field and returns its storage
// key. A missing field is not an error: the key comes back nil.
func (s *Service) saveImage(r *http.Request, field, folder string) (*string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, types.NewValidationErrorf("Invalid %s upload", field)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return nil, types.NewValidationError("Image must be a png, jpg, jpeg or gif file")
	}

	name := fmt.Sprintf("%s_%s", utils.NanoIDSize(16), filepath.Base(header.Filename))
	key := folder + "/" + name

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	stored, err := s.uploads.Upload(r.Context(), key, file, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", field, err)
	}

	return &stored, nil
}

// imageURL rewrites a stored key into its public URL, in place.
func (s *Service) imageURL(key *string) {
	if key == nil || *key == "" {
		return
	}
	*key = s.uploads.PublicURL(*key)
}
