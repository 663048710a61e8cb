package hatena

import (
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const fotolifeEndpoint = "https://f.hatena.ne.jp/atom/post"

// FotolifeImage identifies an image uploaded to Hatena Fotolife
type FotolifeImage struct {
	HatenaID string
	ImageID  string
}

// Embed returns the blog embed syntax for the uploaded image
func (img *FotolifeImage) Embed() string {
	return fmt.Sprintf("[f:id:%s:%s:plain]", img.HatenaID, img.ImageID)
}

// fotolifeRequest is the wire format of a Fotolife upload
type fotolifeRequest struct {
	XMLName xml.Name        `xml:"entry"`
	Xmlns   string          `xml:"xmlns,attr"`
	Title   string          `xml:"title"`
	Content fotolifeContent `xml:"content"`
}

type fotolifeContent struct {
	Mode string `xml:"mode,attr"`
	Type string `xml:"type,attr"`
	Body string `xml:",chardata"`
}

// fotolifeResponse carries the fields of interest from an upload response
type fotolifeResponse struct {
	XMLName xml.Name `xml:"entry"`
	ID      string   `xml:"id"`
	Syntax  string   `xml:"syntax"`
}

// wsseHeader builds an X-WSSE UsernameToken header value for the given
// credentials, per the Fotolife AtomAPI authentication convention.
func wsseHeader(hatenaID, apiKey string) (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate WSSE nonce: %w", err)
	}

	created := time.Now().UTC().Format("2006-01-02T15:04:05Z")

	digest := sha1.Sum(append(append(append([]byte{}, nonce...), []byte(created)...), []byte(apiKey)...))

	return fmt.Sprintf(`UsernameToken Username=%q, PasswordDigest=%q, Nonce=%q, Created=%q`,
		hatenaID,
		base64.StdEncoding.EncodeToString(digest[:]),
		base64.StdEncoding.EncodeToString(nonce),
		created,
	), nil
}

// fotolifeURL returns the upload endpoint, honoring the test override
func (c *Client) fotolifeURL() string {
	if c.fotolifeBase != "" {
		return c.fotolifeBase
	}
	return fotolifeEndpoint
}

// UploadImage uploads image bytes to Hatena Fotolife and returns the
// uploaded image identity.
func (c *Client) UploadImage(data []byte, filename string) (*FotolifeImage, error) {
	logrus.WithFields(logrus.Fields{
		"filename": filename,
		"bytes":    len(data),
	}).Debug("Uploading image to Fotolife")

	mimeType := mime.TypeByExtension(filepath.Ext(filename))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	request := fotolifeRequest{
		Xmlns: "http://purl.org/atom/ns#",
		Title: filename,
		Content: fotolifeContent{
			Mode: "base64",
			Type: mimeType,
			Body: base64.StdEncoding.EncodeToString(data),
		},
	}

	payload, err := xml.Marshal(&request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal upload XML: %w", err)
	}
	payload = append([]byte(xml.Header), payload...)

	wsse, err := wsseHeader(c.hatenaID, c.apiKey)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Content-Type": "application/xml",
		"X-WSSE":       wsse,
	}

	status, body, _, err := c.http.Do(http.MethodPost, c.fotolifeURL(), payload, headers)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpload, err)
	}
	if status != http.StatusCreated {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpload, status, string(body))
	}

	var response fotolifeResponse
	if err := xml.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: failed to parse upload response: %w", ErrUpload, err)
	}

	imageID := imageIDFromResponse(&response)
	if imageID == "" {
		return nil, fmt.Errorf("%w: upload response carried no image id", ErrUpload)
	}

	image := &FotolifeImage{HatenaID: c.hatenaID, ImageID: imageID}

	logrus.WithFields(logrus.Fields{
		"filename": filename,
		"image_id": image.ImageID,
	}).Info("Successfully uploaded image")

	return image, nil
}

// imageIDFromResponse extracts the image id from the hatena:syntax element
// ("f:id:<user>:<image-id>:image") or, failing that, from the Atom id
// ("tag:hatena.ne.jp,2005:fotolife-<user>-<image-id>").
func imageIDFromResponse(resp *fotolifeResponse) string {
	if resp.Syntax != "" {
		parts := strings.Split(resp.Syntax, ":")
		if len(parts) >= 4 {
			return parts[3]
		}
	}
	if idx := strings.LastIndex(resp.ID, "-"); idx >= 0 {
		return resp.ID[idx+1:]
	}
	return ""
}
