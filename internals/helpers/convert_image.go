package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	imageMaxWidth = 1280
	webpQuality   = 80
	storageBucket = "image"
	uploadTimeout = 15 * time.Second
)

// ConvertToWebP decodes an uploaded JPEG/PNG, downscales anything wider than
// imageMaxWidth and re-encodes as lossy webp.
func ConvertToWebP(fileHeader *multipart.FileHeader) ([]byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open image file: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > imageMaxWidth {
		img = imaging.Resize(img, imageMaxWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// UploadImageToStorage converts the upload to webp and pushes it to the
// Supabase storage bucket, returning the public URL.
func UploadImageToStorage(folder string, fileHeader *multipart.FileHeader) (string, error) {
	data, err := ConvertToWebP(fileHeader)
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(fileHeader.Filename, "."+extOf(fileHeader.Filename))
	filename := GenerateUniqueFilename(folder, base+".webp")

	if err := uploadToStorage(storageBucket, filename, "image/webp", bytes.NewBuffer(data)); err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		os.Getenv("SUPABASE_PROJECT_URL"),
		storageBucket,
		url.PathEscape(filename),
	)
	return publicURL, nil
}

func extOf(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return filename[i+1:]
}

func sanitizeFilename(filename string) string {
	// keep letters, digits, dot, dash, underscore
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	return re.ReplaceAllString(filename, "_")
}

func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	uuidStr := uuid.New().String()
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuidStr, sanitizeFilename(originalFilename))
}

func uploadToStorage(bucket, filename, contentType string, data *bytes.Buffer) error {
	supabaseURL := os.Getenv("SUPABASE_PROJECT_URL")
	supabaseKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("storage env not configured")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", supabaseURL, bucket, filename)
	req, err := http.NewRequest(http.MethodPut, endpoint, data)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+supabaseKey)
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{Timeout: uploadTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("send upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// DeleteFromStorage removes a previously uploaded object.
func DeleteFromStorage(bucket, path string) error {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		os.Getenv("SUPABASE_PROJECT_URL"), bucket, path)

	req, err := http.NewRequest(http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))

	client := &http.Client{Timeout: uploadTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete failed status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// ExtractStoragePath splits a public object URL back into bucket and path.
func ExtractStoragePath(fullURL string) (bucket string, path string, err error) {
	u, err := url.Parse(fullURL)
	if err != nil {
		return "", "", err
	}

	parts := strings.SplitN(u.Path, "/object/public/", 2)
	if len(parts) < 2 {
		return "", "", fmt.Errorf("not a public object url")
	}

	pathParts := strings.SplitN(parts[1], "/", 2)
	if len(pathParts) < 2 {
		return "", "", fmt.Errorf("cannot extract bucket and path")
	}
	return pathParts[0], pathParts[1], nil
}
