package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"mural/internal/core/domain"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	DefaultEndpoint = "https://api-mural.onrender.com/api/editar-imagem"

	imageField  = "imagem"
	promptField = "tema"
)

// Mural submits images to the stylization service.
type Mural struct {
	endpoint string
	client   *http.Client
}

func NewMural(endpoint string, client *http.Client) *Mural {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = &http.Client{}
	}

	return &Mural{endpoint: endpoint, client: client}
}

type editResponse struct {
	NovaImagemURL string `json:"novaImagemUrl"`
}

// Submit posts the image and prompt as multipart form data and returns the URL of the stylized image.
func (m *Mural) Submit(ctx context.Context, asset domain.ImageAsset, prompt string) (string, error) {
	body, contentType, err := buildMultipart(asset, prompt)
	if err != nil {
		return "", fmt.Errorf("error encoding multipart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, body)
	if err != nil {
		log.Error().Err(err).Msg("error creating POST request for stylization service")
		return "", fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)

	res, err := m.client.Do(req)
	if err != nil {
		return "", &domain.UploadError{Category: domain.CategoryNetworkUnavailable, Cause: err}
	}

	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &domain.UploadError{Category: domain.CategoryNetworkUnavailable, Status: res.StatusCode,
			Cause: fmt.Errorf("error reading response: %w", err)}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		text := strings.TrimSpace(string(raw))
		log.Debug().Int("status", res.StatusCode).Str("body", text).Msg("stylization service error response")
		return "", domain.ClassifyStatus(res.StatusCode, text)
	}

	var result editResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", &domain.UploadError{Category: domain.CategoryMalformedResponse, Status: res.StatusCode,
			Cause: fmt.Errorf("error unmarshalling response: %w", err)}
	}

	if result.NovaImagemURL == "" {
		return "", &domain.UploadError{Category: domain.CategoryMalformedResponse, Status: res.StatusCode,
			Cause: errors.New("novaImagemUrl missing from response")}
	}

	log.Debug().Str("url", result.NovaImagemURL).Msg("stylization service response")

	return result.NovaImagemURL, nil
}

func buildMultipart(asset domain.ImageAsset, prompt string) (*bytes.Buffer, string, error) {
	payloadBuf := new(bytes.Buffer)
	w := multipart.NewWriter(payloadBuf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, imageField, escapeQuotes(asset.FileName)))
	header.Set("Content-Type", asset.MIMEType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(asset.Data); err != nil {
		return nil, "", err
	}

	if err := w.WriteField(promptField, prompt); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return payloadBuf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
