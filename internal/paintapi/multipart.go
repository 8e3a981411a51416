package paintapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"

	"paintcompany/internal/media"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeForm writes the schema-tagged fields of in, then the optional image,
// as a multipart body.
func (c *Client) encodeForm(in any, img *media.Image) (*bytes.Buffer, string, error) {
	fields := map[string][]string{}
	if err := c.encoder.Encode(in, fields); err != nil {
		return nil, "", fmt.Errorf("paintapi: encode form: %w", err)
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, k := range keys {
		for _, v := range fields[k] {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", err
			}
		}
	}
	if img != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscaper.Replace(img.Filename)))
		h.Set("Content-Type", img.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// sendForm posts a multipart body and decodes the saved record into out.
func sendForm[T any](ctx context.Context, c *Client, method, target string, in any, img *media.Image) (T, error) {
	var out T
	body, contentType, err := c.encodeForm(in, img)
	if err != nil {
		return out, err
	}
	data, err := c.send(ctx, request{
		method:      method,
		target:      target,
		body:        body,
		contentType: contentType,
		upload:      true,
	})
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("%s %s: %w: %w", method, target, ErrMalformed, err)
	}
	if err := c.validate.Struct(out); err != nil {
		return out, fmt.Errorf("%s %s: %w: %w", method, target, ErrMalformed, err)
	}
	return out, nil
}
