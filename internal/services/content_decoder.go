package services

import (
	"errors"
	"unicode/utf8"

	"github.com/alimgiray/repodigest/internal/models"
	"github.com/google/go-github/v57/github"
)

var errNotUTF8 = errors.New("decoded content is not valid UTF-8")

// DecodeContent wraps a file-content response and attaches its decoded text.
// When decoding fails the error is returned alongside a FileContent without
// DecodedContent; callers that don't care may ignore it.
func DecodeContent(content *github.RepositoryContent) (*models.FileContent, error) {
	if content == nil {
		return nil, nil
	}

	file := &models.FileContent{RepositoryContent: content}
	if content.Content == nil {
		return file, errors.New("response has no content payload")
	}

	text, err := decodeText(content)
	if err != nil {
		return file, err
	}
	file.DecodedContent = &text
	return file, nil
}

func decodeText(content *github.RepositoryContent) (string, error) {
	if content.GetEncoding() == "" {
		// the contents API always sends base64; treat a missing field the same way
		encoded := *content
		encoded.Encoding = github.String("base64")
		content = &encoded
	}

	text, err := content.GetContent()
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(text) {
		return "", errNotUTF8
	}
	return text, nil
}
