package parse

import (
	"encoding/json"
	"io"
	"strings"

	"mangadex/internal/domain"

	"github.com/pkg/errors"
)

type pagesJSON struct {
	Hash      *string  `json:"hash"`
	Server    *string  `json:"server"`
	PageArray []string `json:"page_array"`
}

// Pages parses the chapter api payload. Page urls are server + hash/filename,
// resolved against baseURL when the server is a relative path. Filenames that
// are already absolute urls point at other hosts and are kept as they are.
func Pages(r io.Reader, baseURL string) ([]domain.Page, error) {
	var resp pagesJSON
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return nil, errors.Wrap(domain.ErrMalformedResponse, err.Error())
	}

	switch {
	case resp.Hash == nil:
		return nil, missing("hash")
	case resp.Server == nil:
		return nil, missing("server")
	case resp.PageArray == nil:
		return nil, missing("page_array")
	}

	pages := make([]domain.Page, 0, len(resp.PageArray))
	for i, filename := range resp.PageArray {
		pages = append(pages, domain.Page{
			Index:    i,
			ImageURL: imageURL(baseURL, *resp.Server, *resp.Hash, filename),
		})
	}

	return pages, nil
}

func imageURL(baseURL, server, hash, filename string) string {
	if isAbsolute(filename) {
		return filename
	}

	u := server + hash + "/" + filename
	if isAbsolute(u) {
		return u
	}

	return strings.TrimSuffix(baseURL, "/") + u
}

func isAbsolute(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
